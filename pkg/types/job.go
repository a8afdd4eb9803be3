// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stage identifies one step of the conversion pipeline.
type Stage string

const (
	StageOCR      Stage = "ocr"
	StagePrimary  Stage = "primary"
	StageFallback Stage = "fallback"
)

// Job holds the filesystem paths for one conversion run. All paths are
// derived from the input base name; see pipeline.NewJob.
type Job struct {
	// InputPDF is the caller-supplied scanned PDF. It is never modified.
	InputPDF string `json:"input_pdf" yaml:"input_pdf"`

	// OutputDir receives the intermediate and final files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Searchable is the OCR output with an invisible text layer.
	Searchable string `json:"searchable" yaml:"searchable"`

	// OutputDOCX is the final editable document.
	OutputDOCX string `json:"output_docx" yaml:"output_docx"`
}

// Result describes a completed run.
type Result struct {
	Job Job `json:"job" yaml:"job"`

	// ProducedBy is StagePrimary or StageFallback.
	ProducedBy Stage `json:"produced_by" yaml:"produced_by"`

	// PrimaryErr is set when the primary converter failed and the fallback
	// produced the output.
	PrimaryErr error `json:"-" yaml:"-"`
}
