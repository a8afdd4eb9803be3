// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline turns a scanned PDF into a DOCX in three stages: OCR,
// in-process conversion, and an office-suite fallback that runs only when
// the in-process conversion fails. Stages communicate through the paths of a
// types.Job.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scandoc/pkg/types"
)

const (
	// searchableSuffix is appended to the input base name for the OCR output.
	searchableSuffix = "_searchable.pdf"
	// docxExt is the extension of the final document.
	docxExt = ".docx"
)

// Recognizer adds a text layer to a scanned PDF.
type Recognizer interface {
	Name() string
	// Searchable reads inPDF and writes a searchable copy to outPDF.
	Searchable(inPDF, outPDF string) error
}

// Converter transforms a searchable PDF into a DOCX at dst.
type Converter interface {
	Name() string
	Convert(src, dst string) error
}

// NewJob derives the intermediate and final paths from the input base name.
func NewJob(inputPDF, outputDir string) types.Job {
	base := strings.TrimSuffix(filepath.Base(inputPDF), filepath.Ext(inputPDF))
	return types.Job{
		InputPDF:   inputPDF,
		OutputDir:  outputDir,
		Searchable: filepath.Join(outputDir, base+searchableSuffix),
		OutputDOCX: filepath.Join(outputDir, base+docxExt),
	}
}

// Pipeline runs the stages in order, printing progress to Out.
type Pipeline struct {
	OCR      Recognizer
	Primary  Converter
	Fallback Converter
	Out      io.Writer
}

// Run executes job. The OCR stage and the fallback stage are fatal on
// failure; a primary failure only routes the job to the fallback. An existing
// output DOCX is removed before the OCR stage starts.
func (p *Pipeline) Run(job types.Job) (types.Result, error) {
	w := p.Out
	if w == nil {
		w = io.Discard
	}
	result := types.Result{Job: job}

	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory %s: %w", job.OutputDir, err)
	}
	// A DOCX left by an earlier run must not survive a failed one.
	if err := os.Remove(job.OutputDOCX); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return result, fmt.Errorf("removing previous output %s: %w", job.OutputDOCX, err)
	}

	fmt.Fprintln(w, "Step 1: OCR PDF -> searchable PDF")
	if err := p.OCR.Searchable(job.InputPDF, job.Searchable); err != nil {
		fmt.Fprintf(w, "OCR failed: %v\n", err)
		return result, &StageError{Stage: types.StageOCR, Tool: p.OCR.Name(), Err: err}
	}

	fmt.Fprintf(w, "Step 2: Convert searchable PDF -> DOCX (%s)\n", p.Primary.Name())
	primaryErr := p.Primary.Convert(job.Searchable, job.OutputDOCX)
	if primaryErr == nil {
		result.ProducedBy = types.StagePrimary
		fmt.Fprintf(w, "Done. Output DOCX: %s\n", job.OutputDOCX)
		return result, nil
	}

	fmt.Fprintf(w, "%s failed: %v\n", p.Primary.Name(), primaryErr)
	fmt.Fprintf(w, "Trying %s conversion as fallback...\n", p.Fallback.Name())
	if err := p.Fallback.Convert(job.Searchable, job.OutputDOCX); err != nil {
		fmt.Fprintf(w, "%s fallback failed: %v\n", p.Fallback.Name(), err)
		return result, &StageError{
			Stage: types.StageFallback,
			Tool:  p.Fallback.Name(),
			Err:   errors.Join(err, primaryErr),
		}
	}

	result.ProducedBy = types.StageFallback
	result.PrimaryErr = primaryErr
	fmt.Fprintf(w, "Done. Output DOCX: %s\n", job.OutputDOCX)
	return result, nil
}
