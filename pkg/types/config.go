// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// OCRConfig holds settings for the ocrmypdf invocation in the OCR stage.
type OCRConfig struct {
	// Binary is the ocrmypdf executable name or path.
	Binary string `json:"binary" yaml:"binary" mapstructure:"binary"`

	// Language is the tesseract language model (e.g. "fas", "eng+fas").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// Deskew straightens crooked pages before recognition.
	Deskew bool `json:"deskew" yaml:"deskew" mapstructure:"deskew"`

	// ImageDPI is the resolution assumed for scanned images (default 300).
	ImageDPI int `json:"image_dpi" yaml:"image_dpi" mapstructure:"image_dpi"`

	// Jobs is the number of parallel ocrmypdf workers (default 2).
	Jobs int `json:"jobs" yaml:"jobs" mapstructure:"jobs"`

	// Optimize is the ocrmypdf optimization level, 0 through 3 (default 1).
	Optimize int `json:"optimize" yaml:"optimize" mapstructure:"optimize"`
}

// FormatDOCX is the only output format; the final path always ends in .docx.
const FormatDOCX = "docx"

// FallbackConfig holds settings for the office-suite fallback stage.
type FallbackConfig struct {
	// Binaries lists office-suite executables tried in order.
	Binaries []string `json:"binaries" yaml:"binaries" mapstructure:"binaries"`

	// Format is the --convert-to target passed to the office suite. Only
	// FormatDOCX is accepted.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	OCR      OCRConfig      `json:"ocr" yaml:"ocr" mapstructure:"ocr"`
	Fallback FallbackConfig `json:"fallback" yaml:"fallback" mapstructure:"fallback"`
}

// DefaultPipelineConfig returns the settings tuned for Persian scans.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		OCR: OCRConfig{
			Binary:   "ocrmypdf",
			Language: "fas",
			Deskew:   true,
			ImageDPI: 300,
			Jobs:     2,
			Optimize: 1,
		},
		Fallback: FallbackConfig{
			Binaries: []string{"soffice", "libreoffice"},
			Format:   FormatDOCX,
		},
	}
}

// Validate reports every invalid field in c.
func (c PipelineConfig) Validate() error {
	var errs []error
	if c.OCR.Binary == "" {
		errs = append(errs, errors.New("ocr.binary must not be empty"))
	}
	if c.OCR.Language == "" {
		errs = append(errs, errors.New("ocr.language must not be empty"))
	}
	if c.OCR.ImageDPI <= 0 {
		errs = append(errs, fmt.Errorf("ocr.image_dpi must be positive, got %d", c.OCR.ImageDPI))
	}
	if c.OCR.Jobs <= 0 {
		errs = append(errs, fmt.Errorf("ocr.jobs must be positive, got %d", c.OCR.Jobs))
	}
	if c.OCR.Optimize < 0 || c.OCR.Optimize > 3 {
		errs = append(errs, fmt.Errorf("ocr.optimize must be between 0 and 3, got %d", c.OCR.Optimize))
	}
	if len(c.Fallback.Binaries) == 0 {
		errs = append(errs, errors.New("fallback.binaries must list at least one executable"))
	}
	if c.Fallback.Format != FormatDOCX {
		errs = append(errs, fmt.Errorf("fallback.format must be %q, got %q", FormatDOCX, c.Fallback.Format))
	}
	return errors.Join(errs...)
}
