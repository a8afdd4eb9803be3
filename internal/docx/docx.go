// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx converts searchable PDFs to Word documents in-process. It
// reads the OCR text layer row by row and emits one paragraph per row, so
// the result is editable text rather than a page image.
package docx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Converter is the in-process PDF-to-DOCX converter.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// Name identifies the converter in progress output.
func (c *Converter) Name() string { return "pdf text layer" }

// Convert writes the text layer of the PDF at src to a DOCX at dst. The
// document is written to a temporary file beside dst and renamed into place,
// so dst is either absent or complete.
func (c *Converter) Convert(src, dst string) error {
	pages, err := extractPages(src)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".scandoc-*.docx")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", dst, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	title := strings.TrimSuffix(filepath.Base(dst), filepath.Ext(dst))
	if err := Write(tmp, Document{Title: title, Pages: pages}); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("moving %s to %s: %w", tmpPath, dst, err)
	}
	return nil
}
