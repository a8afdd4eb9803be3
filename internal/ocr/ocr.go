// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr produces searchable PDFs by running ocrmypdf over scanned input.
package ocr

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/scandoc/internal/runner"
	"github.com/pdiddy/scandoc/pkg/types"
)

const mimePDF = "application/pdf"

func init() {
	// Keep pdfcpu from creating its config dir under the user's home.
	api.DisableConfigDir()
}

// commandRunner runs external tools; *runner.Runner satisfies it.
type commandRunner interface {
	Run(c runner.Command) error
}

// OCRmyPDF adds a text layer to scanned PDFs with the ocrmypdf tool.
type OCRmyPDF struct {
	cfg    types.OCRConfig
	runner commandRunner
	log    io.Writer
}

// New creates an OCRmyPDF recognizer. Progress and warnings go to log.
func New(cfg types.OCRConfig, r commandRunner, log io.Writer) *OCRmyPDF {
	if log == nil {
		log = io.Discard
	}
	return &OCRmyPDF{cfg: cfg, runner: r, log: log}
}

// Name identifies the recognizer in progress output.
func (o *OCRmyPDF) Name() string { return "ocrmypdf" }

// Command returns the ocrmypdf invocation for inPDF -> outPDF.
func (o *OCRmyPDF) Command(inPDF, outPDF string) runner.Command {
	args := []string{"-l", o.cfg.Language}
	if o.cfg.Deskew {
		args = append(args, "--deskew")
	}
	args = append(args,
		"--image-dpi", strconv.Itoa(o.cfg.ImageDPI),
		"--jobs", strconv.Itoa(o.cfg.Jobs),
		"--optimize", strconv.Itoa(o.cfg.Optimize),
		inPDF, outPDF,
	)
	return runner.Command{Name: o.cfg.Binary, Args: args}
}

// Searchable runs OCR on inPDF and writes the searchable result to outPDF.
// Any failure is final: without a text layer nothing downstream can run.
func (o *OCRmyPDF) Searchable(inPDF, outPDF string) error {
	if err := o.preflight(inPDF); err != nil {
		return err
	}

	if err := o.runner.Run(o.Command(inPDF, outPDF)); err != nil {
		return fmt.Errorf("running ocrmypdf on %s: %w", inPDF, err)
	}

	if _, err := os.Stat(outPDF); err != nil {
		return fmt.Errorf("ocrmypdf reported success but %s is missing: %w", outPDF, err)
	}
	return nil
}

// preflight checks that inPDF is a readable PDF before the OCR tool starts.
// The page count is informational: ocrmypdf repairs many files pdfcpu rejects.
func (o *OCRmyPDF) preflight(inPDF string) error {
	info, err := os.Stat(inPDF)
	if err != nil {
		return fmt.Errorf("reading input %s: %w", inPDF, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", inPDF)
	}

	mtype, err := mimetype.DetectFile(inPDF)
	if err != nil {
		return fmt.Errorf("detecting type of %s: %w", inPDF, err)
	}
	if !mtype.Is(mimePDF) {
		return &NotPDFError{Path: inPDF, MIME: mtype.String()}
	}

	pages, err := pageCount(inPDF)
	if err != nil {
		fmt.Fprintf(o.log, "warning: could not count pages of %s: %v\n", inPDF, err)
		return nil
	}
	fmt.Fprintf(o.log, "Input: %s (%d pages)\n", inPDF, pages)
	return nil
}

// NotPDFError reports an input whose content is not a PDF.
type NotPDFError struct {
	Path string
	MIME string
}

func (e *NotPDFError) Error() string {
	return fmt.Sprintf("input %s is %s, not a PDF", e.Path, e.MIME)
}

// IsNotPDF reports whether err was caused by non-PDF input.
func IsNotPDF(err error) bool {
	var e *NotPDFError
	return errors.As(err, &e)
}

func pageCount(path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("pdfcpu read: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx.PageCount, nil
}
