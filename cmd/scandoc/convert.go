package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/scandoc/internal/docx"
	"github.com/pdiddy/scandoc/internal/ocr"
	"github.com/pdiddy/scandoc/internal/office"
	"github.com/pdiddy/scandoc/internal/pipeline"
	"github.com/pdiddy/scandoc/internal/runner"
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := runner.New(out)
	p := &pipeline.Pipeline{
		OCR:      ocr.New(cfg.OCR, r, out),
		Primary:  docx.New(),
		Fallback: office.New(cfg.Fallback, r),
		Out:      out,
	}

	_, err = p.Run(pipeline.NewJob(args[0], args[1]))
	return err
}
