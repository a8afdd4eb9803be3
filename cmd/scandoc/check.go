package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scandoc/internal/runner"
	"github.com/pdiddy/scandoc/internal/toolcheck"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that ocrmypdf, tesseract languages and LibreOffice are installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		statuses := toolcheck.Check(runner.New(cmd.ErrOrStderr()), cfg)
		if !toolcheck.Report(cmd.OutOrStdout(), statuses) {
			return errors.New("required tools are missing")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
