// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scandoc CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scandoc/internal/pipeline"
	"github.com/pdiddy/scandoc/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const usageLine = "Usage: scandoc input.pdf output_dir"

// rootCmd converts one scanned PDF; subcommands inspect the environment.
var rootCmd = &cobra.Command{
	Use:   "scandoc <input_pdf> <output_dir>",
	Short: "Convert a scanned PDF into an editable DOCX",
	Long: `scandoc converts a scanned, non-searchable PDF into an editable Word document.

It runs ocrmypdf to add a text layer, converts the searchable PDF to DOCX
in-process, and falls back to LibreOffice in headless mode when the in-process
conversion fails. The searchable PDF and the DOCX are written to output_dir.

An input named like a subcommand (check, config, version) is dispatched to
that subcommand; pass it with a directory prefix instead, e.g. ./version.`,
	Args:          requireInputAndOutput,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runConvert,
}

// requireInputAndOutput rejects invocations with fewer than two arguments.
func requireInputAndOutput(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &pipeline.UsageError{Msg: usageLine}
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultPipelineConfig()
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scandoc.yaml or ~/.config/scandoc/config.yaml)")
	rootCmd.PersistentFlags().StringP("language", "l", defaults.OCR.Language, "tesseract language model(s), joined with +")
	rootCmd.PersistentFlags().Int("image-dpi", defaults.OCR.ImageDPI, "resolution assumed for scanned images")
	rootCmd.PersistentFlags().Int("jobs", defaults.OCR.Jobs, "parallel OCR workers")
	rootCmd.PersistentFlags().Int("optimize", defaults.OCR.Optimize, "ocrmypdf optimization level (0-3)")
	rootCmd.PersistentFlags().Bool("deskew", defaults.OCR.Deskew, "deskew pages before OCR")

	bindFlag("ocr.language", "language")
	bindFlag("ocr.image_dpi", "image-dpi")
	bindFlag("ocr.jobs", "jobs")
	bindFlag("ocr.optimize", "optimize")
	bindFlag("ocr.deskew", "deskew")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scandoc")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scandoc"))
		}
	}

	setDefaults(types.DefaultPipelineConfig())

	viper.SetEnvPrefix("SCANDOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults(d types.PipelineConfig) {
	viper.SetDefault("ocr.binary", d.OCR.Binary)
	viper.SetDefault("ocr.language", d.OCR.Language)
	viper.SetDefault("ocr.deskew", d.OCR.Deskew)
	viper.SetDefault("ocr.image_dpi", d.OCR.ImageDPI)
	viper.SetDefault("ocr.jobs", d.OCR.Jobs)
	viper.SetDefault("ocr.optimize", d.OCR.Optimize)
	viper.SetDefault("fallback.binaries", d.Fallback.Binaries)
	viper.SetDefault("fallback.format", d.Fallback.Format)
}

// loadConfig returns the effective configuration from defaults, config
// file, environment and flags.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run executes the CLI with args and returns the process exit code. Stage
// failures are reported by the pipeline itself and are not printed again.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()

	var se *pipeline.StageError
	var ue *pipeline.UsageError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		fmt.Fprintln(stderr, ue.Msg)
	case errors.As(err, &se):
	default:
		fmt.Fprintln(stderr, "Error:", err)
	}
	return pipeline.ExitCode(err)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
