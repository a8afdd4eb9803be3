// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office converts documents by running LibreOffice in headless mode.
package office

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/scandoc/internal/runner"
	"github.com/pdiddy/scandoc/pkg/types"
)

// commandRunner runs external tools; *runner.Runner satisfies it.
type commandRunner interface {
	Find(candidates ...string) (string, error)
	Run(c runner.Command) error
}

// LibreOffice converts with soffice --headless --convert-to.
type LibreOffice struct {
	cfg    types.FallbackConfig
	runner commandRunner
}

// New creates a LibreOffice converter. The binary is resolved on each
// Convert call from cfg.Binaries, first match wins.
func New(cfg types.FallbackConfig, r commandRunner) *LibreOffice {
	return &LibreOffice{cfg: cfg, runner: r}
}

// Name identifies the converter in progress output.
func (l *LibreOffice) Name() string { return "LibreOffice" }

// Command returns the headless conversion of src into outDir using bin.
func (l *LibreOffice) Command(bin, src, outDir string) runner.Command {
	return runner.Command{
		Name: bin,
		Args: []string{"--headless", "--convert-to", l.cfg.Format, "--outdir", outDir, src},
	}
}

// Produced returns the path LibreOffice writes for src in outDir. The name is
// the source base name with the target extension, whatever dst was asked for.
func (l *LibreOffice) Produced(src, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(outDir, base+"."+l.cfg.Format)
}

// Convert runs LibreOffice on src and moves its output to dst. A missing
// output file is an error even when the tool exits zero.
func (l *LibreOffice) Convert(src, dst string) error {
	bin, err := l.runner.Find(l.cfg.Binaries...)
	if err != nil {
		return fmt.Errorf("locating office suite: %w", err)
	}

	outDir := filepath.Dir(dst)
	if err := l.runner.Run(l.Command(bin, src, outDir)); err != nil {
		return fmt.Errorf("converting %s with %s: %w", src, bin, err)
	}

	produced := l.Produced(src, outDir)
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("%s produced no output at %s: %w", bin, produced, err)
	}

	if filepath.Clean(produced) == filepath.Clean(dst) {
		return nil
	}
	if err := os.Rename(produced, dst); err != nil {
		return fmt.Errorf("moving %s to %s: %w", produced, dst, err)
	}
	return nil
}
