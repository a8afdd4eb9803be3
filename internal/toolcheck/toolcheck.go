// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolcheck verifies that the external tools used by the pipeline
// are installed, including the tesseract language models OCR needs.
package toolcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/scandoc/internal/runner"
	"github.com/pdiddy/scandoc/pkg/types"
)

const binTesseract = "tesseract"

// toolRunner is the subset of *runner.Runner used for checks.
type toolRunner interface {
	LookPath(file string) (string, error)
	Find(candidates ...string) (string, error)
	Output(c runner.Command) ([]byte, error)
}

// Status is the outcome of checking one requirement.
type Status struct {
	Name   string
	Detail string
	Err    error
}

// OK reports whether the requirement is met.
func (s Status) OK() bool { return s.Err == nil }

// Check inspects every tool the pipeline depends on.
func Check(r toolRunner, cfg types.PipelineConfig) []Status {
	var out []Status

	out = append(out, lookPath(r, cfg.OCR.Binary))
	tess := lookPath(r, binTesseract)
	out = append(out, tess)
	if tess.OK() {
		out = append(out, languages(r, cfg.OCR.Language)...)
	}

	office := Status{Name: "office suite"}
	if bin, err := r.Find(cfg.Fallback.Binaries...); err != nil {
		office.Err = err
	} else {
		office.Detail = bin
	}
	out = append(out, office)

	return out
}

// Report prints one line per status and reports whether all passed.
func Report(w io.Writer, statuses []Status) bool {
	ok := true
	for _, s := range statuses {
		if s.OK() {
			fmt.Fprintf(w, "ok:      %s (%s)\n", s.Name, s.Detail)
			continue
		}
		ok = false
		fmt.Fprintf(w, "missing: %s (%v)\n", s.Name, s.Err)
	}
	return ok
}

func lookPath(r toolRunner, bin string) Status {
	path, err := r.LookPath(bin)
	return Status{Name: bin, Detail: path, Err: err}
}

// languages checks each "+"-joined tesseract language against --list-langs.
func languages(r toolRunner, spec string) []Status {
	out, err := r.Output(runner.Command{Name: binTesseract, Args: []string{"--list-langs"}})
	if err != nil {
		return []Status{{Name: "tesseract languages", Err: err}}
	}

	installed := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of available languages") {
			continue
		}
		installed[line] = true
	}

	var statuses []Status
	for _, lang := range strings.Split(spec, "+") {
		s := Status{Name: "tesseract language " + lang, Detail: "installed"}
		if !installed[lang] {
			s.Err = fmt.Errorf("language model %q not installed", lang)
		}
		statuses = append(statuses, s)
	}
	return statuses
}
