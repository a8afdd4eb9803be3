// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scandoc/internal/runner"
	"github.com/pdiddy/scandoc/pkg/types"
)

// fakeRunner records commands and simulates ocrmypdf by writing the last
// argument (the output path) unless err is set.
type fakeRunner struct {
	err      error
	noOutput bool
	calls    []runner.Command
}

func (f *fakeRunner) Run(c runner.Command) error {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return f.err
	}
	if f.noOutput {
		return nil
	}
	return os.WriteFile(c.Args[len(c.Args)-1], []byte("%PDF-1.7\nsearchable"), 0o644)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCommand_Defaults(t *testing.T) {
	o := New(types.DefaultPipelineConfig().OCR, &fakeRunner{}, nil)
	c := o.Command("in.pdf", "out/in_searchable.pdf")

	assert.Equal(t, "ocrmypdf", c.Name)
	assert.Equal(t, []string{
		"-l", "fas",
		"--deskew",
		"--image-dpi", "300",
		"--jobs", "2",
		"--optimize", "1",
		"in.pdf", "out/in_searchable.pdf",
	}, c.Args)
}

func TestCommand_NoDeskew(t *testing.T) {
	cfg := types.DefaultPipelineConfig().OCR
	cfg.Deskew = false
	cfg.Language = "eng+fas"
	c := New(cfg, &fakeRunner{}, nil).Command("a.pdf", "b.pdf")

	assert.NotContains(t, c.Args, "--deskew")
	assert.Equal(t, "eng+fas", c.Args[1])
}

func TestSearchable(t *testing.T) {
	tests := []struct {
		name      string
		input     string // empty means no input file
		runner    *fakeRunner
		wantErr   string
		wantCalls int
		wantOut   bool
	}{
		{
			name:      "success writes searchable pdf",
			input:     "%PDF-1.4\nscanned",
			runner:    &fakeRunner{},
			wantCalls: 1,
			wantOut:   true,
		},
		{
			name:      "tool failure is returned",
			input:     "%PDF-1.4\nscanned",
			runner:    &fakeRunner{err: errors.New("exit status 6")},
			wantErr:   "running ocrmypdf",
			wantCalls: 1,
		},
		{
			name:      "missing output after success",
			input:     "%PDF-1.4\nscanned",
			runner:    &fakeRunner{noOutput: true},
			wantErr:   "is missing",
			wantCalls: 1,
		},
		{
			name:    "missing input never runs the tool",
			runner:  &fakeRunner{},
			wantErr: "reading input",
		},
		{
			name:    "non-pdf input never runs the tool",
			input:   "just some text, not a document",
			runner:  &fakeRunner{},
			wantErr: "not a PDF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "scan.pdf")
			if tt.input != "" {
				in = writeFile(t, dir, "scan.pdf", tt.input)
			}
			out := filepath.Join(dir, "scan_searchable.pdf")
			var log bytes.Buffer

			err := New(types.DefaultPipelineConfig().OCR, tt.runner, &log).Searchable(in, out)

			assert.Len(t, tt.runner.calls, tt.wantCalls)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			_, statErr := os.Stat(out)
			assert.Equal(t, tt.wantOut, statErr == nil)
		})
	}
}

func TestSearchable_UnparseablePDFOnlyWarns(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "scan.pdf", "%PDF-1.4\nnot really a pdf body")
	var log bytes.Buffer

	err := New(types.DefaultPipelineConfig().OCR, &fakeRunner{}, &log).
		Searchable(in, filepath.Join(dir, "scan_searchable.pdf"))

	require.NoError(t, err)
	assert.Contains(t, log.String(), "warning: could not count pages")
}

func TestIsNotPDF(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "notes.pdf", "plain text")

	err := New(types.DefaultPipelineConfig().OCR, &fakeRunner{}, nil).
		Searchable(in, filepath.Join(dir, "out.pdf"))

	require.Error(t, err)
	assert.True(t, IsNotPDF(err))
	assert.False(t, IsNotPDF(errors.New("other")))
}

func TestSearchable_LeavesNoPdfcpuConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	dir := t.TempDir()
	in := writeFile(t, dir, "scan.pdf", "%PDF-1.4\nscanned")
	var log bytes.Buffer

	err := New(types.DefaultPipelineConfig().OCR, &fakeRunner{}, &log).
		Searchable(in, filepath.Join(dir, "scan_searchable.pdf"))

	require.NoError(t, err)
	assert.NoDirExists(t, filepath.Join(home, ".config", "pdfcpu"))
}
