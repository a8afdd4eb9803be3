package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scandoc/internal/pipeline"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_UsageError(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	for _, args := range [][]string{{}, {filepath.Join(dir, "scan.pdf")}} {
		_, err := execute(t, args...)

		require.Error(t, err)
		assert.Equal(t, pipeline.ExitUsage, pipeline.ExitCode(err))
		assert.EqualError(t, err, usageLine)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoDirExists(t, outDir)
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "language: fas")
	assert.Contains(t, out, "image_dpi: 300")
	assert.Contains(t, out, "- soffice")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "scandoc dev\n", out)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.pdf")
	outDir := filepath.Join(dir, "out")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr string
	}{
		{
			name:       "usage goes to stderr",
			args:       []string{},
			wantCode:   pipeline.ExitUsage,
			wantStderr: usageLine + "\n",
		},
		{
			name:       "path-prefixed subcommand name is an input",
			args:       []string{"./check"},
			wantCode:   pipeline.ExitUsage,
			wantStderr: usageLine + "\n",
		},
		{
			name:       "stage failure is reported once by the pipeline",
			args:       []string{missing, outDir},
			wantCode:   pipeline.ExitFailure,
			wantStdout: []string{"Step 1:", "OCR failed:"},
		},
		{
			name:       "other errors are printed to stderr",
			args:       []string{"--jobs", "0", missing, outDir},
			wantCode:   pipeline.ExitFailure,
			wantStderr: "Error: invalid configuration",
		},
		{
			name:       "success",
			args:       []string{"version"},
			wantCode:   pipeline.ExitOK,
			wantStdout: []string{"scandoc dev"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() {
				require.NoError(t, rootCmd.PersistentFlags().Set("jobs", "2"))
			})
			var stdout, stderr bytes.Buffer

			code := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantStdout {
				assert.Equal(t, 1, strings.Count(stdout.String(), want), "stdout %q", stdout.String())
			}
			if tt.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}
