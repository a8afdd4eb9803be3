// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner runs external tools (ocrmypdf, soffice) to completion and
// reports their failures with captured stderr. The process boundary sits
// behind an executor so stages can be tested without the tools installed.
package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Command is a single external tool invocation.
type Command struct {
	Name string
	Args []string
}

// String renders the command line as echoed before running it.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// ExitError reports a tool that ran but did not succeed.
type ExitError struct {
	Command Command
	Code    int // -1 when the process did not exit normally
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s: %v", e.Command.Name, e.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", e.Command.Name, e.Code)
	if line := lastLine(e.Stderr); line != "" {
		msg += ": " + line
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// lastLine returns the final non-empty line of s.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// Runner executes commands, echoing each command line to Log.
type Runner struct {
	// Log receives "RUN: <command>" lines and the tool's stdout.
	Log  io.Writer
	exec executor
}

// New returns a Runner backed by os/exec that echoes to log.
func New(log io.Writer) *Runner {
	return newRunner(log, defaultExec)
}

func newRunner(log io.Writer, exec executor) *Runner {
	if log == nil {
		log = io.Discard
	}
	return &Runner{Log: log, exec: exec}
}

var defaultExec = &osExecutor{}

// LookPath reports the resolved path of file, or an error when it is not on PATH.
func (r *Runner) LookPath(file string) (string, error) {
	return r.exec.LookPath(file)
}

// Find returns the first candidate binary found on PATH.
func (r *Runner) Find(candidates ...string) (string, error) {
	for _, c := range candidates {
		if _, err := r.exec.LookPath(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("none of %s found on PATH", strings.Join(candidates, ", "))
}

// Output runs c quietly and returns its stdout. Nothing is echoed to Log.
func (r *Runner) Output(c Command) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	if err := r.exec.Run(c.Name, c.Args, &stdout, &stderr); err != nil {
		return nil, exitError(c, err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Run executes c and blocks until it exits. A non-zero exit or a failure to
// start returns an *ExitError carrying the tool's stderr.
func (r *Runner) Run(c Command) error {
	fmt.Fprintf(r.Log, "RUN: %s\n", c)

	var stderr bytes.Buffer
	err := r.exec.Run(c.Name, c.Args, r.Log, io.MultiWriter(&stderr, r.Log))
	if err == nil {
		return nil
	}

	return exitError(c, err, stderr.String())
}

func exitError(c Command, err error, stderr string) *ExitError {
	code := -1
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code = ee.ExitCode()
	}
	return &ExitError{
		Command: c,
		Code:    code,
		Stderr:  strings.TrimSpace(stderr),
		Err:     err,
	}
}
