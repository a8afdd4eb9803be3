// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
	"fmt"

	"github.com/pdiddy/scandoc/pkg/types"
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// StageError reports a fatal failure of one pipeline stage.
type StageError struct {
	Stage types.Stage
	Tool  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage (%s): %v", e.Stage, e.Tool, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// UsageError reports invalid command-line arguments. It is raised before
// any filesystem work starts.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitFailure
}
