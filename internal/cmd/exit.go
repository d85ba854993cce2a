package cmd

import (
	"errors"

	"github.com/rcastner/duscan/internal/scan"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitArgError    = 1
	ExitTargetError = 2
	ExitIOError     = 3
)

// ExitCode maps a fatal error to the process exit code. Configuration
// problems (including cobra's own flag errors) exit 1, an unusable target
// exits 2, and a run where every candidate failed exits 3.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var targetErr *scan.TargetError
	if errors.As(err, &targetErr) {
		return ExitTargetError
	}

	var allFailed *scan.AllFailedError
	if errors.As(err, &allFailed) {
		return ExitIOError
	}

	return ExitArgError
}
