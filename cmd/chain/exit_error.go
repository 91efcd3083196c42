// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

// Process exit codes. Resolution failures (missing flows, unmatched tool
// versions, cycles) get their own code so scripts can branch on them.
const (
	exitCodeGeneric    = 1
	exitCodeResolution = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// resolutionFailed wraps a flow or tool resolution error with the
// resolution exit code.
func resolutionFailed(err error) *ExitError {
	return &ExitError{Code: exitCodeResolution, Err: err}
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
