// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is an error with enough context to tell the user what
// chain was doing, which file or entity was involved, and what to try
// next. The resolver's load and validation paths wrap their failures in
// one of these; the CLI unwraps it for display via Format.
type ActionableError struct {
	// Operation is the verb phrase that failed, e.g. "load configuration"
	// or "resolve flow".
	Operation string

	// Resource identifies the file, path, or entity involved (optional).
	Resource string

	// Suggestions are remediation hints shown under the message (optional).
	Suggestions []string

	// Cause is the underlying error (optional).
	Cause error
}

// FailedTo builds an ActionableError for a failed operation on a resource.
//
//	return issue.FailedTo("load configuration", path, err,
//		"Check that the file contains valid CUE syntax")
func FailedTo(operation, resource string, cause error, suggestions ...string) *ActionableError {
	return &ActionableError{
		Operation:   operation,
		Resource:    resource,
		Suggestions: suggestions,
		Cause:       cause,
	}
}

// Error returns the concise one-line message used in non-verbose output.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the display form of the error: the one-line message,
// the suggestions as a bulleted list, and in verbose mode the numbered
// error chain down to the root cause.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}
