// SPDX-License-Identifier: MPL-2.0

package locate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAbsolute is the sentinel error wrapped by NotAbsoluteError.
	ErrNotAbsolute = errors.New("path must be absolute")
	// ErrBadPath is the sentinel error wrapped by PathError.
	ErrBadPath = errors.New("bad search path")
)

type (
	// PathErrorKind distinguishes the failure modes of a resolved path.
	PathErrorKind int

	// NotAbsoluteError is returned when a location carries a relative
	// value but no path prefix to resolve it against. It wraps
	// ErrNotAbsolute for errors.Is() compatibility.
	NotAbsoluteError struct {
		// Location is the diagnostic label of the failing location.
		Location string
		// Value is the offending relative value.
		Value string
	}

	// PathError is returned when a location's candidate path exists in the
	// wrong form or is missing where existence was required. It wraps
	// ErrBadPath for errors.Is() compatibility.
	PathError struct {
		// Location is the diagnostic label of the failing location.
		Location string
		// Path is the fully resolved candidate path.
		Path string
		// Kind is the specific failure mode.
		Kind PathErrorKind
	}
)

const (
	// PathNotExists means the path does not exist but was required to.
	PathNotExists PathErrorKind = iota
	// PathNotDir means a directory was expected but a file was found.
	PathNotDir
	// PathNotFile means a file was expected but a directory was found.
	PathNotFile
)

// Error implements the error interface for NotAbsoluteError.
func (e *NotAbsoluteError) Error() string {
	return fmt.Sprintf("path in %s must be absolute, but is %q", e.Location, e.Value)
}

// Unwrap returns ErrNotAbsolute for errors.Is() compatibility.
func (e *NotAbsoluteError) Unwrap() error { return ErrNotAbsolute }

// Error implements the error interface for PathError.
func (e *PathError) Error() string {
	switch e.Kind {
	case PathNotDir:
		return fmt.Sprintf("%s: not a directory: %s", e.Location, e.Path)
	case PathNotFile:
		return fmt.Sprintf("%s: not a file: %s", e.Location, e.Path)
	default:
		return fmt.Sprintf("%s: does not exist: %s", e.Location, e.Path)
	}
}

// Unwrap returns ErrBadPath for errors.Is() compatibility.
func (e *PathError) Unwrap() error { return ErrBadPath }
