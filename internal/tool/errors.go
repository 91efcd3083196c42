// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTools is the sentinel error wrapped by NoToolsError.
	ErrNoTools = errors.New("no tools found")
	// ErrBadEntry is the sentinel error wrapped by BadEntryError.
	ErrBadEntry = errors.New("malformed tool entry")
	// ErrBadLocationSpec is the sentinel error wrapped by LocationSpecError.
	ErrBadLocationSpec = errors.New("bad tool location spec")
	// ErrBadPattern is the sentinel error wrapped by PatternError.
	ErrBadPattern = errors.New("bad version pattern")
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("tool not found")
	// ErrMissingKey is the sentinel error wrapped by MissingKeyError.
	ErrMissingKey = errors.New("missing required tool parameter")
	// ErrNoVersion is the sentinel error wrapped by NoVersionError.
	ErrNoVersion = errors.New("no suitable tool version")
	// ErrPathNotExist is the sentinel error wrapped by PathNotExistError.
	ErrPathNotExist = errors.New("tool path does not exist")
)

type (
	// NoToolsError is returned when the tools document has no tool table.
	NoToolsError struct {
		Path string
	}

	// BadEntryError is returned when a tool entry has the wrong shape.
	BadEntryError struct {
		Tool string
		Path string
	}

	// LocationSpecError is returned for a malformed "<kind>:<locator>"
	// string or an unknown kind.
	LocationSpecError struct {
		Spec        string
		UnknownKind string
	}

	// PatternError is returned for a syntactically invalid version pattern.
	PatternError struct {
		Pattern string
		Cause   error
	}

	// NotFoundError is returned when a flow requires a tool absent from
	// the tools document.
	NotFoundError struct {
		Tool string
		Flow string
	}

	// MissingKeyError is returned when a required tool definition key
	// (path or versions) is absent or empty.
	MissingKeyError struct {
		Tool string
		Key  string
	}

	// NoVersionError is returned when no available version satisfies any
	// of the requested patterns.
	NoVersionError struct {
		Tool      string
		Patterns  []string
		Available []string
	}

	// PathNotExistError is returned when a tool's backend handler path is
	// missing from the filesystem.
	PathNotExistError struct {
		Tool string
		Path string
	}
)

// Error implements the error interface for NoToolsError.
func (e *NoToolsError) Error() string {
	return fmt.Sprintf("no tools were found in the configuration file: %s", e.Path)
}

// Unwrap returns ErrNoTools for errors.Is() compatibility.
func (e *NoToolsError) Unwrap() error { return ErrNoTools }

// Error implements the error interface for BadEntryError.
func (e *BadEntryError) Error() string {
	return fmt.Sprintf("malformed configuration for tool '%s' (%s)", e.Tool, e.Path)
}

// Unwrap returns ErrBadEntry for errors.Is() compatibility.
func (e *BadEntryError) Unwrap() error { return ErrBadEntry }

// Error implements the error interface for LocationSpecError.
func (e *LocationSpecError) Error() string {
	if e.UnknownKind != "" {
		return fmt.Sprintf("unknown location kind %q in spec %q (valid: path, service)", e.UnknownKind, e.Spec)
	}
	return fmt.Sprintf("location spec %q is not of the form \"<kind>:<locator>\"", e.Spec)
}

// Unwrap returns ErrBadLocationSpec for errors.Is() compatibility.
func (e *LocationSpecError) Unwrap() error { return ErrBadLocationSpec }

// Error implements the error interface for PatternError.
func (e *PatternError) Error() string {
	return fmt.Sprintf("bad version pattern %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns ErrBadPattern for errors.Is() compatibility.
func (e *PatternError) Unwrap() error { return ErrBadPattern }

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool '%s' required by flow '%s' was not found", e.Tool, e.Flow)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for MissingKeyError.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("required key '%s' was not found for tool '%s'", e.Key, e.Tool)
}

// Unwrap returns ErrMissingKey for errors.Is() compatibility.
func (e *MissingKeyError) Unwrap() error { return ErrMissingKey }

// Error implements the error interface for NoVersionError.
func (e *NoVersionError) Error() string {
	return fmt.Sprintf(
		"no version of tool '%s' matches pattern(s) [%s]; available: [%s]",
		e.Tool, strings.Join(e.Patterns, ", "), strings.Join(e.Available, ", "))
}

// Unwrap returns ErrNoVersion for errors.Is() compatibility.
func (e *NoVersionError) Unwrap() error { return ErrNoVersion }

// Error implements the error interface for PathNotExistError.
func (e *PathNotExistError) Error() string {
	return fmt.Sprintf("path to tool '%s' does not exist: %s", e.Tool, e.Path)
}

// Unwrap returns ErrPathNotExist for errors.Is() compatibility.
func (e *PathNotExistError) Unwrap() error { return ErrPathNotExist }
