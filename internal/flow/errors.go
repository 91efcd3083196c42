// SPDX-License-Identifier: MPL-2.0

package flow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoFlows is the sentinel error wrapped by NoFlowsError.
	ErrNoFlows = errors.New("no flows found")
	// ErrBadEntry is the sentinel error wrapped by BadEntryError.
	ErrBadEntry = errors.New("malformed flow entry")
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("flow not found")
	// ErrMissingPath is the sentinel error wrapped by MissingPathError.
	ErrMissingPath = errors.New("missing required parameter 'path'")
	// ErrPathNotExist is the sentinel error wrapped by PathNotExistError.
	ErrPathNotExist = errors.New("backend path does not exist")
	// ErrCycle is the sentinel error wrapped by CycleError.
	ErrCycle = errors.New("flow dependency cycle")
	// ErrVersionConflict is the sentinel error wrapped by VersionConflictError.
	ErrVersionConflict = errors.New("tool version conflict")
)

type (
	// NoFlowsError is returned when no flow document contributed any flow
	// entries.
	NoFlowsError struct{}

	// BadEntryError is returned when a flow entry or one of its fields has
	// the wrong shape.
	BadEntryError struct {
		// Flow is the offending flow name.
		Flow string
		// Key is the offending field, or "" for the entry itself.
		Key string
		// Path is the declaring document, when known.
		Path string
	}

	// NotFoundError is returned when a requested flow name is absent from
	// the merged universe. For a dependency this names the dependency, not
	// the original resolution target.
	NotFoundError struct {
		Flow string
	}

	// MissingPathError is returned when a resolved flow declares no
	// backend path.
	MissingPathError struct {
		Flow string
	}

	// PathNotExistError is returned when a flow's backend path is missing
	// from the filesystem.
	PathNotExistError struct {
		Flow string
		Path string
	}

	// CycleError is returned when flow dependencies form a cycle.
	CycleError struct {
		// Cycle lists the names on the recursion stack, ending with the
		// revisited one.
		Cycle []string
	}

	// VersionConflictError is returned when a flow would end up bound to
	// two different versions of the same tool.
	VersionConflictError struct {
		Flow      string
		Tool      string
		Bound     string
		Requested string
	}
)

// Error implements the error interface for NoFlowsError.
func (e *NoFlowsError) Error() string {
	return "no flows were found in configuration files"
}

// Unwrap returns ErrNoFlows for errors.Is() compatibility.
func (e *NoFlowsError) Unwrap() error { return ErrNoFlows }

// Error implements the error interface for BadEntryError.
func (e *BadEntryError) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "malformed configuration for flow '%s'", e.Flow)
	if e.Key != "" {
		fmt.Fprintf(&msg, ": key '%s'", e.Key)
	}
	if e.Path != "" {
		fmt.Fprintf(&msg, " (%s)", e.Path)
	}
	return msg.String()
}

// Unwrap returns ErrBadEntry for errors.Is() compatibility.
func (e *BadEntryError) Unwrap() error { return ErrBadEntry }

// Error implements the error interface for NotFoundError.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration for flow '%s' was not found", e.Flow)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for MissingPathError.
func (e *MissingPathError) Error() string {
	return fmt.Sprintf("required key 'path' was not found for flow '%s'", e.Flow)
}

// Unwrap returns ErrMissingPath for errors.Is() compatibility.
func (e *MissingPathError) Unwrap() error { return ErrMissingPath }

// Error implements the error interface for PathNotExistError.
func (e *PathNotExistError) Error() string {
	return fmt.Sprintf("backend path for flow '%s' does not exist: %s", e.Flow, e.Path)
}

// Unwrap returns ErrPathNotExist for errors.Is() compatibility.
func (e *PathNotExistError) Unwrap() error { return ErrPathNotExist }

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("flow dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// Unwrap returns ErrCycle for errors.Is() compatibility.
func (e *CycleError) Unwrap() error { return ErrCycle }

// Error implements the error interface for VersionConflictError.
func (e *VersionConflictError) Error() string {
	return fmt.Sprintf(
		"conflicting versions of tool '%s' for flow '%s': already bound to %s, requested %s",
		e.Tool, e.Flow, e.Bound, e.Requested)
}

// Unwrap returns ErrVersionConflict for errors.Is() compatibility.
func (e *VersionConflictError) Unwrap() error { return ErrVersionConflict }
