// SPDX-License-Identifier: MPL-2.0

package document

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen is the sentinel error wrapped by OpenError.
	ErrOpen = errors.New("cannot open document")
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("cannot parse document")
	// ErrUnsupportedFormat is the sentinel error wrapped by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

type (
	// OpenError is returned when a document file cannot be read.
	OpenError struct {
		Path  string
		Cause error
	}

	// ParseError is returned when a document's content cannot be decoded
	// into the expected nested-mapping shape.
	ParseError struct {
		Path  string
		Cause error
	}

	// UnsupportedFormatError is returned for file extensions no decoder
	// is registered for.
	UnsupportedFormatError struct {
		Path string
		Ext  string
	}
)

// Error implements the error interface for OpenError.
func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open document %s: %v", e.Path, e.Cause)
}

// Unwrap returns ErrOpen for errors.Is() compatibility.
func (e *OpenError) Unwrap() error { return ErrOpen }

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse document %s: %v", e.Path, e.Cause)
}

// Unwrap returns ErrParse for errors.Is() compatibility.
func (e *ParseError) Unwrap() error { return ErrParse }

// Error implements the error interface for UnsupportedFormatError.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q: %s", e.Ext, e.Path)
}

// Unwrap returns ErrUnsupportedFormat for errors.Is() compatibility.
func (e *UnsupportedFormatError) Unwrap() error { return ErrUnsupportedFormat }
