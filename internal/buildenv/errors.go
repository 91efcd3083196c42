// SPDX-License-Identifier: MPL-2.0

package buildenv

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is the sentinel error wrapped by ConfigNotFoundError.
var ErrConfigNotFound = errors.New("configuration file not found")

// ConfigNotFoundError is returned when a whole search chain produced no
// configuration file for a domain.
type ConfigNotFoundError struct {
	// For names the domain whose configuration is missing.
	For string
}

// Error implements the error interface for ConfigNotFoundError.
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("configuration file for %s was not found in any known location", e.For)
}

// Unwrap returns ErrConfigNotFound for errors.Is() compatibility.
func (e *ConfigNotFoundError) Unwrap() error { return ErrConfigNotFound }
