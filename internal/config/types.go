// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOverridePath is returned when an OverridePath value is whitespace-only.
	ErrInvalidOverridePath = errors.New("invalid override path")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidResolutionConfig is the sentinel error wrapped by InvalidResolutionConfigError.
	ErrInvalidResolutionConfig = errors.New("invalid resolution config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OverridePath represents a filesystem path supplied as a configuration
	// override. The zero value ("") is valid and means "no override".
	// Non-zero values must not be whitespace-only.
	OverridePath string

	// InvalidOverridePathError is returned when an OverridePath value is
	// non-empty but whitespace-only.
	InvalidOverridePathError struct {
		Value OverridePath
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidResolutionConfigError is returned when a ResolutionConfig has
	// invalid fields. It wraps ErrInvalidResolutionConfig for errors.Is()
	// compatibility and collects field-level validation errors.
	InvalidResolutionConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Resolution configures how configuration documents are located.
		Resolution ResolutionConfig `json:"resolution" mapstructure:"resolution"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Quiet suppresses informational output
		Quiet bool `json:"quiet" mapstructure:"quiet"`
		// Debug enables debug diagnostics
		Debug bool `json:"debug" mapstructure:"debug"`
		// Interactive allows interactive prompts
		Interactive bool `json:"interactive" mapstructure:"interactive"`
	}

	// ResolutionConfig configures the configuration document search.
	ResolutionConfig struct {
		// ProjectRoot is the project directory searched for documents
		ProjectRoot OverridePath `json:"project_root" mapstructure:"project_root"`
		// ToolsFile is an explicit tools document override
		ToolsFile OverridePath `json:"tools_file" mapstructure:"tools_file"`
		// FlowsFile is an explicit flows document override
		FlowsFile OverridePath `json:"flows_file" mapstructure:"flows_file"`
		// ThemeFile is an explicit theme document override
		ThemeFile OverridePath `json:"theme_file" mapstructure:"theme_file"`
		// SingleFlowsFile uses only the first flows document found
		SingleFlowsFile bool `json:"single_flows_file" mapstructure:"single_flows_file"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the ResolutionConfig has valid fields.
// It delegates to each OverridePath's IsValid(); SingleFlowsFile needs no
// validation.
func (c ResolutionConfig) IsValid() (bool, []error) {
	var errs []error
	for _, p := range []OverridePath{c.ProjectRoot, c.ToolsFile, c.FlowsFile, c.ThemeFile} {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidResolutionConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidResolutionConfigError.
func (e *InvalidResolutionConfigError) Error() string {
	return fmt.Sprintf("invalid resolution config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidResolutionConfig for errors.Is() compatibility.
func (e *InvalidResolutionConfigError) Unwrap() error { return ErrInvalidResolutionConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to UI.IsValid() and Resolution.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Resolution.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the OverridePath.
func (p OverridePath) String() string { return string(p) }

// IsValid returns whether the OverridePath is valid.
// The zero value ("") is valid (means "no override").
// Non-zero values must not be whitespace-only.
func (p OverridePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOverridePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOverridePathError.
func (e *InvalidOverridePathError) Error() string {
	return fmt.Sprintf("invalid override path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOverridePath for errors.Is() compatibility.
func (e *InvalidOverridePathError) Unwrap() error { return ErrInvalidOverridePath }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Quiet:       false,
			Debug:       false,
			Interactive: true,
		},
		Resolution: ResolutionConfig{
			SingleFlowsFile: false,
		},
	}
}
