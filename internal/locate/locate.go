// SPDX-License-Identifier: MPL-2.0

// Package locate implements the ordered search chain used to find
// configuration files. A chain is built from candidate locations (explicit
// override values, environment variables, fixed fallback directories) and
// resolves to zero or more existing file paths, in location order.
package locate

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

type (
	// Kind identifies where a location's value comes from.
	Kind int

	// Location is one candidate source in a search chain. Locations are
	// immutable once constructed; their order within a chain is significant.
	Location struct {
		// Kind is the source category, used for diagnostics.
		Kind Kind
		// Name is a human-readable label identifying the location in error
		// messages (e.g. "--tools-config" or "$CHAIN_CONFIG_HOME").
		Name string
		// RawValue is the configured value. An empty value means the
		// location is silently skipped during resolution.
		RawValue string
		// IsDir indicates the value names a directory; the chain's target
		// file name is appended to form the candidate path.
		IsDir bool
		// PathPrefix is an optional base for resolving relative values.
		// A relative value with no prefix is a hard resolution error.
		PathPrefix string
		// MustExist makes a missing candidate a hard error instead of a
		// soft "try the next location". Reserved for explicit user
		// overrides, where a wrong path is a user error rather than a
		// fallback signal.
		MustExist bool
	}

	// Chain is an ordered sequence of locations searched for a single
	// target file name.
	Chain struct {
		// For describes what the searched file configures (e.g. "build
		// flows"); used in diagnostics only.
		For string
		// FileName is the target file name appended to directory locations.
		FileName string
		// FindAll collects every existing candidate across the whole chain
		// instead of stopping at the first one.
		FindAll bool
		// Locations are searched in order.
		Locations []Location
	}
)

const (
	// KindExplicit is a value supplied directly by the user (command line).
	KindExplicit Kind = iota
	// KindEnv is a value taken from an environment variable.
	KindEnv
	// KindFixed is a fixed fallback path (project root, install default).
	KindFixed
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "explicit value"
	case KindEnv:
		return "environment variable"
	case KindFixed:
		return "fixed path"
	default:
		return "unknown"
	}
}

// FromEnv builds an environment-variable location. The variable's current
// value is captured at construction time; if the variable is unset the
// location resolves to nothing. The optional subdir is appended to the
// variable's value before the target file name.
func FromEnv(envVar string, subdir string) Location {
	value := os.Getenv(envVar)
	if value != "" && subdir != "" {
		value = filepath.Join(value, subdir)
	}
	return Location{
		Kind:     KindEnv,
		Name:     "$" + envVar,
		RawValue: value,
		IsDir:    true,
	}
}

// Resolve walks the chain in location order and returns the existing
// candidate file paths. With FindAll unset it stops at the first candidate
// found; otherwise it accumulates every candidate across the whole chain.
// An empty result with a nil error means no location produced a match.
func (c *Chain) Resolve(logger *log.Logger) ([]string, error) {
	var paths []string

	for _, loc := range c.Locations {
		candidate, err := c.resolveLocation(loc)
		if err != nil {
			return nil, err
		}
		if candidate == "" {
			continue
		}

		logger.Debug("configuration file found",
			"for", c.For, "location", loc.Name, "path", candidate)
		paths = append(paths, candidate)

		if !c.FindAll {
			break
		}
	}

	return paths, nil
}

// resolveLocation resolves a single location to an existing file path.
// It returns "" when the location has no value or its candidate does not
// exist and existence was not required.
func (c *Chain) resolveLocation(loc Location) (string, error) {
	if loc.RawValue == "" {
		return "", nil
	}

	path := loc.RawValue
	if !filepath.IsAbs(path) {
		if loc.PathPrefix == "" {
			return "", &NotAbsoluteError{Location: loc.Name, Value: path}
		}
		path = filepath.Join(loc.PathPrefix, path)
	}

	if loc.IsDir {
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			if loc.MustExist {
				return "", &PathError{Location: loc.Name, Path: path, Kind: PathNotExists}
			}
			return "", nil
		case err != nil:
			return "", &PathError{Location: loc.Name, Path: path, Kind: PathNotExists}
		case !info.IsDir():
			return "", &PathError{Location: loc.Name, Path: path, Kind: PathNotDir}
		}
		path = filepath.Join(path, c.FileName)
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if loc.MustExist {
			return "", &PathError{Location: loc.Name, Path: path, Kind: PathNotExists}
		}
		return "", nil
	case err != nil:
		return "", &PathError{Location: loc.Name, Path: path, Kind: PathNotExists}
	case info.IsDir():
		// A file was expected at this point, even for soft locations.
		return "", &PathError{Location: loc.Name, Path: path, Kind: PathNotFile}
	}

	return path, nil
}
