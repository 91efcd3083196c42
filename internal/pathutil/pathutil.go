// SPDX-License-Identifier: MPL-2.0

// Package pathutil provides the path helpers shared by the configuration
// resolvers: document-relative normalization and existence checks.
package pathutil

import (
	"os"
	"path/filepath"
)

// Normalize resolves a declared path against the directory of the document
// that declared it. Absolute paths are cleaned and returned as-is; relative
// paths are joined to baseDir. The result is always absolute as long as
// baseDir is.
func Normalize(baseDir, declared string) string {
	if filepath.IsAbs(declared) {
		return filepath.Clean(declared)
	}
	return filepath.Join(baseDir, declared)
}

// Exists reports whether path exists on the filesystem.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
