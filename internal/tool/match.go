// SPDX-License-Identifier: MPL-2.0

package tool

import "github.com/bmatcuk/doublestar/v4"

type (
	// Matcher decides whether a version identifier satisfies a requirement
	// pattern. It is a separate abstraction so the matching rule can be
	// tested and swapped independently of the selection algorithm.
	Matcher interface {
		Match(pattern, candidate string) (bool, error)
	}

	// GlobMatcher matches with shell-glob patterns: '*', '?', and
	// character classes.
	GlobMatcher struct{}
)

// Match reports whether candidate matches the glob pattern. An invalid
// pattern is reported as a PatternError.
func (GlobMatcher) Match(pattern, candidate string) (bool, error) {
	ok, err := doublestar.Match(pattern, candidate)
	if err != nil {
		return false, &PatternError{Pattern: pattern, Cause: err}
	}
	return ok, nil
}
