// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"fmt"
	"strings"
)

type (
	// LocationKind identifies how a tool version is reached.
	LocationKind int

	// Location is the decoded form of a version's location spec. The wire
	// form is a "<kind>:<locator>" string; decoding happens once at load
	// time so unknown kinds are rejected there instead of at lookup time.
	Location struct {
		// Kind is the location category.
		Kind LocationKind
		// Locator is a filesystem path for KindPath or a service endpoint
		// name for KindService.
		Locator string
	}
)

const (
	// KindPath means the locator is a filesystem path.
	KindPath LocationKind = iota
	// KindService means the locator names an external service endpoint.
	KindService
)

// String returns the wire name of the location kind.
func (k LocationKind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// String returns the location in its "<kind>:<locator>" wire form.
func (l Location) String() string {
	return fmt.Sprintf("%s:%s", l.Kind, l.Locator)
}

// ParseLocation decodes a "<kind>:<locator>" spec string. The kind must be
// "path" or "service" and the locator must be non-empty.
func ParseLocation(spec string) (Location, error) {
	kind, locator, found := strings.Cut(spec, ":")
	if !found || locator == "" {
		return Location{}, &LocationSpecError{Spec: spec}
	}

	switch kind {
	case "path":
		return Location{Kind: KindPath, Locator: locator}, nil
	case "service":
		return Location{Kind: KindService, Locator: locator}, nil
	default:
		return Location{}, &LocationSpecError{Spec: spec, UnknownKind: kind}
	}
}
