// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"

	"chain-cli/internal/buildenv"
	"chain-cli/internal/document"
	"chain-cli/internal/flow"
	"chain-cli/internal/tool"
)

// ForError maps a resolution error onto the catalog entry explaining it.
// Returns nil when no entry applies; callers then fall back to the plain
// error message.
func ForError(err error) *Issue {
	switch {
	case errors.Is(err, buildenv.ErrConfigNotFound):
		var notFound *buildenv.ConfigNotFoundError
		if errors.As(err, &notFound) && notFound.For == "build tools" {
			return Get(ToolsConfigNotFoundId)
		}
		return Get(FlowsConfigNotFoundId)

	case errors.Is(err, document.ErrParse),
		errors.Is(err, document.ErrUnsupportedFormat),
		errors.Is(err, flow.ErrNoFlows),
		errors.Is(err, flow.ErrBadEntry),
		errors.Is(err, tool.ErrNoTools),
		errors.Is(err, tool.ErrBadEntry),
		errors.Is(err, tool.ErrBadLocationSpec),
		errors.Is(err, tool.ErrMissingKey):
		return Get(ConfigParseErrorId)

	case errors.Is(err, flow.ErrCycle):
		return Get(DependencyCycleId)

	case errors.Is(err, flow.ErrVersionConflict):
		return Get(VersionConflictId)

	case errors.Is(err, flow.ErrMissingPath), errors.Is(err, flow.ErrPathNotExist):
		return Get(FlowBackendMissingId)

	// tool.ErrNotFound embeds the requesting flow, so check it before the
	// flow-level not-found.
	case errors.Is(err, tool.ErrNotFound), errors.Is(err, tool.ErrPathNotExist):
		return Get(ToolNotFoundId)

	case errors.Is(err, tool.ErrNoVersion), errors.Is(err, tool.ErrBadPattern):
		return Get(NoSuitableVersionId)

	case errors.Is(err, flow.ErrNotFound):
		return Get(FlowNotFoundId)

	default:
		return nil
	}
}
