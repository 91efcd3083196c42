// SPDX-License-Identifier: MPL-2.0

package tool

import (
	"github.com/charmbracelet/log"

	"chain-cli/internal/flow"
	"chain-cli/internal/pathutil"
)

// Selector implements flow.ToolBinder: it picks a concrete version for
// each (flow, tool, patterns) requirement, records the choice in the flow
// graph, and accumulates the global registry of versions in use.
type Selector struct {
	defs     *Definitions
	graph    *flow.Graph
	registry *Registry
	matcher  Matcher
	logger   *log.Logger
}

// NewSelector creates a selector over the validated tool definitions.
// Chosen versions are recorded into graph and registry.
func NewSelector(defs *Definitions, graph *flow.Graph, registry *Registry, logger *log.Logger) *Selector {
	return &Selector{
		defs:     defs,
		graph:    graph,
		registry: registry,
		matcher:  GlobMatcher{},
		logger:   logger,
	}
}

// Bind selects a version of toolName satisfying the ordered requirement
// patterns and binds it for flowName. The tool's backend path must exist;
// a flow may not end up bound to two different versions of one tool.
func (s *Selector) Bind(flowName, toolName string, patterns []string) error {
	def := s.defs.Lookup(toolName)
	if def == nil {
		return &NotFoundError{Tool: toolName, Flow: flowName}
	}
	if def.Path == "" {
		return &MissingKeyError{Tool: toolName, Key: "path"}
	}
	if len(def.Versions) == 0 {
		return &MissingKeyError{Tool: toolName, Key: "versions"}
	}

	chosen, err := s.selectVersion(def, patterns)
	if err != nil {
		return err
	}

	backendPath := pathutil.Normalize(s.defs.Dir, def.Path)
	if !pathutil.Exists(backendPath) {
		return &PathNotExistError{Tool: toolName, Path: backendPath}
	}

	if err := s.graph.BindTool(flowName, toolName, chosen.ID); err != nil {
		return err
	}
	s.registry.Record(def, backendPath, chosen)

	s.logger.Debug("tool version bound",
		"flow", flowName, "tool", toolName,
		"version", chosen.ID, "location", chosen.Location.String())
	return nil
}

// selectVersion applies the selection rule: patterns are tried in the
// requirement's order and, within each pattern, available versions in the
// tools document's declared order; the first match wins.
func (s *Selector) selectVersion(def *Definition, patterns []string) (VersionEntry, error) {
	for _, pattern := range patterns {
		for _, entry := range def.Versions {
			ok, err := s.matcher.Match(pattern, entry.ID)
			if err != nil {
				return VersionEntry{}, err
			}
			if ok {
				return entry, nil
			}
		}
	}
	return VersionEntry{}, &NoVersionError{
		Tool:      def.Name,
		Patterns:  patterns,
		Available: def.AvailableIDs(),
	}
}
