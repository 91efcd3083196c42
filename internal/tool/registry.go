// SPDX-License-Identifier: MPL-2.0

package tool

import "sort"

type (
	// ResolvedTool collects the distinct versions of one tool requested
	// across all flows in a resolution pass, for downstream readiness
	// checks by the backend dispatcher.
	ResolvedTool struct {
		// Name is the tool name.
		Name string
		// Path is the absolute, existence-checked backend handler path.
		Path string
		// Versions maps each bound version identifier to its location.
		Versions map[string]Location
	}

	// Registry is the global accumulator of tool versions bound during one
	// resolution pass, deduplicated by (tool, version).
	Registry struct {
		tools map[string]*ResolvedTool
	}
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*ResolvedTool)}
}

// Record notes that the given version of a tool is in use. Recording the
// same (tool, version) pair again is a no-op.
func (r *Registry) Record(def *Definition, backendPath string, entry VersionEntry) {
	resolved, ok := r.tools[def.Name]
	if !ok {
		resolved = &ResolvedTool{
			Name:     def.Name,
			Path:     backendPath,
			Versions: make(map[string]Location),
		}
		r.tools[def.Name] = resolved
	}
	if _, ok := resolved.Versions[entry.ID]; ok {
		return
	}
	resolved.Versions[entry.ID] = entry.Location
}

// Lookup returns the resolved record for the named tool, or nil.
func (r *Registry) Lookup(name string) *ResolvedTool {
	return r.tools[name]
}

// Names returns registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
