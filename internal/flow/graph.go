// SPDX-License-Identifier: MPL-2.0

package flow

type (
	// Resolved is the output record for one registered flow.
	Resolved struct {
		// Name is the flow name.
		Name string
		// BackendPath is the absolute, existence-checked backend entry point.
		BackendPath string
		// ToolVersions maps each required tool to the single version bound
		// for this flow.
		ToolVersions map[string]string
	}

	// Graph accumulates the flows registered during one resolution pass.
	// It is owned exclusively by the in-progress resolution and handed to
	// the caller only once resolution completes.
	Graph struct {
		flows map[string]*Resolved
		order []string
	}
)

// NewGraph creates an empty flow graph.
func NewGraph() *Graph {
	return &Graph{flows: make(map[string]*Resolved)}
}

// Register adds a flow to the graph. Registering an already-registered
// name is a no-op.
func (g *Graph) Register(name, backendPath string) {
	if _, ok := g.flows[name]; ok {
		return
	}
	g.flows[name] = &Resolved{
		Name:         name,
		BackendPath:  backendPath,
		ToolVersions: make(map[string]string),
	}
	g.order = append(g.order, name)
}

// Registered reports whether the named flow is in the graph.
func (g *Graph) Registered(name string) bool {
	_, ok := g.flows[name]
	return ok
}

// Lookup returns the resolved record for the named flow, or nil.
func (g *Graph) Lookup(name string) *Resolved {
	return g.flows[name]
}

// Names returns registered flow names in registration order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// BindTool records the chosen version of a tool for a registered flow.
// Re-binding the same version is a no-op; binding a different version of
// an already-bound tool is a version conflict.
func (g *Graph) BindTool(flowName, toolName, version string) error {
	resolved, ok := g.flows[flowName]
	if !ok {
		return &NotFoundError{Flow: flowName}
	}

	if bound, ok := resolved.ToolVersions[toolName]; ok {
		if bound == version {
			return nil
		}
		return &VersionConflictError{
			Flow:      flowName,
			Tool:      toolName,
			Bound:     bound,
			Requested: version,
		}
	}

	resolved.ToolVersions[toolName] = version
	return nil
}
