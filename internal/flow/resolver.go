// SPDX-License-Identifier: MPL-2.0

package flow

import (
	"github.com/charmbracelet/log"

	"chain-cli/internal/pathutil"
)

type (
	// ToolBinder selects a concrete version for one tool requirement and
	// records it for the requesting flow. The flow package stays unaware
	// of how versions are chosen.
	ToolBinder interface {
		Bind(flowName, toolName string, patterns []string) error
	}

	// Resolver walks a target flow's dependency closure through the merged
	// universe, registering every reachable flow and binding its tool
	// requirements. A Resolver performs a single resolution pass and is
	// not reusable.
	Resolver struct {
		universe *Universe
		graph    *Graph
		tools    ToolBinder
		logger   *log.Logger

		// completed marks names whose registration, tool binding, and
		// dependency recursion have all finished.
		completed map[string]bool
		// visiting marks names currently on the recursion stack; hitting
		// one again means the dependency declarations form a cycle.
		visiting map[string]bool
		stack    []string
	}
)

// NewResolver creates a resolver over the given universe. Registered flows
// and bound versions accumulate into graph; tool requirements are
// delegated to tools.
func NewResolver(universe *Universe, graph *Graph, tools ToolBinder, logger *log.Logger) *Resolver {
	return &Resolver{
		universe:  universe,
		graph:     graph,
		tools:     tools,
		logger:    logger,
		completed: make(map[string]bool),
		visiting:  make(map[string]bool),
	}
}

// Resolve registers the target flow and, recursively, every flow it
// depends on. The first error aborts the whole pass.
func (r *Resolver) Resolve(target string) error {
	return r.resolve(target)
}

func (r *Resolver) resolve(name string) error {
	if r.completed[name] {
		return nil
	}
	if r.visiting[name] {
		cycle := append(append([]string{}, r.stack...), name)
		return &CycleError{Cycle: cycle}
	}

	def := r.universe.Lookup(name)
	if def == nil {
		return &NotFoundError{Flow: name}
	}
	if def.Path == "" {
		return &MissingPathError{Flow: name}
	}
	if !pathutil.Exists(def.Path) {
		return &PathNotExistError{Flow: name, Path: def.Path}
	}

	r.visiting[name] = true
	r.stack = append(r.stack, name)
	defer func() {
		delete(r.visiting, name)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	r.graph.Register(name, def.Path)
	r.logger.Debug("flow registered", "flow", name, "path", def.Path)

	for _, req := range def.Tools {
		if err := r.tools.Bind(name, req.Tool, req.Patterns); err != nil {
			return err
		}
	}

	for _, dep := range def.Flows {
		if err := r.resolve(dep); err != nil {
			return err
		}
	}

	r.completed[name] = true
	return nil
}
