// SPDX-License-Identifier: MPL-2.0

// Package flow merges flow declarations from layered configuration
// documents into a single universe of known flows and resolves a target
// flow's dependency closure into a flow graph.
package flow

import (
	"sort"
)

type (
	// Requirement is one tool requirement of a flow: the tool name and the
	// ordered version-match patterns used to select its version.
	Requirement struct {
		// Tool is the required tool's name.
		Tool string
		// Patterns are glob-style version patterns, tried in order.
		Patterns []string
	}

	// Definition is the validated, merged record for one flow name.
	Definition struct {
		// Name is the flow name.
		Name string
		// Path is the absolute backend entry point, or "" when no document
		// declared one. Missing paths are only an error for flows that are
		// actually resolved.
		Path string
		// Tools are the flow's tool requirements, sorted by tool name.
		Tools []Requirement
		// Flows are dependency flow names in declared order.
		Flows []string
		// Extra holds merged fields this system does not consume; they are
		// passed through to the backend untouched.
		Extra map[string]any
	}

	// Universe is the merged table of all known flows, the input to
	// dependency resolution.
	Universe struct {
		flows map[string]*Definition
		order []string
	}
)

// Lookup returns the definition for the named flow, or nil.
func (u *Universe) Lookup(name string) *Definition {
	if u == nil {
		return nil
	}
	return u.flows[name]
}

// Len returns the number of flows in the universe.
func (u *Universe) Len() int {
	return len(u.flows)
}

// Names returns all flow names in first-declaration order.
func (u *Universe) Names() []string {
	names := make([]string, len(u.order))
	copy(names, u.order)
	return names
}

// definitionFrom validates one merged raw flow entry into a typed
// Definition. The path value has already been normalized to an absolute
// path at merge time.
func definitionFrom(name string, fields map[string]any) (*Definition, error) {
	def := &Definition{Name: name}

	for key, value := range fields {
		switch key {
		case "path":
			p, ok := value.(string)
			if !ok {
				return nil, &BadEntryError{Flow: name, Key: "path"}
			}
			def.Path = p
		case "tools":
			table, ok := value.(map[string]any)
			if !ok {
				return nil, &BadEntryError{Flow: name, Key: "tools"}
			}
			reqs, err := requirementsFrom(name, table)
			if err != nil {
				return nil, err
			}
			def.Tools = reqs
		case "flows":
			deps, ok := stringList(value)
			if !ok {
				return nil, &BadEntryError{Flow: name, Key: "flows"}
			}
			def.Flows = deps
		default:
			if def.Extra == nil {
				def.Extra = make(map[string]any)
			}
			def.Extra[key] = value
		}
	}

	return def, nil
}

// requirementsFrom normalizes the tools table of a flow. A bare string
// pattern is treated as a one-element pattern list. Requirements are
// sorted by tool name so that binding order is deterministic.
func requirementsFrom(flowName string, table map[string]any) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(table))
	for toolName, value := range table {
		switch v := value.(type) {
		case string:
			reqs = append(reqs, Requirement{Tool: toolName, Patterns: []string{v}})
		default:
			patterns, ok := stringList(value)
			if !ok {
				return nil, &BadEntryError{Flow: flowName, Key: "tools." + toolName}
			}
			reqs = append(reqs, Requirement{Tool: toolName, Patterns: patterns})
		}
	}
	// The decoded table is unordered and binding is order-independent
	// within a flow, so sort by tool name to keep binding (and its log
	// output) the same on every run.
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Tool < reqs[j].Tool })
	return reqs, nil
}

// stringList converts a decoded []any of strings. Returns false for any
// other shape.
func stringList(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
