// SPDX-License-Identifier: MPL-2.0

// Package tool loads build-tool definitions and binds concrete tool
// versions to flows. Each tool declares a backend handler path and a set
// of installed versions; flows request versions through ordered glob
// patterns, and the selector picks the first matching version.
package tool

import (
	"sort"

	"chain-cli/internal/document"
)

type (
	// Definition is the validated record for one tool from the tools
	// document.
	Definition struct {
		// Name is the tool name, the key of its entry in the document.
		Name string
		// Path is the backend handler location as declared, relative to
		// the tools document's directory or absolute.
		Path string
		// Versions are the installed versions, in the order the tools
		// document declared them. Version selection tries them in this
		// order, so declaring "1.2" before "1.0" makes "1.2" win a
		// pattern both match.
		Versions []VersionEntry
	}

	// VersionEntry pairs a version identifier with its decoded location.
	VersionEntry struct {
		// ID is the version identifier (e.g. "1.2").
		ID string
		// Location tells where this version lives.
		Location Location
	}

	// Definitions is the validated tools document: every tool entry plus
	// the directory the document was loaded from, which anchors relative
	// backend paths.
	Definitions struct {
		// Dir is the tools document's directory.
		Dir string
		tools map[string]*Definition
	}
)

// tableName is the top-level table holding tool entries.
const tableName = "tool"

// DefinitionsFrom validates the "tool" table of a loaded tools document
// into typed definitions. An absent or empty table is an error: a tools
// document that defines no tools cannot satisfy any requirement.
//
// Validation here is shape-only (entry is a mapping, path is a string,
// versions decode into known location kinds). Presence of the required
// path/versions keys is checked at selection time so that a tool no flow
// ever requests cannot fail the whole load.
func DefinitionsFrom(doc document.Document) (*Definitions, error) {
	table := doc.Table(tableName)
	if len(table) == 0 {
		return nil, &NoToolsError{Path: doc.Path}
	}

	defs := &Definitions{Dir: doc.Dir(), tools: make(map[string]*Definition, len(table))}
	for name, raw := range table {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, &BadEntryError{Tool: name, Path: doc.Path}
		}

		def := &Definition{Name: name}
		if p, ok := entry["path"].(string); ok {
			def.Path = p
		}

		if versions, ok := entry["versions"].(map[string]any); ok {
			def.Versions = make([]VersionEntry, 0, len(versions))
			declared := doc.KeyOrder(tableName, name, "versions")
			for _, id := range versionIDs(versions, declared) {
				specStr, ok := versions[id].(string)
				if !ok {
					return nil, &BadEntryError{Tool: name, Path: doc.Path}
				}
				loc, err := ParseLocation(specStr)
				if err != nil {
					return nil, err
				}
				def.Versions = append(def.Versions, VersionEntry{ID: id, Location: loc})
			}
		}

		defs.tools[name] = def
	}

	return defs, nil
}

// Lookup returns the definition for the named tool, or nil.
func (d *Definitions) Lookup(name string) *Definition {
	return d.tools[name]
}

// Names returns all tool names in sorted order.
func (d *Definitions) Names() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableIDs returns the version identifiers of a definition in their
// declared order.
func (def *Definition) AvailableIDs() []string {
	ids := make([]string, len(def.Versions))
	for i, v := range def.Versions {
		ids[i] = v.ID
	}
	return ids
}

// versionIDs returns the identifiers of a decoded versions table in the
// document's declared order. Documents built from maps carry no recorded
// order; their identifiers fall back to lexical order so selection stays
// deterministic.
func versionIDs(versions map[string]any, declared []string) []string {
	ids := make([]string, 0, len(versions))
	for _, id := range declared {
		if _, ok := versions[id]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == len(versions) {
		return ids
	}

	ids = ids[:0]
	for id := range versions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
