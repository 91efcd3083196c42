// SPDX-License-Identifier: MPL-2.0

package flow

import (
	"sort"

	"github.com/charmbracelet/log"

	"chain-cli/internal/document"
	"chain-cli/internal/pathutil"
)

// tableName is the top-level table holding flow entries.
const tableName = "flow"

// Merge combines the flow tables of every discovered flow document into
// one universe. Documents are processed in discovery order; for every flow
// name the earliest document to declare a field wins that field, and later
// documents can only fill fields the flow did not yet have. Declared paths
// are normalized against the declaring document's directory at the moment
// the field is inserted.
//
// Documents without a flow table are skipped. A resulting empty universe
// is an error: nothing could ever be resolved from it.
func Merge(docs []document.Document, logger *log.Logger) (*Universe, error) {
	merged := make(map[string]map[string]any)
	var order []string

	for _, doc := range docs {
		table := doc.Table(tableName)
		if table == nil {
			logger.Debug("document has no flow table, skipping", "path", doc.Path)
			continue
		}

		// Two documents never conflict on insertion order between each
		// other, but within one document the decoded table is unordered;
		// sort so the universe comes out the same on every run.
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fields, ok := table[name].(map[string]any)
			if !ok {
				return nil, &BadEntryError{Flow: name, Key: "", Path: doc.Path}
			}

			existing := merged[name]
			if existing == nil {
				existing = make(map[string]any, len(fields))
				merged[name] = existing
				order = append(order, name)
			}

			for key, value := range fields {
				if _, present := existing[key]; present {
					continue
				}
				if key == "path" {
					if p, ok := value.(string); ok {
						value = pathutil.Normalize(doc.Dir(), p)
					}
				}
				existing[key] = value
			}
		}
	}

	if len(merged) == 0 {
		return nil, &NoFlowsError{}
	}

	universe := &Universe{flows: make(map[string]*Definition, len(merged)), order: order}
	for _, name := range order {
		def, err := definitionFrom(name, merged[name])
		if err != nil {
			return nil, err
		}
		universe.flows[name] = def
	}

	logger.Debug("merged flow universe", "flows", universe.Names())
	return universe, nil
}
