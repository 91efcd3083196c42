// SPDX-License-Identifier: MPL-2.0

// Package document loads configuration documents into nested string-keyed
// mappings. The rest of the system treats the result as opaque key/value
// data; the concrete serialization (TOML, YAML, or CUE, dispatched by file
// extension) is a private concern of this package.
//
// Decoded mappings are Go maps and therefore unordered, but several
// consumers depend on the order keys were written in (version tables are
// "first declared match wins"). The loader walks each format's own syntax
// tree alongside the decode and records the declared key order, exposed
// through KeyOrder.
package document

import (
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/cuecontext"
	cueparser "cuelang.org/go/cue/parser"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// Document is a loaded configuration file. It is immutable after creation
// and discarded once its content has been merged.
type Document struct {
	// Path is the absolute path the document was loaded from.
	Path string
	// Content is the decoded nested string-keyed mapping.
	Content map[string]any
	// order is the declared key order of every nested table, recorded
	// while parsing. Nil for documents constructed directly from maps.
	order *orderNode
}

// orderNode records the keys of one table in declaration order, with a
// child node per key that itself holds a table.
type orderNode struct {
	keys     []string
	children map[string]*orderNode
}

func newOrderNode() *orderNode {
	return &orderNode{children: make(map[string]*orderNode)}
}

// child returns the node for key, creating and ordering it on first use.
func (n *orderNode) child(key string) *orderNode {
	if c, ok := n.children[key]; ok {
		return c
	}
	c := newOrderNode()
	n.children[key] = c
	n.keys = append(n.keys, key)
	return c
}

// Dir returns the directory containing the document. Relative paths
// declared inside a document are resolved against this directory, never
// against the process working directory.
func (d Document) Dir() string {
	return filepath.Dir(d.Path)
}

// Table returns the named top-level table of the document, or nil if the
// key is absent or not a mapping.
func (d Document) Table(name string) map[string]any {
	table, _ := d.Content[name].(map[string]any)
	return table
}

// KeyOrder returns the keys of the table at the given nesting path in the
// order they were declared in the source file. It returns nil when the
// table is absent or the document carries no recorded order (documents
// built from maps rather than loaded from a file).
func (d Document) KeyOrder(path ...string) []string {
	node := d.order
	for _, key := range path {
		if node == nil {
			return nil
		}
		node = node.children[key]
	}
	if node == nil {
		return nil
	}
	return node.keys
}

// Load reads and decodes the file at path. The path must be absolute so
// that document-relative path normalization stays anchored to the file's
// real location. Open failures, decode failures, and unknown extensions
// are reported as distinct error types.
func Load(path string) (Document, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return Document{}, &OpenError{Path: path, Cause: err}
		}
		path = abs
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &OpenError{Path: path, Cause: err}
	}

	var content map[string]any
	var order *orderNode
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		order, err = decodeTOML(data, &content)
	case ".yaml", ".yml":
		order, err = decodeYAML(data, &content)
	case ".cue":
		order, err = decodeCUE(data, path, &content)
	default:
		return Document{}, &UnsupportedFormatError{Path: path, Ext: ext}
	}
	if err != nil {
		return Document{}, &ParseError{Path: path, Cause: err}
	}

	if content == nil {
		content = map[string]any{}
	}
	return Document{Path: path, Content: content, order: order}, nil
}

func decodeTOML(data []byte, out *map[string]any) (*orderNode, error) {
	if err := toml.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return tomlOrder(data)
}

// tomlOrder walks the raw TOML expression stream to recover declaration
// order, which Unmarshal's map output discards. [table] and [[table]]
// headers move the cursor; key/value pairs (including dotted keys and
// inline tables) record under it.
func tomlOrder(data []byte) (*orderNode, error) {
	root := newOrderNode()
	current := root

	var p unstable.Parser
	p.Reset(data)
	for p.NextExpression() {
		expr := p.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			current = root
			it := expr.Key()
			for it.Next() {
				current = current.child(string(it.Node().Data))
			}
		case unstable.KeyValue:
			node := current
			it := expr.Key()
			for it.Next() {
				node = node.child(string(it.Node().Data))
			}
			recordInlineTable(node, expr.Value())
		}
	}
	return root, p.Error()
}

func recordInlineTable(order *orderNode, value *unstable.Node) {
	if value == nil || value.Kind != unstable.InlineTable {
		return
	}
	it := value.Children()
	for it.Next() {
		kv := it.Node()
		if kv.Kind != unstable.KeyValue {
			continue
		}
		node := order
		keys := kv.Key()
		for keys.Next() {
			node = node.child(string(keys.Node().Data))
		}
		recordInlineTable(node, kv.Value())
	}
}

func decodeYAML(data []byte, out *map[string]any) (*orderNode, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, err
	}
	*out = normalizeKeys(*out)

	order := newOrderNode()
	if len(root.Content) > 0 {
		recordYAMLMapping(order, root.Content[0])
	}
	return order, nil
}

func recordYAMLMapping(order *orderNode, node *yaml.Node) {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	// Mapping content alternates key node, value node.
	for i := 0; i+1 < len(node.Content); i += 2 {
		recordYAMLMapping(order.child(node.Content[i].Value), node.Content[i+1])
	}
}

func decodeCUE(data []byte, path string, out *map[string]any) (*orderNode, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if value.Err() != nil {
		return nil, value.Err()
	}
	if err := value.Decode(out); err != nil {
		return nil, err
	}

	file, err := cueparser.ParseFile(path, data)
	if err != nil {
		return nil, err
	}
	order := newOrderNode()
	recordCUEDecls(order, file.Decls)
	return order, nil
}

func recordCUEDecls(order *orderNode, decls []ast.Decl) {
	for _, decl := range decls {
		field, ok := decl.(*ast.Field)
		if !ok {
			continue
		}
		name, _, err := ast.LabelName(field.Label)
		if err != nil {
			continue
		}
		node := order.child(name)
		if lit, ok := field.Value.(*ast.StructLit); ok {
			recordCUEDecls(node, lit.Elts)
		}
	}
}

// normalizeKeys rewrites nested map[any]any values (as produced by some
// decoders) into map[string]any so callers see one uniform shape.
func normalizeKeys(m map[string]any) map[string]any {
	for key, value := range m {
		m[key] = normalizeValue(value)
	}
	return m
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeKeys(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			s, ok := key.(string)
			if !ok {
				continue
			}
			out[s] = normalizeValue(inner)
		}
		return out
	case []any:
		for i, item := range v {
			v[i] = normalizeValue(item)
		}
		return v
	default:
		return value
	}
}
