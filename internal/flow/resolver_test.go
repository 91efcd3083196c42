// SPDX-License-Identifier: MPL-2.0

package flow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chain-cli/internal/document"
)

type binding struct {
	flow     string
	tool     string
	patterns []string
}

// recordingBinder captures Bind calls without selecting anything.
type recordingBinder struct {
	calls []binding
	err   error
}

func (b *recordingBinder) Bind(flowName, toolName string, patterns []string) error {
	b.calls = append(b.calls, binding{flow: flowName, tool: toolName, patterns: patterns})
	return b.err
}

// backend creates an existing backend file and returns its path.
func backend(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// universeOf builds a merged universe from a single in-memory document
// rooted at /proj.
func universeOf(t *testing.T, flows map[string]any) *Universe {
	t.Helper()
	universe, err := Merge([]document.Document{doc("/proj", flows)}, discard())
	if err != nil {
		t.Fatalf("building universe: %v", err)
	}
	return universe
}

func TestResolve_TargetNotFound(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"synth": map[string]any{"path": "/nonexistent"},
	})

	r := NewResolver(universe, NewGraph(), &recordingBinder{}, discard())
	err := r.Resolve("missing")

	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfe.Flow != "missing" {
		t.Errorf("Flow = %q, want missing", nfe.Flow)
	}
}

func TestResolve_DependencyNotFoundNamesDependency(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"synth": map[string]any{
			"path":  backend(t, "synth_backend"),
			"flows": []any{"pack"},
		},
	})

	r := NewResolver(universe, NewGraph(), &recordingBinder{}, discard())
	err := r.Resolve("synth")

	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nfe.Flow != "pack" {
		t.Errorf("error names %q, want the dependency 'pack'", nfe.Flow)
	}
}

func TestResolve_MissingPath(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"synth": map[string]any{"tools": map[string]any{"yosys": "1.*"}},
	})

	r := NewResolver(universe, NewGraph(), &recordingBinder{}, discard())
	if err := r.Resolve("synth"); !errors.Is(err, ErrMissingPath) {
		t.Fatalf("expected ErrMissingPath, got %v", err)
	}
}

func TestResolve_PathNotExistBeforeToolProcessing(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"synth": map[string]any{
			"path":  "/does/not/exist",
			"tools": map[string]any{"yosys": "1.*"},
		},
	})

	binder := &recordingBinder{}
	r := NewResolver(universe, NewGraph(), binder, discard())
	err := r.Resolve("synth")

	if !errors.Is(err, ErrPathNotExist) {
		t.Fatalf("expected ErrPathNotExist, got %v", err)
	}
	if len(binder.calls) != 0 {
		t.Errorf("tool requirements were processed before the path check: %v", binder.calls)
	}
}

func TestResolve_RegistersDependencyClosure(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"synth": map[string]any{
			"path":  backend(t, "synth_backend"),
			"tools": map[string]any{"yosys": "1.*"},
			"flows": []any{"pack", "report"},
		},
		"pack":   map[string]any{"path": backend(t, "pack_backend")},
		"report": map[string]any{"path": backend(t, "report_backend")},
		"unused": map[string]any{"path": "/never/checked"},
	})

	binder := &recordingBinder{}
	graph := NewGraph()
	r := NewResolver(universe, graph, binder, discard())
	if err := r.Resolve("synth"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"synth", "pack", "report"}
	got := graph.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if graph.Registered("unused") {
		t.Error("unreachable flow must not be registered")
	}

	if len(binder.calls) != 1 || binder.calls[0].flow != "synth" || binder.calls[0].tool != "yosys" {
		t.Errorf("binder calls = %v, want one yosys binding for synth", binder.calls)
	}
}

func TestResolve_SharedDependencyVisitedOnce(t *testing.T) {
	shared := backend(t, "shared_backend")
	universe := universeOf(t, map[string]any{
		"top": map[string]any{
			"path":  backend(t, "top_backend"),
			"flows": []any{"left", "right"},
		},
		"left": map[string]any{
			"path":  backend(t, "left_backend"),
			"flows": []any{"shared"},
		},
		"right": map[string]any{
			"path":  backend(t, "right_backend"),
			"flows": []any{"shared"},
		},
		"shared": map[string]any{
			"path":  shared,
			"tools": map[string]any{"yosys": "1.*"},
		},
	})

	binder := &recordingBinder{}
	graph := NewGraph()
	r := NewResolver(universe, graph, binder, discard())
	if err := r.Resolve("top"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(binder.calls) != 1 {
		t.Errorf("shared flow's tools bound %d times, want once", len(binder.calls))
	}
	if len(graph.Names()) != 4 {
		t.Errorf("Names() = %v, want 4 flows", graph.Names())
	}
}

func TestResolve_CycleDetected(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"a": map[string]any{
			"path":  backend(t, "a_backend"),
			"flows": []any{"b"},
		},
		"b": map[string]any{
			"path":  backend(t, "b_backend"),
			"flows": []any{"a"},
		},
	})

	r := NewResolver(universe, NewGraph(), &recordingBinder{}, discard())
	err := r.Resolve("a")

	var ce *CycleError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	want := []string{"a", "b", "a"}
	if len(ce.Cycle) != len(want) {
		t.Fatalf("Cycle = %v, want %v", ce.Cycle, want)
	}
	for i := range want {
		if ce.Cycle[i] != want[i] {
			t.Errorf("Cycle[%d] = %s, want %s", i, ce.Cycle[i], want[i])
		}
	}
}

func TestResolve_BinderErrorAborts(t *testing.T) {
	universe := universeOf(t, map[string]any{
		"synth": map[string]any{
			"path":  backend(t, "synth_backend"),
			"tools": map[string]any{"yosys": "1.*"},
			"flows": []any{"pack"},
		},
		"pack": map[string]any{"path": backend(t, "pack_backend")},
	})

	binder := &recordingBinder{err: errors.New("selection failed")}
	graph := NewGraph()
	r := NewResolver(universe, graph, binder, discard())
	if err := r.Resolve("synth"); err == nil {
		t.Fatal("expected the binder error to propagate")
	}
	if graph.Registered("pack") {
		t.Error("dependencies must not be processed after a binding failure")
	}
}
