// SPDX-License-Identifier: MPL-2.0

package locate

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func discard() *log.Logger {
	return log.New(io.Discard)
}

// writeFile creates a file with dummy content inside dir and returns its path.
func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindExplicit, "explicit value"},
		{KindEnv, "environment variable"},
		{KindFixed, "fixed path"},
		{Kind(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
			}
		})
	}
}

func TestResolve_SkipsEmptyValues(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "tools.toml")

	c := &Chain{
		For:      "build tools",
		FileName: "tools.toml",
		Locations: []Location{
			{Kind: KindExplicit, Name: "--tools-config", RawValue: ""},
			{Kind: KindFixed, Name: "default path", RawValue: dir, IsDir: true},
		},
	}

	paths, err := c.Resolve(discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != want {
		t.Errorf("Resolve() = %v, want [%s]", paths, want)
	}
}

func TestResolve_RelativeWithoutPrefix(t *testing.T) {
	c := &Chain{
		For:      "build tools",
		FileName: "tools.toml",
		Locations: []Location{
			{Kind: KindEnv, Name: "$CHAIN_CONFIG_HOME", RawValue: "relative/path", IsDir: true},
		},
	}

	_, err := c.Resolve(discard())
	if !errors.Is(err, ErrNotAbsolute) {
		t.Fatalf("expected ErrNotAbsolute, got %v", err)
	}

	var nae *NotAbsoluteError
	if !errors.As(err, &nae) {
		t.Fatalf("expected *NotAbsoluteError, got %T", err)
	}
	if nae.Location != "$CHAIN_CONFIG_HOME" {
		t.Errorf("Location = %q, want $CHAIN_CONFIG_HOME", nae.Location)
	}
}

func TestResolve_RelativeWithPrefix(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "flows.toml")

	c := &Chain{
		For:      "build flows",
		FileName: "flows.toml",
		Locations: []Location{
			{
				Kind:       KindExplicit,
				Name:       "--flows-config",
				RawValue:   "flows.toml",
				PathPrefix: dir,
				MustExist:  true,
			},
		},
	}

	paths, err := c.Resolve(discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != want {
		t.Errorf("Resolve() = %v, want [%s]", paths, want)
	}
}

func TestResolve_MustExistMissingFile(t *testing.T) {
	dir := t.TempDir()

	c := &Chain{
		For:      "build tools",
		FileName: "tools.toml",
		Locations: []Location{
			{
				Kind:      KindExplicit,
				Name:      "--tools-config",
				RawValue:  filepath.Join(dir, "missing.toml"),
				MustExist: true,
			},
		},
	}

	_, err := c.Resolve(discard())
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PathError, got %v", err)
	}
	if pe.Kind != PathNotExists {
		t.Errorf("Kind = %v, want PathNotExists", pe.Kind)
	}
}

func TestResolve_MissingIsSoftWithoutMustExist(t *testing.T) {
	dir := t.TempDir()

	c := &Chain{
		For:      "build tools",
		FileName: "tools.toml",
		Locations: []Location{
			{Kind: KindFixed, Name: "project root", RawValue: dir, IsDir: true},
		},
	}

	paths, err := c.Resolve(discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no candidates, got %v", paths)
	}
}

func TestResolve_DirectoryLocationIsFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "not_a_dir")

	c := &Chain{
		For:      "build tools",
		FileName: "tools.toml",
		Locations: []Location{
			{Kind: KindEnv, Name: "$CHAIN_CONFIG_HOME", RawValue: file, IsDir: true},
		},
	}

	_, err := c.Resolve(discard())
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PathError, got %v", err)
	}
	if pe.Kind != PathNotDir {
		t.Errorf("Kind = %v, want PathNotDir", pe.Kind)
	}
}

func TestResolve_CandidateIsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "tools.toml"), 0o755); err != nil {
		t.Fatal(err)
	}

	c := &Chain{
		For:      "build tools",
		FileName: "tools.toml",
		Locations: []Location{
			{Kind: KindFixed, Name: "default path", RawValue: dir, IsDir: true},
		},
	}

	_, err := c.Resolve(discard())
	var pe *PathError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PathError, got %v", err)
	}
	if pe.Kind != PathNotFile {
		t.Errorf("Kind = %v, want PathNotFile", pe.Kind)
	}
}

func TestResolve_StopsOnFirstMatch(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := writeFile(t, first, "flows.toml")
	writeFile(t, second, "flows.toml")

	c := &Chain{
		For:      "build flows",
		FileName: "flows.toml",
		Locations: []Location{
			{Kind: KindFixed, Name: "project root", RawValue: first, IsDir: true},
			{Kind: KindFixed, Name: "default path", RawValue: second, IsDir: true},
		},
	}

	paths, err := c.Resolve(discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != want {
		t.Errorf("Resolve() = %v, want only %s", paths, want)
	}
}

func TestResolve_FindAllCollectsInOrder(t *testing.T) {
	first := t.TempDir()
	skipped := t.TempDir()
	second := t.TempDir()
	a := writeFile(t, first, "flows.toml")
	b := writeFile(t, second, "flows.toml")

	c := &Chain{
		For:      "build flows",
		FileName: "flows.toml",
		FindAll:  true,
		Locations: []Location{
			{Kind: KindFixed, Name: "project root", RawValue: first, IsDir: true},
			{Kind: KindFixed, Name: "config home", RawValue: skipped, IsDir: true},
			{Kind: KindFixed, Name: "default path", RawValue: second, IsDir: true},
		},
	}

	paths, err := c.Resolve(discard())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Errorf("Resolve() = %v, want [%s %s]", paths, a, b)
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("unset variable yields empty value", func(t *testing.T) {
		loc := FromEnv("CHAIN_TEST_UNSET_VAR", "")
		if loc.RawValue != "" {
			t.Errorf("RawValue = %q, want empty", loc.RawValue)
		}
	})

	t.Run("subdir is appended", func(t *testing.T) {
		t.Setenv("CHAIN_TEST_XDG", "/home/user/.config")
		loc := FromEnv("CHAIN_TEST_XDG", "chain")
		want := filepath.Join("/home/user/.config", "chain")
		if loc.RawValue != want {
			t.Errorf("RawValue = %q, want %q", loc.RawValue, want)
		}
		if loc.Name != "$CHAIN_TEST_XDG" {
			t.Errorf("Name = %q, want $CHAIN_TEST_XDG", loc.Name)
		}
		if !loc.IsDir {
			t.Error("IsDir should be true for env locations")
		}
	})
}
