// SPDX-License-Identifier: MPL-2.0

package buildenv

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"chain-cli/internal/flow"
	"chain-cli/internal/tool"
)

func discard() *log.Logger {
	return log.New(io.Discard)
}

// isolateEnv points every environment-derived search location at empty
// temp directories so machine-local configuration cannot leak into tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(configHomeEnv, "")
	t.Setenv(configDirEnv, "")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve_FullEnvironment(t *testing.T) {
	isolateEnv(t)

	// Project-local flows document declaring the target flow.
	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, "backend"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(projectDir, FlowsFileName), `
[flow.synth]
path = "./backend"
flows = ["pack"]

[flow.synth.tools]
yosys = "1.*"
`)

	// Per-user flows document contributing a dependency, with a backend
	// path that climbs out of its own directory.
	userRoot := t.TempDir()
	userDir := filepath.Join(userRoot, "chain")
	writeFile(t, filepath.Join(userRoot, "pack_backend"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(userDir, FlowsFileName), `
[flow.pack]
path = "../pack_backend"
`)
	t.Setenv(configHomeEnv, userDir)

	toolsDir := t.TempDir()
	writeFile(t, filepath.Join(toolsDir, "run_yosys"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(toolsDir, ToolsFileName), `
[tool.yosys]
path = "./run_yosys"

[tool.yosys.versions]
"1.2" = "path:/opt/yosys-1.2"
"1.0" = "path:/opt/yosys-1.0"
`)

	env, err := Resolve("synth", Options{
		ProjectRoot: projectDir,
		ToolsConfig: filepath.Join(toolsDir, ToolsFileName),
		Logger:      discard(),
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	names := env.Graph.Names()
	if len(names) != 2 || names[0] != "synth" || names[1] != "pack" {
		t.Fatalf("Graph.Names() = %v, want [synth pack]", names)
	}

	synth := env.Graph.Lookup("synth")
	// "1.2" is declared before "1.0" in the tools document, so the "1.*"
	// requirement binds it even though "1.0" sorts lower.
	if got := synth.ToolVersions["yosys"]; got != "1.2" {
		t.Errorf("synth yosys version = %s, want 1.2", got)
	}
	if want := filepath.Join(projectDir, "backend"); synth.BackendPath != want {
		t.Errorf("synth backend = %s, want %s", synth.BackendPath, want)
	}

	pack := env.Graph.Lookup("pack")
	if want := filepath.Join(userRoot, "pack_backend"); pack.BackendPath != want {
		t.Errorf("pack backend = %s, want %s", pack.BackendPath, want)
	}

	if env.Tools.Lookup("yosys") == nil {
		t.Error("yosys missing from tool registry")
	}
}

func TestResolve_ProjectRootShadowsUserConfig(t *testing.T) {
	isolateEnv(t)

	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, "local_backend"), "")
	writeFile(t, filepath.Join(projectDir, FlowsFileName), `
[flow.synth]
path = "./local_backend"
`)

	userDir := t.TempDir()
	writeFile(t, filepath.Join(userDir, "user_backend"), "")
	writeFile(t, filepath.Join(userDir, FlowsFileName), `
[flow.synth]
path = "./user_backend"
`)
	t.Setenv(configHomeEnv, userDir)

	toolsDir := t.TempDir()
	writeFile(t, filepath.Join(toolsDir, ToolsFileName), `
[tool.placeholder]
path = "."

[tool.placeholder.versions]
"1" = "path:/opt/none"
`)

	env, err := Resolve("synth", Options{
		ProjectRoot: projectDir,
		ToolsConfig: filepath.Join(toolsDir, ToolsFileName),
		Logger:      discard(),
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// The project-local document is found first, so its path wins the
	// first-writer merge.
	want := filepath.Join(projectDir, "local_backend")
	if got := env.Graph.Lookup("synth").BackendPath; got != want {
		t.Errorf("synth backend = %s, want project-local %s", got, want)
	}
}

func TestResolve_SingleFlowsFile(t *testing.T) {
	isolateEnv(t)

	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, "backend"), "")
	writeFile(t, filepath.Join(projectDir, FlowsFileName), `
[flow.synth]
path = "./backend"
`)

	userDir := t.TempDir()
	writeFile(t, filepath.Join(userDir, FlowsFileName), `
[flow.extra]
path = "./backend"
`)
	t.Setenv(configHomeEnv, userDir)

	toolsDir := t.TempDir()
	writeFile(t, filepath.Join(toolsDir, ToolsFileName), `
[tool.placeholder]
path = "."

[tool.placeholder.versions]
"1" = "path:/opt/none"
`)

	opts := Options{
		ProjectRoot:     projectDir,
		ToolsConfig:     filepath.Join(toolsDir, ToolsFileName),
		SingleFlowsFile: true,
		Logger:          discard(),
	}
	universe, err := LoadUniverse(opts)
	if err != nil {
		t.Fatalf("LoadUniverse: %v", err)
	}
	if universe.Lookup("extra") != nil {
		t.Error("single-file mode must ignore documents after the first")
	}
	if universe.Lookup("synth") == nil {
		t.Error("first document's flows missing")
	}
}

func TestResolve_NoToolsDocument(t *testing.T) {
	isolateEnv(t)

	_, err := Resolve("synth", Options{Logger: discard()})
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	var notFound *ConfigNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *ConfigNotFoundError, got %T", err)
	}
	if notFound.For != "build tools" {
		t.Errorf("For = %q, want build tools", notFound.For)
	}
}

func TestResolve_NoFlowsDocument(t *testing.T) {
	isolateEnv(t)

	toolsDir := t.TempDir()
	writeFile(t, filepath.Join(toolsDir, ToolsFileName), `
[tool.placeholder]
path = "."

[tool.placeholder.versions]
"1" = "path:/opt/none"
`)

	_, err := Resolve("synth", Options{
		ToolsConfig: filepath.Join(toolsDir, ToolsFileName),
		Logger:      discard(),
	})
	var notFound *ConfigNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *ConfigNotFoundError, got %v", err)
	}
	if notFound.For != "build flows" {
		t.Errorf("For = %q, want build flows", notFound.For)
	}
}

func TestResolve_UnknownTarget(t *testing.T) {
	isolateEnv(t)

	projectDir := t.TempDir()
	writeFile(t, filepath.Join(projectDir, "backend"), "")
	writeFile(t, filepath.Join(projectDir, FlowsFileName), `
[flow.synth]
path = "./backend"
`)
	toolsDir := t.TempDir()
	writeFile(t, filepath.Join(toolsDir, ToolsFileName), `
[tool.placeholder]
path = "."

[tool.placeholder.versions]
"1" = "path:/opt/none"
`)

	_, err := Resolve("route", Options{
		ProjectRoot: projectDir,
		ToolsConfig: filepath.Join(toolsDir, ToolsFileName),
		Logger:      discard(),
	})
	if !errors.Is(err, flow.ErrNotFound) {
		t.Fatalf("expected flow.ErrNotFound, got %v", err)
	}
}

func TestLoadToolDefs(t *testing.T) {
	isolateEnv(t)

	toolsDir := t.TempDir()
	writeFile(t, filepath.Join(toolsDir, ToolsFileName), `
[tool.yosys]
path = "./run_yosys"

[tool.yosys.versions]
"1.0" = "path:/opt/yosys-1.0"
`)

	defs, err := LoadToolDefs(Options{
		ToolsConfig: filepath.Join(toolsDir, ToolsFileName),
		Logger:      discard(),
	})
	if err != nil {
		t.Fatalf("LoadToolDefs: %v", err)
	}
	yosys := defs.Lookup("yosys")
	if yosys == nil {
		t.Fatal("yosys missing from definitions")
	}
	want := tool.Location{Kind: tool.KindPath, Locator: "/opt/yosys-1.0"}
	if got := yosys.Versions[0].Location; got != want {
		t.Errorf("version location = %+v, want %+v", got, want)
	}
}

func TestLoadTheme_FallsBackToDefaults(t *testing.T) {
	isolateEnv(t)

	th := LoadTheme(Options{Logger: discard()})
	if th == nil {
		t.Fatal("LoadTheme returned nil")
	}
}

func TestLoadTheme_FromDocument(t *testing.T) {
	isolateEnv(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ThemeFileName), `
[styles]
error = "bold #ff0000"
`)

	th := LoadTheme(Options{ThemeConfig: filepath.Join(dir, ThemeFileName), Logger: discard()})
	if th == nil {
		t.Fatal("LoadTheme returned nil")
	}
}
