// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_Load_Defaults(t *testing.T) {
	cfg, err := Loader{Dir: t.TempDir()}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %s, want auto default", cfg.UI.ColorScheme)
	}
}

func TestLoader_Load_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte(`ui: {quiet: true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Loader{File: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.UI.Quiet {
		t.Error("Quiet = false, want true from explicit file")
	}
}

func TestLoader_Load_Error(t *testing.T) {
	_, err := Loader{File: filepath.Join(t.TempDir(), "absent.cue")}.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for a missing explicit file")
	}
}
