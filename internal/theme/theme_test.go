// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"chain-cli/internal/document"
)

func TestDefault_KnownStyles(t *testing.T) {
	th := Default()
	for _, name := range []string{
		StyleInfo, StyleWarning, StyleError, StyleDebug,
		StyleTitle, StyleFlow, StyleTool, StyleVersion,
	} {
		// A zero style carries lipgloss.NoColor; every built-in name must
		// have a concrete foreground configured.
		if _, ok := th.Style(name).GetForeground().(lipgloss.Color); !ok {
			t.Errorf("style %q has no foreground", name)
		}
	}
}

func TestFromDocument_OverlaysDefaults(t *testing.T) {
	doc := document.Document{
		Path: "/etc/chain/theme.toml",
		Content: map[string]any{
			"styles": map[string]any{
				"error":  "italic #00ff00",
				"custom": "bold 240",
				"broken": 42,
			},
		},
	}

	th := FromDocument(doc)

	if !th.Style("error").GetItalic() {
		t.Error("overridden error style should be italic")
	}
	if th.Style("error").GetBold() {
		t.Error("override replaces the default attributes, not merges them")
	}
	if !th.Style("custom").GetBold() {
		t.Error("unknown style names should still register")
	}
	// The default title style survives untouched.
	if !th.Style(StyleTitle).GetBold() {
		t.Error("unrelated default styles must be preserved")
	}
}

func TestParseStyle(t *testing.T) {
	s := parseStyle("bold underline faint #ff0000")
	if !s.GetBold() || !s.GetUnderline() || !s.GetFaint() {
		t.Error("attribute tokens not applied")
	}
}

func TestRender_UnknownStyleIsPassthrough(t *testing.T) {
	th := Default()
	if got := th.Render("nonexistent", "text"); got != "text" {
		t.Errorf("Render() = %q, want unstyled text", got)
	}
}
