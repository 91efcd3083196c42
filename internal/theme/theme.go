// SPDX-License-Identifier: MPL-2.0

// Package theme maps the console theme document onto lipgloss styles.
// Themes only affect presentation, so a broken or absent theme document
// silently falls back to the built-in defaults.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chain-cli/internal/document"
)

// Theme is a named set of terminal styles.
type Theme struct {
	styles map[string]lipgloss.Style
}

// Built-in style names used by the CLI output.
const (
	StyleInfo    = "info"
	StyleWarning = "warning"
	StyleError   = "error"
	StyleDebug   = "debug"
	StyleTitle   = "title"
	StyleFlow    = "flow"
	StyleTool    = "tool"
	StyleVersion = "version"
)

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{styles: map[string]lipgloss.Style{
		StyleInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		StyleWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		StyleError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		StyleDebug:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		StyleTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		StyleFlow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		StyleTool:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		StyleVersion: lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	}}
}

// FromDocument overlays the document's styles table onto the defaults.
// Entries are "<attr> <attr> <color>" strings, e.g. "bold #EF4444" or
// "italic 240". Unknown style names are kept so custom tags keep working.
func FromDocument(doc document.Document) *Theme {
	t := Default()
	table := doc.Table("styles")
	for name, raw := range table {
		spec, ok := raw.(string)
		if !ok {
			continue
		}
		t.styles[name] = parseStyle(spec)
	}
	return t
}

// Style returns the style registered under name, or a zero style.
func (t *Theme) Style(name string) lipgloss.Style {
	return t.styles[name]
}

// Render renders text with the named style.
func (t *Theme) Render(name, text string) string {
	return t.styles[name].Render(text)
}

// parseStyle builds a lipgloss style from a space-separated spec. The last
// non-attribute token is taken as the foreground color.
func parseStyle(spec string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, token := range strings.Fields(spec) {
		switch token {
		case "bold":
			style = style.Bold(true)
		case "italic":
			style = style.Italic(true)
		case "underline":
			style = style.Underline(true)
		case "faint", "dim":
			style = style.Faint(true)
		default:
			style = style.Foreground(lipgloss.Color(token))
		}
	}
	return style
}
