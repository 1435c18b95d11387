package ui

import (
	"strings"
	"testing"

	"taskify/internal/config"

	"github.com/charmbracelet/lipgloss"
)

func TestNewStylesFromTheme_Defaults(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{})

	if s.ColorPrimary != lipgloss.Color("#3B82F6") {
		t.Errorf("default primary = %s", s.ColorPrimary)
	}
	if s.ColorAccent != lipgloss.Color("#10B981") {
		t.Errorf("default accent = %s", s.ColorAccent)
	}
	if s.ColorDanger != lipgloss.Color("#EF4444") {
		t.Errorf("default danger = %s", s.ColorDanger)
	}
}

func TestNewStylesFromTheme_Custom(t *testing.T) {
	s := NewStylesFromTheme(&config.ThemeConfig{
		Primary: "#FF5733",
		Muted:   "#123456",
	})

	if s.ColorPrimary != lipgloss.Color("#FF5733") {
		t.Errorf("custom primary not applied, got %s", s.ColorPrimary)
	}
	if s.ColorMuted != lipgloss.Color("#123456") {
		t.Errorf("custom muted not applied, got %s", s.ColorMuted)
	}
	// Accent falls back to the default when unset.
	if s.ColorAccent != lipgloss.Color("#10B981") {
		t.Errorf("accent fallback broken, got %s", s.ColorAccent)
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	s := createTestStyles()

	out := s.RenderHelp("a", "add", "x", "delete")
	for _, want := range []string{"[a]", "add", "[x]", "delete"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q: %s", want, out)
		}
	}
}
