package ui

import (
	"testing"

	"taskify/internal/category"
	"taskify/internal/config"
	"taskify/internal/kv"
	"taskify/internal/settings"
	"taskify/internal/task"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// keyMsg builds a rune key press for Update tests.
func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestRepos builds repositories backed by a temporary data directory.
func createTestRepos(t *testing.T) Repos {
	t.Helper()

	store, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	categories := category.NewRepo(store)
	appSettings := settings.NewRepo(store)
	tasks := task.NewRepo(store, categories, appSettings, nil, nil)

	// Seed default categories so counts and names are available.
	if _, err := categories.Load(); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}

	return Repos{
		Tasks:      tasks,
		Categories: categories,
		Settings:   appSettings,
	}
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}
