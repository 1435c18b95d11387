package ui

import (
	"strings"
	"testing"
)

func TestCategoryPaneView_Defaults(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	pane := NewCategoryPane(repos.Categories, styles)
	pane.SetSize(36, 20)
	pane.SetFocused(true)

	categories, err := repos.Categories.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pane.setCategories(categories)

	output := pane.View()
	for _, want := range []string{"Personal", "Work", "Shopping", "Health"} {
		if !strings.Contains(output, want) {
			t.Errorf("view missing default category %q, got:\n%s", want, output)
		}
	}
}

func TestCategoryPaneView_TaskCounts(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	categories, _ := repos.Categories.Load()
	work := categories[1]
	repos.Tasks.Add("Ship release", "", "", work.ID, nil, nil)
	repos.Tasks.Add("Write docs", "", "", work.ID, nil, nil)

	pane := NewCategoryPane(repos.Categories, styles)
	pane.SetSize(36, 20)

	updated, _ := repos.Categories.Load()
	pane.setCategories(updated)

	output := pane.View()
	if !strings.Contains(output, "Work") || !strings.Contains(output, "2") {
		t.Errorf("expected Work with count 2, got:\n%s", output)
	}
}

func TestCategoryPane_SetCategoriesClampsCursor(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	pane := NewCategoryPane(repos.Categories, styles)
	pane.cursor = 9

	categories, _ := repos.Categories.Load()
	pane.setCategories(categories)

	if pane.cursor != len(categories)-1 {
		t.Errorf("cursor = %d, want %d", pane.cursor, len(categories)-1)
	}
}

func TestCategoryPane_SelectedEmpty(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	pane := NewCategoryPane(repos.Categories, styles)
	if pane.Selected() != nil {
		t.Error("Selected on empty list should be nil")
	}
}
