package ui

import (
	"strings"
	"testing"
	"time"
)

func TestAnalyticsPaneView_Empty(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	pane := NewAnalyticsPane(repos.Tasks, styles)
	pane.SetSize(40, 24)

	output := pane.View()
	if !strings.Contains(output, "No activity yet") {
		t.Errorf("empty analytics should show the placeholder, got:\n%s", output)
	}
}

func TestAnalyticsPaneView_WithData(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	done, _ := repos.Tasks.Add("Done task", "", "high", "", nil, nil)
	repos.Tasks.Add("Open task", "", "low", "", nil, nil)
	repos.Tasks.Toggle(done.ID)

	pane := NewAnalyticsPane(repos.Tasks, styles)
	pane.SetSize(44, 28)

	data, err := repos.Tasks.Analytics()
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	pane.Update(analyticsLoadedMsg{data: data})

	categories, _ := repos.Categories.Load()
	pane.Update(categoriesLoadedMsg{categories: categories})

	output := pane.View()
	for _, want := range []string{"1/2 (50%)", "By priority", "By category", "Last 7 days"} {
		if !strings.Contains(output, want) {
			t.Errorf("view missing %q, got:\n%s", want, output)
		}
	}
}

func TestAnalyticsPane_CategoryNamesResolved(t *testing.T) {
	setupTest(t)
	repos := createTestRepos(t)
	styles := createTestStyles()

	categories, _ := repos.Categories.Load()
	work := categories[1]
	repos.Tasks.Add("Ship release", "", "", work.ID, nil, nil)

	pane := NewAnalyticsPane(repos.Tasks, styles)
	pane.SetSize(44, 28)

	data, _ := repos.Tasks.Analytics()
	pane.Update(analyticsLoadedMsg{data: data})
	pane.Update(categoriesLoadedMsg{categories: categories})

	output := pane.View()
	if !strings.Contains(output, "Work") {
		t.Errorf("category id should render as its name, got:\n%s", output)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 30*time.Minute, "2h30m"},
		{50 * time.Hour, "2d"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.in); got != tc.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
