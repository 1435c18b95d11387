// Package ui provides terminal user interface components for taskify.
package ui

import (
	"fmt"
	"strings"
	"time"

	"taskify/internal/task"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// AnalyticsPane renders the computed task statistics.
type AnalyticsPane struct {
	data    task.AnalyticsData
	names   map[string]string // category id -> name
	loaded  bool
	focused bool
	width   int
	height  int
	repo    *task.Repo
	styles  *Styles
}

// NewAnalyticsPane creates a new analytics pane.
func NewAnalyticsPane(repo *task.Repo, styles *Styles) *AnalyticsPane {
	return &AnalyticsPane{
		names:  map[string]string{},
		repo:   repo,
		styles: styles,
	}
}

// LoadAnalyticsCmd returns a command that computes analytics asynchronously.
func (p *AnalyticsPane) LoadAnalyticsCmd() tea.Cmd {
	return loadAnalyticsCmd(p.repo)
}

// SetSize sets the pane dimensions.
func (p *AnalyticsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *AnalyticsPane) SetFocused(focused bool) {
	p.focused = focused
}

// Update handles messages for the analytics pane.
func (p *AnalyticsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		if msg.err == nil {
			p.data = msg.data
			p.loaded = true
		}
		return nil

	case categoriesLoadedMsg:
		if msg.err == nil {
			names := make(map[string]string, len(msg.categories))
			for _, c := range msg.categories {
				names[c.ID] = c.Name
			}
			p.names = names
		}
		return nil

	// Any task mutation invalidates the summary.
	case taskAddedMsg, taskToggledMsg, taskDeletedMsg, taskMovedMsg, completedClearedMsg:
		return p.LoadAnalyticsCmd()

	case overdueCheckedMsg:
		if len(msg.alerted) > 0 {
			return p.LoadAnalyticsCmd()
		}
		return nil
	}

	return nil
}

// View renders the analytics pane.
func (p *AnalyticsPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("ANALYTICS")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if !p.loaded || p.data.TotalTasks == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No activity yet."))
		b.WriteString("\n")
	} else {
		d := p.data

		// Completion summary with bar
		b.WriteString(fmt.Sprintf(" %s %s\n",
			p.styles.StatLabelStyle.Render("Done:"),
			p.styles.StatValueStyle.Render(fmt.Sprintf("%d/%d (%.0f%%)", d.CompletedTasks, d.TotalTasks, d.CompletionRate))))
		b.WriteString(" " + p.renderBar(d.CompletionRate) + "\n")

		if d.AverageCompletionTime > 0 {
			avg := time.Duration(d.AverageCompletionTime) * time.Millisecond
			b.WriteString(fmt.Sprintf(" %s %s\n",
				p.styles.StatLabelStyle.Render("Avg time:"),
				p.styles.StatValueStyle.Render(formatDuration(avg))))
		}

		// Priority breakdown
		b.WriteString("\n")
		b.WriteString(" " + p.styles.StatLabelStyle.Render("By priority") + "\n")
		b.WriteString(fmt.Sprintf("  %s %d  %s %d  %s %d\n",
			p.styles.PriorityHighStyle.Render("high"), d.TasksByPriority.High,
			p.styles.PriorityMediumStyle.Render("med"), d.TasksByPriority.Medium,
			p.styles.PriorityLowStyle.Render("low"), d.TasksByPriority.Low))

		// Category breakdown
		if len(d.TasksByCategory) > 0 {
			b.WriteString("\n")
			b.WriteString(" " + p.styles.StatLabelStyle.Render("By category") + "\n")
			for _, ca := range d.TasksByCategory {
				name := p.names[ca.CategoryID]
				if name == "" {
					name = ca.CategoryID
				}
				name = runewidth.Truncate(name, 14, "..")
				b.WriteString(fmt.Sprintf("  %-14s %d/%d\n", name, ca.Completed, ca.Count))
			}
		}

		// Last 7 days of created/completed activity
		if len(d.WeeklyCompletion) > 0 {
			b.WriteString("\n")
			b.WriteString(" " + p.styles.StatLabelStyle.Render("Last 7 days") + "\n")
			b.WriteString("  " + p.renderWeek(d.WeeklyCompletion) + "\n")
		}
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderBar draws a completion percentage bar sized to the pane.
func (p *AnalyticsPane) renderBar(percent float64) string {
	barWidth := p.width - 8
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(percent / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return p.styles.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		p.styles.BarEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// renderWeek draws a simple sparkline of completions per day.
func (p *AnalyticsPane) renderWeek(days []task.DayActivity) string {
	blocks := []rune("·▁▂▃▄▅▆▇█")

	maxDone := 0
	for _, day := range days {
		if day.Completed > maxDone {
			maxDone = day.Completed
		}
	}

	var b strings.Builder
	for _, day := range days {
		idx := 0
		if maxDone > 0 {
			idx = day.Completed * (len(blocks) - 1) / maxDone
		}
		b.WriteRune(blocks[idx])
		b.WriteRune(' ')
	}
	return p.styles.BarFilledStyle.Render(strings.TrimRight(b.String(), " "))
}

// formatDuration renders a duration as a compact human string.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd", days)
	}
}
