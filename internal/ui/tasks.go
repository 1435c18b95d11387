// Package ui provides terminal user interface components for taskify.
package ui

import (
	"fmt"
	"strings"
	"time"

	"taskify/internal/config"
	"taskify/internal/settings"
	"taskify/internal/task"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// TaskPane handles the task list display and interactions.
type TaskPane struct {
	tasks     []task.Task
	cursor    int
	focused   bool
	width     int
	height    int
	adding    bool
	searching bool
	input     textinput.Model
	search    textinput.Model
	status    task.Status
	sortBy    string
	repo      *task.Repo
	settings  *settings.Repo
	styles    *Styles

	// Key bindings
	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTaskPane creates a new task pane.
func NewTaskPane(repo *task.Repo, settingsRepo *settings.Repo, styles *Styles) *TaskPane {
	return NewTaskPaneWithKeys(repo, settingsRepo, styles, &config.KeysConfig{})
}

// NewTaskPaneWithKeys creates a new task pane with custom key bindings.
func NewTaskPaneWithKeys(repo *task.Repo, settingsRepo *settings.Repo, styles *Styles, keyCfg *config.KeysConfig) *TaskPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Width = 40

	si := textinput.New()
	si.Placeholder = "search"
	si.CharLimit = 100
	si.Width = 30

	return &TaskPane{
		tasks:     []task.Task{},
		cursor:    0,
		focused:   true,
		input:     ti,
		search:    si,
		status:    task.StatusAll,
		sortBy:    settings.SortCreated,
		repo:      repo,
		settings:  settingsRepo,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// filter returns the current filter options for loading tasks.
func (p *TaskPane) filter() task.FilterOptions {
	return task.FilterOptions{
		Status:      p.status,
		SearchQuery: strings.TrimSpace(p.search.Value()),
	}
}

// LoadTasksCmd returns a command that loads tasks asynchronously.
func (p *TaskPane) LoadTasksCmd() tea.Cmd {
	return loadTasksCmd(p.repo, p.filter())
}

// setTasks updates the task list and adjusts cursor bounds.
// The repository already returns tasks filtered and sorted.
func (p *TaskPane) setTasks(tasks []task.Task) {
	p.tasks = tasks
	if p.cursor >= len(p.tasks) {
		p.cursor = max(0, len(p.tasks)-1)
	}
}

// SetSortBy records the active sort mode for display and reorder gating.
func (p *TaskPane) SetSortBy(sortBy string) {
	p.sortBy = sortBy
}

// SortBy returns the active sort mode.
func (p *TaskPane) SortBy() string {
	return p.sortBy
}

// SetSize sets the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
	p.search.Width = max(10, width-8)
}

// SetFocused sets whether this pane is focused.
func (p *TaskPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TaskPane) IsFocused() bool {
	return p.focused
}

// IsAdding returns whether we're in add mode.
func (p *TaskPane) IsAdding() bool {
	return p.adding
}

// IsSearching returns whether the search input is active.
func (p *TaskPane) IsSearching() bool {
	return p.searching
}

// Selected returns the task under the cursor, or nil.
func (p *TaskPane) Selected() *task.Task {
	if len(p.tasks) == 0 || p.cursor < 0 || p.cursor >= len(p.tasks) {
		return nil
	}
	t := p.tasks[p.cursor]
	return &t
}

// nextStatus cycles all -> active -> completed -> all.
func nextStatus(s task.Status) task.Status {
	switch s {
	case task.StatusAll:
		return task.StatusActive
	case task.StatusActive:
		return task.StatusCompleted
	default:
		return task.StatusAll
	}
}

// nextSort cycles created -> dueDate -> priority -> manual -> created.
func nextSort(sortBy string) string {
	switch sortBy {
	case settings.SortCreated:
		return settings.SortDueDate
	case settings.SortDueDate:
		return settings.SortPriority
	case settings.SortPriority:
		return settings.SortManual
	default:
		return settings.SortCreated
	}
}

// Update handles messages for the task pane.
func (p *TaskPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	// Handle async messages first
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err == nil {
			p.setTasks(msg.tasks)
		}
		return nil

	case sortChangedMsg:
		if msg.err == nil {
			p.sortBy = msg.sortBy
		}
		return p.LoadTasksCmd()

	case taskAddedMsg, taskToggledMsg, taskDeletedMsg, taskMovedMsg, completedClearedMsg:
		// Reload to refresh the list after any mutation
		return p.LoadTasksCmd()

	case overdueCheckedMsg:
		if len(msg.alerted) > 0 {
			return p.LoadTasksCmd()
		}
		return nil
	}

	// Add mode: route keys to the title input
	if p.adding {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				title := strings.TrimSpace(p.input.Value())
				p.adding = false
				p.input.Reset()
				if title != "" {
					// Empty priority picks up the configured default
					return addTaskCmd(p.repo, title, "", "", "", nil)
				}
				return nil

			case key.Matches(msg, p.inputKeys.Cancel):
				p.adding = false
				p.input.Reset()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	// Search mode: route keys to the search input, filtering live
	if p.searching {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				p.searching = false
				p.search.Blur()
				return p.LoadTasksCmd()

			case key.Matches(msg, p.inputKeys.Cancel):
				p.searching = false
				p.search.Reset()
				p.search.Blur()
				return p.LoadTasksCmd()
			}
		}

		p.search, cmd = p.search.Update(msg)
		return tea.Batch(cmd, p.LoadTasksCmd())
	}

	// Normal mode
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Down):
			if len(p.tasks) > 0 {
				p.cursor = min(p.cursor+1, len(p.tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(p.tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(p.tasks) > 0 {
				p.cursor = len(p.tasks) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.adding = true
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Search):
			p.searching = true
			p.search.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.CycleFilter):
			p.status = nextStatus(p.status)
			p.cursor = 0
			return p.LoadTasksCmd()

		case key.Matches(msg, p.keys.CycleSort):
			return setSortCmd(p.settings, nextSort(p.sortBy))

		case key.Matches(msg, p.keys.Toggle):
			if t := p.Selected(); t != nil {
				return toggleTaskCmd(p.repo, t.ID)
			}

		case key.Matches(msg, p.keys.Delete):
			if t := p.Selected(); t != nil {
				return deleteTaskCmd(p.repo, t.ID)
			}

		case key.Matches(msg, p.keys.MoveUp):
			if t := p.Selected(); t != nil && p.sortBy == settings.SortManual && p.cursor > 0 {
				p.cursor--
				return moveTaskCmd(p.repo, t.ID, p.cursor)
			}

		case key.Matches(msg, p.keys.MoveDown):
			if t := p.Selected(); t != nil && p.sortBy == settings.SortManual && p.cursor < len(p.tasks)-1 {
				p.cursor++
				return moveTaskCmd(p.repo, t.ID, p.cursor)
			}

		case key.Matches(msg, p.keys.Yank):
			if t := p.Selected(); t != nil {
				return yankTitleCmd(t.Title)
			}

		case key.Matches(msg, p.keys.ClearCompleted):
			return clearCompletedCmd(p.repo)
		}
	}

	return nil
}

// View renders the task pane.
func (p *TaskPane) View() string {
	var b strings.Builder

	// Title with filter and sort indicators
	title := p.styles.PaneTitleStyle.Render("TASKS")
	b.WriteString(title)
	if p.status != task.StatusAll {
		b.WriteString(" " + p.styles.FilterActiveStyle.Render("["+string(p.status)+"]"))
	}
	if p.sortBy != settings.SortCreated {
		b.WriteString(" " + p.styles.StatLabelStyle.Render("sort:"+p.sortBy))
	}
	b.WriteString("\n")

	// Separator
	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	// Search bar when active or filtering
	if p.searching || strings.TrimSpace(p.search.Value()) != "" {
		prompt := p.styles.SearchPromptStyle.Render("/ ")
		b.WriteString(prompt + p.search.View())
		b.WriteString("\n")
	}

	// Tasks list
	if len(p.tasks) == 0 && !p.adding {
		empty := "  No tasks yet. Press 'a' to add one."
		if p.status != task.StatusAll || strings.TrimSpace(p.search.Value()) != "" {
			empty = "  Nothing matches the current filter."
		}
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render(empty))
		b.WriteString("\n")
	} else {
		// Calculate how many tasks we can show
		maxTasks := p.height - 6 // Account for title, separator, input, stats
		if maxTasks < 3 {
			maxTasks = 5
		}

		startIdx := 0
		if p.cursor >= maxTasks {
			startIdx = p.cursor - maxTasks + 1
		}

		doneCount := 0

		for i, t := range p.tasks {
			if t.IsCompleted {
				doneCount++
			}

			if i < startIdx || i >= startIdx+maxTasks {
				continue
			}

			b.WriteString(p.renderTask(t, i == p.cursor && p.focused && !p.adding))
			b.WriteString("\n")
		}

		// Stats
		b.WriteString("\n")
		stats := p.styles.StatLabelStyle.Render(fmt.Sprintf("%d/%d complete", doneCount, len(p.tasks)))
		b.WriteString("  " + stats)
		b.WriteString("\n")
	}

	// Input field when adding
	if p.adding {
		b.WriteString("\n")
		prompt := p.styles.InputPromptStyle.Render("+ ")
		b.WriteString(prompt + p.input.View())
		b.WriteString("\n")
	}

	// Apply pane style
	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderTask formats one task row.
func (p *TaskPane) renderTask(t task.Task, selected bool) string {
	priorityBadge := p.formatPriorityBadge(t.Priority)

	var checkbox string
	if t.IsCompleted {
		checkbox = p.styles.TaskCheckboxDone
	} else {
		checkbox = p.styles.TaskCheckboxPending
	}

	dueIndicator := p.formatDueDate(t.DueDate)
	dueWidth := lipgloss.Width(dueIndicator)

	// Layout: [space][priority][checkbox][space][text][space?][due]
	fixedWidth := 6
	if dueWidth > 0 {
		fixedWidth += dueWidth + 1
	}
	availableTextWidth := p.width - 4 - fixedWidth
	if availableTextWidth < 5 {
		availableTextWidth = 5
	}

	taskText := runewidth.Truncate(t.Title, availableTextWidth, "..")
	taskTextWidth := runewidth.StringWidth(taskText)

	if selected {
		textPart := fmt.Sprintf("%s%s %s", priorityBadge, checkbox, taskText)
		if dueWidth > 0 {
			padding := availableTextWidth - taskTextWidth
			if padding < 1 {
				padding = 1
			}
			textPart += strings.Repeat(" ", padding) + dueIndicator
		}
		return p.styles.TaskSelectedStyle.Render(" " + textPart + " ")
	}

	var styledText string
	if t.IsCompleted {
		styledText = p.styles.TaskDoneStyle.Render(taskText)
	} else {
		styledText = p.styles.TaskPendingStyle.Render(taskText)
	}

	textPart := fmt.Sprintf(" %s%s %s", priorityBadge, checkbox, styledText)
	if dueWidth > 0 {
		padding := availableTextWidth - taskTextWidth
		if padding < 1 {
			padding = 1
		}
		textPart += strings.Repeat(" ", padding) + dueIndicator
	}
	return textPart
}

// Stats returns task statistics for the visible list.
func (p *TaskPane) Stats() (done, total int) {
	for _, t := range p.tasks {
		if t.IsCompleted {
			done++
		}
	}
	return done, len(p.tasks)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// truncateText shortens text to maxLen runes, appending an ellipsis.
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// formatPriorityBadge returns a styled priority indicator.
// Returns: "!" for high, "~" for medium, " " for low
func (p *TaskPane) formatPriorityBadge(priority task.Priority) string {
	switch priority {
	case task.PriorityHigh:
		return p.styles.PriorityHighStyle.Render("!")
	case task.PriorityMedium:
		return p.styles.PriorityMediumStyle.Render("~")
	default:
		return " " // space placeholder for alignment
	}
}

// formatDueDate returns a compact, styled due date indicator.
// Returns empty string if no due date, otherwise: "!" (overdue), "T" (today),
// "+1" (tomorrow), "3d" (days), "2w" (weeks), ">1m" (over a month).
func (p *TaskPane) formatDueDate(dueDate *time.Time) string {
	if dueDate == nil {
		return ""
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, dueDate.Location())

	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return p.styles.DueDateOverdueStyle.Render("!")
	case days == 0:
		return p.styles.DueDateTodayStyle.Render("T")
	case days == 1:
		return p.styles.DueDateFutureStyle.Render("+1")
	case days <= 7:
		return p.styles.DueDateFutureStyle.Render(fmt.Sprintf("%dd", days))
	case days <= 30:
		weeks := days / 7
		return p.styles.DueDateFutureStyle.Render(fmt.Sprintf("%dw", weeks))
	default:
		return p.styles.DueDateFutureStyle.Render(">1m")
	}
}
