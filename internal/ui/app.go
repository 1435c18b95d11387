// Package ui provides terminal user interface components for taskify.
// This file contains the main App model which coordinates all panes and
// routes messages using the Bubble Tea architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"taskify/internal/category"
	"taskify/internal/config"
	"taskify/internal/settings"
	"taskify/internal/task"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies each pane in the application.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneCategories
	PaneAnalytics
)

// LayoutMode determines how panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows all three panes side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow shows only the focused pane with a tab bar.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	NarrowLayoutThreshold int
}

// Repos bundles the storage-backed repositories driving the UI.
type Repos struct {
	Tasks      *task.Repo
	Categories *category.Repo
	Settings   *settings.Repo
}

// App is the main application model that coordinates all panes.
type App struct {
	repos        Repos
	styles       *Styles
	config       *AppConfig
	taskPane     *TaskPane
	categoryPane *CategoryPane
	analytics    *AnalyticsPane
	helpOverlay  *HelpOverlay
	confirmDel   *confirmDeleteState
	activePane   PaneID
	layoutMode   LayoutMode
	showHelp     bool
	width        int
	height       int
	status       string
	statusErr    bool
	statusUntil  time.Time
	quitting     bool

	// Key bindings
	keys     GlobalKeyMap
	helpKeys HelpKeyMap
}

type confirmDeleteState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Data loading is deferred to Init()
// to keep the constructor non-blocking.
func NewApp(repos Repos, styles *Styles, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 80,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}

	taskPane := NewTaskPaneWithKeys(repos.Tasks, repos.Settings, styles, cfg.Keys)
	categoryPane := NewCategoryPaneWithKeys(repos.Categories, styles, cfg.Keys)
	analytics := NewAnalyticsPane(repos.Tasks, styles)
	helpOverlay := NewHelpOverlay(styles)

	app := &App{
		repos:        repos,
		styles:       styles,
		config:       cfg,
		taskPane:     taskPane,
		categoryPane: categoryPane,
		analytics:    analytics,
		helpOverlay:  helpOverlay,
		activePane:   PaneTasks,
		keys:         NewGlobalKeyMap(cfg.Keys),
		helpKeys:     DefaultHelpKeyMap(),
	}

	taskPane.SetFocused(true)
	categoryPane.SetFocused(false)
	analytics.SetFocused(false)

	return app
}

// tickMsg is sent periodically for time and status updates.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// overdueTickMsg triggers the periodic overdue sweep.
type overdueTickMsg time.Time

// overdueTickCmd returns a command that fires once a minute.
func overdueTickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return overdueTickMsg(t)
	})
}

// Init initializes the app and loads all data asynchronously.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		overdueTickCmd(),
		loadSettingsCmd(a.repos.Settings),
		a.taskPane.LoadTasksCmd(),
		a.categoryPane.LoadCategoriesCmd(),
		a.analytics.LoadAnalyticsCmd(),
		checkOverdueCmd(a.repos.Tasks),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Route async messages before key handling so storage results are
	// processed regardless of which pane is active.
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Settings: "+msg.err.Error(), true)
		} else {
			a.taskPane.SetSortBy(msg.settings.SortBy)
		}
		return a, a.taskPane.LoadTasksCmd()

	case tasksLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Tasks: "+msg.err.Error(), true)
		}
		return a, a.taskPane.Update(msg)

	case taskAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add task: "+msg.err.Error(), true)
		} else if msg.task != nil {
			a.SetStatus("Added "+truncateText(msg.task.Title, 40), false)
		}
		return a, a.fanOut(msg)

	case taskToggledMsg:
		if msg.err != nil {
			a.SetStatus("Toggle task: "+msg.err.Error(), true)
		}
		return a, a.fanOut(msg)

	case taskDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete task: "+msg.err.Error(), true)
		}
		return a, a.fanOut(msg)

	case taskMovedMsg:
		if msg.err != nil {
			a.SetStatus("Move task: "+msg.err.Error(), true)
		}
		return a, a.fanOut(msg)

	case completedClearedMsg:
		if msg.err != nil {
			a.SetStatus("Clear completed: "+msg.err.Error(), true)
		} else if msg.removed > 0 {
			a.SetStatus(fmt.Sprintf("Cleared %d completed", msg.removed), false)
		} else {
			a.SetStatus("Nothing to clear", false)
		}
		return a, a.fanOut(msg)

	case overdueCheckedMsg:
		if msg.err != nil {
			a.SetStatus("Overdue check: "+msg.err.Error(), true)
		} else if len(msg.alerted) > 0 {
			a.SetStatus(fmt.Sprintf("%d task(s) overdue", len(msg.alerted)), true)
		}
		return a, a.fanOut(msg)

	case categoriesLoadedMsg:
		if msg.err != nil {
			a.SetStatus("Categories: "+msg.err.Error(), true)
		}
		return a, tea.Batch(a.categoryPane.Update(msg), a.analytics.Update(msg))

	case categoryAddedMsg:
		if msg.err != nil {
			a.SetStatus("Add category: "+msg.err.Error(), true)
		}
		return a, a.categoryPane.Update(msg)

	case categoryDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete category: "+msg.err.Error(), true)
		}
		return a, a.categoryPane.Update(msg)

	case sortChangedMsg:
		if msg.err != nil {
			a.SetStatus("Sort: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Sort: "+msg.sortBy, false)
		}
		return a, a.taskPane.Update(msg)

	case yankedMsg:
		if msg.err != nil {
			a.SetStatus("Copy: "+msg.err.Error(), true)
		} else {
			a.SetStatus("Copied "+truncateText(msg.title, 40), false)
		}
		return a, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if a.confirmDel != nil {
			switch msg.String() {
			case "y", "Y", "enter":
				cmd := a.confirmDel.cmd
				a.confirmDel = nil
				return a, cmd
			case "n", "N", "esc":
				a.confirmDel = nil
				a.SetStatus("Canceled", false)
				return a, nil
			default:
				return a, nil
			}
		}

		// Help overlay takes priority
		if a.showHelp {
			if key.Matches(msg, a.helpKeys.Close) {
				a.showHelp = false
				return a, nil
			}
			return a, nil
		}

		// Check if any pane is in input mode
		inInputMode := a.taskPane.IsAdding() || a.taskPane.IsSearching() || a.categoryPane.IsAdding()

		if !inInputMode {
			// Confirm deletions if enabled.
			if a.config.ConfirmDeletions {
				switch a.activePane {
				case PaneTasks:
					if key.Matches(msg, a.taskPane.keys.Delete) {
						t := a.taskPane.Selected()
						if t == nil {
							a.SetStatus("No task selected", true)
							return a, nil
						}
						a.confirmDel = &confirmDeleteState{
							title: "Delete task?",
							body:  truncateText(t.Title, 60),
							cmd:   deleteTaskCmd(a.repos.Tasks, t.ID),
						}
						return a, nil
					}
				case PaneCategories:
					if key.Matches(msg, a.categoryPane.keys.Delete) {
						c := a.categoryPane.Selected()
						if c == nil {
							a.SetStatus("No category selected", true)
							return a, nil
						}
						a.confirmDel = &confirmDeleteState{
							title: "Delete category?",
							body:  truncateText(c.Name, 60),
							cmd:   deleteCategoryCmd(a.repos.Categories, c.ID),
						}
						return a, nil
					}
				}
			}

			// Global keys only when not in input mode
			switch {
			case key.Matches(msg, a.keys.Quit):
				a.quitting = true
				return a, tea.Quit

			case key.Matches(msg, a.keys.Help):
				a.showHelp = true
				return a, nil

			case key.Matches(msg, a.keys.NextPane):
				a.switchPane()
				return a, nil

			case key.Matches(msg, a.keys.Pane1):
				a.setActivePane(PaneTasks)
				return a, nil

			case key.Matches(msg, a.keys.Pane2):
				a.setActivePane(PaneCategories)
				return a, nil

			case key.Matches(msg, a.keys.Pane3):
				a.setActivePane(PaneAnalytics)
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case overdueTickMsg:
		return a, tea.Batch(overdueTickCmd(), checkOverdueCmd(a.repos.Tasks))
	}

	// Forward to active pane (only if help is not shown)
	if !a.showHelp {
		switch a.activePane {
		case PaneTasks:
			if cmd := a.taskPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneCategories:
			if cmd := a.categoryPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		case PaneAnalytics:
			if cmd := a.analytics.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return a, tea.Batch(cmds...)
}

// fanOut forwards a task mutation result to every pane that derives
// state from the task collection.
func (a *App) fanOut(msg tea.Msg) tea.Cmd {
	return tea.Batch(
		a.taskPane.Update(msg),
		a.categoryPane.Update(msg),
		a.analytics.Update(msg),
	)
}

// switchPane cycles through panes.
func (a *App) switchPane() {
	switch a.activePane {
	case PaneTasks:
		a.setActivePane(PaneCategories)
	case PaneCategories:
		a.setActivePane(PaneAnalytics)
	case PaneAnalytics:
		a.setActivePane(PaneTasks)
	}
}

// setActivePane sets the active pane and updates focus states.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane

	a.taskPane.SetFocused(pane == PaneTasks)
	a.categoryPane.SetFocused(pane == PaneCategories)
	a.analytics.SetFocused(pane == PaneAnalytics)
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for title bar (2) and help bar (1)
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)

	totalWidth := a.width - 4

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	if a.width < threshold {
		// Narrow mode: single focused pane with tab bar
		a.layoutMode = LayoutNarrow

		narrowHeight := contentHeight - 1
		if narrowHeight < 8 {
			narrowHeight = 8
		}

		paneWidth := totalWidth
		if paneWidth < 20 {
			paneWidth = 20
		}

		a.taskPane.SetSize(paneWidth, narrowHeight)
		a.categoryPane.SetSize(paneWidth, narrowHeight)
		a.analytics.SetSize(paneWidth, narrowHeight)
	} else {
		// Wide mode: three panes side-by-side
		a.layoutMode = LayoutWide

		var tasksWidth, categoriesWidth, analyticsWidth int
		if totalWidth < 120 {
			tasksWidth = (totalWidth * 40) / 100
			categoriesWidth = (totalWidth * 26) / 100
			analyticsWidth = totalWidth - tasksWidth - categoriesWidth - 2
		} else {
			tasksWidth = min((totalWidth*42)/100, 56)
			categoriesWidth = min((totalWidth*25)/100, 36)
			analyticsWidth = min(totalWidth-tasksWidth-categoriesWidth-2, 48)
		}

		a.taskPane.SetSize(tasksWidth, contentHeight)
		a.categoryPane.SetSize(categoriesWidth, contentHeight)
		a.analytics.SetSize(analyticsWidth, contentHeight)
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirmDel != nil {
		return a.renderConfirmDelete()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	var b strings.Builder

	// Title bar
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	// Main content
	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(a.renderNarrowContent())
	default:
		b.WriteString(a.renderWideContent())
	}
	b.WriteString("\n")

	// Help bar
	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirmDelete() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = min(60, max(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirmDel.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirmDel.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] delete    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderWideContent renders all three panes side by side.
func (a *App) renderWideContent() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.taskPane.View(), " ", a.categoryPane.View(), " ", a.analytics.View())
}

// renderNarrowContent renders the focused pane with a tab bar.
func (a *App) renderNarrowContent() string {
	var b strings.Builder

	b.WriteString(a.renderPaneTabs())
	b.WriteString("\n")

	switch a.activePane {
	case PaneTasks:
		b.WriteString(a.taskPane.View())
	case PaneCategories:
		b.WriteString(a.categoryPane.View())
	case PaneAnalytics:
		b.WriteString(a.analytics.View())
	}

	return b.String()
}

// renderPaneTabs renders a tab bar showing available panes.
func (a *App) renderPaneTabs() string {
	tabs := []struct {
		id    PaneID
		label string
	}{
		{PaneTasks, "Tasks"},
		{PaneCategories, "Categories"},
		{PaneAnalytics, "Analytics"},
	}

	activeTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorPrimary).
		Bold(true)
	inactiveTabStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var parts []string
	for _, tab := range tabs {
		label := tab.label
		if tab.id == a.activePane {
			label = activeTabStyle.Render("[" + label + "]")
		} else {
			label = inactiveTabStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}

	tabBar := strings.Join(parts, "  ")
	padding := (a.width - lipgloss.Width(tabBar)) / 2
	if padding > 0 {
		tabBar = strings.Repeat(" ", padding) + tabBar
	}

	return tabBar
}

// renderGoodbye shows a short exit message with completion progress.
func (a *App) renderGoodbye() string {
	done, total := a.taskPane.Stats()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	b.WriteString("\n")

	if total > 0 {
		pct := (done * 100) / total
		b.WriteString(fmt.Sprintf("     Tasks: %d/%d (%d%%)\n", done, total, pct))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTitleBar creates the top title bar with stats and the date.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" taskify ")

	done, total := a.taskPane.Stats()
	var stats string
	if total > 0 {
		stats = a.styles.StatLabelStyle.Render(fmt.Sprintf("Tasks: %d/%d", done, total))
	}

	now := time.Now()
	date := a.styles.DateStyle.Render(now.Format("Mon Jan 2 · 15:04"))

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	dateWidth := lipgloss.Width(date)

	spacerWidth := a.width - titleWidth - statsWidth - dateWidth - 4
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if stats != "" {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth))
	parts = append(parts, date)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	// Input mode help
	if a.taskPane.IsAdding() || a.categoryPane.IsAdding() {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	if a.taskPane.IsSearching() {
		return a.styles.RenderHelp(
			"enter", "apply",
			"esc", "clear",
		)
	}

	// Normal mode help based on active pane
	switch a.activePane {
	case PaneTasks:
		return a.styles.RenderHelp(
			"a", "add",
			"d", "done",
			"x", "del",
			"/", "search",
			"f", "filter",
			"s", "sort",
			"tab", "pane",
			"?", "help",
		)
	case PaneCategories:
		return a.styles.RenderHelp(
			"a", "add",
			"x", "del",
			"j/k", "nav",
			"tab", "pane",
			"?", "help",
		)
	case PaneAnalytics:
		return a.styles.RenderHelp(
			"tab", "pane",
			"?", "help",
		)
	}

	return ""
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// Run starts the Bubble Tea program with the given repositories, styles,
// and config.
func Run(repos Repos, styles *Styles, cfg *AppConfig) error {
	app := NewApp(repos, styles, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
