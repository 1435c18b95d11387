// Package ui provides terminal user interface components for taskify.
// This file contains tea.Cmd factories that wrap repository operations.
// These commands run I/O asynchronously to keep the Bubble Tea event loop
// responsive. Each command returns a corresponding message type defined in
// messages.go.
package ui

import (
	"time"

	"taskify/internal/category"
	"taskify/internal/settings"
	"taskify/internal/task"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Task Commands
// =============================================================================

// loadTasksCmd returns a command that loads the filtered, sorted task list.
func loadTasksCmd(repo *task.Repo, opts task.FilterOptions) tea.Cmd {
	return func() tea.Msg {
		tasks, err := repo.Filtered(opts)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// addTaskCmd returns a command that creates a new task.
func addTaskCmd(repo *task.Repo, title, description string, priority task.Priority, categoryID string, dueDate *time.Time) tea.Cmd {
	return func() tea.Msg {
		t, err := repo.Add(title, description, priority, categoryID, dueDate, nil)
		return taskAddedMsg{task: t, err: err}
	}
}

// toggleTaskCmd returns a command that flips a task's completion state.
func toggleTaskCmd(repo *task.Repo, id string) tea.Cmd {
	return func() tea.Msg {
		t, err := repo.Toggle(id)
		return taskToggledMsg{task: t, err: err}
	}
}

// deleteTaskCmd returns a command that removes a task.
func deleteTaskCmd(repo *task.Repo, id string) tea.Cmd {
	return func() tea.Msg {
		err := repo.Delete(id)
		return taskDeletedMsg{id: id, err: err}
	}
}

// moveTaskCmd returns a command that repositions a task in the manual order.
func moveTaskCmd(repo *task.Repo, id string, position int) tea.Cmd {
	return func() tea.Msg {
		err := repo.MoveToPosition(id, position)
		return taskMovedMsg{id: id, err: err}
	}
}

// clearCompletedCmd returns a command that removes all completed tasks.
func clearCompletedCmd(repo *task.Repo) tea.Cmd {
	return func() tea.Msg {
		n, err := repo.ClearCompleted()
		return completedClearedMsg{removed: n, err: err}
	}
}

// checkOverdueCmd returns a command that sweeps for newly overdue tasks.
func checkOverdueCmd(repo *task.Repo) tea.Cmd {
	return func() tea.Msg {
		alerted, err := repo.CheckOverdue()
		return overdueCheckedMsg{alerted: alerted, err: err}
	}
}

// =============================================================================
// Category Commands
// =============================================================================

// loadCategoriesCmd returns a command that loads all categories.
func loadCategoriesCmd(repo *category.Repo) tea.Cmd {
	return func() tea.Msg {
		categories, err := repo.Load()
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// addCategoryCmd returns a command that creates a new category.
func addCategoryCmd(repo *category.Repo, name, color, icon string) tea.Cmd {
	return func() tea.Msg {
		c, err := repo.Add(name, color, icon)
		return categoryAddedMsg{category: c, err: err}
	}
}

// deleteCategoryCmd returns a command that removes a category.
// Deletion fails while tasks still reference the category.
func deleteCategoryCmd(repo *category.Repo, id string) tea.Cmd {
	return func() tea.Msg {
		err := repo.Delete(id)
		return categoryDeletedMsg{id: id, err: err}
	}
}

// =============================================================================
// Settings and Analytics Commands
// =============================================================================

// loadSettingsCmd returns a command that loads the app preferences.
func loadSettingsCmd(repo *settings.Repo) tea.Cmd {
	return func() tea.Msg {
		s, err := repo.Load()
		return settingsLoadedMsg{settings: s, err: err}
	}
}

// setSortCmd returns a command that persists a new sort mode.
func setSortCmd(repo *settings.Repo, sortBy string) tea.Cmd {
	return func() tea.Msg {
		s, err := repo.SetSortBy(sortBy)
		return sortChangedMsg{sortBy: s.SortBy, err: err}
	}
}

// loadAnalyticsCmd returns a command that computes the analytics summary.
func loadAnalyticsCmd(repo *task.Repo) tea.Cmd {
	return func() tea.Msg {
		data, err := repo.Analytics()
		return analyticsLoadedMsg{data: data, err: err}
	}
}

// yankTitleCmd returns a command that copies a task title to the clipboard.
func yankTitleCmd(title string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(title)
		return yankedMsg{title: title, err: err}
	}
}
