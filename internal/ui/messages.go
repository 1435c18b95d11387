// Package ui provides terminal user interface components for taskify.
// This file defines message types for async I/O operations using the Bubble
// Tea command pattern. All storage operations return these messages to keep
// the event loop non-blocking.
package ui

import (
	"taskify/internal/category"
	"taskify/internal/settings"
	"taskify/internal/task"
)

// =============================================================================
// Task Messages
// =============================================================================

// tasksLoadedMsg is sent when the filtered task list is loaded.
type tasksLoadedMsg struct {
	tasks []task.Task
	err   error
}

// taskAddedMsg is sent when a new task is created.
type taskAddedMsg struct {
	task *task.Task
	err  error
}

// taskToggledMsg is sent when a task's completion state is flipped.
type taskToggledMsg struct {
	task *task.Task
	err  error
}

// taskDeletedMsg is sent when a task is removed.
type taskDeletedMsg struct {
	id  string
	err error
}

// taskMovedMsg is sent when a task is repositioned in the manual order.
type taskMovedMsg struct {
	id  string
	err error
}

// completedClearedMsg is sent when all completed tasks are removed.
type completedClearedMsg struct {
	removed int
	err     error
}

// overdueCheckedMsg is sent after the periodic overdue sweep.
type overdueCheckedMsg struct {
	alerted []task.Task
	err     error
}

// =============================================================================
// Category Messages
// =============================================================================

// categoriesLoadedMsg is sent when categories are loaded from storage.
type categoriesLoadedMsg struct {
	categories []category.Category
	err        error
}

// categoryAddedMsg is sent when a new category is created.
type categoryAddedMsg struct {
	category *category.Category
	err      error
}

// categoryDeletedMsg is sent when a category is removed.
type categoryDeletedMsg struct {
	id  string
	err error
}

// =============================================================================
// Settings and Analytics Messages
// =============================================================================

// settingsLoadedMsg is sent when preferences are loaded from storage.
type settingsLoadedMsg struct {
	settings settings.AppSettings
	err      error
}

// sortChangedMsg is sent when the sort mode is cycled and persisted.
type sortChangedMsg struct {
	sortBy string
	err    error
}

// analyticsLoadedMsg is sent when the analytics summary is computed.
type analyticsLoadedMsg struct {
	data task.AnalyticsData
	err  error
}

// yankedMsg is sent when a task title is copied to the clipboard.
type yankedMsg struct {
	title string
	err   error
}
