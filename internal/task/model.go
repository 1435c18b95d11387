// Package task implements the task collection, its persistence and the
// derived views (filtering, sorting, analytics) built on top of it.
package task

import "time"

// Priority represents task priority levels
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank maps priorities to a sortable weight, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task represents a single todo item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Priority    Priority   `json:"priority"`
	CategoryID  string     `json:"category_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Order positions the task in the manually sorted list. Higher values
	// sort first; after any reorder every task holds a distinct value.
	Order int `json:"order"`

	Reminder *time.Time `json:"reminder,omitempty"`

	// NotificationID is the handle of the pending reminder, if one is
	// scheduled. Empty when no reminder is queued.
	NotificationID string `json:"notification_id,omitempty"`

	// OverdueNotificationSent records that the one-shot overdue alert for
	// this task already fired.
	OverdueNotificationSent bool `json:"overdue_notification_sent,omitempty"`
}

// Status filters tasks by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// FilterOptions narrows the task list. Zero values mean "no constraint".
type FilterOptions struct {
	Status      Status
	Category    string
	Priority    Priority
	SearchQuery string
	ShowOverdue bool
}

// PriorityCounts breaks the collection down by priority.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// CategoryActivity counts tasks for one category.
type CategoryActivity struct {
	CategoryID string `json:"category_id"`
	Count      int    `json:"count"`
	Completed  int    `json:"completed"`
}

// DayActivity counts tasks created and completed on one calendar day.
type DayActivity struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// AnalyticsData summarizes the collection for the analytics pane.
type AnalyticsData struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"` // percent, 0 when empty

	// AverageCompletionTime is the mean of UpdatedAt-CreatedAt over
	// completed tasks, in milliseconds. Zero when nothing is completed.
	AverageCompletionTime float64 `json:"average_completion_time"`

	TasksByPriority  PriorityCounts     `json:"tasks_by_priority"`
	TasksByCategory  []CategoryActivity `json:"tasks_by_category"`
	WeeklyCompletion []DayActivity      `json:"weekly_completion"`
}

// Patch describes a partial task update. Nil pointer fields are left
// untouched; the Clear flags reset their optional field to absent.
type Patch struct {
	Title       *string
	Description *string
	Priority    *Priority
	CategoryID  *string

	DueDate      *time.Time
	ClearDueDate bool

	Reminder      *time.Time
	ClearReminder bool
}
