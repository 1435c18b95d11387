package task

import (
	"sort"
	"strings"
	"time"

	"taskify/internal/settings"
)

// Filtered returns the tasks passing every constraint in opts, sorted by the
// global sort mode from settings.
func (r *Repo) Filtered(opts FilterOptions) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	s, err := r.settings.Load()
	if err != nil {
		return nil, err
	}

	now := r.now()
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, opts, now) {
			filtered = append(filtered, t)
		}
	}

	sortTasks(filtered, s.SortBy)
	return filtered, nil
}

func matches(t Task, opts FilterOptions, now time.Time) bool {
	if opts.Status == StatusActive && t.IsCompleted {
		return false
	}
	if opts.Status == StatusCompleted && !t.IsCompleted {
		return false
	}
	if opts.Category != "" && t.CategoryID != opts.Category {
		return false
	}
	if opts.Priority != "" && t.Priority != opts.Priority {
		return false
	}
	if q := strings.ToLower(opts.SearchQuery); q != "" {
		inTitle := strings.Contains(strings.ToLower(t.Title), q)
		inDescription := strings.Contains(strings.ToLower(t.Description), q)
		if !inTitle && !inDescription {
			return false
		}
	}
	if opts.ShowOverdue {
		if t.DueDate == nil || !t.DueDate.Before(now) || t.IsCompleted {
			return false
		}
	}
	return true
}

func sortTasks(tasks []Task, mode string) {
	switch mode {
	case settings.SortDueDate:
		// Dated tasks first, soonest due date up. Undated tasks trail in
		// manual order.
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return a.Order > b.Order
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		})
	case settings.SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i], tasks[j]
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() > b.Priority.Rank()
			}
			return a.Order > b.Order
		})
	case settings.SortManual:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Order > tasks[j].Order
		})
	default: // settings.SortCreated
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Overdue returns the incomplete tasks whose due date is strictly past.
func (r *Repo) Overdue() ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}

	now := r.now()
	var overdue []Task
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && !t.IsCompleted {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

// ByCategory returns every task in the given category.
func (r *Repo) ByCategory(categoryID string) ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}

	var out []Task
	for _, t := range tasks {
		if t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Analytics computes the summary for the analytics pane. Per-category rows
// cover every known category, including ones with no tasks; the weekly
// series covers the trailing seven calendar days ending today.
func (r *Repo) Analytics() (AnalyticsData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return AnalyticsData{}, err
	}
	categories, err := r.categories.Load()
	if err != nil {
		return AnalyticsData{}, err
	}

	data := AnalyticsData{TotalTasks: len(tasks)}

	var totalCompletion time.Duration
	for _, t := range tasks {
		if t.IsCompleted {
			data.CompletedTasks++
			totalCompletion += t.UpdatedAt.Sub(t.CreatedAt)
		}
		switch t.Priority {
		case PriorityHigh:
			data.TasksByPriority.High++
		case PriorityMedium:
			data.TasksByPriority.Medium++
		case PriorityLow:
			data.TasksByPriority.Low++
		}
	}
	if data.TotalTasks > 0 {
		data.CompletionRate = float64(data.CompletedTasks) / float64(data.TotalTasks) * 100
	}
	if data.CompletedTasks > 0 {
		data.AverageCompletionTime = float64(totalCompletion) / float64(time.Millisecond) / float64(data.CompletedTasks)
	}

	data.TasksByCategory = make([]CategoryActivity, 0, len(categories))
	for _, c := range categories {
		row := CategoryActivity{CategoryID: c.ID}
		for _, t := range tasks {
			if t.CategoryID != c.ID {
				continue
			}
			row.Count++
			if t.IsCompleted {
				row.Completed++
			}
		}
		data.TasksByCategory = append(data.TasksByCategory, row)
	}

	now := r.now()
	data.WeeklyCompletion = make([]DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		row := DayActivity{Date: day.Format("2006-01-02")}
		for _, t := range tasks {
			if sameDay(t.CreatedAt, day) {
				row.Created++
			}
			if t.IsCompleted && sameDay(t.UpdatedAt, day) {
				row.Completed++
			}
		}
		data.WeeklyCompletion = append(data.WeeklyCompletion, row)
	}

	return data, nil
}

// sameDay reports whether a and b fall on the same local calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
