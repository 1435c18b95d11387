package task

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskify/internal/category"
	"taskify/internal/kv"
	"taskify/internal/settings"
	"taskify/internal/widget"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// Scheduler queues and cancels reminder notifications. notify.Scheduler
// implements it; tests substitute a recording fake.
type Scheduler interface {
	// Schedule queues a notification for the given time and returns its
	// handle, or ok=false when the time is not in the future.
	Schedule(at time.Time, title, message string) (id string, ok bool)

	// Cancel revokes a pending notification by handle.
	Cancel(id string)

	// Notify delivers a notification immediately.
	Notify(title, message string) error
}

// Repo owns the task collection. Cross-cutting effects (category counters,
// reminders, the widget projection) go through injected collaborators.
type Repo struct {
	mu         sync.Mutex
	store      kv.Store
	categories *category.Repo
	settings   *settings.Repo
	scheduler  Scheduler    // nil disables reminders
	widget     *widget.Sync // nil disables the widget projection
	now        func() time.Time
}

// NewRepo wires a task repo to its collaborators. scheduler and widgetSync
// may be nil when the corresponding side channel is unavailable.
func NewRepo(store kv.Store, categories *category.Repo, appSettings *settings.Repo, scheduler Scheduler, widgetSync *widget.Sync) *Repo {
	return &Repo{
		store:      store,
		categories: categories,
		settings:   appSettings,
		scheduler:  scheduler,
		widget:     widgetSync,
		now:        time.Now,
	}
}

// SetNowFunc overrides the repo clock. Passing nil resets it to time.Now.
func (r *Repo) SetNowFunc(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now == nil {
		r.now = time.Now
		return
	}
	r.now = now
}

func (r *Repo) load() ([]Task, error) {
	data, ok, err := r.store.Get(kv.KeyTasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Task{}, nil
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	return tasks, nil
}

func (r *Repo) save(tasks []Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize tasks: %w", err)
	}
	return r.store.Set(kv.KeyTasks, data)
}

// notificationsOn reports whether the user wants notifications and a
// scheduler is wired.
func (r *Repo) notificationsOn() bool {
	if r.scheduler == nil {
		return false
	}
	s, err := r.settings.Load()
	if err != nil {
		return false
	}
	return s.Notifications
}

// scheduleReminder queues t's reminder, cancelling any previous handle, and
// returns the new handle. Empty when nothing was scheduled.
func (r *Repo) scheduleReminder(t *Task) string {
	if t.NotificationID != "" && r.scheduler != nil {
		r.scheduler.Cancel(t.NotificationID)
	}
	if t.Reminder == nil || t.IsCompleted || !r.notificationsOn() {
		return ""
	}
	id, ok := r.scheduler.Schedule(*t.Reminder, "Task reminder", reminderMessage(t))
	if !ok {
		return ""
	}
	return id
}

func reminderMessage(t *Task) string {
	if t.DueDate != nil {
		return fmt.Sprintf("%q (due %s)", t.Title, t.DueDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%q", t.Title)
}

// markOverdue flags every overdue task whose alert has not fired yet,
// notifying for each. It mutates tasks in place and returns the indices of
// the tasks that alerted.
func (r *Repo) markOverdue(tasks []Task) []int {
	if !r.notificationsOn() {
		return nil
	}
	now := r.now()
	var alerted []int
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate == nil || !t.DueDate.Before(now) || t.IsCompleted || t.OverdueNotificationSent {
			continue
		}
		msg := fmt.Sprintf("%q was due %s", t.Title, t.DueDate.Format("2006-01-02"))
		if err := r.scheduler.Notify("Task overdue", msg); err != nil {
			continue
		}
		t.OverdueNotificationSent = true
		alerted = append(alerted, i)
	}
	return alerted
}

// syncWidget publishes the current collection to the widget channel.
// Best-effort: failures never roll back a mutation.
func (r *Repo) syncWidget(tasks []Task) {
	if r.widget == nil {
		return
	}
	completed := 0
	var pending []widget.TaskPreview
	for _, t := range tasks {
		if t.IsCompleted {
			completed++
			continue
		}
		pending = append(pending, widget.TaskPreview{
			Title:    t.Title,
			Priority: string(t.Priority),
			DueDate:  t.DueDate,
		})
	}
	_ = r.widget.Publish(len(tasks), completed, pending)
}

func (r *Repo) adjustCategoryCount(id string, delta int) {
	if id == "" || r.categories == nil {
		return
	}
	_ = r.categories.AdjustTaskCount(id, delta)
}

// Add creates a task at the end of the manual order. A future reminder is
// scheduled and its handle stored in the same write that persists the task.
func (r *Repo) Add(title, description string, priority Priority, categoryID string, dueDate, reminder *time.Time) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if len(title) > maxTitleLen {
		return nil, fmt.Errorf("task title too long (max %d)", maxTitleLen)
	}
	if len(description) > maxDescriptionLen {
		return nil, fmt.Errorf("task description too long (max %d)", maxDescriptionLen)
	}
	if priority == "" {
		s, err := r.settings.Load()
		if err != nil {
			return nil, err
		}
		priority = Priority(s.DefaultPriority)
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority: must be low, medium, or high")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}

	id, err := newID("task")
	if err != nil {
		return nil, err
	}

	now := r.now()
	t := Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		CategoryID:  categoryID,
		DueDate:     dueDate,
		Reminder:    reminder,
		CreatedAt:   now,
		UpdatedAt:   now,
		Order:       len(tasks),
	}
	t.NotificationID = r.scheduleReminder(&t)

	tasks = append(tasks, t)
	r.markOverdue(tasks)
	if err := r.save(tasks); err != nil {
		return nil, err
	}

	r.adjustCategoryCount(categoryID, 1)
	r.syncWidget(tasks)
	return &t, nil
}

// Update applies a patch to a task. Reminder changes cancel or reschedule
// the pending notification, and the new handle lands in the same write.
func (r *Repo) Update(id string, p Patch) (*Task, error) {
	if p.Title != nil {
		*p.Title = strings.TrimSpace(*p.Title)
		if *p.Title == "" {
			return nil, fmt.Errorf("task title is required")
		}
		if len(*p.Title) > maxTitleLen {
			return nil, fmt.Errorf("task title too long (max %d)", maxTitleLen)
		}
	}
	if p.Description != nil && len(*p.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("task description too long (max %d)", maxDescriptionLen)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return nil, fmt.Errorf("invalid priority: must be low, medium, or high")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		oldCategory := t.CategoryID

		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.CategoryID != nil {
			t.CategoryID = *p.CategoryID
		}
		if p.ClearDueDate {
			t.DueDate = nil
		} else if p.DueDate != nil {
			t.DueDate = p.DueDate
		}

		reminderChanged := p.ClearReminder || p.Reminder != nil
		if p.ClearReminder {
			t.Reminder = nil
		} else if p.Reminder != nil {
			t.Reminder = p.Reminder
		}
		if reminderChanged {
			t.NotificationID = r.scheduleReminder(t)
		}

		t.UpdatedAt = r.now()

		r.markOverdue(tasks)
		if err := r.save(tasks); err != nil {
			return nil, err
		}

		if p.CategoryID != nil && oldCategory != *p.CategoryID {
			r.adjustCategoryCount(oldCategory, -1)
			r.adjustCategoryCount(*p.CategoryID, 1)
		}
		r.syncWidget(tasks)
		out := *t
		return &out, nil
	}
	return nil, fmt.Errorf("task not found: %s", id)
}

// Delete removes a task, revoking its pending reminder.
func (r *Repo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		removed := tasks[i]
		tasks = append(tasks[:i], tasks[i+1:]...)
		if err := r.save(tasks); err != nil {
			return err
		}

		if removed.NotificationID != "" && r.scheduler != nil {
			r.scheduler.Cancel(removed.NotificationID)
		}
		r.adjustCategoryCount(removed.CategoryID, -1)
		r.syncWidget(tasks)
		return nil
	}
	return fmt.Errorf("task not found: %s", id)
}

// Toggle flips a task's completion state. Completing a task cancels its
// reminder and resets the overdue flag so a reopened task can alert again.
func (r *Repo) Toggle(id string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		t.IsCompleted = !t.IsCompleted
		t.UpdatedAt = r.now()
		if t.IsCompleted {
			if t.NotificationID != "" && r.scheduler != nil {
				r.scheduler.Cancel(t.NotificationID)
			}
			t.NotificationID = ""
			t.OverdueNotificationSent = false
		}
		if err := r.save(tasks); err != nil {
			return nil, err
		}
		r.syncWidget(tasks)
		out := *t
		return &out, nil
	}
	return nil, fmt.Errorf("task not found: %s", id)
}

// Reorder moves the task at fromIndex to toIndex, both positions in the
// manually sorted list (Order descending), and reassigns every Order value.
// The first position holds the highest order. Reorder deliberately does not
// touch UpdatedAt so completion analytics stay meaningful.
func (r *Repo) Reorder(fromIndex, toIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}
	if fromIndex < 0 || fromIndex >= len(tasks) {
		return fmt.Errorf("index out of range: %d", fromIndex)
	}
	if toIndex < 0 || toIndex >= len(tasks) {
		return fmt.Errorf("index out of range: %d", toIndex)
	}

	sortTasks(tasks, settings.SortManual)
	tasks = reindex(tasks, fromIndex, toIndex)
	if err := r.save(tasks); err != nil {
		return err
	}
	r.syncWidget(tasks)
	return nil
}

// MoveToPosition moves a task by ID to the given position in the manually
// sorted list (Order descending), clamping the position into range. The
// stored array may be in any order, so the move resolves against the sorted
// view rather than raw storage indices.
func (r *Repo) MoveToPosition(id string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}
	sortTasks(tasks, settings.SortManual)

	from := -1
	for i := range tasks {
		if tasks[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return fmt.Errorf("task not found: %s", id)
	}
	if position < 0 {
		position = 0
	}
	if position > len(tasks)-1 {
		position = len(tasks) - 1
	}

	tasks = reindex(tasks, from, position)
	if err := r.save(tasks); err != nil {
		return err
	}
	r.syncWidget(tasks)
	return nil
}

// reindex splices the task at from to position to, then reassigns Order so
// position 0 carries the highest value and all values stay distinct.
func reindex(tasks []Task, from, to int) []Task {
	moved := tasks[from]
	out := make([]Task, 0, len(tasks))
	out = append(out, tasks[:from]...)
	out = append(out, tasks[from+1:]...)
	out = append(out, Task{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	for i := range out {
		out[i].Order = len(out) - i - 1
	}
	return out
}

// ClearCompleted removes every completed task and returns how many were
// dropped.
func (r *Repo) ClearCompleted() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return 0, err
	}

	var kept []Task
	var removed []Task
	for _, t := range tasks {
		if t.IsCompleted {
			removed = append(removed, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(removed) == 0 {
		return 0, nil
	}
	if kept == nil {
		kept = []Task{}
	}
	if err := r.save(kept); err != nil {
		return 0, err
	}

	for _, t := range removed {
		r.adjustCategoryCount(t.CategoryID, -1)
	}
	r.syncWidget(kept)
	return len(removed), nil
}

// All returns the full collection in storage order.
func (r *Repo) All() ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// ReplaceAll swaps in an imported collection. Stale notification handles are
// dropped and future reminders on incomplete tasks are rescheduled, since
// handles from a previous process mean nothing to this one.
func (r *Repo) ReplaceAll(tasks []Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tasks == nil {
		tasks = []Task{}
	}
	now := r.now()
	for i := range tasks {
		t := &tasks[i]
		t.NotificationID = ""
		if t.Reminder != nil && t.Reminder.After(now) && !t.IsCompleted {
			t.NotificationID = r.scheduleReminder(t)
		}
	}
	if err := r.save(tasks); err != nil {
		return err
	}
	r.syncWidget(tasks)
	return nil
}

// ScheduleReminders queues every future reminder that has no pending
// notification yet. Called on startup, after the persisted handles from the
// previous process have gone stale.
func (r *Repo) ScheduleReminders() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return err
	}

	now := r.now()
	changed := false
	for i := range tasks {
		t := &tasks[i]
		if t.IsCompleted || t.Reminder == nil || !t.Reminder.After(now) {
			continue
		}
		if t.NotificationID != "" {
			continue
		}
		if id := r.scheduleReminder(t); id != "" {
			t.NotificationID = id
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.save(tasks)
}

// CheckOverdue sends the one-shot alert for every overdue task that has not
// been notified yet and returns the tasks that alerted.
func (r *Repo) CheckOverdue() ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.load()
	if err != nil {
		return nil, err
	}
	alerted := r.markOverdue(tasks)
	if len(alerted) == 0 {
		return nil, nil
	}
	if err := r.save(tasks); err != nil {
		return nil, err
	}

	notified := make([]Task, 0, len(alerted))
	for _, i := range alerted {
		notified = append(notified, tasks[i])
	}
	return notified, nil
}

func newID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}
