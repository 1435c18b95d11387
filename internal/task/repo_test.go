package task

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"taskify/internal/category"
	"taskify/internal/kv"
	"taskify/internal/settings"
	"taskify/internal/widget"
)

// fakeScheduler records scheduling activity for assertions.
type fakeScheduler struct {
	mu        sync.Mutex
	seq       int
	now       func() time.Time
	scheduled map[string]time.Time
	cancelled []string
	notified  []string
}

func newFakeScheduler(now func() time.Time) *fakeScheduler {
	return &fakeScheduler{now: now, scheduled: map[string]time.Time{}}
}

func (f *fakeScheduler) Schedule(at time.Time, title, message string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !at.After(f.now()) {
		return "", false
	}
	f.seq++
	id := fmt.Sprintf("fake_%d", f.seq)
	f.scheduled[id] = at
	return id, true
}

func (f *fakeScheduler) Cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.scheduled, id)
	f.cancelled = append(f.cancelled, id)
}

func (f *fakeScheduler) Notify(title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, title+": "+message)
	return nil
}

func (f *fakeScheduler) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}

func (f *fakeScheduler) notifyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notified)
}

type fixture struct {
	repo       *Repo
	categories *category.Repo
	settings   *settings.Repo
	sched      *fakeScheduler
	widget     *widget.Sync
	clock      time.Time
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	dir := t.TempDir()
	store, err := kv.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	f := &fixture{
		categories: category.NewRepo(store),
		settings:   settings.NewRepo(store),
		widget:     widget.New(dir),
		clock:      time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return f.clock }
	f.sched = newFakeScheduler(now)
	f.repo = NewRepo(store, f.categories, f.settings, f.sched, f.widget)
	f.repo.SetNowFunc(now)
	f.categories.SetNowFunc(now)

	// Seed the default categories so counters have rows to land in.
	if _, err := f.categories.Load(); err != nil {
		t.Fatalf("categories.Load: %v", err)
	}
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) taskCount(t *testing.T, categoryID string) int {
	t.Helper()
	c, err := f.categories.Get(categoryID)
	if err != nil {
		t.Fatalf("categories.Get(%s): %v", categoryID, err)
	}
	return c.TaskCount
}

func ptr[T any](v T) *T { return &v }

func TestAdd(t *testing.T) {
	f := newFixture(t)

	got, err := f.repo.Add("  Buy milk  ", "2% please", PriorityHigh, "shopping", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Errorf("Title = %q, want trimmed", got.Title)
	}
	if got.IsCompleted {
		t.Error("new task is completed")
	}
	if got.Order != 0 {
		t.Errorf("Order = %d, want 0 for first task", got.Order)
	}
	if !got.CreatedAt.Equal(f.clock) || !got.UpdatedAt.Equal(f.clock) {
		t.Errorf("timestamps = %v/%v, want clock %v", got.CreatedAt, got.UpdatedAt, f.clock)
	}
	if n := f.taskCount(t, "shopping"); n != 1 {
		t.Errorf("shopping TaskCount = %d, want 1", n)
	}

	second, err := f.repo.Add("Call dentist", "", PriorityLow, "", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.Order != 1 {
		t.Errorf("second Order = %d, want 1", second.Order)
	}

	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All returned %d tasks, want 2", len(all))
	}
}

func TestAddValidation(t *testing.T) {
	f := newFixture(t)

	if _, err := f.repo.Add("   ", "", PriorityLow, "", nil, nil); err == nil {
		t.Error("Add with blank title succeeded, want error")
	}
	if _, err := f.repo.Add("x", "", Priority("urgent"), "", nil, nil); err == nil {
		t.Error("Add with bad priority succeeded, want error")
	}

	// Nothing was persisted by the failed adds.
	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("failed Add left %d tasks behind", len(all))
	}
}

func TestAddDefaultPriorityFromSettings(t *testing.T) {
	f := newFixture(t)

	s := settings.Defaults()
	s.DefaultPriority = "high"
	if err := f.settings.Update(s); err != nil {
		t.Fatalf("settings.Update: %v", err)
	}

	got, err := f.repo.Add("Plan trip", "", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want settings default high", got.Priority)
	}
}

func TestAddSchedulesFutureReminder(t *testing.T) {
	f := newFixture(t)

	reminder := f.clock.Add(2 * time.Hour)
	got, err := f.repo.Add("Standup", "", PriorityMedium, "work", nil, &reminder)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.NotificationID == "" {
		t.Fatal("future reminder left no notification handle")
	}
	if f.sched.pendingCount() != 1 {
		t.Errorf("scheduler holds %d reminders, want 1", f.sched.pendingCount())
	}

	// The handle reached the persisted state in the same write.
	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if all[0].NotificationID != got.NotificationID {
		t.Errorf("persisted handle %q, want %q", all[0].NotificationID, got.NotificationID)
	}
}

func TestAddPastReminderNotScheduled(t *testing.T) {
	f := newFixture(t)

	past := f.clock.Add(-time.Hour)
	got, err := f.repo.Add("Too late", "", PriorityLow, "", nil, &past)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.NotificationID != "" {
		t.Errorf("past reminder got handle %q, want none", got.NotificationID)
	}
	if f.sched.pendingCount() != 0 {
		t.Errorf("scheduler holds %d reminders, want 0", f.sched.pendingCount())
	}
}

func TestAddRespectsNotificationsDisabled(t *testing.T) {
	f := newFixture(t)

	s := settings.Defaults()
	s.Notifications = false
	if err := f.settings.Update(s); err != nil {
		t.Fatalf("settings.Update: %v", err)
	}

	reminder := f.clock.Add(time.Hour)
	got, err := f.repo.Add("Quiet", "", PriorityLow, "", nil, &reminder)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.NotificationID != "" || f.sched.pendingCount() != 0 {
		t.Error("reminder scheduled despite notifications being disabled")
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	f := newFixture(t)

	due := f.clock.Add(48 * time.Hour)
	orig, err := f.repo.Add("Draft report", "first pass", PriorityLow, "work", &due, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	f.advance(time.Hour)
	got, err := f.repo.Update(orig.ID, Patch{
		Title:    ptr("Draft quarterly report"),
		Priority: ptr(PriorityHigh),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "Draft quarterly report" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want high", got.Priority)
	}
	if got.Description != "first pass" {
		t.Errorf("Description = %q, want untouched", got.Description)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want untouched %v", got.DueDate, due)
	}
	if !got.UpdatedAt.Equal(f.clock) {
		t.Errorf("UpdatedAt = %v, want bumped to %v", got.UpdatedAt, f.clock)
	}
	if !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("CreatedAt = %v, want unchanged", got.CreatedAt)
	}

	got, err = f.repo.Update(orig.ID, Patch{ClearDueDate: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.DueDate != nil {
		t.Errorf("DueDate = %v after clear, want nil", got.DueDate)
	}

	if _, err := f.repo.Update("missing", Patch{Title: ptr("x")}); err == nil {
		t.Error("Update of unknown id succeeded, want error")
	}
	if _, err := f.repo.Update(orig.ID, Patch{Title: ptr("  ")}); err == nil {
		t.Error("Update to blank title succeeded, want error")
	}
}

func TestUpdateCategoryTransfersCounts(t *testing.T) {
	f := newFixture(t)

	orig, err := f.repo.Add("Gym", "", PriorityLow, "personal", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if n := f.taskCount(t, "personal"); n != 1 {
		t.Fatalf("personal TaskCount = %d, want 1", n)
	}

	if _, err := f.repo.Update(orig.ID, Patch{CategoryID: ptr("health")}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if n := f.taskCount(t, "personal"); n != 0 {
		t.Errorf("personal TaskCount = %d after move, want 0", n)
	}
	if n := f.taskCount(t, "health"); n != 1 {
		t.Errorf("health TaskCount = %d after move, want 1", n)
	}
}

func TestUpdateReminderLifecycle(t *testing.T) {
	f := newFixture(t)

	reminder := f.clock.Add(time.Hour)
	orig, err := f.repo.Add("Meds", "", PriorityHigh, "health", nil, &reminder)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	firstHandle := orig.NotificationID

	// Moving the reminder cancels the old handle and stores a new one.
	later := f.clock.Add(3 * time.Hour)
	got, err := f.repo.Update(orig.ID, Patch{Reminder: &later})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.NotificationID == "" || got.NotificationID == firstHandle {
		t.Errorf("handle = %q, want a fresh one (old %q)", got.NotificationID, firstHandle)
	}
	if f.sched.pendingCount() != 1 {
		t.Errorf("scheduler holds %d reminders, want 1", f.sched.pendingCount())
	}

	// Clearing the reminder cancels and clears the handle.
	got, err = f.repo.Update(orig.ID, Patch{ClearReminder: true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Reminder != nil || got.NotificationID != "" {
		t.Errorf("reminder=%v handle=%q after clear, want both empty", got.Reminder, got.NotificationID)
	}
	if f.sched.pendingCount() != 0 {
		t.Errorf("scheduler holds %d reminders after clear, want 0", f.sched.pendingCount())
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)

	reminder := f.clock.Add(time.Hour)
	orig, err := f.repo.Add("Water plants", "", PriorityLow, "personal", nil, &reminder)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := f.repo.Delete(orig.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("task still present after Delete")
	}
	if n := f.taskCount(t, "personal"); n != 0 {
		t.Errorf("personal TaskCount = %d after Delete, want 0", n)
	}
	if f.sched.pendingCount() != 0 {
		t.Error("pending reminder survived Delete")
	}

	if err := f.repo.Delete(orig.ID); err == nil {
		t.Error("Delete of missing task succeeded, want error")
	}
}

func TestToggle(t *testing.T) {
	f := newFixture(t)

	reminder := f.clock.Add(time.Hour)
	due := f.clock.Add(-time.Hour) // already overdue
	s := settings.Defaults()
	s.Notifications = false
	if err := f.settings.Update(s); err != nil {
		t.Fatalf("settings.Update: %v", err)
	}
	orig, err := f.repo.Add("Report", "", PriorityHigh, "work", &due, &reminder)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Re-enable notifications, schedule, and mark the overdue alert sent.
	s.Notifications = true
	if err := f.settings.Update(s); err != nil {
		t.Fatalf("settings.Update: %v", err)
	}
	if err := f.repo.ScheduleReminders(); err != nil {
		t.Fatalf("ScheduleReminders: %v", err)
	}
	if _, err := f.repo.CheckOverdue(); err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}

	f.advance(30 * time.Minute)
	got, err := f.repo.Toggle(orig.ID)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !got.IsCompleted {
		t.Error("task not completed after Toggle")
	}
	if !got.UpdatedAt.Equal(f.clock) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, f.clock)
	}
	if got.NotificationID != "" {
		t.Errorf("handle = %q after completion, want cleared", got.NotificationID)
	}
	if got.OverdueNotificationSent {
		t.Error("overdue flag not reset on completion")
	}
	if f.sched.pendingCount() != 0 {
		t.Error("reminder still pending after completion")
	}

	got, err = f.repo.Toggle(orig.ID)
	if err != nil {
		t.Fatalf("Toggle back: %v", err)
	}
	if got.IsCompleted {
		t.Error("task still completed after second Toggle")
	}

	if _, err := f.repo.Toggle("missing"); err == nil {
		t.Error("Toggle of missing task succeeded, want error")
	}
}

func addBatch(t *testing.T, f *fixture, titles ...string) []Task {
	t.Helper()
	for _, title := range titles {
		if _, err := f.repo.Add(title, "", PriorityMedium, "", nil, nil); err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
		f.advance(time.Minute)
	}
	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	return all
}

func titles(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestReorder(t *testing.T) {
	f := newFixture(t)
	before := addBatch(t, f, "a", "b", "c", "d")

	// Indices address the manual view, Order descending: [d c b a].
	if err := f.repo.Reorder(0, 2); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}

	want := []string{"c", "b", "d", "a"}
	for i, title := range want {
		if all[i].Title != title {
			t.Fatalf("order after Reorder = %v, want %v", titles(all), want)
		}
	}

	// Position 0 carries the highest order; all values distinct.
	seen := map[int]bool{}
	for i, task := range all {
		wantOrder := len(all) - i - 1
		if task.Order != wantOrder {
			t.Errorf("tasks[%d].Order = %d, want %d", i, task.Order, wantOrder)
		}
		if seen[task.Order] {
			t.Errorf("duplicate order value %d", task.Order)
		}
		seen[task.Order] = true
	}

	// Reordering does not bump UpdatedAt.
	for _, task := range all {
		if task.Title == "a" && !task.UpdatedAt.Equal(before[0].UpdatedAt) {
			t.Error("Reorder bumped UpdatedAt")
		}
	}

	if err := f.repo.Reorder(-1, 0); err == nil {
		t.Error("Reorder with negative index succeeded, want error")
	}
	if err := f.repo.Reorder(0, 99); err == nil {
		t.Error("Reorder past the end succeeded, want error")
	}
}

func TestMoveToPosition(t *testing.T) {
	f := newFixture(t)
	all := addBatch(t, f, "a", "b", "c")

	// Manual view is [c b a]; move a to the front.
	if err := f.repo.MoveToPosition(all[0].ID, 0); err != nil {
		t.Fatalf("MoveToPosition: %v", err)
	}
	got, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	want := []string{"a", "c", "b"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("order = %v, want %v", titles(got), want)
		}
	}

	// Out-of-range positions clamp instead of failing.
	if err := f.repo.MoveToPosition(got[0].ID, 99); err != nil {
		t.Fatalf("MoveToPosition with large position: %v", err)
	}
	got, err = f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if got[len(got)-1].Title != "a" {
		t.Errorf("clamped move put %v, want a last", titles(got))
	}

	if err := f.repo.MoveToPosition("missing", 0); err == nil {
		t.Error("MoveToPosition of missing task succeeded, want error")
	}
}

func TestMoveToPositionUntouchedOrder(t *testing.T) {
	f := newFixture(t)
	all := addBatch(t, f, "a", "b", "c")

	// Freshly added tasks are stored oldest first while the manual view
	// shows [c b a]. Moving the middle view row up must leave the other
	// two rows in their relative order.
	if err := f.repo.MoveToPosition(all[1].ID, 0); err != nil {
		t.Fatalf("MoveToPosition: %v", err)
	}

	if _, err := f.settings.SetSortBy(settings.SortManual); err != nil {
		t.Fatalf("SetSortBy: %v", err)
	}
	got, err := f.repo.Filtered(FilterOptions{})
	if err != nil {
		t.Fatalf("Filtered: %v", err)
	}
	want := []string{"b", "c", "a"}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("manual view = %v, want %v", titles(got), want)
		}
	}
}

func TestClearCompleted(t *testing.T) {
	f := newFixture(t)

	a, err := f.repo.Add("a", "", PriorityLow, "work", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	b, err := f.repo.Add("b", "", PriorityLow, "work", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := f.repo.Add("c", "", PriorityLow, "personal", nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	for _, id := range []string{a.ID, b.ID} {
		if _, err := f.repo.Toggle(id); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}

	n, err := f.repo.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearCompleted removed %d, want 2", n)
	}
	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 || all[0].Title != "c" {
		t.Errorf("remaining = %v, want just c", titles(all))
	}
	if got := f.taskCount(t, "work"); got != 0 {
		t.Errorf("work TaskCount = %d, want 0", got)
	}
	if got := f.taskCount(t, "personal"); got != 1 {
		t.Errorf("personal TaskCount = %d, want 1", got)
	}

	// Nothing completed: no-op.
	n, err = f.repo.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if n != 0 {
		t.Errorf("second ClearCompleted removed %d, want 0", n)
	}
}

func TestReplaceAllReschedulesReminders(t *testing.T) {
	f := newFixture(t)

	future := f.clock.Add(time.Hour)
	past := f.clock.Add(-time.Hour)
	imported := []Task{
		{ID: "t1", Title: "future reminder", Priority: PriorityLow, Reminder: &future,
			NotificationID: "stale_1", CreatedAt: f.clock, UpdatedAt: f.clock},
		{ID: "t2", Title: "past reminder", Priority: PriorityLow, Reminder: &past,
			NotificationID: "stale_2", CreatedAt: f.clock, UpdatedAt: f.clock},
		{ID: "t3", Title: "completed", Priority: PriorityLow, IsCompleted: true, Reminder: &future,
			NotificationID: "stale_3", CreatedAt: f.clock, UpdatedAt: f.clock},
	}
	if err := f.repo.ReplaceAll(imported); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	all, err := f.repo.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if all[0].NotificationID == "" || all[0].NotificationID == "stale_1" {
		t.Errorf("t1 handle = %q, want freshly scheduled", all[0].NotificationID)
	}
	if all[1].NotificationID != "" {
		t.Errorf("t2 handle = %q, want none for past reminder", all[1].NotificationID)
	}
	if all[2].NotificationID != "" {
		t.Errorf("t3 handle = %q, want none for completed task", all[2].NotificationID)
	}
	if f.sched.pendingCount() != 1 {
		t.Errorf("scheduler holds %d reminders, want 1", f.sched.pendingCount())
	}
}

func TestCheckOverdueNotifiesOnce(t *testing.T) {
	f := newFixture(t)

	// Disable notifications so Add does not pre-mark anything.
	s := settings.Defaults()
	s.Notifications = false
	if err := f.settings.Update(s); err != nil {
		t.Fatalf("settings.Update: %v", err)
	}

	past := f.clock.Add(-24 * time.Hour)
	future := f.clock.Add(24 * time.Hour)
	if _, err := f.repo.Add("overdue", "", PriorityHigh, "", &past, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := f.repo.Add("due later", "", PriorityLow, "", &future, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// With notifications off, nothing alerts or gets marked.
	notified, err := f.repo.CheckOverdue()
	if err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}
	if len(notified) != 0 || f.sched.notifyCount() != 0 {
		t.Fatal("CheckOverdue alerted with notifications disabled")
	}

	s.Notifications = true
	if err := f.settings.Update(s); err != nil {
		t.Fatalf("settings.Update: %v", err)
	}

	notified, err = f.repo.CheckOverdue()
	if err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}
	if len(notified) != 1 || notified[0].Title != "overdue" {
		t.Fatalf("notified = %v, want just the overdue task", titles(notified))
	}
	if f.sched.notifyCount() != 1 {
		t.Errorf("scheduler delivered %d alerts, want 1", f.sched.notifyCount())
	}

	// The alert is one-shot.
	notified, err = f.repo.CheckOverdue()
	if err != nil {
		t.Fatalf("CheckOverdue: %v", err)
	}
	if len(notified) != 0 || f.sched.notifyCount() != 1 {
		t.Error("overdue alert fired twice for the same task")
	}
}

func TestWidgetProjectionFollowsMutations(t *testing.T) {
	f := newFixture(t)

	a, err := f.repo.Add("a", "", PriorityHigh, "", nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := f.repo.Add("b", "", PriorityLow, "", nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := f.repo.Toggle(a.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	snap, err := f.widget.Read()
	if err != nil {
		t.Fatalf("widget.Read: %v", err)
	}
	if snap == nil {
		t.Fatal("no widget snapshot after mutations")
	}
	if snap.TotalTasks != 2 || snap.CompletedTasks != 1 || snap.PendingTasks != 1 {
		t.Errorf("widget counts = %d/%d/%d, want 2/1/1",
			snap.TotalTasks, snap.CompletedTasks, snap.PendingTasks)
	}
	if len(snap.Pending) != 1 || snap.Pending[0].Title != "b" {
		t.Errorf("widget previews = %+v, want just b", snap.Pending)
	}
}
