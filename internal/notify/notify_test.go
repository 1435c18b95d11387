// Package notify provides desktop notification support.
// This file contains tests for the notification functionality.
package notify

import (
	"os"
	"runtime"
	"sync"
	"testing"
	"time"
)

// TestNew tests that New() returns a valid notifier.
func TestNew(t *testing.T) {
	n := New()
	if n == nil {
		t.Error("New() returned nil")
	}
}

// TestIsSupported tests platform detection.
func TestIsSupported(t *testing.T) {
	n := New()

	switch runtime.GOOS {
	case "darwin":
		if !n.IsSupported() {
			t.Log("Warning: osascript not available on macOS")
		}
	case "linux":
		t.Logf("Linux notification support: %v", n.IsSupported())
	default:
		if n.IsSupported() {
			t.Errorf("IsSupported() should be false on %s", runtime.GOOS)
		}
	}
}

// TestSend tests sending a notification.
// This is a manual test - it will actually show a notification.
func TestSend(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping notification test in short mode")
	}
	if os.Getenv("RUN_NOTIFY_TESTS") != "1" {
		t.Skip("Skipping manual notification test (set RUN_NOTIFY_TESTS=1 to enable)")
	}

	n := New()
	if !n.IsSupported() {
		t.Skip("Notifications not supported on this platform")
	}

	err := n.Send("taskify test", "This is a test notification")
	if err != nil {
		t.Errorf("Send() error: %v", err)
	}
}

// recordingNotifier captures sent notifications for scheduler tests.
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	sound []string
}

func (r *recordingNotifier) Send(title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, title+": "+message)
	return nil
}

func (r *recordingNotifier) SendWithSound(title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sound = append(r.sound, title+": "+message)
	return nil
}

func (r *recordingNotifier) IsSupported() bool { return true }

func (r *recordingNotifier) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.sent...)
	return append(out, r.sound...)
}

func TestSchedulerRejectsPastTimes(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})

	if id, ok := s.Schedule(time.Now().Add(-time.Minute), "t", "m"); ok || id != "" {
		t.Errorf("Schedule in the past = (%q, %v), want rejected", id, ok)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerHandlesAreUnique(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	defer s.CancelAll()

	a, ok := s.Schedule(time.Now().Add(time.Hour), "a", "m")
	if !ok {
		t.Fatal("Schedule rejected a future time")
	}
	b, ok := s.Schedule(time.Now().Add(time.Hour), "b", "m")
	if !ok {
		t.Fatal("Schedule rejected a future time")
	}
	if a == b {
		t.Errorf("two schedules share handle %q", a)
	}
	if s.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	rec := &recordingNotifier{}
	s := NewScheduler(rec)

	id, ok := s.Schedule(time.Now().Add(time.Hour), "t", "m")
	if !ok {
		t.Fatal("Schedule rejected a future time")
	}
	s.Cancel(id)
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after Cancel, want 0", s.Pending())
	}

	// A cancelled handle must not deliver even if its callback runs.
	s.fire(id, "t", "m")
	if got := rec.all(); len(got) != 0 {
		t.Errorf("cancelled reminder delivered: %v", got)
	}

	// Cancelling twice or cancelling garbage is harmless.
	s.Cancel(id)
	s.Cancel("ntf_9999")
}

func TestSchedulerFireDelivers(t *testing.T) {
	rec := &recordingNotifier{}
	s := NewScheduler(rec)

	id, ok := s.Schedule(time.Now().Add(time.Hour), "Task due", "Buy milk")
	if !ok {
		t.Fatal("Schedule rejected a future time")
	}
	s.fire(id, "Task due", "Buy milk")

	got := rec.all()
	if len(got) != 1 || got[0] != "Task due: Buy milk" {
		t.Errorf("delivered = %v, want the scheduled reminder", got)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending = %d after fire, want 0", s.Pending())
	}

	// Firing the same handle again does nothing.
	s.fire(id, "Task due", "Buy milk")
	if got := rec.all(); len(got) != 1 {
		t.Errorf("duplicate fire delivered again: %v", got)
	}
}

func TestSchedulerSound(t *testing.T) {
	rec := &recordingNotifier{}
	s := NewScheduler(rec)
	s.SetSound(true)

	if err := s.Notify("t", "m"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.sound) != 1 || len(rec.sent) != 0 {
		t.Errorf("sound=%v sent=%v, want sound delivery only", rec.sound, rec.sent)
	}
}

func TestSchedulerInjectedClock(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	defer s.CancelAll()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.SetNowFunc(func() time.Time { return base })

	// Past relative to the injected clock, future relative to the wall clock.
	if _, ok := s.Schedule(base.Add(-time.Second), "t", "m"); ok {
		t.Error("Schedule accepted a time before the injected now")
	}
	if _, ok := s.Schedule(base.Add(time.Hour), "t", "m"); !ok {
		t.Error("Schedule rejected a time after the injected now")
	}
}
