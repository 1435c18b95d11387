package notify

import (
	"fmt"
	"sync"
	"time"
)

// Scheduler queues desktop notifications for future delivery. Each scheduled
// reminder gets a handle the caller can store and later pass to Cancel, so a
// task edit or deletion can revoke a pending reminder.
//
// Reminders live in process memory only. They do not survive a restart; the
// task layer reschedules them from persisted reminder times on startup.
type Scheduler struct {
	mu       sync.Mutex
	notifier Notifier
	sound    bool
	seq      int
	timers   map[string]*time.Timer
	now      func() time.Time // injectable clock for deterministic tests
}

// NewScheduler returns a scheduler that delivers through the given notifier.
func NewScheduler(notifier Notifier) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		timers:   make(map[string]*time.Timer),
		now:      time.Now,
	}
}

// SetSound toggles notification sounds for future deliveries.
func (s *Scheduler) SetSound(sound bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sound = sound
}

// SetNowFunc overrides the scheduler clock. Passing nil resets it to time.Now.
func (s *Scheduler) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Schedule queues a notification for delivery at the given time and returns
// its handle. Times in the past are not scheduled and return ok=false.
func (s *Scheduler) Schedule(at time.Time, title, message string) (id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delay := at.Sub(s.now())
	if delay <= 0 {
		return "", false
	}

	s.seq++
	id = fmt.Sprintf("ntf_%d", s.seq)
	s.timers[id] = time.AfterFunc(delay, func() {
		s.fire(id, title, message)
	})
	return id, true
}

// fire delivers a due notification and forgets its handle.
func (s *Scheduler) fire(id, title, message string) {
	s.mu.Lock()
	_, pending := s.timers[id]
	delete(s.timers, id)
	sound := s.sound
	s.mu.Unlock()

	if !pending {
		return
	}
	if sound {
		_ = s.notifier.SendWithSound(title, message)
		return
	}
	_ = s.notifier.Send(title, message)
}

// Cancel revokes a pending notification. Unknown or already-fired handles are
// ignored.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

// CancelAll revokes every pending notification.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// Notify delivers a notification immediately.
func (s *Scheduler) Notify(title, message string) error {
	s.mu.Lock()
	sound := s.sound
	s.mu.Unlock()

	if sound {
		return s.notifier.SendWithSound(title, message)
	}
	return s.notifier.Send(title, message)
}

// Pending returns the number of queued notifications.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
