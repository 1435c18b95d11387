// Package widget publishes a summarized task projection to a side channel
// that out-of-process renderers (status bars, desktop widgets) can read.
package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"taskify/internal/fsutil"
)

const (
	fileName    = "widget.json"
	maxPreviews = 5

	filePerm os.FileMode = 0600
)

// TaskPreview is the slice of a task a widget renders.
type TaskPreview struct {
	Title    string     `json:"title"`
	Priority string     `json:"priority"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// Snapshot is the projection written to disk.
type Snapshot struct {
	TotalTasks     int           `json:"total_tasks"`
	CompletedTasks int           `json:"completed_tasks"`
	PendingTasks   int           `json:"pending_tasks"`
	Pending        []TaskPreview `json:"pending,omitempty"`
	LastUpdated    time.Time     `json:"last_updated"`
}

// Sync writes snapshots to widget.json in the data directory.
type Sync struct {
	mu   sync.Mutex
	path string
	now  func() time.Time // injectable clock for deterministic tests
}

// New returns a Sync writing under dataDir.
func New(dataDir string) *Sync {
	return &Sync{path: filepath.Join(dataDir, fileName), now: time.Now}
}

// SetNowFunc overrides the clock used for the snapshot timestamp. Passing nil
// resets it to time.Now.
func (s *Sync) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Publish writes a snapshot. At most five pending previews are kept; the rest
// are represented only in the counts.
func (s *Sync) Publish(total, completed int, pending []TaskPreview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(pending) > maxPreviews {
		pending = pending[:maxPreviews]
	}
	snap := Snapshot{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   total - completed,
		Pending:        pending,
		LastUpdated:    s.now(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize widget snapshot: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("write widget snapshot: %w", err)
	}
	return nil
}

// Read returns the last published snapshot, or nil when none exists.
func (s *Sync) Read() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read widget snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse widget snapshot: %w", err)
	}
	return &snap, nil
}

// Clear removes the snapshot file.
func (s *Sync) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear widget snapshot: %w", err)
	}
	return nil
}
