// Package backup provides backup and restore functionality: JSON bundles of
// the full app state, CSV export, and timestamped snapshots of the data files.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"taskify/internal/category"
	"taskify/internal/settings"
	"taskify/internal/task"
)

// Version identifies the bundle format.
const Version = "1.0.0"

// Data is the full-state bundle written by export and read by import.
type Data struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Tasks      []task.Task          `json:"tasks"`
	Categories []category.Category  `json:"categories"`
	Settings   settings.AppSettings `json:"settings"`
}

// Marshal renders the bundle as indented JSON.
func (d *Data) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize backup: %w", err)
	}
	return out, nil
}

// Unmarshal parses and validates a bundle. The tasks, categories and
// settings sections must all be present; empty collections are fine.
func Unmarshal(data []byte) (*Data, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	for _, key := range []string{"tasks", "categories", "settings"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("invalid backup: missing %q section", key)
		}
	}

	var d Data
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if d.Tasks == nil {
		d.Tasks = []task.Task{}
	}
	if d.Categories == nil {
		d.Categories = []category.Category{}
	}
	return &d, nil
}

// Service bundles and restores the full app state across the three repos.
type Service struct {
	tasks      *task.Repo
	categories *category.Repo
	settings   *settings.Repo
	now        func() time.Time
}

// NewService wires an export/import service to the repos.
func NewService(tasks *task.Repo, categories *category.Repo, appSettings *settings.Repo) *Service {
	return &Service{tasks: tasks, categories: categories, settings: appSettings, now: time.Now}
}

// SetNowFunc overrides the clock used for the export timestamp. Passing nil
// resets it to time.Now.
func (s *Service) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Export collects the current state into a bundle.
func (s *Service) Export() (*Data, error) {
	tasks, err := s.tasks.All()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.Load()
	if err != nil {
		return nil, err
	}
	appSettings, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	return &Data{
		Version:    Version,
		ExportedAt: s.now(),
		Tasks:      tasks,
		Categories: categories,
		Settings:   appSettings,
	}, nil
}

// Import replaces the full app state with the bundle's contents. Categories
// and settings land first so the task import schedules reminders against the
// imported notification preference.
func (s *Service) Import(d *Data) error {
	if err := s.categories.Replace(d.Categories); err != nil {
		return fmt.Errorf("import categories: %w", err)
	}
	if err := s.settings.Update(d.Settings); err != nil {
		return fmt.Errorf("import settings: %w", err)
	}
	if err := s.tasks.ReplaceAll(d.Tasks); err != nil {
		return fmt.Errorf("import tasks: %w", err)
	}
	return nil
}
