// Package settings manages the persisted application preferences.
package settings

import (
	"encoding/json"
	"fmt"
	"sync"

	"taskify/internal/kv"
)

// Theme names accepted by the app.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Sort modes for the task list.
const (
	SortCreated  = "created"
	SortDueDate  = "dueDate"
	SortPriority = "priority"
	SortManual   = "manual"
)

// AppSettings holds the user preferences.
type AppSettings struct {
	Theme           string `json:"theme"`
	Language        string `json:"language"`
	Notifications   bool   `json:"notifications"`
	DefaultPriority string `json:"default_priority"`
	SortBy          string `json:"sort_by"`
}

// Defaults returns the settings used before the user changes anything.
func Defaults() AppSettings {
	return AppSettings{
		Theme:           ThemeLight,
		Language:        "en",
		Notifications:   true,
		DefaultPriority: "medium",
		SortBy:          SortCreated,
	}
}

func validTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}

func validSortBy(sortBy string) bool {
	switch sortBy {
	case SortCreated, SortDueDate, SortPriority, SortManual:
		return true
	}
	return false
}

func validPriority(p string) bool {
	return p == "low" || p == "medium" || p == "high"
}

// Repo persists settings through a kv.Store.
type Repo struct {
	mu    sync.Mutex
	store kv.Store
}

// NewRepo returns a repo backed by the given store.
func NewRepo(store kv.Store) *Repo {
	return &Repo{store: store}
}

// Load returns the persisted settings, or the defaults when nothing has been
// saved yet.
func (r *Repo) Load() (AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *Repo) load() (AppSettings, error) {
	data, ok, err := r.store.Get(kv.KeySettings)
	if err != nil {
		return AppSettings{}, err
	}
	if !ok {
		return Defaults(), nil
	}

	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return AppSettings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

func (r *Repo) save(s AppSettings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize settings: %w", err)
	}
	return r.store.Set(kv.KeySettings, data)
}

// Update validates and persists the given settings.
func (r *Repo) Update(s AppSettings) error {
	if !validTheme(s.Theme) {
		return fmt.Errorf("invalid theme: %s", s.Theme)
	}
	if !validSortBy(s.SortBy) {
		return fmt.Errorf("invalid sort mode: %s", s.SortBy)
	}
	if !validPriority(s.DefaultPriority) {
		return fmt.Errorf("invalid default priority: %s", s.DefaultPriority)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(s)
}

// ToggleTheme flips between light and dark. A system theme toggles to light,
// matching what the toggle does when the effective theme is unknown.
func (r *Repo) ToggleTheme() (AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load()
	if err != nil {
		return AppSettings{}, err
	}
	if s.Theme == ThemeLight {
		s.Theme = ThemeDark
	} else {
		s.Theme = ThemeLight
	}
	if err := r.save(s); err != nil {
		return AppSettings{}, err
	}
	return s, nil
}

// SetSortBy persists a new task sort mode.
func (r *Repo) SetSortBy(sortBy string) (AppSettings, error) {
	if !validSortBy(sortBy) {
		return AppSettings{}, fmt.Errorf("invalid sort mode: %s", sortBy)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load()
	if err != nil {
		return AppSettings{}, err
	}
	s.SortBy = sortBy
	if err := r.save(s); err != nil {
		return AppSettings{}, err
	}
	return s, nil
}
