// Package category manages the task categories and their task counters.
package category

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskify/internal/kv"
)

const maxNameLen = 60

// Category groups tasks under a named label with a display color and icon.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	TaskCount int       `json:"task_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Defaults returns the categories seeded on first run.
func Defaults(now time.Time) []Category {
	return []Category{
		{ID: "personal", Name: "Personal", Color: "#10B981", Icon: "account", CreatedAt: now},
		{ID: "work", Name: "Work", Color: "#3B82F6", Icon: "briefcase", CreatedAt: now},
		{ID: "shopping", Name: "Shopping", Color: "#8B5CF6", Icon: "cart", CreatedAt: now},
		{ID: "health", Name: "Health", Color: "#EF4444", Icon: "heart", CreatedAt: now},
	}
}

// Repo persists categories through a kv.Store.
type Repo struct {
	mu    sync.Mutex
	store kv.Store
	now   func() time.Time // injectable clock for deterministic tests
}

// NewRepo returns a repo backed by the given store.
func NewRepo(store kv.Store) *Repo {
	return &Repo{store: store, now: time.Now}
}

// SetNowFunc overrides the clock used for timestamps. Passing nil resets it
// to time.Now.
func (r *Repo) SetNowFunc(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now == nil {
		r.now = time.Now
		return
	}
	r.now = now
}

// Load returns all categories, seeding the defaults on first run.
func (r *Repo) Load() ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *Repo) load() ([]Category, error) {
	data, ok, err := r.store.Get(kv.KeyCategories)
	if err != nil {
		return nil, err
	}
	if !ok {
		defaults := Defaults(r.now())
		if err := r.save(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}

	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	return categories, nil
}

func (r *Repo) save(categories []Category) error {
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize categories: %w", err)
	}
	return r.store.Set(kv.KeyCategories, data)
}

// Add creates a new category with a zero task count.
func (r *Repo) Add(name, color, icon string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if len(name) > maxNameLen {
		return nil, fmt.Errorf("category name too long (max %d)", maxNameLen)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return nil, fmt.Errorf("category already exists: %s", name)
		}
	}

	id, err := newID("cat")
	if err != nil {
		return nil, err
	}

	cat := Category{
		ID:        id,
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: r.now(),
	}
	categories = append(categories, cat)
	if err := r.save(categories); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update applies name, color and icon changes to an existing category.
// Empty fields are left unchanged.
func (r *Repo) Update(id, name, color, icon string) error {
	name = strings.TrimSpace(name)
	if len(name) > maxNameLen {
		return fmt.Errorf("category name too long (max %d)", maxNameLen)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		if name != "" {
			categories[i].Name = name
		}
		if color != "" {
			categories[i].Color = color
		}
		if icon != "" {
			categories[i].Icon = icon
		}
		return r.save(categories)
	}
	return fmt.Errorf("category not found: %s", id)
}

// Delete removes a category. It refuses when tasks still reference it so a
// caller cannot orphan task rows by accident.
func (r *Repo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		if categories[i].TaskCount > 0 {
			return fmt.Errorf("category %q still has %d tasks", categories[i].Name, categories[i].TaskCount)
		}
		categories = append(categories[:i], categories[i+1:]...)
		return r.save(categories)
	}
	return fmt.Errorf("category not found: %s", id)
}

// Get returns the category with the given id.
func (r *Repo) Get(id string) (*Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			c := categories[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category not found: %s", id)
}

// AdjustTaskCount adds delta to a category's task counter, clamping at zero.
// Unknown ids are ignored so counters stay tolerant of deleted categories.
func (r *Repo) AdjustTaskCount(id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	categories, err := r.load()
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID != id {
			continue
		}
		categories[i].TaskCount += delta
		if categories[i].TaskCount < 0 {
			categories[i].TaskCount = 0
		}
		return r.save(categories)
	}
	return nil
}

// Replace overwrites the whole category list. Used by backup import.
func (r *Repo) Replace(categories []Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(categories)
}

func newID(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}
