package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"taskify/internal/fsutil"
)

// Version constants for the snapshot format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	SnapshotsDir    = "backups"
)

// Data files that snapshots cover.
var dataFiles = []string{"tasks.json", "categories.json", "settings.json"}

// Manager handles snapshot and restore operations over the data directory.
type Manager struct {
	dataDir     string
	snapshotDir string
	appVersion  string
}

// Manifest contains metadata about a snapshot.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// SnapshotInfo contains summary information about a snapshot.
type SnapshotInfo struct {
	Name      string         // Directory name (2025-12-15_143022_001)
	Path      string         // Full path to snapshot directory
	CreatedAt time.Time      // When the snapshot was created
	Stats     map[string]int // Item counts (tasks, categories)
}

// NewManager creates a snapshot manager for the given data directory.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:     dataDir,
		snapshotDir: filepath.Join(dataDir, SnapshotsDir),
		appVersion:  appVersion,
	}
}

// Create copies all data files into a new timestamped snapshot and returns
// its name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.snapshotDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	// Milliseconds in the name keep rapid snapshots distinct.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	snapshotPath := filepath.Join(m.snapshotDir, name)

	if err := os.MkdirAll(snapshotPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot: %w", err)
	}

	var copiedFiles []string
	stats := make(map[string]int)

	for _, filename := range dataFiles {
		srcPath := filepath.Join(m.dataDir, filename)
		dstPath := filepath.Join(snapshotPath, filename)

		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}

		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			_ = os.RemoveAll(snapshotPath)
			return "", fmt.Errorf("failed to copy %s: %w", filename, err)
		}

		copiedFiles = append(copiedFiles, filename)

		if count, err := countItems(srcPath); err == nil && count >= 0 {
			stats[strings.TrimSuffix(filename, ".json")] = count
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}

	manifestPath := filepath.Join(snapshotPath, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		_ = os.RemoveAll(snapshotPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]SnapshotInfo, error) {
	if _, err := os.Stat(m.snapshotDir); os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}

	entries, err := os.ReadDir(m.snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		snapshotPath := filepath.Join(m.snapshotDir, entry.Name())
		manifestPath := filepath.Join(snapshotPath, ManifestFile)

		var manifest Manifest
		if err := readJSON(manifestPath, &manifest); err != nil {
			// Fall back to the timestamp encoded in the name.
			createdAt, parseErr := parseSnapshotName(entry.Name())
			if parseErr != nil {
				continue
			}
			manifest.CreatedAt = createdAt
			manifest.Stats = make(map[string]int)
		}

		snapshots = append(snapshots, SnapshotInfo{
			Name:      entry.Name(),
			Path:      snapshotPath,
			CreatedAt: manifest.CreatedAt,
			Stats:     manifest.Stats,
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})

	return snapshots, nil
}

// Restore copies a snapshot's files back over the data directory. A safety
// snapshot of the current state is taken first.
func (m *Manager) Restore(name string) error {
	if err := validateSnapshotName(name); err != nil {
		return err
	}

	snapshotPath := filepath.Join(m.snapshotDir, name)
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot not found: %s", name)
	}

	manifestPath := filepath.Join(snapshotPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		manifest.Files = dataFiles
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety snapshot: %w", err)
	}

	for _, filename := range manifest.Files {
		srcPath := filepath.Join(snapshotPath, filename)
		dstPath := filepath.Join(m.dataDir, filename)

		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}

		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to restore %s (safety snapshot: %s): %w", filename, safetyName, err)
		}
	}

	for _, filename := range manifest.Files {
		dstPath := filepath.Join(m.dataDir, filename)
		if err := validateJSON(dstPath); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety snapshot: %s): %w", filename, safetyName, err)
		}
	}

	return nil
}

// RestoreLatest restores the most recent snapshot.
func (m *Manager) RestoreLatest() error {
	snapshots, err := m.List()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshots available")
	}
	return m.Restore(snapshots[0].Name)
}

// Delete removes a snapshot.
func (m *Manager) Delete(name string) error {
	if err := validateSnapshotName(name); err != nil {
		return err
	}

	snapshotPath := filepath.Join(m.snapshotDir, name)
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot not found: %s", name)
	}
	return os.RemoveAll(snapshotPath)
}

// Prune removes old snapshots, keeping the keepCount most recent, and
// returns how many were deleted.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	snapshots, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(snapshots) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, snap := range snapshots[keepCount:] {
		if err := m.Delete(snap.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// Get returns information about one snapshot.
func (m *Manager) Get(name string) (*SnapshotInfo, error) {
	if err := validateSnapshotName(name); err != nil {
		return nil, err
	}

	snapshotPath := filepath.Join(m.snapshotDir, name)
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("snapshot not found: %s", name)
	}

	manifestPath := filepath.Join(snapshotPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		createdAt, parseErr := parseSnapshotName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid snapshot: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &SnapshotInfo{
		Name:      name,
		Path:      snapshotPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

// Helper functions

func validateSnapshotName(name string) error {
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid snapshot name: %q", name)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid snapshot name: %q", name)
	}
	if _, err := parseSnapshotName(name); err != nil {
		return fmt.Errorf("invalid snapshot name: %q", name)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

// writeJSON writes a value as JSON to a file.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// readJSON reads JSON from a file into a value.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file contains valid JSON.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is OK
		}
		return err
	}

	var v interface{}
	return json.Unmarshal(data, &v)
}

// countItems counts the items in an array data file. Returns -1 for files
// that do not hold an array (settings.json).
func countItems(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return -1, nil
	}
	return len(items), nil
}

// parseSnapshotName parses a snapshot directory name into a timestamp.
// Supports the plain format (2006-01-02_150405) and the millisecond-suffixed
// one (2006-01-02_150405_XXX).
func parseSnapshotName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid snapshot format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.Parse("2006-01-02_150405", name)
}
