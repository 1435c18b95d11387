package kv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskify/internal/fsutil"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// FileStore keeps one JSON file per key under a private data directory.
// Writes are atomic, and each write keeps a best-effort .bak sibling so a
// corrupt file can be recovered on the next read.
type FileStore struct {
	dataDir string
}

// NewFileStore creates the data directory if needed and returns a store.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// DataDir returns the directory holding the store's files.
func (s *FileStore) DataDir() string {
	return s.dataDir
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dataDir, key+".json")
}

// Get reads the value for key. A corrupt file is recovered from its .bak
// sibling when possible; otherwise the broken file is preserved under a
// .corrupt.<timestamp> name and the key is treated as absent.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	path := s.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s.recover(key, fmt.Errorf("%s is empty", key))
	}
	if !validJSON(data) {
		return s.recover(key, fmt.Errorf("%s contains invalid JSON", key))
	}
	return data, true, nil
}

func (s *FileStore) recover(key string, cause error) ([]byte, bool, error) {
	path := s.path(key)

	// Try the backup sibling first.
	bak, err := os.ReadFile(path + ".bak")
	if err == nil && len(bytes.TrimSpace(bak)) > 0 && validJSON(bak) {
		s.quarantine(path)
		if werr := fsutil.WriteFileAtomic(path, bak, dataFilePerm); werr != nil {
			return nil, false, fmt.Errorf("%v (restore from %s.bak: %w)", cause, key, werr)
		}
		return bak, true, nil
	}

	// No usable backup: preserve the broken file and report the key absent.
	s.quarantine(path)
	return nil, false, nil
}

func (s *FileStore) quarantine(path string) {
	corrupt := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	_ = os.Rename(path, corrupt)
}

// Set writes the value for key atomically, keeping a .bak of the previous
// contents.
func (s *FileStore) Set(key string, value []byte) error {
	path := s.path(key)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, value, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}

func validJSON(data []byte) bool {
	var v any
	return json.Unmarshal(data, &v) == nil
}
