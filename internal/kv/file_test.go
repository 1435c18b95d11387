package kv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(KeyTasks); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v, want absent", ok, err)
	}

	payload := []byte(`[{"id":"task-1"}]`)
	if err := s.Set(KeyTasks, payload); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := s.Get(KeyTasks)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get: key absent after Set")
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %s, want %s", got, payload)
	}
}

func TestFileStoreDeleteAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Delete("never-set"); err != nil {
		t.Errorf("Delete of absent key: %v", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(KeySettings, []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(KeySettings); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(KeySettings); ok {
		t.Error("key still present after Delete")
	}
}

func TestFileStoreBackupWrittenOnOverwrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(KeyTasks, []byte(`["v1"]`)); err != nil {
		t.Fatalf("Set v1: %v", err)
	}
	if err := s.Set(KeyTasks, []byte(`["v2"]`)); err != nil {
		t.Fatalf("Set v2: %v", err)
	}

	bak, err := os.ReadFile(filepath.Join(dir, "tasks.json.bak"))
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(bak) != `["v1"]` {
		t.Errorf("backup = %s, want previous contents", bak)
	}
}

func TestFileStoreRecoversFromBackup(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Set(KeyTasks, []byte(`["good"]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(KeyTasks, []byte(`["newer"]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Corrupt the live file; the previous write left a valid backup.
	path := filepath.Join(dir, "tasks.json")
	if err := os.WriteFile(path, []byte(`{"truncated`), 0o600); err != nil {
		t.Fatalf("corrupting file: %v", err)
	}

	got, ok, err := s.Get(KeyTasks)
	if err != nil {
		t.Fatalf("Get after corruption: %v", err)
	}
	if !ok || string(got) != `["good"]` {
		t.Errorf("Get = %s ok=%v, want backup contents", got, ok)
	}

	live, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading restored file: %v", err)
	}
	if string(live) != `["good"]` {
		t.Errorf("live file = %s, want restored backup", live)
	}
}

func TestFileStoreQuarantinesUnrecoverable(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// Corrupt data with no backup available.
	path := filepath.Join(dir, "tasks.json")
	if err := os.WriteFile(path, []byte(`not json at all`), 0o600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	if _, ok, err := s.Get(KeyTasks); err != nil || ok {
		t.Fatalf("Get = ok=%v err=%v, want treated as absent", ok, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	found := false
	for _, e := range entries {
		if strings.Contains(e.Name(), ".corrupt.") {
			found = true
		}
	}
	if !found {
		t.Error("no quarantined copy of the corrupt file")
	}
}

func TestFileStoreEmptyFileTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), nil, 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	if _, ok, err := s.Get(KeyTasks); err != nil || ok {
		t.Errorf("Get = ok=%v err=%v, want absent", ok, err)
	}
}
