package kv

import "testing"

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(KeyCategories); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(KeyCategories, []byte(`["a"]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(KeyCategories, []byte(`["a","b"]`)); err != nil {
		t.Fatalf("Set (upsert): %v", err)
	}

	got, ok, err := s.Get(KeyCategories)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(got) != `["a","b"]` {
		t.Errorf("Get = %s ok=%v, want upserted value", got, ok)
	}

	if err := s.Delete(KeyCategories); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(KeyCategories); ok {
		t.Error("key still present after Delete")
	}
}
