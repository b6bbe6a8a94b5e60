package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSnapshotLifecycle(t *testing.T) {
	tempDir := t.TempDir()
	svc := New(tempDir)

	first, err := svc.Record("default", []byte(`{"company":{"name":"Alpha"}}`), "Initial state")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first.Hash == "" {
		t.Fatal("expected snapshot hash")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "default")); err != nil {
		t.Fatalf("repo directory missing: %v", err)
	}

	second, err := svc.Record("default", []byte(`{"company":{"name":"Beta"}}`), "Rename company")
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := svc.List("default", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Hash != second.Hash {
		t.Fatalf("newest first: got %s, want %s", entries[0].Hash, second.Hash)
	}

	payload, err := svc.Payload("default", first.Hash)
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	if string(payload) != `{"company":{"name":"Alpha"}}` {
		t.Fatalf("payload = %s", payload)
	}
}

func TestListLimit(t *testing.T) {
	svc := New(t.TempDir())
	for i := 0; i < 5; i++ {
		if _, err := svc.Record("default", []byte(`{}`), "Edit"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	entries, err := svc.List("default", 3)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
}

func TestEmptyProfile(t *testing.T) {
	svc := New(t.TempDir())

	entries, err := svc.List("default", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d, want 0", len(entries))
	}

	if _, err := svc.Payload("default", "abc1234"); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("Payload() error = %v, want ErrNoHistory", err)
	}
}

func TestProfilesAreIsolated(t *testing.T) {
	svc := New(t.TempDir())
	if _, err := svc.Record("alpha", []byte(`{"a":1}`), "A"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	entries, err := svc.List("beta", 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("beta entries = %d, want 0", len(entries))
	}
}

func TestConcurrentRecords(t *testing.T) {
	svc := New(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Record("default", []byte(`{}`), "Edit"); err != nil {
				t.Errorf("Record() error = %v", err)
			}
		}()
	}
	wg.Wait()

	entries, err := svc.List("default", 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 8 {
		t.Fatalf("entries = %d, want 8", len(entries))
	}
}
