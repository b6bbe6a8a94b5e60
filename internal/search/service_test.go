package search

import (
	"testing"

	"docmint/internal/refdata"
)

func TestMemorySearch(t *testing.T) {
	m := NewMemory()

	t.Run("empty query lists everything", func(t *testing.T) {
		results, total, err := m.Search("", 100)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if want := len(refdata.Universities()); total != want || len(results) != want {
			t.Errorf("total = %d results = %d, want %d", total, len(results), want)
		}
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		results, _, err := m.Search("northgate", 10)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(results) != 1 || results[0].ShortName != "NSU" {
			t.Errorf("results = %+v, want one NSU hit", results)
		}
		if results[0].Index != 0 {
			t.Errorf("index = %d, want position in reference list", results[0].Index)
		}
	})

	t.Run("matches departments", func(t *testing.T) {
		results, _, err := m.Search("forestry", 10)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(results) != 1 || results[0].ShortName != "WSC" {
			t.Errorf("results = %+v, want the forestry school", results)
		}
	})

	t.Run("limit caps results but not total", func(t *testing.T) {
		results, total, err := m.Search("", 3)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(results) != 3 {
			t.Errorf("results = %d, want 3", len(results))
		}
		if total != len(refdata.Universities()) {
			t.Errorf("total = %d, want full directory size", total)
		}
	})

	t.Run("no match", func(t *testing.T) {
		results, total, err := m.Search("zzz-nothing", 10)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(results) != 0 || total != 0 {
			t.Errorf("results = %+v total = %d, want none", results, total)
		}
	})
}

func TestServiceFallsBackWithoutMeili(t *testing.T) {
	svc := NewService(nil, NewMemory())
	resp := svc.Search("mathematics", 10)
	if resp.Total == 0 {
		t.Error("expected hits from the memory fallback")
	}
	if resp.Query != "mathematics" {
		t.Errorf("query echo = %q", resp.Query)
	}
	if resp.Results == nil {
		t.Error("results must be non-nil for JSON encoding")
	}
}
