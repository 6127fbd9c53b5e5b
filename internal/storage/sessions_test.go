package storage

import (
	"path/filepath"
	"testing"

	"focusdock/internal/core/model"
)

func newTestSessionStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := NewSessionStoreMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionStoreOpensOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "sessions.db")
	store, err := NewSessionStore(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	// Reopen; migration must be idempotent.
	store, err = NewSessionStore(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestSessionStore(t)

	work := &model.Category{ID: "cat_1", Name: "Work"}
	if err := store.Record(model.Completion{Mode: model.ModeFocus25, DurationMinutes: 25}, work); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(model.Completion{Mode: model.ModeBreak5, DurationMinutes: 5}, nil); err != nil {
		t.Fatal(err)
	}

	records, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Newest first.
	if records[0].Mode != model.ModeBreak5 {
		t.Fatalf("expected break session first, got %s", records[0].Mode)
	}
	if records[1].CategoryName != "Work" {
		t.Fatalf("category not stored: %+v", records[1])
	}
	if records[0].CategoryID != "" {
		t.Fatalf("nil category stored as %q", records[0].CategoryID)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	store := newTestSessionStore(t)
	for i := 0; i < 8; i++ {
		if err := store.Record(model.Completion{Mode: model.ModeFocus25, DurationMinutes: 25}, nil); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Recent(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
}

func TestFocusMinutesByDayExcludesBreaks(t *testing.T) {
	store := newTestSessionStore(t)

	if err := store.Record(model.Completion{Mode: model.ModeFocus25, DurationMinutes: 25}, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(model.Completion{Mode: model.ModeFocus50, DurationMinutes: 50}, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(model.Completion{Mode: model.ModeBreak10, DurationMinutes: 10}, nil); err != nil {
		t.Fatal(err)
	}

	totals, err := store.FocusMinutesByDay(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected one day of totals, got %v", totals)
	}
	for _, minutes := range totals {
		if minutes != 75 {
			t.Fatalf("expected 75 focus minutes, got %d", minutes)
		}
	}
}
