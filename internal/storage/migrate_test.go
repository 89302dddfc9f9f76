package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(t.Context(), db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(t.Context(), db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	id, err := repo.CreateReminder(t.Context(), Reminder{
		Text:        "Roundtrip reminder",
		Description: "migration compatibility",
		DueDate:     time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		Priority:    1,
	})
	if err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetReminder(t.Context(), id)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Text != "Roundtrip reminder" {
		t.Fatalf("unexpected text after roundtrip: %q", got.Text)
	}
}
