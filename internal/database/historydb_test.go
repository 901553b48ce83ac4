package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ittijoseph/assetmirror/internal/model"
)

// TestOpen tests database creation and opening.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database with default options", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		defer db.Close() //nolint:errcheck // Test cleanup

		if _, err := os.Stat(db.Path()); err != nil {
			t.Errorf("database file not created: %v", err)
		}
		if filepath.Base(db.Path()) != "assetmirror.db" {
			t.Errorf("Path = %q, want assetmirror.db basename", db.Path())
		}
	})

	t.Run("missing database without create option is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("creates nested directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "data")
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}
		defer db.Close() //nolint:errcheck // Test cleanup
	})
}

// TestHistoryDB_SaveRunReport tests saving and listing run outcomes.
func TestHistoryDB_SaveRunReport(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	ctx := context.Background()

	first := model.NewRunReport("./site")
	first.StartedAt = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	first.Duration = 2 * time.Second
	f := model.NewFileReport("index.html")
	f.AssetsFound = 3
	f.Downloaded = 2
	f.Cached = 1
	f.Changed = true
	first.AddFile(f)

	second := model.NewRunReport("./site")
	second.StartedAt = time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)
	second.Duration = time.Second
	g := model.NewFileReport("index.html")
	g.AssetsFound = 3
	g.Cached = 3
	second.AddFile(g)

	if err := db.SaveRunReport(ctx, first); err != nil {
		t.Fatalf("SaveRunReport returned error: %v", err)
	}
	if err := db.SaveRunReport(ctx, second); err != nil {
		t.Fatalf("SaveRunReport returned error: %v", err)
	}

	runs, err := db.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns returned %d rows, want 2", len(runs))
	}

	// Newest first.
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Errorf("runs not ordered newest first: %v then %v", runs[0].StartedAt, runs[1].StartedAt)
	}
	if runs[1].Root != "./site" || runs[1].Files != 1 || runs[1].Assets != 3 {
		t.Errorf("oldest run = %+v", runs[1])
	}
	if !runs[1].Changed {
		t.Error("oldest run Changed = false, want true")
	}
	if runs[0].Changed {
		t.Error("newest run Changed = true, want false")
	}
	if runs[1].Downloaded != 2 {
		t.Errorf("oldest run Downloaded = %d, want 2", runs[1].Downloaded)
	}
}

// TestHistoryDB_RecentRuns_Limit tests the row limit.
func TestHistoryDB_RecentRuns_Limit(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		r := model.NewRunReport("./site")
		if err := db.SaveRunReport(ctx, r); err != nil {
			t.Fatalf("SaveRunReport returned error: %v", err)
		}
	}

	runs, err := db.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("RecentRuns returned %d rows, want 3", len(runs))
	}
}

// TestHistoryDB_RecentRuns_Empty tests listing with no rows.
func TestHistoryDB_RecentRuns_Empty(t *testing.T) {
	t.Parallel()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close() //nolint:errcheck // Test cleanup

	runs, err := db.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns returned error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("RecentRuns returned %d rows, want 0", len(runs))
	}
}
