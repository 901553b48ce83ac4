package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ittijoseph/assetmirror/internal/model"
)

// HistoryDB provides SQLite-based storage of run outcomes. Each
// completed non-preview run appends one row; the table is never read
// back during processing, it exists so past runs can be audited.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "assetmirror.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; a single connection avoids lock
	// contention entirely for this single-process tool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close() //nolint:errcheck // Best effort cleanup
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per completed mirroring run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		files INTEGER NOT NULL,
		assets INTEGER NOT NULL,
		downloaded INTEGER NOT NULL,
		cached INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		changed INTEGER NOT NULL,
		report TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRunReport appends one run outcome. The full report is stored as a
// JSON snapshot alongside the queryable summary columns.
func (hdb *HistoryDB) SaveRunReport(ctx context.Context, report *model.RunReport) error {
	snapshot, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	_, err = hdb.db.ExecContext(ctx, `
		INSERT INTO runs (root, started_at, duration_ms, files, assets,
			downloaded, cached, failed, changed, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Root,
		report.StartedAt.UTC(),
		report.Duration.Milliseconds(),
		len(report.Files),
		report.TotalAssets(),
		report.TotalDownloaded(),
		report.TotalCached(),
		report.TotalFailed(),
		boolToInt(report.AnyChanged()),
		string(snapshot),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RunSummary is one row of the run history, without the JSON snapshot.
type RunSummary struct {
	// ID is the database row ID.
	ID int64

	// Root is the directory the run processed.
	Root string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the run's wall-clock time.
	Duration time.Duration

	// Files is the number of files processed.
	Files int

	// Assets is the number of unique references discovered.
	Assets int

	// Downloaded is the number of assets written.
	Downloaded int

	// Failed is the number of failed fetches.
	Failed int

	// Changed reports whether any file was modified.
	Changed bool
}

// RecentRuns returns the most recent runs, newest first.
func (hdb *HistoryDB) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := hdb.db.QueryContext(ctx, `
		SELECT id, root, started_at, duration_ms, files, assets,
			downloaded, failed, changed
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var durationMs int64
		var changed int
		if err := rows.Scan(&r.ID, &r.Root, &r.StartedAt, &durationMs,
			&r.Files, &r.Assets, &r.Downloaded, &r.Failed, &changed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Changed = changed != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// boolToInt converts a bool to its SQLite integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
