package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records a new run and returns it with its generated identifier.
func (s *Store) BeginRun(ctx context.Context, run Run) (Run, error) {
	run.ID = uuid.NewString()
	run.StartedAt = time.Now().UTC()
	dryRun := 0
	if run.DryRun {
		dryRun = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_dir, movies_dir, shows_dir, content_type, dry_run, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.SourceDir, run.MoviesDir, run.ShowsDir, run.ContentType, dryRun,
		run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the completion time and final counters on a run.
func (s *Store) FinishRun(ctx context.Context, runID string, summary Summary) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, scanned = ?, copied = ?, skipped = ?, failed = ?,
		    unresolved = ?, transcoded = ?, bytes_copied = ?
		WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		summary.Scanned, summary.Copied, summary.Skipped, summary.Failed,
		summary.Unresolved, summary.Transcoded, summary.BytesCopied,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: no run with id %s", runID)
	}
	return nil
}

// RecordFiles attaches per-file outcomes to a run in one transaction.
func (s *Store) RecordFiles(ctx context.Context, runID string, records []FileRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin file tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_files (run_id, source_path, dest_path, kind, status, detail)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, runID, rec.SourcePath, rec.DestPath, rec.Kind, rec.Status, rec.Detail); err != nil {
			return fmt.Errorf("insert file record: %w", err)
		}
	}
	return tx.Commit()
}

// RecentRuns returns the newest runs first, at most limit of them.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_dir, movies_dir, shows_dir, content_type, dry_run,
		       started_at, finished_at, scanned, copied, skipped, failed,
		       unresolved, transcoded, bytes_copied
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LastRun returns the most recent completed non-dry run, or ok=false when no
// such run exists. Used to default the source and library directories on the
// next invocation.
func (s *Store) LastRun(ctx context.Context) (Run, bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_dir, movies_dir, shows_dir, content_type, dry_run,
		       started_at, finished_at, scanned, copied, skipped, failed,
		       unresolved, transcoded, bytes_copied
		FROM runs
		WHERE finished_at IS NOT NULL AND dry_run = 0
		ORDER BY started_at DESC
		LIMIT 1`)
	if err != nil {
		return Run{}, false, fmt.Errorf("query last run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Run{}, false, rows.Err()
	}
	run, err := scanRun(rows)
	if err != nil {
		return Run{}, false, err
	}
	return run, true, rows.Err()
}

// RunFiles returns the per-file outcomes of one run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_path, dest_path, kind, status, detail
		FROM run_files
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var rec FileRecord
		if err := rows.Scan(&rec.SourcePath, &rec.DestPath, &rec.Kind, &rec.Status, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan file record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run        Run
		dryRun     int
		startedAt  string
		finishedAt sql.NullString
	)
	err := rows.Scan(&run.ID, &run.SourceDir, &run.MoviesDir, &run.ShowsDir, &run.ContentType,
		&dryRun, &startedAt, &finishedAt, &run.Scanned, &run.Copied, &run.Skipped,
		&run.Failed, &run.Unresolved, &run.Transcoded, &run.BytesCopied)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.DryRun = dryRun != 0
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt.String); err != nil {
			return Run{}, fmt.Errorf("parse finished_at: %w", err)
		}
	}
	return run, nil
}
