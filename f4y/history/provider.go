package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/file4you/f4y/organizer/interfaces"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/types"

	"github.com/google/uuid"
	_ "github.com/tursodatabase/go-libsql"
)

// Provider is the libsql-backed audit ledger of performed moves. Every
// successful relocation and every completed run lands here; the ledger is
// best-effort and its failures never abort an organize pass.
type Provider struct {
	db *sql.DB
}

// NewProvider opens or initializes the history database at the given path.
func NewProvider(path string) (*Provider, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create history directory: %w", err)
	}

	slog.Info("History database path", "path", path)

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	provider := &Provider{db: db}
	if err := provider.init(); err != nil {
		db.Close()
		return nil, err
	}
	return provider, nil
}

// init sets up the history tables.
func (p *Provider) init() error {
	_, err := p.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY UNIQUE,
		source_dir TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		moved INTEGER,
		skipped INTEGER,
		failed INTEGER,
		learned INTEGER
	)`)
	if err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	_, err = p.db.Exec(`CREATE TABLE IF NOT EXISTS moves (
		id TEXT PRIMARY KEY UNIQUE,
		run_id TEXT,
		source_path TEXT,
		target_path TEXT,
		category TEXT,
		subcategory TEXT,
		moved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create moves table: %w", err)
	}

	return nil
}

// RecordMove appends one performed relocation to the ledger.
func (p *Provider) RecordMove(ctx context.Context, runID string, op types.ItemOperation) error {
	if op.Outcome != types.OutcomeMoved || op.DryRun {
		return nil
	}

	_, err := p.db.ExecContext(ctx,
		`INSERT INTO moves (id, run_id, source_path, target_path, category, subcategory, moved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), runID, op.Item.Path, op.TargetPath,
		op.Target.Category, op.Target.Subcategory, op.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert move record: %w", err)
	}
	return nil
}

// RecordRun stores the summary row for a completed pass.
func (p *Provider) RecordRun(ctx context.Context, result *types.RunResult) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO runs (id, source_dir, started_at, finished_at, moved, skipped, failed, learned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID, result.SourceDir, result.StartTime, result.EndTime,
		result.Moved, result.Skipped, result.Failed, result.Learned)
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}

	slog.Debug("Recorded run in history ledger",
		"run_id", result.RunID, "moved", result.Moved)
	return nil
}

// RunSummary is one persisted run row.
type RunSummary struct {
	ID         string
	SourceDir  string
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Skipped    int
	Failed     int
	Learned    int
}

// ListRuns returns the most recent runs, newest first.
func (p *Provider) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT id, source_dir, started_at, finished_at, moved, skipped, failed, learned
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		if err := rows.Scan(&run.ID, &run.SourceDir, &run.StartedAt, &run.FinishedAt,
			&run.Moved, &run.Skipped, &run.Failed, &run.Learned); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run rows: %w", err)
	}

	return runs, nil
}

// MovesForRun returns the recorded relocations of one run, oldest first.
func (p *Provider) MovesForRun(ctx context.Context, runID string) ([]types.ItemOperation, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT source_path, target_path, category, subcategory, moved_at
		 FROM moves WHERE run_id = ? ORDER BY moved_at ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer rows.Close()

	var ops []types.ItemOperation
	for rows.Next() {
		var op types.ItemOperation
		if err := rows.Scan(&op.Item.Path, &op.TargetPath,
			&op.Target.Category, &op.Target.Subcategory, &op.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan move row: %w", err)
		}
		op.Item.Name = filepath.Base(op.Item.Path)
		op.Outcome = types.OutcomeMoved
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read move rows: %w", err)
	}

	return ops, nil
}

// Close releases the underlying database handle.
func (p *Provider) Close() error {
	return p.db.Close()
}

// Ensure Provider implements the recorder interface
var _ interfaces.HistoryRecorder = (*Provider)(nil)
