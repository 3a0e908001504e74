// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists which papers past runs reported, so a paper
// surfaces in at most one email.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/arxiv-agent/pkg/types"
)

const dbFile = "agent.db"

// Store manages the agent's SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dataDir/agent.db,
// creating the schema when missing.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			query TEXT,
			papers_found INTEGER,
			papers_reported INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS reported (
			id TEXT PRIMARY KEY,
			title TEXT,
			score INTEGER,
			source_type TEXT,
			run_id INTEGER REFERENCES runs(id),
			reported_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reported_run_id ON reported(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// FilterSeen splits papers into those never reported before and a count of
// papers dropped because an earlier run already reported them.
func (s *Store) FilterSeen(ctx context.Context, papers []types.Paper) ([]types.Paper, int, error) {
	var fresh []types.Paper
	seen := 0

	stmt, err := s.db.PrepareContext(ctx, `SELECT 1 FROM reported WHERE id = ?`)
	if err != nil {
		return nil, 0, fmt.Errorf("preparing lookup: %w", err)
	}
	defer stmt.Close()

	for _, p := range papers {
		var one int
		err := stmt.QueryRowContext(ctx, p.ID).Scan(&one)
		switch {
		case err == sql.ErrNoRows:
			fresh = append(fresh, p)
		case err != nil:
			return nil, 0, fmt.Errorf("checking %s: %w", p.ID, err)
		default:
			seen++
		}
	}
	return fresh, seen, nil
}

// RecordRun stores a run summary and marks every reported paper, in one
// transaction.
func (s *Store) RecordRun(ctx context.Context, query string, found int, reported []types.Paper) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, query, papers_found, papers_reported) VALUES (?, ?, ?, ?)`,
		now, query, found, len(reported),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO reported (id, title, score, source_type, run_id, reported_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range reported {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Title, p.Score, string(p.SourceType), runID, now); err != nil {
			return fmt.Errorf("inserting paper %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Run is one pipeline invocation summary.
type Run struct {
	ID             int64
	StartedAt      time.Time
	Query          string
	PapersFound    int
	PapersReported int
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, query, papers_found, papers_reported
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Query, &r.PapersFound, &r.PapersReported); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ReportedPaper is one paper from the history table.
type ReportedPaper struct {
	ID         string
	Title      string
	Score      int
	SourceType string
	ReportedAt time.Time
}

// RecentPapers returns the most recently reported papers, newest first.
func (s *Store) RecentPapers(ctx context.Context, limit int) ([]ReportedPaper, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, score, source_type, reported_at
		 FROM reported ORDER BY reported_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reported papers: %w", err)
	}
	defer rows.Close()

	var papers []ReportedPaper
	for rows.Next() {
		var p ReportedPaper
		var reported string
		if err := rows.Scan(&p.ID, &p.Title, &p.Score, &p.SourceType, &reported); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, reported); err == nil {
			p.ReportedAt = t
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}
