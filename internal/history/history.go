// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists an append-only audit record of check
// outcomes in a SQLite database, so past verifications remain queryable
// after their CheckLogs are replaced by newer runs.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/refcheck/pkg/types"
)

// Store manages the check-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at dbPath, creating parent
// directories and the schema as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS checks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id TEXT NOT NULL,
			checked_at TEXT NOT NULL,
			checked_with TEXT NOT NULL,
			status TEXT NOT NULL,
			severity TEXT,
			paper_id TEXT,
			error TEXT,
			fields TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_entry_id ON checks(entry_id)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_checked_at ON checks(checked_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one check outcome to the audit log. The field verdicts
// are stored as a JSON blob.
func (s *Store) Record(entryID string, log *types.CheckLog) error {
	var fieldsJSON []byte
	if log.Fields != nil {
		var err error
		fieldsJSON, err = json.Marshal(log.Fields)
		if err != nil {
			return fmt.Errorf("marshaling field checks: %w", err)
		}
	}

	_, err := s.db.Exec(
		`INSERT INTO checks (entry_id, checked_at, checked_with, status, severity, paper_id, error, fields)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entryID,
		log.CheckedAt.UTC().Format(time.RFC3339),
		log.CheckedWith,
		string(log.Status),
		string(log.MismatchSeverity),
		log.PaperID,
		log.Err,
		string(fieldsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting check record: %w", err)
	}
	return nil
}

// Entry is one audit-log row.
type Entry struct {
	EntryID     string             `json:"entry_id"`
	CheckedAt   time.Time          `json:"checked_at"`
	CheckedWith string             `json:"checked_with"`
	Status      types.CheckStatus  `json:"status"`
	Severity    types.Severity     `json:"severity,omitempty"`
	PaperID     string             `json:"paper_id,omitempty"`
	Err         string             `json:"error,omitempty"`
	Fields      *types.FieldChecks `json:"fields,omitempty"`
}

// List returns audit rows newest first, optionally filtered to one
// entry. limit <= 0 means no limit.
func (s *Store) List(entryID string, limit int) ([]Entry, error) {
	query := `SELECT entry_id, checked_at, checked_with, status, severity, paper_id, error, fields
	          FROM checks`
	var args []any
	if entryID != "" {
		query += ` WHERE entry_id = ?`
		args = append(args, entryID)
	}
	query += ` ORDER BY checked_at DESC, rowid DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying check history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var checkedAt, status, severity, fieldsJSON string
		if err := rows.Scan(&e.EntryID, &checkedAt, &e.CheckedWith, &status, &severity, &e.PaperID, &e.Err, &fieldsJSON); err != nil {
			return nil, fmt.Errorf("scanning check record: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, checkedAt); parseErr == nil {
			e.CheckedAt = t
		}
		e.Status = types.CheckStatus(status)
		e.Severity = types.Severity(severity)
		if fieldsJSON != "" {
			var fields types.FieldChecks
			if err := json.Unmarshal([]byte(fieldsJSON), &fields); err == nil {
				e.Fields = &fields
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
