// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists papers and saved-paper records in SQLite. It owns
// the write path to both tables; author and category lists are serialized as
// JSON-array text columns.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperdesk/pkg/types"
)

// ErrNotFound reports that no saved record exists for the requested ID.
var ErrNotFound = errors.New("saved paper not found")

// Store manages the paperdesk SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(cfg types.DatabaseConfig) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			arxiv_id TEXT NOT NULL UNIQUE,
			version TEXT,
			title TEXT NOT NULL,
			summary TEXT,
			authors TEXT,
			primary_category TEXT,
			categories TEXT,
			published TEXT,
			updated TEXT,
			pdf_url TEXT,
			abs_url TEXT,
			doi TEXT,
			journal_ref TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_primary_category ON papers(primary_category)`,
		`CREATE TABLE IF NOT EXISTS saved_papers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_id INTEGER NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			tags TEXT,
			note TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_papers_paper_id ON saved_papers(paper_id)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_papers_created_at ON saved_papers(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// timeNow is stubbed in tests that pin record timestamps.
var timeNow = time.Now

// timeLayout is the column format for all timestamps. RFC3339 in UTC sorts
// lexicographically in chronological order.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatOptTime returns a driver value for a nullable timestamp column.
func formatOptTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func parseOptTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// marshalList serializes a string list for a JSON-array text column.
func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// unmarshalList deserializes a JSON-array text column. Empty or malformed
// text normalizes to an empty list, never an error.
func unmarshalList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(s.String), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}
