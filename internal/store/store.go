// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store writes collected people to their output sinks: indented JSON
// or YAML documents, or a SQLite database that accumulates across runs and
// can be listed and searched afterwards.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

// SQLiteStore persists PersonRecords in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS people (
			scholar_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			collected_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS publications (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			scholar_id TEXT NOT NULL REFERENCES people(scholar_id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			title TEXT,
			link TEXT,
			authors TEXT,
			publication_date TEXT,
			conference TEXT,
			pages TEXT,
			publisher TEXT,
			description TEXT,
			total_citations INTEGER,
			UNIQUE (scholar_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_publications_scholar_id ON publications(scholar_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='publications_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	// FTS4 ships in the default go-sqlite3 build; FTS5 needs a build tag.
	ftsStatements := []string{
		`CREATE VIRTUAL TABLE publications_fts USING fts4(title, description)`,
		`CREATE TRIGGER publications_ai AFTER INSERT ON publications BEGIN
			INSERT INTO publications_fts(docid, title, description) VALUES (new.rowid, new.title, new.description);
		END`,
		`CREATE TRIGGER publications_ad AFTER DELETE ON publications BEGIN
			DELETE FROM publications_fts WHERE docid = old.rowid;
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// SaveBatch saves every person in result.
func (s *SQLiteStore) SaveBatch(ctx context.Context, result types.BatchResult) error {
	for _, p := range result.People {
		if err := s.SavePerson(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// SavePerson replaces the stored person and publications for p.ScholarID in
// one transaction.
func (s *SQLiteStore) SavePerson(ctx context.Context, p types.PersonRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO people (scholar_id, name, collected_at) VALUES (?, ?, ?)
		 ON CONFLICT(scholar_id) DO UPDATE SET name=excluded.name, collected_at=excluded.collected_at`,
		p.ScholarID, p.Name, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting person %s: %w", p.ScholarID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM publications WHERE scholar_id = ?`, p.ScholarID); err != nil {
		return fmt.Errorf("deleting old publications: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO publications (scholar_id, position, title, link, authors, publication_date,
			conference, pages, publisher, description, total_citations)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, w := range p.Publications {
		authorsJSON, _ := json.Marshal(w.Authors)
		var citations sql.NullInt64
		if w.TotalCitations != nil {
			citations = sql.NullInt64{Int64: int64(*w.TotalCitations), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			p.ScholarID, i, w.Title, w.Link, string(authorsJSON), w.PublicationDate,
			w.Conference, w.Pages, w.Publisher, w.Description, citations,
		)
		if err != nil {
			return fmt.Errorf("inserting publication %d of %s: %w", i, p.ScholarID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", p.ScholarID, err)
	}
	return nil
}

// PersonSummary is one row of the stored people listing.
type PersonSummary struct {
	ScholarID    string
	Name         string
	Publications int
	Citations    int
	CollectedAt  time.Time
}

// People lists stored people ordered by name.
func (s *SQLiteStore) People(ctx context.Context) ([]PersonSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.scholar_id, p.name, p.collected_at,
			count(w.rowid), coalesce(sum(w.total_citations), 0)
		 FROM people p LEFT JOIN publications w ON w.scholar_id = p.scholar_id
		 GROUP BY p.scholar_id
		 ORDER BY p.name, p.scholar_id`)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var out []PersonSummary
	for rows.Next() {
		var ps PersonSummary
		var collected string
		if err := rows.Scan(&ps.ScholarID, &ps.Name, &collected, &ps.Publications, &ps.Citations); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		ps.CollectedAt, _ = time.Parse(time.RFC3339, collected)
		out = append(out, ps)
	}
	return out, rows.Err()
}

// Person loads one stored person with publications in listing order. It
// returns sql.ErrNoRows (wrapped) when scholarID is unknown.
func (s *SQLiteStore) Person(ctx context.Context, scholarID string) (types.PersonRecord, error) {
	p := types.PersonRecord{ScholarID: scholarID}
	err := s.db.QueryRowContext(ctx, `SELECT name FROM people WHERE scholar_id = ?`, scholarID).Scan(&p.Name)
	if err != nil {
		return types.PersonRecord{}, fmt.Errorf("loading person %s: %w", scholarID, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT title, link, authors, publication_date, conference, pages, publisher, description, total_citations
		 FROM publications WHERE scholar_id = ? ORDER BY position`, scholarID)
	if err != nil {
		return types.PersonRecord{}, fmt.Errorf("loading publications of %s: %w", scholarID, err)
	}
	defer rows.Close()

	p.Publications = []types.WorkRecord{}
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return types.PersonRecord{}, err
		}
		p.Publications = append(p.Publications, w)
	}
	return p, rows.Err()
}

// Match is a full-text search hit.
type Match struct {
	ScholarID string
	Name      string
	Title     string
	Date      string
}

// Search finds stored publications whose title or description matches the
// full-text query.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT w.scholar_id, p.name, w.title, w.publication_date
		 FROM publications_fts
		 JOIN publications w ON w.rowid = publications_fts.docid
		 JOIN people p ON p.scholar_id = w.scholar_id
		 WHERE publications_fts MATCH ?
		 ORDER BY p.name, w.position
		 LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching publications: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		var date sql.NullString
		if err := rows.Scan(&m.ScholarID, &m.Name, &m.Title, &date); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		m.Date = date.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanWork(rows *sql.Rows) (types.WorkRecord, error) {
	var (
		w         types.WorkRecord
		authors   string
		citations sql.NullInt64
		fields    [7]sql.NullString
	)
	if err := rows.Scan(&fields[0], &fields[1], &authors, &fields[2], &fields[3],
		&fields[4], &fields[5], &fields[6], &citations); err != nil {
		return w, fmt.Errorf("scanning publication: %w", err)
	}
	w.Title = fields[0].String
	w.Link = fields[1].String
	w.PublicationDate = fields[2].String
	w.Conference = fields[3].String
	w.Pages = fields[4].String
	w.Publisher = fields[5].String
	w.Description = fields[6].String
	if authors != "" && authors != "null" {
		if err := json.Unmarshal([]byte(authors), &w.Authors); err != nil {
			return w, fmt.Errorf("decoding authors: %w", err)
		}
	}
	if citations.Valid {
		n := int(citations.Int64)
		w.TotalCitations = &n
	}
	return w, nil
}
