// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

// Store is the SQLite catalog index: one row per cataloged paper with an
// FTS5 shadow table over title, authors, categories, and path. The index
// is a regenerable output artifact, never a source of truth; deleting
// the file and re-running index rebuilds it exactly.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index database at dbPath and ensures the
// schema exists.
func NewStore(dbPath string, maxResults int) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = 20
	}
	s := &Store{db: db, maxResults: maxResults}

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
			path TEXT NOT NULL UNIQUE,
			title TEXT,
			authors TEXT,
			year INTEGER,
			categories TEXT,
			filename TEXT,
			size INTEGER,
			pages INTEGER,
			mod_time TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, authors, categories, path, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title, authors, categories, path)
				VALUES (new.rowid, new.title, new.authors, new.categories, new.path);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, authors, categories, path)
				VALUES('delete', old.rowid, old.title, old.authors, old.categories, old.path);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title, authors, categories, path)
				VALUES('delete', old.rowid, old.title, old.authors, old.categories, old.path);
				INSERT INTO papers_fts(rowid, title, authors, categories, path)
				VALUES (new.rowid, new.title, new.authors, new.categories, new.path);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// IndexSummary holds counts from one indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of papers processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// HasFailures reports whether any papers failed indexing.
func (s IndexSummary) HasFailures() bool {
	return s.Failed > 0
}

// Index upserts the records into the database, printing per-paper
// status to w. Papers whose size and modification time are unchanged
// since the last run are skipped; records are matched to scan files by
// source path for the freshness check.
func (s *Store) Index(ctx context.Context, tree *scan.Tree, records []types.PaperRecord, w io.Writer) (IndexSummary, error) {
	modTimes := make(map[string]string, len(tree.Files))
	for _, f := range tree.Files {
		modTimes[f.Path] = f.ModTime.UTC().Format(time.RFC3339Nano)
	}

	var summary IndexSummary

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := filepath.Base(rec.SourcePath)
		modTime := modTimes[rec.SourcePath]

		var storedMod string
		var storedSize int64
		err := s.db.QueryRowContext(ctx,
			`SELECT mod_time, size FROM papers WHERE path = ?`, rec.SourcePath,
		).Scan(&storedMod, &storedSize)

		if err == nil && storedMod == modTime && storedSize == rec.FileSize {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.upsert(ctx, rec, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", name)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", name)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func (s *Store) upsert(ctx context.Context, rec types.PaperRecord, modTime string) error {
	authorsJSON, _ := json.Marshal(rec.Authors)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (path, title, authors, year, categories, filename, size, pages, mod_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			title=excluded.title, authors=excluded.authors, year=excluded.year,
			categories=excluded.categories, filename=excluded.filename,
			size=excluded.size, pages=excluded.pages, mod_time=excluded.mod_time`,
		rec.SourcePath, rec.Title, string(authorsJSON), rec.Year,
		strings.Join(rec.Categories, ";"), filepath.Base(rec.SourcePath),
		rec.FileSize, rec.PageCount, modTime,
	)
	if err != nil {
		return fmt.Errorf("upserting paper: %w", err)
	}
	return nil
}

// SearchOptions holds parameters for index queries.
type SearchOptions struct {
	// Query is the FTS5 full-text search string. Empty means
	// structured-only filtering.
	Query string

	// Category filters to papers carrying the category.
	Category string

	// Year filters to an exact publication year; 0 disables the filter.
	Year int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the options select nothing.
func (o SearchOptions) IsEmpty() bool {
	return o.Query == "" && o.Category == "" && o.Year == 0
}

// SearchResult is one index hit with its FTS rank (0 for structured-only
// queries).
type SearchResult struct {
	types.PaperRecord
	Rank float64 `json:"rank" yaml:"rank"`
}

// Search queries the index. Full-text queries are ranked by FTS5
// relevance; structured-only queries sort by year descending then title,
// matching the catalog's row order.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.path, p.title, p.authors, p.year, p.categories, p.size, p.pages, papers_fts.rank
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT p.path, p.title, p.authors, p.year, p.categories, p.size, p.pages, 0 AS rank
			FROM papers p
			WHERE 1=1`)
	}

	if opts.Category != "" {
		qb.WriteString(` AND (';' || p.categories || ';') LIKE ?`)
		args = append(args, "%;"+opts.Category+";%")
	}
	if opts.Year != 0 {
		qb.WriteString(` AND p.year = ?`)
		args = append(args, opts.Year)
	}

	if useFTS {
		qb.WriteString(` ORDER BY papers_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.year DESC, lower(p.title), p.path`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var authorsJSON, categories string
		if err := rows.Scan(&r.SourcePath, &r.Title, &authorsJSON, &r.Year,
			&categories, &r.FileSize, &r.PageCount, &r.Rank); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if authorsJSON != "" {
			json.Unmarshal([]byte(authorsJSON), &r.Authors)
		}
		if categories != "" {
			r.Categories = strings.Split(categories, ";")
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// FormatSearchResults writes hits as a ranked table to w.
func FormatSearchResults(results []SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %-24s  %s\n",
		"Rank", "Title", "Authors", "Year", "Categories", "File")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range results {
		year := ""
		if r.HasYear() {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4s  %-24s  %s\n",
			i+1,
			truncate(r.Title, 50),
			truncate(formatAuthors(r.Authors), 20),
			year,
			truncate(strings.Join(r.Categories, ";"), 24),
			filepath.Base(r.SourcePath))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}
