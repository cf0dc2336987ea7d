// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/paperdesk/pkg/types"
)

// savedColumns is the join projection shared by all saved-paper reads.
const savedColumns = `s.id, s.paper_id, s.tags, s.note, s.created_at, s.updated_at,
	p.arxiv_id, p.version, p.title, p.summary, p.authors, p.primary_category,
	p.categories, p.published, p.updated, p.pdf_url, p.abs_url, p.doi, p.journal_ref`

// upsertPaper creates or fully replaces the paper row keyed by arxiv_id and
// returns its primary key. All descriptive fields are overwritten in place;
// created_at survives updates.
func upsertPaper(ctx context.Context, tx *sql.Tx, p types.Paper, now string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO papers (arxiv_id, version, title, summary, authors, primary_category,
			categories, published, updated, pdf_url, abs_url, doi, journal_ref,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(arxiv_id) DO UPDATE SET
			version=excluded.version, title=excluded.title, summary=excluded.summary,
			authors=excluded.authors, primary_category=excluded.primary_category,
			categories=excluded.categories, published=excluded.published,
			updated=excluded.updated, pdf_url=excluded.pdf_url, abs_url=excluded.abs_url,
			doi=excluded.doi, journal_ref=excluded.journal_ref,
			updated_at=excluded.updated_at`,
		p.ArxivID, p.Version, p.Title, p.Summary, marshalList(p.Authors),
		p.PrimaryCategory, marshalList(p.Categories),
		formatOptTime(p.Published), formatOptTime(p.Updated),
		p.PDFURL, p.AbsURL, p.DOI, p.JournalRef, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting paper: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM papers WHERE arxiv_id = ?`, p.ArxivID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("looking up paper id: %w", err)
	}
	return id, nil
}

// SavePaper upserts the paper and creates or reuses its saved record in one
// transaction. Tags and note apply only when non-nil; a nil value leaves the
// stored value untouched, giving patch semantics on repeat saves.
func (s *Store) SavePaper(ctx context.Context, p types.Paper, tags, note *string) (types.SavedPaper, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.SavedPaper{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(timeNow())

	paperID, err := upsertPaper(ctx, tx, p, now)
	if err != nil {
		return types.SavedPaper{}, err
	}

	var savedID int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM saved_papers WHERE paper_id = ?`, paperID,
	).Scan(&savedID)
	switch {
	case err == sql.ErrNoRows:
		res, insErr := tx.ExecContext(ctx,
			`INSERT INTO saved_papers (paper_id, tags, note, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			paperID, optString(tags), optString(note), now, now,
		)
		if insErr != nil {
			return types.SavedPaper{}, fmt.Errorf("inserting saved paper: %w", insErr)
		}
		savedID, err = res.LastInsertId()
		if err != nil {
			return types.SavedPaper{}, fmt.Errorf("reading saved paper id: %w", err)
		}
	case err != nil:
		return types.SavedPaper{}, fmt.Errorf("looking up saved paper: %w", err)
	default:
		if err := applyPatch(ctx, tx, savedID, tags, note, now); err != nil {
			return types.SavedPaper{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return types.SavedPaper{}, fmt.Errorf("committing save: %w", err)
	}
	return s.GetSaved(ctx, savedID)
}

// GetSaved returns the saved record with the given ID joined with its paper.
// A missing record yields ErrNotFound.
func (s *Store) GetSaved(ctx context.Context, id int64) (types.SavedPaper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+savedColumns+`
		 FROM saved_papers s JOIN papers p ON p.id = s.paper_id
		 WHERE s.id = ?`, id)

	saved, err := scanSaved(row)
	if err == sql.ErrNoRows {
		return types.SavedPaper{}, ErrNotFound
	}
	if err != nil {
		return types.SavedPaper{}, fmt.Errorf("querying saved paper: %w", err)
	}
	return saved, nil
}

// UpdateSaved patches tags and note on an existing saved record. Nil values
// leave the stored field untouched. A missing record yields ErrNotFound.
func (s *Store) UpdateSaved(ctx context.Context, id int64, tags, note *string) (types.SavedPaper, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.SavedPaper{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM saved_papers WHERE id = ?`, id,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return types.SavedPaper{}, ErrNotFound
	}
	if err != nil {
		return types.SavedPaper{}, fmt.Errorf("looking up saved paper: %w", err)
	}

	if err := applyPatch(ctx, tx, id, tags, note, formatTime(timeNow())); err != nil {
		return types.SavedPaper{}, err
	}
	if err := tx.Commit(); err != nil {
		return types.SavedPaper{}, fmt.Errorf("committing update: %w", err)
	}
	return s.GetSaved(ctx, id)
}

// applyPatch updates only the provided fields, refreshing updated_at when
// anything changed.
func applyPatch(ctx context.Context, tx *sql.Tx, id int64, tags, note *string, now string) error {
	sets := []string{}
	args := []any{}
	if tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, *tags)
	}
	if note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *note)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id)

	_, err := tx.ExecContext(ctx,
		`UPDATE saved_papers SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating saved paper: %w", err)
	}
	return nil
}

// DeleteSaved removes the saved record. The underlying paper row survives;
// the schema cascades paper→saved, not the reverse. A missing record yields
// ErrNotFound.
func (s *Store) DeleteSaved(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_papers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting saved paper: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting saved paper: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOptions selects, orders, and pages the saved-paper listing. All filter
// strings match case-insensitively as substrings and combine with AND;
// empty strings impose no constraint.
type ListOptions struct {
	// Page is 1-indexed.
	Page     int
	PageSize int

	// Keyword matches against paper title or summary.
	Keyword string
	// Author matches against the serialized author list.
	Author string
	// Category matches against the serialized category list.
	Category string
	// Tag matches against the saved record's tag string.
	Tag string

	// SortBy selects "published" or "updated" (paper timestamps); anything
	// else sorts by the saved record's creation time.
	SortBy string
	// SortOrder "desc" sorts descending; anything else ascending.
	SortOrder string
}

// ListSaved returns one page of the filtered, sorted saved-paper view plus
// the total count over the full filtered set. Rows with equal sort keys have
// no secondary ordering; their relative order is whatever SQLite yields.
func (s *Store) ListSaved(ctx context.Context, opts ListOptions) ([]types.SavedPaper, int, error) {
	where, args := listFilters(opts)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_papers s JOIN papers p ON p.id = s.paper_id`+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting saved papers: %w", err)
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	query := `SELECT ` + savedColumns +
		` FROM saved_papers s JOIN papers p ON p.id = s.paper_id` + where +
		` ORDER BY ` + sortField(opts.SortBy) + ` ` + sortDirection(opts.SortOrder) +
		` LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying saved papers: %w", err)
	}
	defer rows.Close()

	items := []types.SavedPaper{}
	for rows.Next() {
		saved, err := scanSaved(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning saved paper: %w", err)
		}
		items = append(items, saved)
	}
	return items, total, rows.Err()
}

// listFilters builds the shared WHERE clause for ListSaved's count and page
// queries. SQLite's LIKE is case-insensitive for ASCII.
func listFilters(opts ListOptions) (string, []any) {
	var clauses []string
	var args []any

	like := func(s string) string { return "%" + s + "%" }

	if opts.Keyword != "" {
		clauses = append(clauses, `(p.title LIKE ? OR p.summary LIKE ?)`)
		args = append(args, like(opts.Keyword), like(opts.Keyword))
	}
	if opts.Author != "" {
		clauses = append(clauses, `p.authors LIKE ?`)
		args = append(args, like(opts.Author))
	}
	if opts.Category != "" {
		clauses = append(clauses, `p.categories LIKE ?`)
		args = append(args, like(opts.Category))
	}
	if opts.Tag != "" {
		clauses = append(clauses, `s.tags LIKE ?`)
		args = append(args, like(opts.Tag))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func sortField(sortBy string) string {
	switch sortBy {
	case "published":
		return "p.published"
	case "updated":
		return "p.updated"
	default:
		return "s.created_at"
	}
}

func sortDirection(sortOrder string) string {
	if sortOrder == "desc" {
		return "DESC"
	}
	return "ASC"
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaved(r rowScanner) (types.SavedPaper, error) {
	var (
		saved                types.SavedPaper
		tags, note           sql.NullString
		createdAt, updatedAt string
		version, summary     sql.NullString
		authors, categories  sql.NullString
		primaryCategory      sql.NullString
		published, updated   sql.NullString
		pdfURL, absURL       sql.NullString
		doi, journalRef      sql.NullString
	)

	err := r.Scan(
		&saved.ID, &saved.PaperID, &tags, &note, &createdAt, &updatedAt,
		&saved.Paper.ArxivID, &version, &saved.Paper.Title, &summary,
		&authors, &primaryCategory, &categories, &published, &updated,
		&pdfURL, &absURL, &doi, &journalRef,
	)
	if err != nil {
		return types.SavedPaper{}, err
	}

	saved.Tags = tags.String
	saved.Note = note.String
	saved.CreatedAt = parseTime(createdAt)
	saved.UpdatedAt = parseTime(updatedAt)

	saved.Paper.Version = version.String
	saved.Paper.Summary = summary.String
	saved.Paper.Authors = unmarshalList(authors)
	saved.Paper.PrimaryCategory = primaryCategory.String
	saved.Paper.Categories = unmarshalList(categories)
	saved.Paper.Published = parseOptTime(published)
	saved.Paper.Updated = parseOptTime(updated)
	saved.Paper.PDFURL = pdfURL.String
	saved.Paper.AbsURL = absURL.String
	saved.Paper.DOI = doi.String
	saved.Paper.JournalRef = journalRef.String

	return saved, nil
}

// optString returns a driver value for a nullable text column.
func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
