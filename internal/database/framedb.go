package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/cordexplorer/internal/model"
)

// NoLimit asks CountBy for every group.
const NoLimit = -1

// ErrUnknownColumn is returned when CountBy is asked to group by a column
// that the papers table does not have.
var ErrUnknownColumn = errors.New("unknown group column")

// Group columns accepted by CountBy.
const (
	ColumnJournal = "journal"
	ColumnSource  = "source"
)

// FrameDB is an in-memory SQLite database holding one table of papers.
//
// Design decision: The pool is pinned to a single connection that never
// expires, because every new connection to ":memory:" opens an empty
// database.
type FrameDB struct {
	db *sql.DB
}

// Open creates an empty in-memory FrameDB.
func Open(ctx context.Context) (*FrameDB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	fdb := &FrameDB{db: db}
	if err := fdb.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return fdb, nil
}

// Close closes the database. The table contents are discarded.
func (f *FrameDB) Close() error {
	return f.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (f *FrameDB) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS papers (
		row_idx INTEGER NOT NULL,
		title TEXT,
		journal TEXT,
		source TEXT,
		publish_year INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(publish_year);
	CREATE INDEX IF NOT EXISTS idx_papers_journal ON papers(journal);
	CREATE INDEX IF NOT EXISTS idx_papers_source ON papers(source);
	`

	_, err := f.db.ExecContext(ctx, schema)
	return err
}

// ReplacePapers replaces the table contents with records in one transaction.
// Missing journal and source values are stored as NULL.
func (f *FrameDB) ReplacePapers(ctx context.Context, records []model.Record) (err error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM papers"); err != nil {
		return fmt.Errorf("failed to clear papers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO papers (row_idx, title, journal, source, publish_year)
	VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if _, err = stmt.ExecContext(ctx,
			i,
			nullable(rec.Title),
			nullable(rec.Journal),
			nullable(rec.Source),
			rec.PublishYear,
		); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", rec.Row, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit papers: %w", err)
	}
	return nil
}

// RowCount returns the number of rows in the papers table.
func (f *FrameDB) RowCount(ctx context.Context) (int, error) {
	var n int
	if err := f.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM papers").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count papers: %w", err)
	}
	return n, nil
}

// CountByYear returns the number of papers per year, ascending by year.
func (f *FrameDB) CountByYear(ctx context.Context) ([]model.CountEntry, error) {
	rows, err := f.db.QueryContext(ctx, `
	SELECT publish_year, COUNT(*)
	FROM papers
	GROUP BY publish_year
	ORDER BY publish_year ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to count by year: %w", err)
	}
	defer rows.Close()

	entries := make([]model.CountEntry, 0)
	for rows.Next() {
		var year, n int
		if err := rows.Scan(&year, &n); err != nil {
			return nil, fmt.Errorf("failed to scan year count: %w", err)
		}
		entries = append(entries, model.CountEntry{
			Label: model.NewNullString(strconv.Itoa(year)),
			Count: n,
		})
	}
	return entries, rows.Err()
}

// CountBy returns the number of papers per value of column, ordered by count
// descending. Ties keep the order in which the values first appear.
// NULL values form one group. limit caps the number of groups; use NoLimit
// for all of them.
func (f *FrameDB) CountBy(ctx context.Context, column string, limit int) ([]model.CountEntry, error) {
	if column != ColumnJournal && column != ColumnSource {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if limit <= 0 {
		limit = NoLimit
	}

	// column is whitelisted above.
	query := `
	SELECT ` + column + `, COUNT(*) AS n, MIN(row_idx) AS first_seen
	FROM papers
	GROUP BY ` + column + `
	ORDER BY n DESC, first_seen ASC
	LIMIT ?`

	rows, err := f.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}
	defer rows.Close()

	entries := make([]model.CountEntry, 0)
	for rows.Next() {
		var (
			label     sql.NullString
			n         int
			firstSeen int64
		)
		if err := rows.Scan(&label, &n, &firstSeen); err != nil {
			return nil, fmt.Errorf("failed to scan %s count: %w", column, err)
		}
		entries = append(entries, model.CountEntry{
			Label: model.NullString{String: label.String, Valid: label.Valid},
			Count: n,
		})
	}
	return entries, rows.Err()
}

func nullable(n model.NullString) any {
	if !n.Valid {
		return nil
	}
	return n.String
}
