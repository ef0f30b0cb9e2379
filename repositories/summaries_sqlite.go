package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"wiki-summary/models"
)

// SQLiteSummaryRepository stores summaries in an embedded SQLite database.
// The schema lives in db/migrations; the handle comes from db.OpenSQLite.
type SQLiteSummaryRepository struct {
	db *sql.DB
}

func NewSQLiteSummaryRepository(db *sql.DB) *SQLiteSummaryRepository {
	return &SQLiteSummaryRepository{db: db}
}

func (r *SQLiteSummaryRepository) GetByID(ctx context.Context, id string) (*models.Summary, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, url, summary, created_at FROM summaries WHERE id = ?`, id)

	var (
		s         models.Summary
		createdAt string
	)
	if err := row.Scan(&s.ID, &s.URL, &s.Summary, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, classifySQLiteError(err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	s.CreatedAt = t
	return &s, nil
}

func (r *SQLiteSummaryRepository) Create(ctx context.Context, id, url, summary string) (*models.Summary, error) {
	s := &models.Summary{
		ID:        id,
		URL:       url,
		Summary:   summary,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO summaries (id, url, summary, created_at) VALUES (?, ?, ?, ?)`,
		s.ID, s.URL, s.Summary, s.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, classifySQLiteError(err)
	}
	return s, nil
}

func (r *SQLiteSummaryRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func classifySQLiteError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR:
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
