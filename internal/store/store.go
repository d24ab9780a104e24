package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	// ErrNotFound signals that no row has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a payload that cannot be stored as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidReference indicates a genre_id or director_id that points nowhere.
	ErrInvalidReference = errors.New("referenced genre or director does not exist")
	// ErrInUse signals a delete blocked by rows that still reference the target.
	ErrInUse = errors.New("still referenced by other rows")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// collect drains rows through scan. The result is never nil so empty lists
// encode as [] rather than null.
func collect[T any](rows *sql.Rows, scan func(rowScanner) (T, error)) ([]T, error) {
	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return items, nil
}

func (s *Store) insert(ctx context.Context, t table, fields Fields) (int64, error) {
	columns := fields.columns(t)

	query := fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING id", t.name)
	args := make([]any, 0, len(columns))
	if len(columns) > 0 {
		placeholders := make([]string, len(columns))
		for i, name := range columns {
			args = append(args, fields[name])
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
			t.name, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, writeError("insert "+t.name, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return id, nil
}

func (s *Store) update(ctx context.Context, t table, id int64, fields Fields) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	columns := fields.columns(t)
	if len(columns) == 0 {
		// Nothing to change; the row still has to exist.
		var found int64
		err := tx.QueryRowContext(ctx, fmt.Sprintf("SELECT id FROM %s WHERE id = $1", t.name), id).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", t.name, id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lookup %s: %w", t.name, err)
		}
	} else {
		assignments := make([]string, len(columns))
		args := make([]any, 0, len(columns)+1)
		for i, name := range columns {
			args = append(args, fields[name])
			assignments[i] = fmt.Sprintf("%s = $%d", name, i+1)
		}
		args = append(args, id)

		query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", t.name, strings.Join(assignments, ", "), len(args))
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return writeError("update "+t.name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update %s: %w", t.name, err)
		}
		if affected == 0 {
			return fmt.Errorf("%s %d: %w", t.name, id, ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

func (s *Store) delete(ctx context.Context, t table, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), id)
	if err != nil {
		if sqlState(err) == codeForeignKeyViolation {
			return fmt.Errorf("delete %s %d: %w", t.name, id, ErrInUse)
		}
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", t.name, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %d: %w", t.name, id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

const (
	codeForeignKeyViolation       = "23503"
	codeStringDataRightTruncated  = "22001"
	codeCharacterNotInRepertoire  = "22021"
	codeNumericValueOutOfRange    = "22003"
	codeInvalidTextRepresentation = "22P02"
)

// writeError maps constraint and data errors raised by an insert or update
// onto the package sentinels.
func writeError(op string, err error) error {
	switch sqlState(err) {
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	case codeStringDataRightTruncated:
		return fmt.Errorf("%s: %w: value too long", op, ErrInvalidInput)
	case codeNumericValueOutOfRange, codeInvalidTextRepresentation:
		return fmt.Errorf("%s: %w: value out of range", op, ErrInvalidInput)
	case codeCharacterNotInRepertoire:
		return fmt.Errorf("%s: %w: invalid character in text", op, ErrInvalidInput)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// sqlState extracts the SQLSTATE from either supported driver.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
