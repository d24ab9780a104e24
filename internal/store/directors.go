package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Director is a person credited on movies.
type Director struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListDirectors returns all directors ordered by id.
func (s *Store) ListDirectors(ctx context.Context) ([]Director, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM director ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("select directors: %w", err)
	}
	defer rows.Close()

	return collect(rows, scanDirector)
}

// DirectorByID returns a single director by its identifier.
func (s *Store) DirectorByID(ctx context.Context, id int64) (Director, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM director WHERE id = $1", id)

	director, err := scanDirector(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Director{}, fmt.Errorf("director %d: %w", id, ErrNotFound)
		}
		return Director{}, err
	}
	return director, nil
}

// CreateDirector inserts a director and returns its id.
func (s *Store) CreateDirector(ctx context.Context, fields Fields) (int64, error) {
	return s.insert(ctx, directorTable, fields)
}

// UpdateDirector overwrites the supplied fields of an existing director.
func (s *Store) UpdateDirector(ctx context.Context, id int64, fields Fields) error {
	return s.update(ctx, directorTable, id, fields)
}

// DeleteDirector removes a director. Movies referencing it block the delete.
func (s *Store) DeleteDirector(ctx context.Context, id int64) error {
	return s.delete(ctx, directorTable, id)
}

func scanDirector(scanner rowScanner) (Director, error) {
	var (
		d    Director
		name sql.NullString
	)
	if err := scanner.Scan(&d.ID, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Director{}, err
		}
		return Director{}, fmt.Errorf("scan director: %w", err)
	}
	d.Name = name.String
	return d, nil
}
