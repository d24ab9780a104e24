package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Genre classifies movies.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListGenres returns all genres ordered by id.
func (s *Store) ListGenres(ctx context.Context) ([]Genre, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM genre ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("select genres: %w", err)
	}
	defer rows.Close()

	return collect(rows, scanGenre)
}

// GenreByID returns a single genre by its identifier.
func (s *Store) GenreByID(ctx context.Context, id int64) (Genre, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name FROM genre WHERE id = $1", id)

	genre, err := scanGenre(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Genre{}, fmt.Errorf("genre %d: %w", id, ErrNotFound)
		}
		return Genre{}, err
	}
	return genre, nil
}

func (s *Store) CreateGenre(ctx context.Context, fields Fields) (int64, error) {
	return s.insert(ctx, genreTable, fields)
}

func (s *Store) UpdateGenre(ctx context.Context, id int64, fields Fields) error {
	return s.update(ctx, genreTable, id, fields)
}

func (s *Store) DeleteGenre(ctx context.Context, id int64) error {
	return s.delete(ctx, genreTable, id)
}

func scanGenre(scanner rowScanner) (Genre, error) {
	var (
		g    Genre
		name sql.NullString
	)
	if err := scanner.Scan(&g.ID, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Genre{}, err
		}
		return Genre{}, fmt.Errorf("scan genre: %w", err)
	}
	g.Name = name.String
	return g, nil
}
