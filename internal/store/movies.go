package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Movie is a catalogue entry. GenreID and DirectorID are null when unset.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int     `json:"year"`
	Rating      float64 `json:"rating"`
	GenreID     *int64  `json:"genre_id"`
	DirectorID  *int64  `json:"director_id"`
}

// MovieFilter constrains the results returned by ListMovies. Nil fields
// impose no constraint; set fields are combined with AND.
type MovieFilter struct {
	DirectorID *int64
	GenreID    *int64
}

const selectMovies = "SELECT id, title, description, trailer, year, rating, genre_id, director_id FROM movie"

// ListMovies returns movies matching the provided filter ordered by id.
func (s *Store) ListMovies(ctx context.Context, filter MovieFilter) ([]Movie, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.DirectorID != nil {
		args = append(args, *filter.DirectorID)
		clauses = append(clauses, fmt.Sprintf("director_id = $%d", len(args)))
	}
	if filter.GenreID != nil {
		args = append(args, *filter.GenreID)
		clauses = append(clauses, fmt.Sprintf("genre_id = $%d", len(args)))
	}

	query := selectMovies
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select movies: %w", err)
	}
	defer rows.Close()

	return collect(rows, scanMovie)
}

// MovieByID returns a single movie by its identifier.
func (s *Store) MovieByID(ctx context.Context, id int64) (Movie, error) {
	row := s.db.QueryRowContext(ctx, selectMovies+" WHERE id = $1", id)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Movie{}, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return Movie{}, err
	}
	return movie, nil
}

// CreateMovie inserts a movie with exactly the supplied fields and returns its id.
func (s *Store) CreateMovie(ctx context.Context, fields Fields) (int64, error) {
	return s.insert(ctx, movieTable, fields)
}

// UpdateMovie overwrites the supplied fields of an existing movie.
func (s *Store) UpdateMovie(ctx context.Context, id int64, fields Fields) error {
	return s.update(ctx, movieTable, id, fields)
}

// DeleteMovie removes a movie.
func (s *Store) DeleteMovie(ctx context.Context, id int64) error {
	return s.delete(ctx, movieTable, id)
}

func scanMovie(scanner rowScanner) (Movie, error) {
	var (
		m           Movie
		title       sql.NullString
		description sql.NullString
		trailer     sql.NullString
		year        sql.NullInt64
		rating      sql.NullFloat64
		genreID     sql.NullInt64
		directorID  sql.NullInt64
	)

	if err := scanner.Scan(&m.ID, &title, &description, &trailer, &year, &rating, &genreID, &directorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Movie{}, err
		}
		return Movie{}, fmt.Errorf("scan movie: %w", err)
	}

	m.Title = title.String
	m.Description = description.String
	m.Trailer = trailer.String
	m.Year = int(year.Int64)
	m.Rating = rating.Float64
	if genreID.Valid {
		m.GenreID = &genreID.Int64
	}
	if directorID.Valid {
		m.DirectorID = &directorID.Int64
	}

	return m, nil
}
