package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"moviecatalog/internal/store"
)

// bootstrap makes sure the tables exist and optionally loads demo rows.
func bootstrap(ctx context.Context, db *sql.DB, dataStore *store.Store, seed bool) error {
	if err := dataStore.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	if !seed {
		return nil
	}
	return seedDemoData(ctx, db)
}

type seedMovie struct {
	Title       string
	Description string
	Trailer     string
	Year        int
	Rating      float64
	Genre       string
	Director    string
}

var demoMovies = []seedMovie{
	{
		Title:       "Heat",
		Description: "A group of professional bank robbers start to feel the heat from police.",
		Trailer:     "https://www.youtube.com/watch?v=0xbBLJ1WGwQ",
		Year:        1995,
		Rating:      8.3,
		Genre:       "Crime",
		Director:    "Michael Mann",
	},
	{
		Title:       "Collateral",
		Description: "A cab driver finds himself the hostage of an engaging contract killer.",
		Trailer:     "https://www.youtube.com/watch?v=IfXQyD2Cc0M",
		Year:        2004,
		Rating:      7.5,
		Genre:       "Crime",
		Director:    "Michael Mann",
	},
	{
		Title:       "Solaris",
		Description: "A psychologist is sent to a station orbiting a distant planet.",
		Trailer:     "https://www.youtube.com/watch?v=6-4KydP92ss",
		Year:        1972,
		Rating:      8.0,
		Genre:       "Science Fiction",
		Director:    "Andrei Tarkovsky",
	},
	{
		Title:       "Stalker",
		Description: "A guide leads two men through an area known as the Zone.",
		Trailer:     "https://www.youtube.com/watch?v=Q3hBLv-HLEc",
		Year:        1979,
		Rating:      8.1,
		Genre:       "Science Fiction",
		Director:    "Andrei Tarkovsky",
	},
	{
		Title:       "The Mirror",
		Description: "A dying man in his forties recalls his childhood.",
		Trailer:     "https://www.youtube.com/watch?v=FMGfbO2ikJ0",
		Year:        1975,
		Rating:      8.0,
		Genre:       "Drama",
		Director:    "Andrei Tarkovsky",
	},
}

// seedDemoData inserts demo movies when the movie table is empty. Genres and
// directors that already exist by name are reused. Everything is written in
// one transaction.
func seedDemoData(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movie`).Scan(&count); err != nil {
		return fmt.Errorf("count movies: %w", err)
	}
	if count > 0 {
		log.Debug().Int("movies", count).Msg("catalogue not empty, skipping demo seed")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	genreIDs := map[string]int64{}
	directorIDs := map[string]int64{}

	for _, m := range demoMovies {
		if _, ok := genreIDs[m.Genre]; !ok {
			id, err := ensureNamedRow(ctx, tx, "genre", m.Genre)
			if err != nil {
				return err
			}
			genreIDs[m.Genre] = id
		}
		if _, ok := directorIDs[m.Director]; !ok {
			id, err := ensureNamedRow(ctx, tx, "director", m.Director)
			if err != nil {
				return err
			}
			directorIDs[m.Director] = id
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO movie (title, description, trailer, year, rating, genre_id, director_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, m.Title, m.Description, m.Trailer, m.Year, m.Rating, genreIDs[m.Genre], directorIDs[m.Director]); err != nil {
			return fmt.Errorf("insert demo movie %q: %w", m.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	tx = nil

	log.Info().Int("movies", len(demoMovies)).Msg("demo catalogue seeded")
	return nil
}

// ensureNamedRow returns the id of the first row in table with the given
// name, inserting one when none exists. table is always a literal.
func ensureNamedRow(ctx context.Context, tx *sql.Tx, table, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE name = $1 ORDER BY id LIMIT 1`, table), name).Scan(&id)
	switch {
	case err == nil:
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("look up demo %s %q: %w", table, name, err)
	}

	if err := tx.QueryRowContext(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) RETURNING id`, table), name).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert demo %s %q: %w", table, name, err)
	}
	return id, nil
}
