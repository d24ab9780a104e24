package store

import (
	"context"
	"fmt"
)

// schemaStatements create the catalogue tables when missing. Movie references
// are plain foreign keys: deleting a referenced genre or director fails
// instead of cascading.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS genre (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS director (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS movie (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255),
		description VARCHAR(255),
		trailer VARCHAR(255),
		year INTEGER,
		rating DOUBLE PRECISION,
		genre_id BIGINT REFERENCES genre (id),
		director_id BIGINT REFERENCES director (id)
	)`,
	`CREATE INDEX IF NOT EXISTS movie_genre_id_idx ON movie (genre_id)`,
	`CREATE INDEX IF NOT EXISTS movie_director_id_idx ON movie (director_id)`,
}

// EnsureSchema creates any missing tables in a single transaction.
func (s *Store) EnsureSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	tx = nil

	return nil
}
