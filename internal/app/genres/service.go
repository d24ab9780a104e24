package genres

import (
	"context"
	"encoding/json"

	"moviecatalog/internal/store"
)

// Store captures the persistence needs for genre workflows.
type Store interface {
	ListGenres(ctx context.Context) ([]store.Genre, error)
	GenreByID(ctx context.Context, id int64) (store.Genre, error)
	CreateGenre(ctx context.Context, fields store.Fields) (int64, error)
	UpdateGenre(ctx context.Context, id int64, fields store.Fields) error
	DeleteGenre(ctx context.Context, id int64) error
}

// Service coordinates genre-related operations.
type Service interface {
	List(ctx context.Context) ([]store.Genre, error)
	Get(ctx context.Context, id int64) (store.Genre, error)
	Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error)
	Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]store.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListGenres(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (store.Genre, error) {
	if err := ctx.Err(); err != nil {
		return store.Genre{}, err
	}
	return s.store.GenreByID(ctx, id)
}

func (s *service) Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fields, err := store.ParseGenreFields(payload)
	if err != nil {
		return 0, err
	}
	return s.store.CreateGenre(ctx, fields)
}

func (s *service) Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields, err := store.ParseGenreFields(payload)
	if err != nil {
		return err
	}
	return s.store.UpdateGenre(ctx, id, fields)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteGenre(ctx, id)
}
