package movies

import (
	"context"
	"encoding/json"

	"moviecatalog/internal/store"
)

// Store captures the persistence needs for movie workflows.
type Store interface {
	ListMovies(ctx context.Context, filter store.MovieFilter) ([]store.Movie, error)
	MovieByID(ctx context.Context, id int64) (store.Movie, error)
	CreateMovie(ctx context.Context, fields store.Fields) (int64, error)
	UpdateMovie(ctx context.Context, id int64, fields store.Fields) error
	DeleteMovie(ctx context.Context, id int64) error
}

// Service coordinates movie-related operations.
type Service interface {
	List(ctx context.Context, filter store.MovieFilter) ([]store.Movie, error)
	Get(ctx context.Context, id int64) (store.Movie, error)
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

func (s *service) List(ctx context.Context, filter store.MovieFilter) ([]store.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListMovies(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (store.Movie, error) {
	if err := ctx.Err(); err != nil {
		return store.Movie{}, err
	}
	return s.store.MovieByID(ctx, id)
}

// Create validates the payload against the movie columns before inserting.
func (s *service) Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fields, err := store.ParseMovieFields(payload)
	if err != nil {
		return 0, err
	}
	return s.store.CreateMovie(ctx, fields)
}

// Update applies a partial update; fields absent from the payload keep their values.
func (s *service) Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields, err := store.ParseMovieFields(payload)
	if err != nil {
		return err
	}
	return s.store.UpdateMovie(ctx, id, fields)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteMovie(ctx, id)
}
