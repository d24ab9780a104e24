package directors

import (
	"context"
	"encoding/json"

	"moviecatalog/internal/store"
)

// Store captures the persistence needs for director workflows.
type Store interface {
	ListDirectors(ctx context.Context) ([]store.Director, error)
	DirectorByID(ctx context.Context, id int64) (store.Director, error)
	CreateDirector(ctx context.Context, fields store.Fields) (int64, error)
	UpdateDirector(ctx context.Context, id int64, fields store.Fields) error
	DeleteDirector(ctx context.Context, id int64) error
}

// Service coordinates director-related operations.
type Service interface {
	List(ctx context.Context) ([]store.Director, error)
	Get(ctx context.Context, id int64) (store.Director, error)
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

func (s *service) List(ctx context.Context) ([]store.Director, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListDirectors(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (store.Director, error) {
	if err := ctx.Err(); err != nil {
		return store.Director{}, err
	}
	return s.store.DirectorByID(ctx, id)
}

func (s *service) Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fields, err := store.ParseDirectorFields(payload)
	if err != nil {
		return 0, err
	}
	return s.store.CreateDirector(ctx, fields)
}

func (s *service) Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fields, err := store.ParseDirectorFields(payload)
	if err != nil {
		return err
	}
	return s.store.UpdateDirector(ctx, id, fields)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteDirector(ctx, id)
}
