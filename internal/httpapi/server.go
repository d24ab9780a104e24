package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"moviecatalog/internal/logging"
	"moviecatalog/internal/store"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// statusClientClosedRequest is the non-standard status recorded when the
// client goes away before the response is written.
const statusClientClosedRequest = 499

// MovieService exposes movie workflows.
type MovieService interface {
	List(ctx context.Context, filter store.MovieFilter) ([]store.Movie, error)
	Get(ctx context.Context, id int64) (store.Movie, error)
	Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error)
	Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error
	Delete(ctx context.Context, id int64) error
}

// DirectorService exposes director workflows.
type DirectorService interface {
	List(ctx context.Context) ([]store.Director, error)
	Get(ctx context.Context, id int64) (store.Director, error)
	Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error)
	Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error
	Delete(ctx context.Context, id int64) error
}

// GenreService exposes genre workflows.
type GenreService interface {
	List(ctx context.Context) ([]store.Genre, error)
	Get(ctx context.Context, id int64) (store.Genre, error)
	Create(ctx context.Context, payload map[string]json.RawMessage) (int64, error)
	Update(ctx context.Context, id int64, payload map[string]json.RawMessage) error
	Delete(ctx context.Context, id int64) error
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	movies    MovieService
	directors DirectorService
	genres    GenreService
	health    HealthChecker
}

// New configures a Server. health may be nil, in which case /health always
// reports OK.
func New(movies MovieService, directors DirectorService, genres GenreService, health HealthChecker) *Server {
	return &Server{
		movies:    movies,
		directors: directors,
		genres:    genres,
		health:    health,
	}
}

// Routes exposes the catalogue handlers. Collection routes answer with and
// without the trailing slash.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	for _, prefix := range []string{"/movies", "/movies/"} {
		router.HandleFunc(prefix, s.handleListMovies).Methods(http.MethodGet)
		router.HandleFunc(prefix, s.handleCreateMovie).Methods(http.MethodPost)
	}
	router.HandleFunc("/movies/{id:[0-9]+}", s.handleGetMovie).Methods(http.MethodGet)
	router.HandleFunc("/movies/{id:[0-9]+}", s.handleUpdateMovie).Methods(http.MethodPut)
	router.HandleFunc("/movies/{id:[0-9]+}", s.handleDeleteMovie).Methods(http.MethodDelete)

	for _, prefix := range []string{"/directors", "/directors/"} {
		router.HandleFunc(prefix, s.handleListDirectors).Methods(http.MethodGet)
		router.HandleFunc(prefix, s.handleCreateDirector).Methods(http.MethodPost)
	}
	router.HandleFunc("/directors/{id:[0-9]+}", s.handleGetDirector).Methods(http.MethodGet)
	router.HandleFunc("/directors/{id:[0-9]+}", s.handleUpdateDirector).Methods(http.MethodPut)
	router.HandleFunc("/directors/{id:[0-9]+}", s.handleDeleteDirector).Methods(http.MethodDelete)

	for _, prefix := range []string{"/genres", "/genres/"} {
		router.HandleFunc(prefix, s.handleListGenres).Methods(http.MethodGet)
		router.HandleFunc(prefix, s.handleCreateGenre).Methods(http.MethodPost)
	}
	router.HandleFunc("/genres/{id:[0-9]+}", s.handleGetGenre).Methods(http.MethodGet)
	router.HandleFunc("/genres/{id:[0-9]+}", s.handleUpdateGenre).Methods(http.MethodPut)
	router.HandleFunc("/genres/{id:[0-9]+}", s.handleDeleteGenre).Methods(http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			logging.WithContext(r.Context()).Warn().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// pathID extracts the {id} route variable. Values that do not fit an int64
// are reported as not found, like any other missing row.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}

// decodeObject reads a JSON object body without interpreting its fields.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, error) {
	var payload map[string]json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is required")
		}
		return nil, errors.New("invalid JSON payload")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("request body must contain a single JSON object")
	}
	if payload == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return payload, nil
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrInvalidInput), errors.Is(err, store.ErrInvalidReference):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrInUse):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		logging.WithContext(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request canceled by client")
		writeJSON(w, statusClientClosedRequest, errorResponse{Error: "request canceled"})
	default:
		logging.WithContext(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeCreated(w http.ResponseWriter, collection string, id int64) {
	w.Header().Set("Location", fmt.Sprintf("/%s/%d", collection, id))
	w.WriteHeader(http.StatusCreated)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
