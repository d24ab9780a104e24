package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"moviecatalog/internal/store"
)

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filter, err := movieFilterFromQuery(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	movies, err := s.movies.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, movies)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.movies.Create(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCreated(w, "movies", id)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	movie, err := s.movies.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payload, err := decodeObject(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.movies.Update(r.Context(), id, payload); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.movies.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// movieFilterFromQuery reads director_id and genre_id. Empty values are
// treated as absent.
func movieFilterFromQuery(query url.Values) (store.MovieFilter, error) {
	directorID, err := optionalID(query, "director_id")
	if err != nil {
		return store.MovieFilter{}, err
	}
	genreID, err := optionalID(query, "genre_id")
	if err != nil {
		return store.MovieFilter{}, err
	}

	return store.MovieFilter{DirectorID: directorID, GenreID: genreID}, nil
}

func optionalID(query url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", key)
	}
	return &id, nil
}
