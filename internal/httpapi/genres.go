package httpapi

import "net/http"

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.genres.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.genres.Create(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCreated(w, "genres", id)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	genre, err := s.genres.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, genre)
}

func (s *Server) handleUpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payload, err := decodeObject(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.genres.Update(r.Context(), id, payload); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.genres.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
