package httpapi

import "net/http"

func (s *Server) handleListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := s.directors.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, directors)
}

func (s *Server) handleCreateDirector(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeObject(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id, err := s.directors.Create(r.Context(), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCreated(w, "directors", id)
}

func (s *Server) handleGetDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	director, err := s.directors.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, director)
}

func (s *Server) handleUpdateDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	payload, err := decodeObject(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.directors.Update(r.Context(), id, payload); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.directors.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
