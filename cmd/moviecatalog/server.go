package main

import (
	"net/http"

	"moviecatalog/internal/app/directors"
	"moviecatalog/internal/app/genres"
	"moviecatalog/internal/app/movies"
	"moviecatalog/internal/http/middleware"
	"moviecatalog/internal/httpapi"
	"moviecatalog/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store) http.Handler {
	movieSvc := movies.New(dataStore)
	directorSvc := directors.New(dataStore)
	genreSvc := genres.New(dataStore)

	var handler http.Handler = httpapi.New(movieSvc, directorSvc, genreSvc, dataStore).Routes()

	// Outermost first: request id and logging, then panic recovery, then CORS.
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.Recovery()(handler)
	handler = middleware.RequestLogging()(handler)

	return handler
}
