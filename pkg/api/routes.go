package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/search", s.RateLimited(http.HandlerFunc(s.HandleSearch)))
	mux.HandleFunc("GET /api/paremiotipus/{title}", s.HandleParemiotipus)
	mux.HandleFunc("GET /api/fonts", s.HandleListFonts)
	mux.HandleFunc("GET /api/fonts/{id}", s.HandleFont)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
