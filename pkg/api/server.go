package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/rubiojr/parems/pkg/config"
	"github.com/rubiojr/parems/pkg/log"
	"github.com/rubiojr/parems/pkg/search"
	"github.com/rubiojr/parems/pkg/storage"
)

// Options configures a Server.
type Options struct {
	DefaultResultsPerPage int
	RateLimit             config.RateLimitConfig
}

type Server struct {
	store          *storage.Store
	search         *search.Service
	defaultPerPage atomic.Int64
	limit          Middleware
	logger         *log.Logger
}

func NewServer(store *storage.Store, opts Options) *Server {
	s := &Server{
		store:  store,
		search: search.NewService(store),
		limit:  RateLimitMiddleware(opts.RateLimit),
		logger: log.ForService("api"),
	}
	s.SetDefaultResultsPerPage(opts.DefaultResultsPerPage)
	return s
}

// SetDefaultResultsPerPage changes the page size used when a request does
// not ask for an allowed one. Safe for concurrent use.
func (s *Server) SetDefaultResultsPerPage(n int) {
	if !search.ValidResultsPerPage(n) {
		n = search.DefaultResultsPerPage
	}
	s.defaultPerPage.Store(int64(n))
}

func (s *Server) DefaultResultsPerPage() int {
	return int(s.defaultPerPage.Load())
}

// Search exposes the search service so HTML handlers share it.
func (s *Server) Search() *search.Service {
	return s.search
}

// RateLimited wraps h with the per-client limiter applied to search routes.
func (s *Server) RateLimited(h http.Handler) http.Handler {
	return s.limit(h)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ForService("api").Errorf("encoding JSON response: %v", err)
	}
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
