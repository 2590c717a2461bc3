package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rubiojr/parems/pkg/search"
	"github.com/rubiojr/parems/pkg/storage"
	"github.com/rubiojr/parems/pkg/version"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params, err := search.ParseParams(r.URL.Query(), s.DefaultResultsPerPage())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), params)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "Search cancelled", err.Error())
		return
	}

	response := SearchResponse{
		Query:          params.Query,
		Mode:           results.Mode.String(),
		Normalized:     results.Normalized,
		Results:        results.Titles,
		TotalCount:     results.Total,
		Page:           results.Params.Page,
		ResultsPerPage: params.ResultsPerPage,
		TotalPages:     results.PageCount,
		HasMore:        results.Params.Page < results.PageCount,
		Summary:        results.Summary,
		Degraded:       results.Degraded,
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleParemiotipus(w http.ResponseWriter, r *http.Request) {
	title := search.NormalizeStored(r.PathValue("title"))
	if title == "" {
		s.writeError(w, http.StatusBadRequest, "Invalid path", "Paremiotipus is required")
		return
	}

	variants, err := s.store.Variants(r.Context(), title)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Paremiotipus not found", fmt.Sprintf("Paremiotipus '%s' does not exist", title))
		return
	}
	if err != nil {
		s.logger.Errorf("loading variants of %q: %v", title, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load paremiotipus", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ParemiotipusResponse{
		Paremiotipus: title,
		Variants:     variants,
		Count:        len(variants),
	})
}

func (s *Server) HandleListFonts(w http.ResponseWriter, r *http.Request) {
	fonts, err := s.store.Fonts(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to list fonts", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ListFontsResponse{Fonts: fonts, Count: len(fonts)})
}

func (s *Server) HandleFont(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	font, err := s.store.Font(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Font not found", fmt.Sprintf("Font '%s' does not exist", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load font", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, font)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to get stats", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, StatsResponse{
		Entries:  stats.Entries,
		Titles:   stats.Titles,
		Fonts:    stats.Fonts,
		FileSize: stats.FileSize,
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
