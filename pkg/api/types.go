package api

import (
	"time"

	"github.com/rubiojr/parems/pkg/storage"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SearchResponse struct {
	Query          string   `json:"query"`
	Mode           string   `json:"mode"`
	Normalized     string   `json:"normalized"`
	Results        []string `json:"results"`
	TotalCount     int      `json:"total_count"`
	Page           int      `json:"page"`
	ResultsPerPage int      `json:"results_per_page"`
	TotalPages     int      `json:"total_pages"`
	HasMore        bool     `json:"has_more"`
	Summary        string   `json:"summary,omitempty"`
	Degraded       bool     `json:"degraded,omitempty"`
}

type ParemiotipusResponse struct {
	Paremiotipus string            `json:"paremiotipus"`
	Variants     []storage.Variant `json:"variants"`
	Count        int               `json:"count"`
}

type ListFontsResponse struct {
	Fonts []storage.Font `json:"fonts"`
	Count int            `json:"count"`
}

type StatsResponse struct {
	Entries  int   `json:"entries"`
	Titles   int   `json:"titles"`
	Fonts    int   `json:"fonts"`
	FileSize int64 `json:"file_size"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
