package search

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxQueryLength is the longest accepted raw query, in characters.
const MaxQueryLength = 254

// ErrQueryTooLong is returned by ParseParams for queries over MaxQueryLength.
var ErrQueryTooLong = errors.New("search query too long")

// Query string keys used by the search form.
const (
	ParamQuery          = "cerca"
	ParamMode           = "mode"
	ParamVariant        = "variant"
	ParamSynonym        = "sinonim"
	ParamEquivalent     = "equivalent"
	ParamFont           = "font"
	ParamPage           = "pagina"
	ParamResultsPerPage = "mostra"
)

// ShowAllToken is the mostra value selecting AllResults.
const ShowAllToken = "infinit"

// Params holds the inputs of a search request.
type Params struct {
	// Query is the trimmed, NFC-normalized raw query.
	Query string
	// Mode is the raw mode token; resolve it with ResolveMode.
	Mode string
	// Fields selects extra columns (variants, synonyms, equivalents).
	Fields Fields
	// Font restricts results to one bibliographic source.
	Font string
	// Page is 1-based.
	Page int
	// ResultsPerPage is one of ResultsPerPageOptions or AllResults.
	ResultsPerPage int
}

// ParseParams reads search parameters from a query string. Invalid page
// numbers clamp to 1 and unknown page sizes fall back to defaultPerPage (or
// DefaultResultsPerPage when that is not an allowed size either). The only
// error is ErrQueryTooLong.
func ParseParams(values url.Values, defaultPerPage int) (Params, error) {
	if !ValidResultsPerPage(defaultPerPage) {
		defaultPerPage = DefaultResultsPerPage
	}

	params := Params{
		Query:          norm.NFC.String(strings.TrimSpace(values.Get(ParamQuery))),
		Mode:           values.Get(ParamMode),
		Font:           strings.TrimSpace(values.Get(ParamFont)),
		Page:           1,
		ResultsPerPage: defaultPerPage,
		Fields: Fields{
			Variant:    flag(values, ParamVariant),
			Synonym:    flag(values, ParamSynonym),
			Equivalent: flag(values, ParamEquivalent),
		},
	}

	if p, err := strconv.Atoi(values.Get(ParamPage)); err == nil {
		params.Page = ClampPage(p)
	}

	if raw := values.Get(ParamResultsPerPage); raw != "" {
		if raw == ShowAllToken {
			params.ResultsPerPage = AllResults
		} else if n, err := strconv.Atoi(raw); err == nil && ValidResultsPerPage(n) {
			params.ResultsPerPage = n
		} else {
			params.ResultsPerPage = DefaultResultsPerPage
		}
	}

	if utf8.RuneCountInString(params.Query) > MaxQueryLength {
		return params, ErrQueryTooLong
	}
	return params, nil
}

// ValidResultsPerPage reports whether n is an allowed page size.
func ValidResultsPerPage(n int) bool {
	return n == AllResults || slices.Contains(ResultsPerPageOptions, n)
}

// Values encodes params back into a query string, for pagination links.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set(ParamQuery, p.Query)
	}
	if p.Mode != "" {
		v.Set(ParamMode, p.Mode)
	}
	if p.Fields.Variant {
		v.Set(ParamVariant, "1")
	}
	if p.Fields.Synonym {
		v.Set(ParamSynonym, "1")
	}
	if p.Fields.Equivalent {
		v.Set(ParamEquivalent, "1")
	}
	if p.Font != "" {
		v.Set(ParamFont, p.Font)
	}
	if p.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(p.Page))
	}
	if p.ResultsPerPage == AllResults {
		v.Set(ParamResultsPerPage, ShowAllToken)
	} else {
		v.Set(ParamResultsPerPage, strconv.Itoa(p.ResultsPerPage))
	}
	return v
}

func flag(values url.Values, key string) bool {
	if !values.Has(key) {
		return false
	}
	switch strings.ToLower(values.Get(key)) {
	case "0", "false", "off":
		return false
	}
	return true
}
