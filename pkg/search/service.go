package search

import (
	"context"

	"github.com/rubiojr/parems/pkg/log"
)

// Store executes predicates against the catalog. Counts and listings are
// over distinct paremiotipus titles.
type Store interface {
	CountTitles(ctx context.Context, pred Predicate) (int, error)
	ListTitles(ctx context.Context, pred Predicate, offset, limit int) ([]string, error)
}

// Results is one page of a search together with its pagination metadata.
type Results struct {
	Params     Params
	Mode       Mode
	Normalized string
	Predicate  Predicate

	Titles    []string
	Total     int
	Offset    int
	PageCount int

	// Summary is empty for requests without a query.
	Summary string

	// Degraded is set when the store rejected the predicate and the page
	// is reported as empty.
	Degraded bool
}

// Service runs the resolve, normalize, build, count and page pipeline.
type Service struct {
	store  Store
	logger *log.Logger
}

// NewService returns a Service reading from store.
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: log.ForService("search"),
	}
}

// Search executes params. Store failures are logged and reported as an empty,
// degraded result; only a cancelled context produces an error.
func (s *Service) Search(ctx context.Context, params Params) (*Results, error) {
	mode := ResolveMode(params.Mode, params.Query)
	normalized := Normalize(params.Query, mode)
	pred := BuildPredicate(normalized, mode, params.Fields, params.Font)
	page := ClampPage(params.Page)
	params.Page = page

	res := &Results{
		Params:     params,
		Mode:       mode,
		Normalized: normalized,
		Predicate:  pred,
		Titles:     []string{},
		Offset:     Offset(page, params.ResultsPerPage),
	}
	s.logger.Debugf("query=%q mode=%s normalized=%q where=%q args=%v", params.Query, mode, normalized, pred.Where, pred.Args)

	total, err := s.store.CountTitles(ctx, pred)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Errorf("counting results for %q: %v", params.Query, err)
		res.Degraded = true
		total = 0
	}
	res.Total = total
	res.PageCount = PageCount(total, params.ResultsPerPage)
	if params.Query != "" {
		res.Summary = Summary(res.Offset, params.ResultsPerPage, total, params.Query)
	}

	if total == 0 || res.Offset >= total {
		return res, nil
	}

	limit := params.ResultsPerPage
	if limit == AllResults {
		limit = total
	}
	titles, err := s.store.ListTitles(ctx, pred, res.Offset, limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Errorf("listing results for %q: %v", params.Query, err)
		res.Degraded = true
		return res, nil
	}
	res.Titles = titles
	return res, nil
}
