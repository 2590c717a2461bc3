package storage

import (
	"context"
	"fmt"

	"github.com/rubiojr/parems/pkg/search"
)

var _ search.Store = (*Store)(nil)

func whereClause(pred search.Predicate) string {
	if pred.IsEmpty() {
		return ""
	}
	return " WHERE " + pred.Where
}

// CountTitles returns the number of distinct paremiotipus matching pred.
func (s *Store) CountTitles(ctx context.Context, pred search.Predicate) (int, error) {
	return s.counts.get(ctx, pred.Key(), func(ctx context.Context) (int, error) {
		query := "SELECT COUNT(DISTINCT p.paremiotipus) FROM paremiotipus p" + whereClause(pred)

		var n int
		if err := s.db.QueryRowContext(ctx, query, pred.Args...).Scan(&n); err != nil {
			return 0, fmt.Errorf("counting titles: %w", err)
		}
		return n, nil
	})
}

// ListTitles returns up to limit distinct paremiotipus matching pred, in
// Catalan alphabetical order, skipping the first offset.
func (s *Store) ListTitles(ctx context.Context, pred search.Predicate, offset, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	query := "SELECT DISTINCT p.paremiotipus FROM paremiotipus p" + whereClause(pred) +
		" ORDER BY p.paremiotipus COLLATE " + Collation + " LIMIT ? OFFSET ?"
	args := append(append([]any{}, pred.Args...), limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing titles: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	titles := make([]string, 0, limit)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}
