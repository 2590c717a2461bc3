package storage

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Stats describes the catalog contents.
type Stats struct {
	Entries  int
	Titles   int
	Fonts    int
	FileSize int64
}

// Stats counts rows, distinct paremiotipus and fonts.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM paremiotipus),
			(SELECT COUNT(DISTINCT paremiotipus) FROM paremiotipus),
			(SELECT COUNT(*) FROM fonts)
	`).Scan(&st.Entries, &st.Titles, &st.Fonts)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		st.FileSize = info.Size()
	}
	return &st, nil
}

// CheckIntegrity runs SQLite's integrity check and the full-text index
// consistency check. It returns the problems found, if any.
func (s *Store) CheckIntegrity(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "PRAGMA integrity_check")
	if err != nil {
		return nil, fmt.Errorf("running integrity check: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	var problems []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scanning integrity check: %w", err)
		}
		if line != "ok" {
			problems = append(problems, line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if _, err := s.db.ExecContext(ctx, "INSERT INTO paremiotipus_fts(paremiotipus_fts) VALUES('integrity-check')"); err != nil {
		problems = append(problems, fmt.Sprintf("full-text index: %v", err))
	}
	return problems, nil
}

// RebuildIndex regenerates the full-text index from the catalog table.
func (s *Store) RebuildIndex(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "INSERT INTO paremiotipus_fts(paremiotipus_fts) VALUES('rebuild')"); err != nil {
		return fmt.Errorf("rebuilding full-text index: %w", err)
	}
	s.counts.purge()
	return nil
}

// Optimize merges the full-text index segments and updates query planner
// statistics.
func (s *Store) Optimize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "INSERT INTO paremiotipus_fts(paremiotipus_fts) VALUES('optimize')"); err != nil {
		return fmt.Errorf("optimizing full-text index: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("optimizing database: %w", err)
	}
	return nil
}

// Vacuum rebuilds the database file, reclaiming free pages.
func (s *Store) Vacuum(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuuming database: %w", err)
	}
	return nil
}

// OptimizeEvery runs Optimize every interval until ctx is cancelled.
func (s *Store) OptimizeEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debugf("optimization loop stopped")
			return
		case <-ticker.C:
			s.logger.Debugf("running database optimization")
			if err := s.Optimize(ctx); err != nil && ctx.Err() == nil {
				s.logger.Errorf("database optimization failed: %v", err)
			}
		}
	}
}
