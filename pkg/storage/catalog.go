package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rubiojr/parems/pkg/dataset"
)

// Variant is one recorded wording of a paremiotipus with its source.
type Variant struct {
	Modisme    string `json:"modisme,omitempty"`
	Sinonim    string `json:"sinonim,omitempty"`
	Equivalent string `json:"equivalent,omitempty"`
	FontID     string `json:"font_id,omitempty"`
	FontTitle  string `json:"font_title,omitempty"`
}

// Font is a bibliographic source and the number of distinct paremiotipus
// recorded from it.
type Font struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Titles int    `json:"titles"`
}

// ImportStats summarizes an Import.
type ImportStats struct {
	Fonts   int
	Entries int
	Titles  int
}

// Import replaces the catalog contents with ds in a single transaction.
func (s *Store) Import(ctx context.Context, ds *dataset.Dataset) (*ImportStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				s.logger.Warnf("failed to rollback import transaction: %v", err)
			}
		}
	}()

	for _, stmt := range []string{"DELETE FROM paremiotipus", "DELETE FROM fonts"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("clearing catalog: %w", err)
		}
	}

	fontStmt, err := tx.PrepareContext(ctx, "INSERT INTO fonts (id, title) VALUES (?, ?)")
	if err != nil {
		return nil, fmt.Errorf("preparing font statement: %w", err)
	}
	defer func() {
		if err := fontStmt.Close(); err != nil {
			s.logger.Warnf("failed to close font statement: %v", err)
		}
	}()

	for _, f := range ds.Fonts {
		if _, err := fontStmt.ExecContext(ctx, f.ID, f.Title); err != nil {
			return nil, fmt.Errorf("inserting font %s: %w", f.ID, err)
		}
	}

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO paremiotipus (paremiotipus, modisme, sinonim, equivalent, id_font)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing entry statement: %w", err)
	}
	defer func() {
		if err := entryStmt.Close(); err != nil {
			s.logger.Warnf("failed to close entry statement: %v", err)
		}
	}()

	for _, e := range ds.Entries {
		_, err := entryStmt.ExecContext(ctx,
			e.Paremiotipus,
			nullable(e.Modisme),
			nullable(e.Sinonim),
			nullable(e.Equivalent),
			nullable(e.Font),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting %q: %w", e.Paremiotipus, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}
	committed = true
	s.counts.purge()

	stats := &ImportStats{
		Fonts:   len(ds.Fonts),
		Entries: len(ds.Entries),
		Titles:  ds.Titles(),
	}
	s.logger.Infof("imported %d entries (%d paremiotipus, %d fonts)", stats.Entries, stats.Titles, stats.Fonts)
	return stats, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Variants returns every recorded wording of title.
func (s *Store) Variants(ctx context.Context, title string) ([]Variant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.modisme, p.sinonim, p.equivalent, p.id_font, f.title
		FROM paremiotipus p
		LEFT JOIN fonts f ON f.id = p.id_font
		WHERE p.paremiotipus = ?
		ORDER BY p.id
	`, title)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	var variants []Variant
	for rows.Next() {
		var modisme, sinonim, equivalent, fontID, fontTitle sql.NullString
		if err := rows.Scan(&modisme, &sinonim, &equivalent, &fontID, &fontTitle); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		variants = append(variants, Variant{
			Modisme:    modisme.String,
			Sinonim:    sinonim.String,
			Equivalent: equivalent.String,
			FontID:     fontID.String,
			FontTitle:  fontTitle.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("paremiotipus %q: %w", title, ErrNotFound)
	}
	return variants, nil
}

const fontQuery = `
	SELECT f.id, f.title, COUNT(DISTINCT p.paremiotipus)
	FROM fonts f
	LEFT JOIN paremiotipus p ON p.id_font = f.id`

// Font returns the source identified by id.
func (s *Store) Font(ctx context.Context, id string) (*Font, error) {
	var f Font
	err := s.db.QueryRowContext(ctx, fontQuery+" WHERE f.id = ? GROUP BY f.id", id).
		Scan(&f.ID, &f.Title, &f.Titles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("font %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying font: %w", err)
	}
	return &f, nil
}

// Fonts lists every source ordered by title.
func (s *Store) Fonts(ctx context.Context) ([]Font, error) {
	rows, err := s.db.QueryContext(ctx, fontQuery+" GROUP BY f.id ORDER BY f.title COLLATE "+Collation)
	if err != nil {
		return nil, fmt.Errorf("querying fonts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Warnf("failed to close rows: %v", err)
		}
	}()

	fonts := []Font{}
	for rows.Next() {
		var f Font
		if err := rows.Scan(&f.ID, &f.Title, &f.Titles); err != nil {
			return nil, fmt.Errorf("scanning font: %w", err)
		}
		fonts = append(fonts, f)
	}
	return fonts, rows.Err()
}
