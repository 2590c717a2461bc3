package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/parems/pkg/dataset"
)

func TestImportNormalizesAndReplaces(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 19, st.Entries)
	assert.Equal(t, fixtureTitles, st.Titles)
	assert.Equal(t, 3, st.Fonts)

	ds, err := dataset.Parse(strings.NewReader(`
fonts:
  - id: X
    title: Una font
paremiotipus:
  - paremiotipus: "Tenir   la  mosca al nas"
    font: X
`))
	require.NoError(t, err)

	stats, err := s.Import(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, &ImportStats{Fonts: 1, Entries: 1, Titles: 1}, stats)

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Entries)

	_, err = s.Variants(ctx, "Tenir la mosca al nas")
	require.NoError(t, err)
}

func TestVariants(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	variants, err := s.Variants(ctx, "Com una fera")
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, Variant{
		Modisme:   "Com una fera ferida",
		FontID:    "RMG",
		FontTitle: "Recull de modismes i frases fetes",
	}, variants[0])
	assert.Equal(t, "DCVB", variants[1].FontID)

	variants, err = s.Variants(ctx, "Qui no vulgui pols, que no vagi a l'era")
	require.NoError(t, err, "typographic apostrophes are stored as straight ones")
	assert.Len(t, variants, 1)

	variants, err = s.Variants(ctx, "Val més un boig conegut que un savi per conèixer")
	require.NoError(t, err, "whitespace runs are collapsed on import")
	assert.Len(t, variants, 2)

	_, err = s.Variants(ctx, "No existeix")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFonts(t *testing.T) {
	s := newFixtureStore(t)
	ctx := context.Background()

	f, err := s.Font(ctx, "SAL")
	require.NoError(t, err)
	assert.Equal(t, &Font{ID: "SAL", Title: "Refranyer català comentat", Titles: 5}, f)

	_, err = s.Font(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)

	fonts, err := s.Fonts(ctx)
	require.NoError(t, err)
	require.Len(t, fonts, 3)
	assert.Equal(t, "DCVB", fonts[0].ID)
	assert.Equal(t, "SAL", fonts[2].ID)
}
