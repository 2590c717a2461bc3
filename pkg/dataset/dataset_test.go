package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader(`
fonts:
  - id: " DCVB "
    title: Diccionari català-valencià-balear
paremiotipus:
  - paremiotipus: "Qui  no vulgui pols, que no vagi a l’era"
    font: DCVB
  - paremiotipus: "Qui no vulgui pols, que no vagi a l'era"
    modisme: "Qui no vol pols,\tque no vagi a l’era"
  - paremiotipus: "Més val boig conegut que savi per conèixer"
`))
	require.NoError(t, err)

	assert.Equal(t, "DCVB", ds.Fonts[0].ID)
	assert.Equal(t, "Qui no vulgui pols, que no vagi a l'era", ds.Entries[0].Paremiotipus)
	assert.Equal(t, "Qui no vol pols, que no vagi a l'era", ds.Entries[1].Modisme)
	assert.Equal(t, "Més val boig conegut que savi per conèixer", ds.Entries[2].Paremiotipus, "composed to NFC")
	assert.Equal(t, 2, ds.Titles())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty document",
			input: "",
			want:  ErrNoEntries.Error(),
		},
		{
			name:  "no entries",
			input: "fonts:\n  - id: A\n    title: B\n",
			want:  ErrNoEntries.Error(),
		},
		{
			name:  "missing title",
			input: "paremiotipus:\n  - modisme: sense títol\n",
			want:  "entry #1 has no paremiotipus",
		},
		{
			name:  "duplicate font",
			input: "fonts:\n  - id: A\n  - id: A\nparemiotipus:\n  - paremiotipus: x\n",
			want:  `duplicate font id "A"`,
		},
		{
			name:  "unknown key",
			input: "paremiotipus:\n  - paremiotipus: x\n    autor: y\n",
			want:  "field autor not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paremiotipus:\n  - paremiotipus: Ploure a bots i barrals\n"), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, ds.Entries, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
