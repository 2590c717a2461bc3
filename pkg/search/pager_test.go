package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	assert.Equal(t, 10, PageCount(100, 10))
	assert.Equal(t, 11, PageCount(101, 10))
	assert.Equal(t, 1, PageCount(1, 50))
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(500, AllResults))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 50, Offset(3, 25))
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 0, Offset(-7, 15))
	assert.Equal(t, 0, Offset(4, AllResults))
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name    string
		offset  int
		perPage int
		total   int
		want    string
	}{
		{"singular", 0, 10, 1, "S'ha trobat 1 paremiotipus per a la cerca fera."},
		{"plural single page", 0, 10, 6, "S'han trobat 6 paremiotipus per a la cerca fera."},
		{"no results", 0, 10, 0, "S'han trobat 0 paremiotipus per a la cerca fera."},
		{"exactly one page", 0, 10, 10, "S'han trobat 10 paremiotipus per a la cerca fera."},
		{"first page elides", 0, 10, 11, "S'han trobat 11 paremiotipus per a la cerca fera. Registres de l'1 al 10."},
		{"last partial page", 10, 10, 11, "S'han trobat 11 paremiotipus per a la cerca fera. Registres de l'11 a l'11."},
		{"middle page", 20, 10, 45, "S'han trobat 45 paremiotipus per a la cerca fera. Registres del 21 al 30."},
		{"eleven thousands", 11000, 10, 11500, "S'han trobat 11.500 paremiotipus per a la cerca fera. Registres de l'11.001 a l'11.010."},
		{"show all has no range", 0, AllResults, 45, "S'han trobat 45 paremiotipus per a la cerca fera."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.offset, tt.perPage, tt.total, "fera"))
		})
	}
}

func TestElides(t *testing.T) {
	for _, n := range []int{1, 11, 11000, 11500, 11999} {
		assert.True(t, elides(n), "%d", n)
	}
	for _, n := range []int{0, 2, 10, 12, 21, 101, 111, 1000, 10999, 12000, 110000} {
		assert.False(t, elides(n), "%d", n)
	}
}
