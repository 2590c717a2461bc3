package components

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/parems/cmd/web/components/types"
)

func TestSearchEscapesUserInput(t *testing.T) {
	html, err := String(context.Background(), Search(types.PageData{
		Title:    "Cerca",
		Query:    `<script>alert("x")</script>`,
		Searched: true,
		Summary:  `S'ha trobat 1 paremiotipus per a la cerca <b>.`,
		Results:  []string{"A la fera, no li toquis la cua"},
	}))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `href="/api/paremiotipus/A%20la%20fera%2C%20no%20li%20toquis%20la%20cua"`)
}

func TestSearchFormState(t *testing.T) {
	html, err := String(context.Background(), Search(types.PageData{
		Mode:           "frase",
		Variant:        true,
		ResultsPerPage: 0,
		Modes:          []types.Option{{Value: "conté", Label: "Conté"}, {Value: "frase", Label: "Frase"}},
		PerPageOptions: []types.Option{{Value: "10", Label: "10"}, {Value: "infinit", Label: "Tots"}},
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `<option value="frase" selected>`)
	assert.Contains(t, html, `<option value="infinit" selected>`)
	assert.Contains(t, html, `name="variant" checked>`)
	assert.NotContains(t, html, `name="sinonim" checked>`)
	assert.NotContains(t, html, `class="results"`)
}

func TestSearchPagination(t *testing.T) {
	html, err := String(context.Background(), Search(types.PageData{
		Searched:    true,
		Results:     []string{"u", "dos"},
		Offset:      10,
		CurrentPage: 2,
		TotalPages:  3,
		TotalCount:  25,
		PageURL:     func(p int) string { return "/?pagina=" + strconv.Itoa(p) },
	}))
	require.NoError(t, err)

	assert.Contains(t, html, `<ol class="results" start="11">`)
	assert.Contains(t, html, `<a rel="prev" href="/?pagina=1">`)
	assert.Contains(t, html, `<a rel="next" href="/?pagina=3">`)
	assert.Contains(t, html, `<span>2</span>`)
}

func TestSearchError(t *testing.T) {
	html, err := String(context.Background(), Search(types.PageData{Error: "La cerca és massa llarga"}))
	require.NoError(t, err)
	assert.Contains(t, html, `<p class="error">La cerca és massa llarga</p>`)
}

func TestPageWindow(t *testing.T) {
	assert.Nil(t, PageWindow(1, 1, 9))
	assert.Equal(t, []int{1, 2, 3}, PageWindow(1, 3, 9))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, PageWindow(1, 20, 5))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, PageWindow(10, 20, 5))
	assert.Equal(t, []int{16, 17, 18, 19, 20}, PageWindow(20, 20, 5))
}

func TestLayoutShell(t *testing.T) {
	html, err := String(context.Background(), Search(types.PageData{Title: "Cercador <de> paremiotipus", Version: "0.1.0"}))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<!doctype html><html lang="ca">`))
	assert.Contains(t, html, `<title>Cercador &lt;de&gt; paremiotipus</title>`)
	assert.Contains(t, html, `<main><form class="search"`)
	assert.Contains(t, html, `</form></main><footer>parems 0.1.0</footer>`)
	assert.Contains(t, html, `<option value="" selected>Totes les fonts</option>`)
}
