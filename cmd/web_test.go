package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiojr/parems/pkg/config"
	"github.com/rubiojr/parems/pkg/dataset"
	"github.com/rubiojr/parems/pkg/storage"
)

// installFixture writes a config pointing at a freshly installed copy of
// the regression dataset and returns the config path.
func installFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.Parse([]byte(`database = "` + filepath.ToSlash(filepath.Join(dir, "parems.db")) + `"`))
	require.NoError(t, err)
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, cfg.SaveConfig(configPath))

	require.NoError(t, install(context.Background(), configPath, filepath.Join("..", "pkg", "storage", "testdata", "paremies.yaml")))
	return configPath
}

func newTestWebServer(t *testing.T) (*WebServer, http.Handler) {
	t.Helper()

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "parems.db"), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ds, err := dataset.Load(filepath.Join("..", "pkg", "storage", "testdata", "paremies.yaml"))
	require.NoError(t, err)
	_, err = store.Import(context.Background(), ds)
	require.NoError(t, err)

	cfg, err := config.Parse([]byte("[web]\ndefault_results_per_page = 10\n"))
	require.NoError(t, err)
	return newWebServer(cfg, store)
}

func getPage(t *testing.T, h http.Handler, query url.Values) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func TestHomeWithoutSearch(t *testing.T) {
	_, h := newTestWebServer(t)

	code, body := getPage(t, h, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `<form class="search"`)
	assert.Contains(t, body, `<option value="SAL">Refranyer català comentat</option>`)
	assert.Contains(t, body, `<option value="frase">Frase sencera</option>`)
	assert.NotContains(t, body, `class="results"`)
}

func TestHomeSearch(t *testing.T) {
	_, h := newTestWebServer(t)

	code, body := getPage(t, h, url.Values{"cerca": {"fera"}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "S&#39;han trobat 6 paremiotipus per a la cerca fera.")
	assert.Equal(t, 6, strings.Count(body, "<li>"))
	assert.NotContains(t, body, `<nav class="pages">`)
}

func TestHomePagination(t *testing.T) {
	_, h := newTestWebServer(t)

	code, body := getPage(t, h, url.Values{"cerca": {""}, "pagina": {"2"}})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 6, strings.Count(body, "<li>"))
	assert.Contains(t, body, `<ol class="results" start="11">`)
	assert.Contains(t, body, `<a rel="prev" href="/?mostra=10">`)
}

func TestHomeQueryTooLong(t *testing.T) {
	_, h := newTestWebServer(t)

	code, body := getPage(t, h, url.Values{"cerca": {strings.Repeat("x", 300)}})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "La cerca no pot superar els 254 caràcters.")
}

func TestHomeUnknownPath(t *testing.T) {
	_, h := newTestWebServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyConfig(t *testing.T) {
	s, _ := newTestWebServer(t)

	cfg, err := config.Parse([]byte("[web]\ndefault_results_per_page = 50\n[cache]\nenabled = false\n"))
	require.NoError(t, err)
	s.applyConfig(cfg)
	assert.Equal(t, 50, s.apiServer.DefaultResultsPerPage())
}

func TestReloadFromFile(t *testing.T) {
	s, _ := newTestWebServer(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[web]\ndefault_results_per_page = 25\n"), 0o644))
	s.reload(path)
	assert.Equal(t, 25, s.apiServer.DefaultResultsPerPage())

	require.NoError(t, os.WriteFile(path, []byte("[web\n"), 0o644))
	s.reload(path)
	assert.Equal(t, 25, s.apiServer.DefaultResultsPerPage(), "invalid files keep the current settings")
}
