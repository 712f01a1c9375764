package server

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/art-gallery/internal/catalog"
	"github.com/handiism/art-gallery/internal/filter"
)

const catalogJSON = `[
  {"id": 1, "title": "Still Water", "artist": "Ana Ruiz", "mood": "Calm", "style": "Minimal", "year": 2019, "color": "#A3C4F3", "description": "A **quiet** lake."},
  {"id": 2, "title": "Night Shift", "artist": "Tom Berg", "mood": "Moody", "style": "Abstract", "year": 2021, "color": "#2B2D42", "description": "Ink."},
  {"id": 3, "title": "Sunrise Run", "artist": "Lea Stone", "mood": "Energetic", "style": "Abstract", "year": 2020, "color": "orange", "description": "Strokes."}
]`

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "artworks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestServer(t *testing.T, source string) *Server {
	t.Helper()
	loader := catalog.NewLoader(nil, time.Minute, nil)
	s, err := New(Config{Source: source}, loader, filter.NewPicker(rand.NewPCG(3, 4)), nil)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, target string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestServer_Routes(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), catalogJSON)
	s := newTestServer(t, path)
	require.NoError(t, s.Load(context.Background()))
	h := s.Handler()

	tests := []struct {
		name         string
		target       string
		wantCode     int
		wantContains []string
		wantMissing  []string
	}{
		{
			name:         "index shows all",
			target:       "/",
			wantCode:     http.StatusOK,
			wantContains: []string{"Gallery loaded. Use search and filters.", "Still Water", "Night Shift", "Sunrise Run"},
		},
		{
			name:         "search by style",
			target:       "/?q=&style=abstract",
			wantCode:     http.StatusOK,
			wantContains: []string{"Showing 2 artwork(s).", "Night Shift", "Sunrise Run"},
			wantMissing:  []string{"Still Water"},
		},
		{
			name:         "search by text",
			target:       "/?q=LEA&style=all",
			wantCode:     http.StatusOK,
			wantContains: []string{"Showing 1 artwork(s).", "Sunrise Run"},
			wantMissing:  []string{"Night Shift"},
		},
		{
			name:         "no match",
			target:       "/?q=zzz",
			wantCode:     http.StatusOK,
			wantContains: []string{"No artworks found.", "No artworks match your search."},
		},
		{
			name:         "show all",
			target:       "/?show=all&q=zzz",
			wantCode:     http.StatusOK,
			wantContains: []string{"Showing all 3 artworks.", "Still Water"},
		},
		{
			name:         "artwork details",
			target:       "/artworks/1",
			wantCode:     http.StatusOK,
			wantContains: []string{`<body class="mood-calm">`, "<strong>quiet</strong>", "Ana Ruiz", "background: #e8f1f8"},
		},
		{
			name:         "artwork details keep search",
			target:       "/artworks/2?q=night",
			wantCode:     http.StatusOK,
			wantContains: []string{"Showing 1 artwork(s).", `<body class="mood-moody">`},
		},
		{
			name:     "unknown artwork",
			target:   "/artworks/42",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "invalid artwork id",
			target:   "/artworks/abc",
			wantCode: http.StatusBadRequest,
		},
		{
			name:         "random within search",
			target:       "/random?style=minimal",
			wantCode:     http.StatusOK,
			wantContains: []string{"Random highlight: Still Water (Calm).", "art-card highlight", `<body class="mood-calm">`},
		},
		{
			name:         "random on empty view",
			target:       "/random?q=zzz",
			wantCode:     http.StatusOK,
			wantContains: []string{"No artworks to highlight."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, h, tt.target)
			assert.Equal(t, tt.wantCode, code)
			for _, want := range tt.wantContains {
				assert.Contains(t, body, want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, body, missing)
			}
		})
	}
}

func TestServer_CatalogJSON(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), catalogJSON)
	s := newTestServer(t, path)
	require.NoError(t, s.Load(context.Background()))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/artworks.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	cat, err := catalog.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
}

func TestServer_Health(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), catalogJSON)
	s := newTestServer(t, path)
	require.NoError(t, s.Load(context.Background()))

	code, body := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, healthResponse{Status: "ok", Artworks: 3}, resp)
}

func TestServer_LoadFailure(t *testing.T) {
	s := newTestServer(t, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, s.Load(context.Background()))
	h := s.Handler()

	code, body := get(t, h, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Error loading artworks.")
	assert.Contains(t, body, "No artworks match your search.")
	assert.NotContains(t, body, `class="art-card`)

	code, _ = get(t, h, "/random")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, h, "/artworks.json")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, body = get(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, `"status":"unavailable"`)
}

func TestServer_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, catalogJSON)
	s := newTestServer(t, path)
	require.NoError(t, s.Load(context.Background()))

	writeCatalog(t, dir, `[{"id": 9, "title": "Fresh", "style": "Pop Art", "mood": "Energetic"}]`)
	require.NoError(t, s.Reload(context.Background()))

	cat, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	// a broken file keeps the last good snapshot
	writeCatalog(t, dir, `{not json`)
	assert.Error(t, s.Reload(context.Background()))

	cat, err = s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())
}

func TestServer_RunWatchesCatalog(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, catalogJSON)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	loader := catalog.NewLoader(nil, time.Minute, nil)
	s, err := New(Config{Address: addr, Source: path, Watch: true, Debounce: 20 * time.Millisecond}, loader, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	writeCatalog(t, dir, `[{"id": 7, "title": "Storm Study", "style": "Minimal", "mood": "Moody"}]`)

	require.Eventually(t, func() bool {
		cat, _ := s.Snapshot()
		return cat.Len() == 1
	}, 3*time.Second, 20*time.Millisecond)

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), "Storm Study"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunWatcherFailureStopsNothingRunning(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	source := filepath.Join(t.TempDir(), "missing-dir", "artworks.json")
	loader := catalog.NewLoader(nil, time.Minute, nil)
	s, err := New(Config{Address: addr, Source: source, Watch: true, Debounce: 20 * time.Millisecond}, loader, nil, nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing-dir")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the watcher failed")
	}

	time.Sleep(100 * time.Millisecond)
	_, err = net.DialTimeout("tcp", addr, time.Second)
	assert.Error(t, err, "nothing listens after Run returned")
}
