package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoad_JSONOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"catalog_source":"https://example.com/a.json","card_width":40}`), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/a.json", settings.CatalogSource)
	assert.Equal(t, 40, settings.CardWidth)
	// Untouched fields keep defaults
	assert.Equal(t, ":8080", settings.ServeAddress)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.yaml")
	content := "catalog_source: data/artworks.json\nwatch_catalog: false\nhttp_timeout: 2.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/artworks.json", settings.CatalogSource)
	assert.False(t, settings.WatchCatalog)
	assert.Equal(t, 2500*time.Millisecond, settings.Timeout())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gallery.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/gallery.json", "nested/gallery.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			settings := DefaultSettings()
			settings.CatalogSource = "file:///srv/artworks.json"
			settings.LogLevel = "debug"
			require.NoError(t, settings.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, settings, loaded)
		})
	}
}

func TestSettings_Durations(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, 30*time.Second, settings.Timeout())
	assert.Equal(t, 5*time.Minute, settings.CacheExpiration())
	assert.Equal(t, 500*time.Millisecond, settings.Debounce())
}
