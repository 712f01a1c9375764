package gallery

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/model"
	"github.com/handiism/art-gallery/internal/render"
)

type fakeLoader struct {
	mu          sync.Mutex
	catalog     *model.Catalog
	err         error
	loads       int
	invalidated []string
}

func (f *fakeLoader) Load(_ context.Context, _ string) (*model.Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.catalog, nil
}

func (f *fakeLoader) Invalidate(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, source)
}

func (f *fakeLoader) set(cat *model.Catalog, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalog, f.err = cat, err
}

var artworks = []model.Artwork{
	{ID: 1, Title: "Still Water", Artist: "Ana Ruiz", Mood: "Calm", Style: "Minimal", Year: 2019, Color: "#A3C4F3"},
	{ID: 2, Title: "Night Shift", Artist: "Tom Berg", Mood: "Moody", Style: "Abstract", Year: 2021, Color: "#2B2D42"},
	{ID: 3, Title: "Sunrise Run", Artist: "Lea Stone", Mood: "Energetic", Style: "Abstract", Year: 2020, Color: "orange"},
	{ID: 4, Title: "Garden Hours", Artist: "Mika Sato", Mood: "Peaceful", Style: "Impressionism", Year: 2018, Color: "#B5E48C"},
}

func newLoaded(t *testing.T) (*Controller, *fakeLoader) {
	t.Helper()
	loader := &fakeLoader{catalog: model.NewCatalog(artworks)}
	c := NewController(loader, "artworks.json", filter.NewPicker(rand.NewPCG(1, 2)), nil)
	_, err := c.Load(context.Background())
	require.NoError(t, err)
	return c, loader
}

func ids(list []model.Artwork) []int {
	out := make([]int, len(list))
	for i, art := range list {
		out[i] = art.ID
	}
	return out
}

func TestController_Load(t *testing.T) {
	var events []ProgressEvent
	loader := &fakeLoader{catalog: model.NewCatalog(artworks)}
	c := NewController(loader, "artworks.json", nil, func(e ProgressEvent) { events = append(events, e) })

	res, err := c.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusLoaded, res.Status)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(res.View))
	assert.Len(t, res.Gallery.Cards, 4)
	assert.Nil(t, res.Details)
	assert.True(t, res.Theme.IsZero())
	assert.Equal(t, render.DefaultPalette(), res.Palette)
	assert.Equal(t, []string{"Minimal", "Abstract", "Impressionism"}, res.Styles)
	assert.True(t, res.Query.IsAll())

	require.NotEmpty(t, events)
	assert.Equal(t, LevelInfo, events[0].Level)
	for _, e := range events {
		assert.NotEqual(t, LevelWarning, e.Level, "every mood has a palette: %s", e.Message)
	}
	assert.Equal(t, LevelSuccess, events[len(events)-1].Level)
}

func TestController_Begin(t *testing.T) {
	c := NewController(&fakeLoader{}, "artworks.json", nil, nil)
	res := c.Begin()
	assert.Equal(t, "Loading artworks...", res.Status)
	assert.True(t, res.Gallery.IsEmpty())
}

func TestController_LoadFailure(t *testing.T) {
	fetchErr := errors.New("connection refused")
	var events []ProgressEvent
	c := NewController(&fakeLoader{err: fetchErr}, "http://example.invalid/artworks.json", nil, func(e ProgressEvent) { events = append(events, e) })

	var res Result
	var err error
	require.NotPanics(t, func() {
		res, err = c.Load(context.Background())
	})

	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, "Error loading artworks.", res.Status)
	assert.Empty(t, res.View)
	assert.Empty(t, res.Gallery.Cards)
	assert.Equal(t, render.Placeholder, res.Gallery.Placeholder)
	assert.Nil(t, c.Catalog())

	last := events[len(events)-1]
	assert.Equal(t, LevelError, last.Level)
	assert.ErrorIs(t, last.Err, fetchErr)

	// actions on the empty catalog keep working
	assert.Equal(t, StatusNoResults, c.Apply(filter.Query{Text: "x"}).Status)
	assert.Equal(t, "Showing all 0 artworks.", c.ShowAll().Status)
	assert.Equal(t, StatusNoHighlight, c.RandomHighlight().Status)
}

func TestController_NoLoader(t *testing.T) {
	c := NewController(nil, "", nil, nil)
	res, err := c.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StatusLoadFailed, res.Status)
}

func TestController_Apply(t *testing.T) {
	tests := []struct {
		name       string
		query      filter.Query
		wantIDs    []int
		wantStatus string
	}{
		{
			name:       "style only",
			query:      filter.Query{Style: "abstract"},
			wantIDs:    []int{2, 3},
			wantStatus: "Showing 2 artwork(s).",
		},
		{
			name:       "text across fields",
			query:      filter.Query{Text: "CALM", Style: "all"},
			wantIDs:    []int{1},
			wantStatus: "Showing 1 artwork(s).",
		},
		{
			name:       "text and style",
			query:      filter.Query{Text: "run", Style: "Abstract"},
			wantIDs:    []int{3},
			wantStatus: "Showing 1 artwork(s).",
		},
		{
			name:       "no match",
			query:      filter.Query{Text: "zzz", Style: "all"},
			wantIDs:    []int{},
			wantStatus: "No artworks found.",
		},
		{
			name:       "empty query",
			query:      filter.Query{},
			wantIDs:    []int{1, 2, 3, 4},
			wantStatus: "Showing 4 artwork(s).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newLoaded(t)
			res := c.Apply(tt.query)

			assert.Equal(t, tt.wantIDs, ids(res.View))
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.query, res.Query)
			if len(tt.wantIDs) == 0 {
				assert.Empty(t, res.Gallery.Cards)
				assert.Equal(t, render.Placeholder, res.Gallery.Placeholder)
			}
			assert.Equal(t, 4, c.Catalog().Len(), "catalog untouched")
		})
	}
}

func TestController_ShowAll(t *testing.T) {
	c, _ := newLoaded(t)
	c.Apply(filter.Query{Text: "night", Style: "abstract"})

	res := c.ShowAll()
	assert.Equal(t, "Showing all 4 artworks.", res.Status)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(res.View))
	assert.Equal(t, filter.AllQuery(), res.Query)
}

func TestController_RandomHighlight(t *testing.T) {
	c, _ := newLoaded(t)
	c.Apply(filter.Query{Style: "abstract"})

	for range 20 {
		res := c.RandomHighlight()

		var highlighted []int
		for _, card := range res.Gallery.Cards {
			if card.Highlighted {
				highlighted = append(highlighted, card.ID)
			}
		}
		require.Len(t, highlighted, 1)
		id := highlighted[0]
		assert.Contains(t, []int{2, 3}, id, "pick comes from the view")

		art, _ := c.Catalog().ByID(id)
		assert.Equal(t, "Random highlight: "+art.Title+" ("+art.Mood+").", res.Status)
		require.NotNil(t, res.Details)
		assert.Equal(t, id, res.Details.ID)
		assert.Equal(t, render.ThemeFor(art.Mood), res.Theme)
	}
}

func TestController_RandomHighlightEmptyView(t *testing.T) {
	c, _ := newLoaded(t)
	c.Apply(filter.Query{Text: "nothing matches this"})

	res := c.RandomHighlight()
	assert.Equal(t, "No artworks to highlight.", res.Status)
	assert.Nil(t, res.Details)
	assert.True(t, res.Theme.IsZero())
}

func TestController_ApplyClearsHighlight(t *testing.T) {
	c, _ := newLoaded(t)
	c.RandomHighlight()

	res := c.Apply(filter.AllQuery())
	for _, card := range res.Gallery.Cards {
		assert.False(t, card.Highlighted)
	}
	assert.NotNil(t, res.Details, "selection survives filtering")
}

func TestController_InputChanged(t *testing.T) {
	c, _ := newLoaded(t)

	res := c.InputChanged("sun")
	assert.Equal(t, StatusLoaded, res.Status, "non-empty text leaves the status alone")

	for _, text := range []string{"", "   ", "\t"} {
		res = c.InputChanged(text)
		assert.Equal(t, "Type a word or choose a style and click Apply.", res.Status)
	}
	assert.Len(t, res.View, 4, "clearing the input does not filter")
}

func TestController_Key(t *testing.T) {
	c, _ := newLoaded(t)

	res, handled := c.Key("x")
	assert.False(t, handled)
	assert.Equal(t, StatusLoaded, res.Status)

	for _, key := range []string{"r", "R"} {
		res, handled = c.Key(key)
		assert.True(t, handled)
		assert.Contains(t, res.Status, "Random highlight: ")
	}
}

func TestController_Select(t *testing.T) {
	c, _ := newLoaded(t)
	c.Apply(filter.Query{Style: "minimal"})
	before := c.State().Status

	res, err := c.Select(2)
	require.NoError(t, err)
	require.NotNil(t, res.Details)
	assert.Equal(t, "Night Shift", res.Details.Field("Title"))
	assert.Equal(t, "mood-moody", res.Theme.Name)
	assert.Equal(t, before, res.Status)

	res, err = c.Select(1)
	require.NoError(t, err)
	assert.Equal(t, "mood-calm", res.Theme.Name, "one theme at a time")

	_, err = c.Select(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, c.State().Details.ID)
}

func TestController_Reload(t *testing.T) {
	c, loader := newLoaded(t)
	c.Apply(filter.Query{Style: "abstract"})
	_, err := c.Select(3)
	require.NoError(t, err)

	// artwork 3 is gone, a new abstract piece arrives
	loader.set(model.NewCatalog([]model.Artwork{
		artworks[0],
		artworks[1],
		{ID: 5, Title: "Neon Pulse", Mood: "Energetic", Style: "Abstract"},
	}), nil)

	res, err := c.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"artworks.json"}, loader.invalidated)
	assert.Equal(t, []int{2, 5}, ids(res.View), "active query re-applied")
	assert.Equal(t, filter.Query{Style: "abstract"}, res.Query)
	assert.Nil(t, res.Details, "selection of a removed artwork is dropped")
	assert.True(t, res.Theme.IsZero())
	assert.Equal(t, StatusLoaded, res.Status)
}

func TestController_ReloadKeepsSelection(t *testing.T) {
	c, _ := newLoaded(t)
	_, err := c.Select(1)
	require.NoError(t, err)

	res, err := c.Reload(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Details)
	assert.Equal(t, 1, res.Details.ID)
	assert.Equal(t, "mood-calm", res.Theme.Name)
}

func TestController_ReloadFailureKeepsCatalog(t *testing.T) {
	c, loader := newLoaded(t)
	loader.set(nil, errors.New("invalid JSON"))

	res, err := c.Reload(context.Background())
	assert.Error(t, err)
	assert.Equal(t, StatusLoadFailed, res.Status)
	assert.Len(t, res.View, 4)
	assert.Equal(t, 4, c.Catalog().Len())
}

func TestController_ReloadFailureWarns(t *testing.T) {
	var events []ProgressEvent
	loader := &fakeLoader{catalog: model.NewCatalog(artworks)}
	c := NewController(loader, "artworks.json", nil, func(e ProgressEvent) { events = append(events, e) })
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	reloadErr := errors.New("invalid JSON")
	loader.set(nil, reloadErr)
	_, err = c.Reload(context.Background())
	require.Error(t, err)

	last := events[len(events)-1]
	assert.Equal(t, LevelWarning, last.Level, "the previous catalog is still shown")
	assert.ErrorIs(t, last.Err, reloadErr)
}

func TestController_WarnsAboutMoodsWithoutPalette(t *testing.T) {
	var warnings []string
	cat := model.NewCatalog([]model.Artwork{
		artworks[0],
		{ID: 8, Title: "Fog Bank", Mood: "Melancholic", Style: "Minimal"},
	})
	c := NewController(&fakeLoader{catalog: cat}, "artworks.json", nil, func(e ProgressEvent) {
		if e.Level == LevelWarning {
			warnings = append(warnings, e.Message)
		}
	})

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"Melancholic"`)
}

func TestController_PaletteFollowsTheme(t *testing.T) {
	c, _ := newLoaded(t)

	res, err := c.Select(2)
	require.NoError(t, err)
	assert.Equal(t, render.ThemeFor("Moody").Palette, res.Palette)

	res, err = c.Select(1)
	require.NoError(t, err)
	assert.Equal(t, res.Theme.Palette, res.Palette)
}

func TestController_SetCatalog(t *testing.T) {
	c := NewController(nil, "", nil, nil)
	res := c.SetCatalog(model.NewCatalog(artworks[:2]))

	assert.Equal(t, StatusLoaded, res.Status)
	assert.Equal(t, []int{1, 2}, ids(res.View))
}

func TestController_ResultIsolated(t *testing.T) {
	c, _ := newLoaded(t)
	res := c.State()
	res.View[0].Title = "changed"

	assert.Equal(t, "Still Water", c.State().View[0].Title)
}

func TestController_Concurrent(t *testing.T) {
	c, _ := newLoaded(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 25 {
				switch i % 4 {
				case 0:
					c.Apply(filter.Query{Style: "abstract"})
				case 1:
					c.RandomHighlight()
				case 2:
					c.ShowAll()
				default:
					_, _ = c.Select(1)
				}
			}
		}(i)
	}
	wg.Wait()

	res := c.State()
	for _, art := range res.View {
		_, ok := c.Catalog().ByID(art.ID)
		assert.True(t, ok)
	}
}

func TestLogProgress(t *testing.T) {
	assert.Nil(t, LogProgress(nil))

	core, logs := observer.New(zap.DebugLevel)
	logFn := LogProgress(zap.New(core))

	logFn(ProgressEvent{Message: "verbose", Level: LevelVerbose})
	logFn(ProgressEvent{Message: "warn", Level: LevelWarning})
	logFn(ProgressEvent{Message: "failed", Level: LevelError, Err: errors.New("boom")})
	logFn(ProgressEvent{Message: "done", Level: LevelSuccess})

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
	assert.Equal(t, zap.InfoLevel, entries[3].Level)
	assert.Equal(t, "success", entries[3].ContextMap()["progress"])
}
