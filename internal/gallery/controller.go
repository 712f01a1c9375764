package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/handiism/art-gallery/internal/filter"
	"github.com/handiism/art-gallery/internal/model"
	"github.com/handiism/art-gallery/internal/render"
)

// ErrNotFound is returned when an artwork id is not in the catalog.
var ErrNotFound = errors.New("artwork not found")

// Status lines shown after each action.
const (
	StatusLoading      = "Loading artworks..."
	StatusLoaded       = "Gallery loaded. Use search and filters."
	StatusLoadFailed   = "Error loading artworks."
	StatusNoResults    = "No artworks found."
	StatusNoHighlight  = "No artworks to highlight."
	StatusInputCleared = "Type a word or choose a style and click Apply."
)

// CatalogLoader fetches catalogs. *catalog.Loader implements it.
type CatalogLoader interface {
	Load(ctx context.Context, source string) (*model.Catalog, error)
	Invalidate(source string)
}

// Result is the presentation state after an action.
type Result struct {
	// Query is the active search.
	Query filter.Query

	// View is the filtered view, a subset of the catalog in catalog order.
	View []model.Artwork

	// Gallery is the card view-model of View.
	Gallery render.Gallery

	// Details is the detail panel of the selected artwork, nil if none.
	Details *render.Details

	// Theme is the applied mood theme, zero if none.
	Theme render.Theme

	// Palette is the palette of Theme, or the default palette if none.
	Palette render.Palette

	// Status is the status line.
	Status string

	// Styles lists the catalog styles for the style selector.
	Styles []string
}

// Controller wires user actions to the filter engine and the renderer.
//
// It owns the catalog, the filtered view and the derived presentation
// state (selection, highlight, theme, status). Every action runs to
// completion and returns the new Result. Controller is safe for
// concurrent use, but actions are serialized.
type Controller struct {
	loader     CatalogLoader
	source     string
	picker     *filter.Picker
	onProgress func(ProgressEvent)

	mu        sync.Mutex
	themer    render.Themer
	catalog   *model.Catalog
	query     filter.Query
	view      []model.Artwork
	highlight int
	selected  int
	status    string
}

// NewController creates a Controller loading its catalog from source.
//
// loader may be nil for controllers fed through SetCatalog. picker may be
// nil to use a randomly seeded one. onProgress may be nil.
func NewController(loader CatalogLoader, source string, picker *filter.Picker, onProgress func(ProgressEvent)) *Controller {
	if picker == nil {
		picker = filter.NewPicker(nil)
	}
	return &Controller{
		loader:     loader,
		source:     source,
		picker:     picker,
		onProgress: onProgress,
		query:      filter.AllQuery(),
		view:       []model.Artwork{},
	}
}

// Begin marks the start of a load and returns the loading state.
func (c *Controller) Begin() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = StatusLoading
	c.progress(ProgressEvent{Message: "Loading catalog from " + c.source, Level: LevelInfo})
	return c.result()
}

// Load fetches the catalog and shows all of it.
//
// On failure the catalog stays empty, the status reports the error and
// the error is returned alongside the Result.
func (c *Controller) Load(ctx context.Context) (Result, error) {
	c.Begin()

	cat, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.catalog = nil
		c.view = []model.Artwork{}
		c.highlight, c.selected = 0, 0
		c.themer.Clear()
		c.status = StatusLoadFailed
		c.progress(ProgressEvent{Message: "Error loading catalog", Level: LevelError, Err: err})
		return c.result(), err
	}

	c.setCatalog(cat)
	c.query = filter.AllQuery()
	c.view = cat.All()
	c.status = StatusLoaded
	c.reportUnthemedMoods(cat)
	c.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d artworks", cat.Len()), Level: LevelSuccess})
	return c.result(), nil
}

// Reload refetches the catalog, bypassing the loader cache, and re-applies
// the active query.
//
// A failed reload keeps the previous catalog and view; only the status
// changes.
func (c *Controller) Reload(ctx context.Context) (Result, error) {
	if c.loader != nil {
		c.loader.Invalidate(c.source)
	}
	c.Begin()

	cat, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.status = StatusLoadFailed
		c.progress(ProgressEvent{Message: "Reload failed, keeping the previous catalog", Level: LevelWarning, Err: err})
		return c.result(), err
	}

	c.setCatalog(cat)
	c.view = filter.Filter(cat.All(), c.query)
	c.status = StatusLoaded
	c.reportUnthemedMoods(cat)
	c.progress(ProgressEvent{Message: fmt.Sprintf("Reloaded %d artworks", cat.Len()), Level: LevelSuccess})
	return c.result(), nil
}

func (c *Controller) fetch(ctx context.Context) (*model.Catalog, error) {
	if c.loader == nil {
		return nil, errors.New("no catalog loader configured")
	}
	return c.loader.Load(ctx, c.source)
}

// SetCatalog replaces the catalog and shows all of it, as a successful
// Load would.
func (c *Controller) SetCatalog(cat *model.Catalog) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setCatalog(cat)
	c.query = filter.AllQuery()
	c.view = cat.All()
	c.status = StatusLoaded
	return c.result()
}

// setCatalog swaps the catalog and drops presentation state that refers
// to artworks no longer present.
func (c *Controller) setCatalog(cat *model.Catalog) {
	c.catalog = cat
	if _, ok := cat.ByID(c.selected); !ok {
		c.selected = 0
		c.themer.Clear()
	}
	if _, ok := cat.ByID(c.highlight); !ok {
		c.highlight = 0
	}
}

// Apply filters the catalog with q.
//
// Any highlight is cleared. The selection and theme are kept.
func (c *Controller) Apply(q filter.Query) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = q
	c.view = filter.Filter(c.catalog.All(), q)
	c.highlight = 0

	if len(c.view) == 0 {
		c.status = StatusNoResults
	} else {
		c.status = fmt.Sprintf("Showing %d artwork(s).", len(c.view))
	}
	c.progress(ProgressEvent{Message: fmt.Sprintf("Filter text=%q style=%q matched %d", q.Text, q.Style, len(c.view)), Level: LevelVerbose})
	return c.result()
}

// ShowAll resets the query and shows the whole catalog.
func (c *Controller) ShowAll() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = filter.AllQuery()
	c.view = c.catalog.All()
	c.highlight = 0
	c.status = fmt.Sprintf("Showing all %d artworks.", len(c.view))
	return c.result()
}

// RandomHighlight picks a random artwork of the current view, highlights
// it, selects it and applies its mood theme.
func (c *Controller) RandomHighlight() Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	art, ok := c.picker.Pick(c.view)
	if !ok {
		c.status = StatusNoHighlight
		return c.result()
	}

	c.highlight = art.ID
	c.selected = art.ID
	c.themer.Apply(art.Mood)
	c.status = fmt.Sprintf("Random highlight: %s (%s).", art.Title, art.Mood)
	c.progress(ProgressEvent{Message: fmt.Sprintf("Highlighted artwork %d", art.ID), Level: LevelVerbose})
	return c.result()
}

// InputChanged reacts to edits of the search text without filtering.
//
// When text is empty or only whitespace the status prompts for a search;
// otherwise nothing changes.
func (c *Controller) InputChanged(text string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		c.status = StatusInputCleared
	}
	return c.result()
}

// Key handles a global keypress. "r" (any case) triggers a random
// highlight; other keys are ignored and report false.
func (c *Controller) Key(key string) (Result, bool) {
	if strings.EqualFold(key, "r") {
		return c.RandomHighlight(), true
	}
	return c.State(), false
}

// Select shows the details of the artwork with the given id and applies
// its mood theme. The status line is unchanged.
//
// Returns ErrNotFound if id is not in the catalog.
func (c *Controller) Select(id int) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	art, ok := c.catalog.ByID(id)
	if !ok {
		return c.result(), fmt.Errorf("artwork %d: %w", id, ErrNotFound)
	}

	c.selected = art.ID
	c.themer.Apply(art.Mood)
	return c.result(), nil
}

// State returns the current Result without changing anything.
func (c *Controller) State() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result()
}

// Catalog returns the current catalog, nil before a successful load.
func (c *Controller) Catalog() *model.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog
}

// result builds the Result; c.mu must be held.
func (c *Controller) result() Result {
	view := make([]model.Artwork, len(c.view))
	copy(view, c.view)

	res := Result{
		Query:   c.query,
		View:    view,
		Gallery: render.RenderCards(view, c.highlight),
		Theme:   c.themer.Current(),
		Palette: c.themer.Palette(),
		Status:  c.status,
		Styles:  c.catalog.Styles(),
	}
	if art, ok := c.catalog.ByID(c.selected); ok && c.selected != 0 {
		d := render.RenderDetails(art)
		res.Details = &d
	}
	return res
}

// reportUnthemedMoods warns about moods that fall back to the neutral palette.
func (c *Controller) reportUnthemedMoods(cat *model.Catalog) {
	for _, mood := range cat.Moods() {
		if !render.HasPalette(mood) {
			c.progress(ProgressEvent{Message: fmt.Sprintf("Mood %q has no palette, using the neutral theme", mood), Level: LevelWarning})
		}
	}
}

func (c *Controller) progress(event ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(event)
	}
}
