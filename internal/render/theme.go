package render

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Palette holds the colors of a theme as "#rrggbb" strings.
type Palette struct {
	Background string
	Foreground string
	Accent     string
	Muted      string
}

// Theme is a mood-derived visual treatment.
type Theme struct {
	// Name is "mood-<lowercased mood>", or empty when no theme is applied.
	Name    string
	Palette Palette
}

// IsZero reports whether no theme is applied.
func (t Theme) IsZero() bool {
	return t.Name == ""
}

var (
	neutralPalette = Palette{Background: "#1e1e24", Foreground: "#e9ecef", Accent: "#4ecdc4", Muted: "#6c757d"}

	moodPalettes = map[string]Palette{
		"calm":      {Background: "#e8f1f8", Foreground: "#1b3a4b", Accent: "#4a90c2", Muted: "#7a9bb0"},
		"energetic": {Background: "#fff1e0", Foreground: "#3d1f00", Accent: "#ff6b35", Muted: "#b07a4f"},
		"peaceful":  {Background: "#eef7ee", Foreground: "#1f3d24", Accent: "#6baa75", Muted: "#86a98b"},
		"moody":     {Background: "#2b2d42", Foreground: "#edf2f4", Accent: "#8d99ae", Muted: "#5c677d"},
	}
)

// KnownMoods lists the lowercased moods with a dedicated palette, sorted.
func KnownMoods() []string {
	return slices.Sorted(maps.Keys(moodPalettes))
}

// HasPalette reports whether mood has a dedicated palette.
func HasPalette(mood string) bool {
	return slices.Contains(KnownMoods(), strings.ToLower(strings.TrimSpace(mood)))
}

// ThemeFor returns the theme derived from mood.
//
// Moods without a dedicated palette still get their own theme name with
// the neutral palette. An empty mood yields the zero theme.
func ThemeFor(mood string) Theme {
	key := strings.ToLower(strings.TrimSpace(mood))
	if key == "" {
		return Theme{}
	}
	palette, ok := moodPalettes[key]
	if !ok {
		palette = neutralPalette
	}
	return Theme{Name: "mood-" + strings.ReplaceAll(key, " ", "-"), Palette: palette}
}

// DefaultPalette is used while no theme is applied.
func DefaultPalette() Palette {
	return neutralPalette
}

// Themer holds the currently applied theme. At most one theme is applied
// at a time; applying a theme replaces the previous one.
//
// Themer is safe for concurrent use.
type Themer struct {
	mu      sync.Mutex
	current Theme
}

// Apply sets the theme derived from mood, replacing any previous theme,
// and returns it.
func (t *Themer) Apply(mood string) Theme {
	theme := ThemeFor(mood)

	t.mu.Lock()
	t.current = theme
	t.mu.Unlock()

	return theme
}

// Current returns the applied theme.
func (t *Themer) Current() Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Clear removes the applied theme.
func (t *Themer) Clear() {
	t.mu.Lock()
	t.current = Theme{}
	t.mu.Unlock()
}

// Palette returns the palette of the applied theme, or the default one.
func (t *Themer) Palette() Palette {
	current := t.Current()
	if current.IsZero() {
		return DefaultPalette()
	}
	return current.Palette
}
