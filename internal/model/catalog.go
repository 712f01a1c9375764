package model

import (
	"strings"
)

// Catalog is the ordered, read-only collection of artworks loaded at startup.
//
// A Catalog is built once by NewCatalog and never mutated afterwards. Every
// accessor returns copies, which makes a *Catalog safe to share between
// goroutines without locking.
//
// The zero value is an empty catalog.
type Catalog struct {
	artworks []Artwork
	index    map[int]int
}

// NewCatalog creates a Catalog holding a copy of artworks in the given order.
//
// If several artworks share an ID, ByID resolves to the first one. Loaders
// are expected to reject duplicates before building the catalog.
func NewCatalog(artworks []Artwork) *Catalog {
	c := &Catalog{
		artworks: make([]Artwork, len(artworks)),
		index:    make(map[int]int, len(artworks)),
	}
	copy(c.artworks, artworks)

	for i, art := range c.artworks {
		if _, exists := c.index[art.ID]; !exists {
			c.index[art.ID] = i
		}
	}

	return c
}

// Len returns the number of artworks in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.artworks)
}

// IsEmpty returns true if the catalog holds no artworks.
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// All returns a copy of every artwork in catalog order.
func (c *Catalog) All() []Artwork {
	if c == nil {
		return []Artwork{}
	}
	out := make([]Artwork, len(c.artworks))
	copy(out, c.artworks)
	return out
}

// ByID returns the artwork with the given id.
func (c *Catalog) ByID(id int) (Artwork, bool) {
	if c == nil {
		return Artwork{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Artwork{}, false
	}
	return c.artworks[i], true
}

// Styles returns the distinct styles of the catalog in first-seen order.
//
// Styles differing only in case are reported once, using the first spelling.
func (c *Catalog) Styles() []string {
	return c.distinct(func(a Artwork) string { return a.Style })
}

// Moods returns the distinct moods of the catalog in first-seen order.
func (c *Catalog) Moods() []string {
	return c.distinct(func(a Artwork) string { return a.Mood })
}

func (c *Catalog) distinct(field func(Artwork) string) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, art := range c.artworks {
		value := field(art)
		key := strings.ToLower(value)
		if value == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, value)
	}
	return out
}
