package filter

import (
	"strings"

	"github.com/handiism/art-gallery/internal/model"
)

// StyleAll is the style selector value that disables style filtering.
const StyleAll = "all"

// Query holds the active search inputs.
type Query struct {
	// Text is matched case-insensitively as a substring of the artwork
	// search text (title, artist, mood and style). Empty matches everything.
	Text string

	// Style is StyleAll, empty, or a style name matched exactly but
	// ignoring case.
	Style string
}

// AllQuery returns the query that matches every artwork.
func AllQuery() Query {
	return Query{Style: StyleAll}
}

// IsAll reports whether q matches every artwork.
func (q Query) IsAll() bool {
	return q.Text == "" && q.allStyles()
}

func (q Query) allStyles() bool {
	return q.Style == "" || strings.EqualFold(q.Style, StyleAll)
}

// Matches reports whether art passes both the text and the style predicate.
func (q Query) Matches(art model.Artwork) bool {
	return q.matchesText(art, strings.ToLower(q.Text)) && q.matchesStyle(art)
}

func (q Query) matchesText(art model.Artwork, text string) bool {
	return text == "" || strings.Contains(art.SearchText(), text)
}

func (q Query) matchesStyle(art model.Artwork) bool {
	return q.allStyles() || art.HasStyle(q.Style)
}

// Filter returns the artworks of list matching q, preserving order.
//
// The result is a fresh slice; list is never modified. A nil or empty list
// yields an empty, non-nil view.
func Filter(list []model.Artwork, q Query) []model.Artwork {
	text := strings.ToLower(q.Text)

	view := make([]model.Artwork, 0, len(list))
	for _, art := range list {
		if q.matchesText(art, text) && q.matchesStyle(art) {
			view = append(view, art)
		}
	}
	return view
}
