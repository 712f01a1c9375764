package model

import (
	"strings"
)

// Artwork represents a single record of the gallery catalog.
//
// Artwork carries everything the gallery shows for one piece:
//   - Title, Artist and Year for the card byline
//   - Mood and Style for filtering and theming
//   - Color for the card swatch (hex like "#A3C4F3" or a CSS color name)
//   - Description for the detail panel
//
// Artworks are plain values. The catalog hands out copies, so nothing a
// caller does to an Artwork can leak back into the loaded collection.
type Artwork struct {
	// ID uniquely identifies the artwork within a catalog.
	ID int

	// Title is the artwork title.
	Title string

	// Artist is the name of the artist.
	Artist string

	// Mood is a single word describing the feeling of the piece
	// (for example "Calm" or "Energetic"). It also selects the theme.
	Mood string

	// Style is the art style (for example "Abstract" or "Impressionism").
	Style string

	// Year is the year the artwork was created.
	Year int

	// Color is the display color used for the card swatch.
	Color string

	// Description is free text shown in the detail panel. It may contain
	// Markdown, which the HTML renderer honours.
	Description string
}

// SearchText returns the lowercased concatenation of title, artist, mood
// and style, the haystack used by free-text search.
//
// The fields are joined without separators.
func (a Artwork) SearchText() string {
	return strings.ToLower(a.Title + a.Artist + a.Mood + a.Style)
}

// HasStyle reports whether the artwork style equals style, ignoring case.
func (a Artwork) HasStyle(style string) bool {
	return strings.EqualFold(a.Style, style)
}
