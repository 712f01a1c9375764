package render

import (
	"fmt"
	"strconv"

	"github.com/handiism/art-gallery/internal/model"
)

// Placeholder is shown instead of cards when a view is empty.
const Placeholder = "No artworks match your search."

// Card is the view-model of one gallery card.
type Card struct {
	ID int

	// Title is the artwork title.
	Title string

	// Byline reads "Artist · Year".
	Byline string

	// Tags reads "Mood: m | Style: s".
	Tags string

	// Swatch is the normalized "#rrggbb" form of the artwork color.
	Swatch string

	// Ink is a readable text color for labels drawn on the swatch.
	Ink string

	// Highlighted marks the card chosen by a random highlight.
	Highlighted bool
}

// Gallery is the view-model of the card area.
//
// Exactly one of Cards and Placeholder is populated: a non-empty list
// yields one card per record and an empty Placeholder, an empty list
// yields no cards and the placeholder text.
type Gallery struct {
	Cards       []Card
	Placeholder string
}

// IsEmpty reports whether the gallery shows the placeholder.
func (g Gallery) IsEmpty() bool {
	return len(g.Cards) == 0
}

// RenderCards projects list into a Gallery, one card per record in order.
//
// The card whose ID equals highlightID is flagged as highlighted; pass 0
// for no highlight.
func RenderCards(list []model.Artwork, highlightID int) Gallery {
	if len(list) == 0 {
		return Gallery{Placeholder: Placeholder}
	}

	cards := make([]Card, len(list))
	for i, art := range list {
		swatch := SwatchHex(art.Color)
		cards[i] = Card{
			ID:          art.ID,
			Title:       art.Title,
			Byline:      fmt.Sprintf("%s · %d", art.Artist, art.Year),
			Tags:        fmt.Sprintf("Mood: %s | Style: %s", art.Mood, art.Style),
			Swatch:      swatch,
			Ink:         TextOn(swatch),
			Highlighted: highlightID != 0 && art.ID == highlightID,
		}
	}
	return Gallery{Cards: cards}
}

// Field is one labelled value of the detail panel.
type Field struct {
	Label string
	Value string
}

// Details is the view-model of the detail panel.
type Details struct {
	ID     int
	Swatch string

	// Fields lists Title, Artist, Mood, Style, Year and Description in
	// that order.
	Fields []Field
}

// Field returns the value of the field with the given label.
func (d Details) Field(label string) string {
	for _, f := range d.Fields {
		if f.Label == label {
			return f.Value
		}
	}
	return ""
}

// RenderDetails projects one artwork into the detail panel view-model.
func RenderDetails(art model.Artwork) Details {
	return Details{
		ID:     art.ID,
		Swatch: SwatchHex(art.Color),
		Fields: []Field{
			{Label: "Title", Value: art.Title},
			{Label: "Artist", Value: art.Artist},
			{Label: "Mood", Value: art.Mood},
			{Label: "Style", Value: art.Style},
			{Label: "Year", Value: strconv.Itoa(art.Year)},
			{Label: "Description", Value: art.Description},
		},
	}
}
