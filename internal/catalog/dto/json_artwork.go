package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/handiism/art-gallery/internal/model"
)

// recordValidate is shared by all records; validator caches struct metadata.
var recordValidate = validator.New(validator.WithRequiredStructEnabled())

// JSONArtwork represents one record of the artworks.json catalog.
type JSONArtwork struct {
	ID          int    `json:"id" validate:"gt=0"`
	Title       string `json:"title" validate:"required"`
	Artist      string `json:"artist"`
	Mood        string `json:"mood"`
	Style       string `json:"style"`
	Year        int    `json:"year" validate:"gte=0"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Validate checks the record and returns a readable error naming the
// first failing field.
func (ja *JSONArtwork) Validate() error {
	err := recordValidate.Struct(ja)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	default:
		return fmt.Errorf("%s must be %s %s, got %v", strings.ToLower(fe.Field()), fe.Tag(), fe.Param(), fe.Value())
	}
}

// ToArtwork converts JSONArtwork to a model.Artwork.
//
// Text fields are trimmed; the catalog keeps them otherwise verbatim.
func (ja *JSONArtwork) ToArtwork() model.Artwork {
	return model.Artwork{
		ID:          ja.ID,
		Title:       strings.TrimSpace(ja.Title),
		Artist:      strings.TrimSpace(ja.Artist),
		Mood:        strings.TrimSpace(ja.Mood),
		Style:       strings.TrimSpace(ja.Style),
		Year:        ja.Year,
		Color:       strings.TrimSpace(ja.Color),
		Description: ja.Description,
	}
}

// FromArtwork converts a model.Artwork back to its JSON record.
func FromArtwork(art model.Artwork) JSONArtwork {
	return JSONArtwork{
		ID:          art.ID,
		Title:       art.Title,
		Artist:      art.Artist,
		Mood:        art.Mood,
		Style:       art.Style,
		Year:        art.Year,
		Color:       art.Color,
		Description: art.Description,
	}
}
