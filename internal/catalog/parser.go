package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/art-gallery/internal/catalog/dto"
	"github.com/handiism/art-gallery/internal/model"
)

var (
	// ErrNotArray is returned when the catalog document is not a JSON array.
	ErrNotArray = errors.New("catalog must be a JSON array of artworks")

	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate artwork id")
)

// Parse decodes a catalog document into a Catalog.
//
// The document must be a JSON array of artwork records. Every record is
// validated (positive id, non-empty title) and ids must be unique.
// An empty array is a valid, empty catalog.
func Parse(data []byte) (*model.Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var records []dto.JSONArtwork
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	artworks := make([]model.Artwork, 0, len(records))
	seen := make(map[int]int, len(records))
	for i := range records {
		record := &records[i]
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("artwork #%d: %w", i+1, err)
		}
		if first, dup := seen[record.ID]; dup {
			return nil, fmt.Errorf("artwork #%d: %w %d (first used by #%d)", i+1, ErrDuplicateID, record.ID, first+1)
		}
		seen[record.ID] = i
		artworks = append(artworks, record.ToArtwork())
	}

	return model.NewCatalog(artworks), nil
}

// Encode serializes artworks as a catalog document, the inverse of Parse.
func Encode(artworks []model.Artwork) ([]byte, error) {
	records := make([]dto.JSONArtwork, len(artworks))
	for i, art := range artworks {
		records[i] = dto.FromArtwork(art)
	}
	return json.MarshalIndent(records, "", "  ")
}
