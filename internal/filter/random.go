package filter

import (
	"math/rand/v2"
	"sync"

	"github.com/handiism/art-gallery/internal/model"
)

// Picker selects random artworks from a view.
//
// Picker is safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker creates a Picker drawing from src.
//
// Pass nil to use a randomly seeded source. Tests pass a fixed-seed
// source such as rand.NewPCG(1, 2) for repeatable picks.
func NewPicker(src rand.Source) *Picker {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Picker{rng: rand.New(src)}
}

// Pick returns a uniformly chosen member of view.
//
// Returns false if view is empty.
func (p *Picker) Pick(view []model.Artwork) (model.Artwork, bool) {
	if len(view) == 0 {
		return model.Artwork{}, false
	}

	p.mu.Lock()
	i := p.rng.IntN(len(view))
	p.mu.Unlock()

	return view[i], true
}
