// Package generator builds randomized mine layouts.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces uniformly shuffled mine layouts.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible layouts.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Layout returns cells flags with exactly mines of them set. Every placement
// with that mine count is equally likely.
func (g *Generator) Layout(cells, mines int) []bool {
	if cells <= 0 {
		return nil
	}
	if mines < 0 {
		mines = 0
	}
	if mines > cells {
		mines = cells
	}
	layout := make([]bool, cells)
	for i := cells - mines; i < cells; i++ {
		layout[i] = true
	}
	g.rnd.Shuffle(len(layout), func(i, j int) {
		layout[i], layout[j] = layout[j], layout[i]
	})
	return layout
}
