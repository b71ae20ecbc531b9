// Package tiling holds the mutable tile assignment of a board and the
// entropy-driven local search that rearranges it.
package tiling

import (
	"fmt"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/random"
)

// Assignment maps each polygon index to a tile type. Its multiset of tiles
// always equals its catalog; the only mutation is a pairwise swap.
type Assignment struct {
	tiles   []board.Tile
	catalog board.Catalog
}

// NewAssignment wraps an explicit tiling. The catalog is the realized multiset.
func NewAssignment(tiles []board.Tile) *Assignment {
	t := append([]board.Tile(nil), tiles...)
	return &Assignment{tiles: t, catalog: board.CatalogOf(t)}
}

// RandomAssignment fills nPolygons slots by drawing tiles without
// replacement from the catalog.
func RandomAssignment(catalog board.Catalog, nPolygons int, src random.Source) (*Assignment, error) {
	if err := catalog.Validate(nPolygons); err != nil {
		return nil, err
	}

	pool := catalog.Pool()
	tiles := make([]board.Tile, 0, nPolygons)
	for len(pool) > 0 {
		k := src.Intn(len(pool))
		tiles = append(tiles, pool[k])
		pool = append(pool[:k], pool[k+1:]...)
	}
	return &Assignment{tiles: tiles, catalog: catalog}, nil
}

// LikelihoodAssignment draws each polygon's tile independently with the given
// relative likelihoods. The catalog is whatever multiset results.
func LikelihoodAssignment(likelihoods board.Likelihoods, nPolygons int, src random.Source) (*Assignment, error) {
	if err := likelihoods.Validate(); err != nil {
		return nil, err
	}

	total := 0.0
	for _, p := range likelihoods {
		total += p
	}

	tiles := make([]board.Tile, nPolygons)
	for i := range tiles {
		tiles[i] = drawTile(likelihoods, src.Float64()*total)
	}
	return NewAssignment(tiles), nil
}

// drawTile walks the cumulative likelihoods; r above the last bucket from
// rounding lands on the last tile with positive likelihood.
func drawTile(likelihoods board.Likelihoods, r float64) board.Tile {
	var last board.Tile
	for _, t := range board.AllTiles {
		if likelihoods[t] <= 0 {
			continue
		}
		if r < likelihoods[t] {
			return t
		}
		r -= likelihoods[t]
		last = t
	}
	return last
}

// Len returns the number of polygons.
func (a *Assignment) Len() int {
	return len(a.tiles)
}

// Tile returns the tile on polygon i.
func (a *Assignment) Tile(i int) board.Tile {
	return a.tiles[i]
}

// Tiles returns a snapshot of the assignment.
func (a *Assignment) Tiles() []board.Tile {
	return append([]board.Tile(nil), a.tiles...)
}

// Catalog returns the multiset the assignment is bound to.
func (a *Assignment) Catalog() board.Catalog {
	return a.catalog
}

// Present returns the tile types on the board in canonical order.
func (a *Assignment) Present() []board.Tile {
	return a.catalog.Tiles()
}

// IndicesOf returns the polygons currently holding tile t.
func (a *Assignment) IndicesOf(t board.Tile) []int {
	var idx []int
	for i, tt := range a.tiles {
		if tt == t {
			idx = append(idx, i)
		}
	}
	return idx
}

// Swap exchanges the tiles on polygons i and j in place.
// Swapping the same pair again restores the previous state.
func (a *Assignment) Swap(i, j int) error {
	if i < 0 || i >= len(a.tiles) || j < 0 || j >= len(a.tiles) {
		return fmt.Errorf("swap %d,%d on %d polygons: %w", i, j, len(a.tiles), ErrIndexOutOfRange)
	}
	a.tiles[i], a.tiles[j] = a.tiles[j], a.tiles[i]
	return nil
}

// Restore replaces the assignment with a snapshot taken from Tiles.
// The snapshot must use the same multiset.
func (a *Assignment) Restore(snapshot []board.Tile) error {
	if len(snapshot) != len(a.tiles) || !a.catalog.Matches(snapshot) {
		return fmt.Errorf("restore: %w", ErrInvariantViolation)
	}
	copy(a.tiles, snapshot)
	return nil
}

// Verify checks the multiset invariant.
func (a *Assignment) Verify() error {
	if !a.catalog.Matches(a.tiles) {
		return fmt.Errorf("have %s, want %s: %w", board.CatalogOf(a.tiles), a.catalog, ErrInvariantViolation)
	}
	return nil
}
