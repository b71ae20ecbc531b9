package board

import (
	"fmt"
	"strings"
)

// NumTiles is the number of distinct tile types.
const NumTiles = len(AllTiles)

// Catalog is the multiset of tile types a board must use, indexed by Tile.
// It is a value type; copies never alias.
type Catalog [NumTiles]int

// NewCatalog builds a catalog from a count per tile type.
func NewCatalog(counts map[Tile]int) (Catalog, error) {
	var c Catalog
	for t, n := range counts {
		if int(t) >= NumTiles {
			return Catalog{}, fmt.Errorf("catalog entry %d: unknown tile type", t)
		}
		if n < 0 {
			return Catalog{}, fmt.Errorf("catalog entry %s=%d: %w", t, n, ErrNegativeCount)
		}
		c[t] = n
	}
	return c, nil
}

// CatalogOf returns the catalog realized by an assignment.
func CatalogOf(tiles []Tile) Catalog {
	var c Catalog
	for _, t := range tiles {
		c[t]++
	}
	return c
}

// Count returns the number of tiles of type t.
func (c Catalog) Count(t Tile) int {
	if int(t) >= NumTiles {
		return 0
	}
	return c[t]
}

// Total returns the number of tiles in the catalog.
func (c Catalog) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Tiles returns the tile types with a positive count, in canonical order.
func (c Catalog) Tiles() []Tile {
	var present []Tile
	for _, t := range AllTiles {
		if c[t] > 0 {
			present = append(present, t)
		}
	}
	return present
}

// Pool expands the catalog into one entry per tile, in canonical order.
func (c Catalog) Pool() []Tile {
	pool := make([]Tile, 0, c.Total())
	for _, t := range AllTiles {
		for i := 0; i < c[t]; i++ {
			pool = append(pool, t)
		}
	}
	return pool
}

// Validate checks that the catalog fills exactly nPolygons slots.
func (c Catalog) Validate(nPolygons int) error {
	for _, t := range AllTiles {
		if c[t] < 0 {
			return fmt.Errorf("%s=%d: %w", t, c[t], ErrNegativeCount)
		}
	}
	if total := c.Total(); total != nPolygons {
		return fmt.Errorf("catalog holds %d tiles for %d polygons: %w", total, nPolygons, ErrCatalogMismatch)
	}
	return nil
}

// Matches reports whether tiles uses exactly the catalog's multiset.
func (c Catalog) Matches(tiles []Tile) bool {
	return CatalogOf(tiles) == c
}

// String returns the catalog as "brick=3 sheep=4 ...", omitting empty types.
func (c Catalog) String() string {
	var parts []string
	for _, t := range c.Tiles() {
		parts = append(parts, fmt.Sprintf("%s=%d", t, c[t]))
	}
	return strings.Join(parts, " ")
}

// Likelihoods gives the relative chance of drawing each tile type when a
// board is tiled independently per polygon.
type Likelihoods [NumTiles]float64

// DefaultLikelihoods returns the tile mix used by the entropy study.
func DefaultLikelihoods() Likelihoods {
	return Likelihoods{
		TileBrick:  0.1,
		TileSheep:  0.1,
		TileStone:  0.1,
		TileWheat:  0.1,
		TileWood:   0.1,
		TileDesert: 0.05,
		TileGold:   0.05,
		TileWater:  0.4,
	}
}

// Validate checks the likelihoods form a usable distribution.
func (l Likelihoods) Validate() error {
	sum := 0.0
	for _, p := range l {
		if p < 0 {
			return ErrInvalidLikelihood
		}
		sum += p
	}
	if sum <= 0 {
		return ErrInvalidLikelihood
	}
	return nil
}
