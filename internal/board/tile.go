// Package board provides tile types, catalogs, game-mode presets, and the
// hex board layout with its adjacency structure.
package board

import "strings"

// Tile is the type of terrain placed on a board polygon.
type Tile uint8

const (
	TileBrick  Tile = iota // Hills
	TileSheep              // Pasture
	TileStone              // Mountains
	TileWheat              // Fields
	TileWood               // Forest
	TileDesert             // No production
	TileGold               // Seafarers gold field
	TileWater              // Sea, should cluster rather than spread
)

// AllTiles lists every tile type in canonical order.
var AllTiles = [...]Tile{
	TileBrick, TileSheep, TileStone, TileWheat,
	TileWood, TileDesert, TileGold, TileWater,
}

// String returns the lower-case tile name used in catalogs and stored records.
func (t Tile) String() string {
	return TileName(t)
}

// TileName returns the name for a tile type.
func TileName(t Tile) string {
	switch t {
	case TileBrick:
		return "brick"
	case TileSheep:
		return "sheep"
	case TileStone:
		return "stone"
	case TileWheat:
		return "wheat"
	case TileWood:
		return "wood"
	case TileDesert:
		return "desert"
	case TileGold:
		return "gold"
	case TileWater:
		return "water"
	default:
		return "unknown"
	}
}

// ParseTile maps a tile name back to its type.
func ParseTile(name string) (Tile, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range AllTiles {
		if TileName(t) == name {
			return t, true
		}
	}
	return 0, false
}

// TileCounts returns how often each tile type occurs in tiles.
func TileCounts(tiles []Tile) map[Tile]int {
	counts := make(map[Tile]int)
	for _, t := range tiles {
		counts[t]++
	}
	return counts
}

// PresentTiles returns the tile types occurring in tiles, in canonical order.
func PresentTiles(tiles []Tile) []Tile {
	counts := TileCounts(tiles)
	var present []Tile
	for _, t := range AllTiles {
		if counts[t] > 0 {
			present = append(present, t)
		}
	}
	return present
}
