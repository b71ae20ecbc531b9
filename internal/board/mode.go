package board

import "fmt"

// Mode identifies a supported game variant and player count.
type Mode uint8

const (
	ModeOriginal34  Mode = iota // Base game, 3-4 players
	ModeOriginal56              // Base game with 5-6 player extension
	ModeSeafarers34             // Seafarers, 3-4 players
	ModeSeafarers56             // Seafarers with 5-6 player extension
)

// AllModes lists every supported game mode.
var AllModes = [...]Mode{ModeOriginal34, ModeOriginal56, ModeSeafarers34, ModeSeafarers56}

// ModeName returns the display name for a game mode.
func ModeName(m Mode) string {
	switch m {
	case ModeOriginal34:
		return "Original: 3-4 Player"
	case ModeOriginal56:
		return "Original: 5-6 Player"
	case ModeSeafarers34:
		return "Seafarers: 3-4 Player"
	case ModeSeafarers56:
		return "Seafarers: 5-6 Player"
	default:
		return "Unknown"
	}
}

// String returns the display name.
func (m Mode) String() string {
	return ModeName(m)
}

// ParseMode resolves a display name or one of the short keys
// original-34, original-56, seafarers-34, seafarers-56.
func ParseMode(name string) (Mode, error) {
	short := map[string]Mode{
		"original-34":  ModeOriginal34,
		"original-56":  ModeOriginal56,
		"seafarers-34": ModeSeafarers34,
		"seafarers-56": ModeSeafarers56,
	}
	if m, ok := short[name]; ok {
		return m, nil
	}
	for _, m := range AllModes {
		if ModeName(m) == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMode)
}

// Preset is the immutable configuration for one game mode: the tiles per
// row of the board and the catalog of tiles it is filled with.
type Preset struct {
	Mode    Mode
	Rows    []int
	Catalog Catalog
}

// Polygons returns the number of board slots.
func (p Preset) Polygons() int {
	n := 0
	for _, r := range p.Rows {
		n += r
	}
	return n
}

// Validate checks the preset's catalog fills its board exactly.
func (p Preset) Validate() error {
	if err := validateRows(p.Rows); err != nil {
		return err
	}
	return p.Catalog.Validate(p.Polygons())
}

// PresetFor returns a fresh copy of the preset for mode.
func PresetFor(m Mode) (Preset, error) {
	switch m {
	case ModeOriginal34:
		return Preset{
			Mode: m,
			Rows: []int{3, 4, 5, 4, 3},
			Catalog: Catalog{
				TileBrick: 3, TileSheep: 4, TileStone: 3, TileWheat: 4,
				TileWood: 4, TileDesert: 1,
			},
		}, nil
	case ModeOriginal56:
		return Preset{
			Mode: m,
			Rows: []int{3, 4, 5, 6, 5, 4, 3},
			Catalog: Catalog{
				TileBrick: 5, TileSheep: 6, TileStone: 5, TileWheat: 6,
				TileWood: 6, TileDesert: 2,
			},
		}, nil
	case ModeSeafarers34:
		return Preset{
			Mode: m,
			Rows: []int{5, 6, 7, 6, 7, 6, 5},
			Catalog: Catalog{
				TileBrick: 4, TileSheep: 5, TileStone: 4, TileWheat: 5,
				TileWood: 5, TileDesert: 1, TileGold: 2, TileWater: 16,
			},
		}, nil
	case ModeSeafarers56:
		return Preset{
			Mode: m,
			Rows: []int{7, 8, 9, 8, 9, 8, 7},
			Catalog: Catalog{
				TileBrick: 5, TileSheep: 6, TileStone: 5, TileWheat: 6,
				TileWood: 6, TileDesert: 2, TileGold: 2, TileWater: 24,
			},
		}, nil
	default:
		return Preset{}, fmt.Errorf("mode %d: %w", m, ErrUnknownMode)
	}
}

// Presets returns a copy of every game-mode preset.
func Presets() []Preset {
	presets := make([]Preset, 0, len(AllModes))
	for _, m := range AllModes {
		p, _ := PresetFor(m)
		presets = append(presets, p)
	}
	return presets
}
