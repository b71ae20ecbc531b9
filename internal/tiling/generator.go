package tiling

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/random"
)

// Generator is a board of one game mode with a randomly initialized tiling.
// It keeps the layout, adjacency, and assignment private.
type Generator struct {
	preset board.Preset
	layout *board.Layout
	adj    *board.Adjacency
	assign *Assignment
	src    random.Source
}

// NewGenerator lays out the preset's board and draws an initial tiling.
func NewGenerator(preset board.Preset, src random.Source) (*Generator, error) {
	if err := preset.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s: %w", preset.Mode, err)
	}

	layout, err := board.NewLayout(preset.Rows)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		preset: preset,
		layout: layout,
		adj:    board.AdjacencyFor(layout),
		src:    src,
	}
	if err := g.Reinitialize(); err != nil {
		return nil, err
	}

	slog.Debug("board generated",
		"mode", preset.Mode,
		"polygons", layout.Len(),
		"catalog", preset.Catalog.String(),
	)
	return g, nil
}

// Reinitialize replaces the tiling with a fresh random draw.
func (g *Generator) Reinitialize() error {
	a, err := RandomAssignment(g.preset.Catalog, g.layout.Len(), g.src)
	if err != nil {
		return err
	}
	g.assign = a
	return nil
}

// Mode returns the game mode.
func (g *Generator) Mode() board.Mode {
	return g.preset.Mode
}

// Layout returns the board layout.
func (g *Generator) Layout() *board.Layout {
	return g.layout
}

// Tiles returns a snapshot of the current tiling.
func (g *Generator) Tiles() []board.Tile {
	return g.assign.Tiles()
}

// Report evaluates the current tiling.
func (g *Generator) Report() (*Report, error) {
	return Evaluate(g.assign.tiles, g.adj)
}

// Optimizer binds an optimizer to the generator's tiling.
func (g *Generator) Optimizer(cfg Config) (*Optimizer, error) {
	return NewOptimizer(cfg, g.assign, g.adj, g.src)
}

// SwapTiles performs a single swap attempt with the given skew and policy,
// minimizing squared error.
func (g *Generator) SwapTiles(skew float64, policy Policy) (SwapRecord, error) {
	cfg := DefaultConfig()
	cfg.SkewPower = skew
	cfg.Policy = policy
	cfg.Iterations = 1
	o, err := g.Optimizer(cfg)
	if err != nil {
		return SwapRecord{}, err
	}
	return o.Step(0)
}

// Run optimizes the tiling in place.
func (g *Generator) Run(ctx context.Context, cfg Config, onSwap func(SwapRecord)) (Result, error) {
	o, err := g.Optimizer(cfg)
	if err != nil {
		return Result{}, err
	}
	o.OnSwap = onSwap
	return o.Run(ctx)
}
