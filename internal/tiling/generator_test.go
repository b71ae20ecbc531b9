package tiling_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/random"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

func TestGeneratorPerPreset(t *testing.T) {
	for _, p := range board.Presets() {
		t.Run(p.Mode.String(), func(t *testing.T) {
			g, err := tiling.NewGenerator(p, random.New(21))
			require.NoError(t, err)
			assert.Equal(t, p.Mode, g.Mode())
			assert.Equal(t, p.Polygons(), g.Layout().Len())
			assert.True(t, p.Catalog.Matches(g.Tiles()))

			for i := 0; i < 20; i++ {
				_, err := g.SwapTiles(1, tiling.RejectOnRegression)
				require.NoError(t, err)
			}
			assert.True(t, p.Catalog.Matches(g.Tiles()))

			require.NoError(t, g.Reinitialize())
			assert.True(t, p.Catalog.Matches(g.Tiles()))
		})
	}
}

func TestGeneratorRejectsBrokenPreset(t *testing.T) {
	p, err := board.PresetFor(board.ModeOriginal34)
	require.NoError(t, err)
	p.Catalog[board.TileDesert] = 2
	_, err = tiling.NewGenerator(p, random.New(1))
	assert.ErrorIs(t, err, board.ErrCatalogMismatch)
}

func TestGeneratorRunImprovesOrHolds(t *testing.T) {
	p, err := board.PresetFor(board.ModeSeafarers34)
	require.NoError(t, err)
	g, err := tiling.NewGenerator(p, random.New(31))
	require.NoError(t, err)

	cfg := tiling.DefaultConfig()
	cfg.Iterations = 300
	n := 0
	res, err := g.Run(context.Background(), cfg, func(tiling.SwapRecord) { n++ })
	require.NoError(t, err)
	assert.Equal(t, 300, n)
	assert.LessOrEqual(t, res.Final, res.Initial)

	r, err := g.Report()
	require.NoError(t, err)
	assert.InDelta(t, res.Final, cfg.Objective.Score(r), 1e-12)
}
