package tiling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dralexportfolio/active-projects/internal/board"
)

// rowAdjacency returns the adjacency of n collinear polygons spaced √3 apart.
func rowAdjacency(t *testing.T, n int) *board.Adjacency {
	t.Helper()
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = math.Sqrt(3) * float64(i)
	}
	l, err := board.NewLayoutFromPoints(xs, ys)
	require.NoError(t, err)
	return board.AdjacencyFor(l)
}

// presetAdjacency lays out a preset board.
func presetAdjacency(t *testing.T, p board.Preset) *board.Adjacency {
	t.Helper()
	l, err := board.NewLayout(p.Rows)
	require.NoError(t, err)
	return board.AdjacencyFor(l)
}

const (
	tA = board.TileBrick
	tB = board.TileSheep
	tC = board.TileStone
	tW = board.TileWater
)
