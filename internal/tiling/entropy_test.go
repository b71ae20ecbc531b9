package tiling_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

func TestMarginalEntropy(t *testing.T) {
	assert.Equal(t, 0.0, tiling.MarginalEntropy(0))
	assert.Equal(t, 0.0, tiling.MarginalEntropy(1))
	assert.InDelta(t, 0.5, tiling.MarginalEntropy(0.5), 1e-15)
	assert.InDelta(t, 0.25*2, tiling.MarginalEntropy(0.25), 1e-15)
}

// uniformRow is B A A C C A B: A sees A, B and C twice each; B only sees A;
// C sees A twice and C twice.
var uniformRow = []board.Tile{tB, tA, tA, tC, tC, tA, tB}

func TestEvaluateUniformAndPointMass(t *testing.T) {
	r, err := tiling.Evaluate(uniformRow, rowAdjacency(t, 7))
	require.NoError(t, err)

	assert.Equal(t, []board.Tile{tA, tB, tC}, r.Types)
	assert.InDelta(t, math.Log2(3), r.MaxEntropy, 1e-15)

	assert.Equal(t, 2, r.Counts[tA][tA])
	assert.Equal(t, 2, r.Counts[tA][tB])
	assert.Equal(t, 2, r.Counts[tA][tC])
	assert.InDelta(t, math.Log2(3), r.Entropy[tA], 1e-12)
	assert.InDelta(t, 1, r.Efficiency[tA], 1e-12)

	assert.Equal(t, 1.0, r.Probabilities[tB][tA])
	assert.Equal(t, 0.0, r.Entropy[tB])
	assert.Equal(t, 0.0, r.Efficiency[tB])

	assert.InDelta(t, 1, r.Entropy[tC], 1e-12)
	assert.InDelta(t, 1/math.Log2(3), r.Efficiency[tC], 1e-12)

	assert.True(t, r.Present(tA))
	assert.False(t, r.Present(tW))
	assert.Equal(t, 0.0, r.Entropy[tW])

	eff := r.EfficiencyMap()
	assert.Len(t, eff, 3)
	assert.InDelta(t, 1, eff["brick"], 1e-12)
	assert.Equal(t, 0.0, eff["sheep"])
	assert.NotContains(t, eff, "water")
}

func TestEvaluateIsPure(t *testing.T) {
	tiles := append([]board.Tile(nil), uniformRow...)
	adj := rowAdjacency(t, 7)
	a, err := tiling.Evaluate(tiles, adj)
	require.NoError(t, err)
	b, err := tiling.Evaluate(tiles, adj)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, uniformRow, tiles)
}

func TestEvaluateTwoPolygonBoard(t *testing.T) {
	adj := rowAdjacency(t, 2)
	a := tiling.NewAssignment([]board.Tile{tA, tB})

	for i := 0; i < 2; i++ {
		r, err := tiling.Evaluate(a.Tiles(), adj)
		require.NoError(t, err)
		assert.Equal(t, 0.0, r.Entropy[tA])
		assert.Equal(t, 0.0, r.Entropy[tB])
		require.NoError(t, a.Swap(0, 1))
	}
}

func TestEvaluateProbabilitiesSumToOne(t *testing.T) {
	p, err := board.PresetFor(board.ModeSeafarers56)
	require.NoError(t, err)
	adj := presetAdjacency(t, p)

	r, err := tiling.Evaluate(p.Catalog.Pool(), adj)
	require.NoError(t, err)
	for _, src := range r.Types {
		sum := 0.0
		for _, dst := range r.Types {
			sum += r.Probabilities[src][dst]
		}
		assert.InDelta(t, 1, sum, 1e-12, src.String())
		assert.GreaterOrEqual(t, r.Efficiency[src], 0.0)
		assert.LessOrEqual(t, r.Efficiency[src], 1.0+1e-12)
	}
}

func TestEvaluateErrors(t *testing.T) {
	_, err := tiling.Evaluate([]board.Tile{tA, tA, tA}, rowAdjacency(t, 3))
	assert.True(t, errors.Is(err, tiling.ErrTooFewTileTypes))

	_, err = tiling.Evaluate([]board.Tile{tA, tB}, rowAdjacency(t, 3))
	assert.True(t, errors.Is(err, tiling.ErrSizeMismatch))

	isolated, err := board.BuildAdjacency([]float64{0, 10}, []float64{0, 0}, board.NeighborDistance)
	require.NoError(t, err)
	_, err = tiling.Evaluate([]board.Tile{tA, tB}, isolated)
	assert.True(t, errors.Is(err, tiling.ErrDegenerateDistribution))
}

func TestObjectives(t *testing.T) {
	// Same shape as uniformRow with water in place of stone.
	tiles := []board.Tile{tB, tA, tA, tW, tW, tA, tB}
	r, err := tiling.Evaluate(tiles, rowAdjacency(t, 7))
	require.NoError(t, err)
	targets := tiling.DefaultTargets()
	max := math.Log2(3)

	mse := tiling.SquaredError{Targets: targets}
	want := (0 + max*max + 1) / 3
	assert.InDelta(t, want, mse.Score(r), 1e-12)
	assert.False(t, mse.Maximize())

	sum := tiling.WeightedSum{Targets: targets}
	assert.InDelta(t, max+0-1, sum.Score(r), 1e-12)
	assert.True(t, sum.Maximize())

	var spreadAll tiling.Targets
	assert.InDelta(t, (0+max*max+(max-1)*(max-1))/3, tiling.SquaredError{Targets: spreadAll}.Score(r), 1e-12)
}

func TestRegressed(t *testing.T) {
	mse := tiling.SquaredError{}
	assert.True(t, tiling.Regressed(mse, 1, 2))
	assert.False(t, tiling.Regressed(mse, 2, 1))
	assert.False(t, tiling.Regressed(mse, 1, 1))

	sum := tiling.WeightedSum{}
	assert.True(t, tiling.Regressed(sum, 2, 1))
	assert.False(t, tiling.Regressed(sum, 1, 2))
	assert.False(t, tiling.Regressed(sum, 1, 1))
}

func TestParseObjective(t *testing.T) {
	o, err := tiling.ParseObjective("weighted-sum", tiling.DefaultTargets())
	require.NoError(t, err)
	assert.Equal(t, "weighted-sum", o.Name())

	o, err = tiling.ParseObjective("MSE", tiling.DefaultTargets())
	require.NoError(t, err)
	assert.Equal(t, "squared-error", o.Name())

	_, err = tiling.ParseObjective("entropy", tiling.DefaultTargets())
	assert.True(t, errors.Is(err, tiling.ErrNoObjective))
}
