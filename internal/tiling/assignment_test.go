package tiling_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/random"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

func TestRandomAssignmentUsesExactCatalog(t *testing.T) {
	for _, p := range board.Presets() {
		for s := int64(1); s <= 5; s++ {
			a, err := tiling.RandomAssignment(p.Catalog, p.Polygons(), random.New(s))
			require.NoError(t, err)
			assert.Equal(t, p.Catalog, board.CatalogOf(a.Tiles()), "%s seed %d", p.Mode, s)
			assert.NoError(t, a.Verify())
		}
	}
}

func TestRandomAssignmentIsSeeded(t *testing.T) {
	p, err := board.PresetFor(board.ModeSeafarers34)
	require.NoError(t, err)
	a, err := tiling.RandomAssignment(p.Catalog, p.Polygons(), random.New(9))
	require.NoError(t, err)
	b, err := tiling.RandomAssignment(p.Catalog, p.Polygons(), random.New(9))
	require.NoError(t, err)
	assert.Equal(t, a.Tiles(), b.Tiles())
}

func TestRandomAssignmentRejectsMismatchedCatalog(t *testing.T) {
	c := board.Catalog{tA: 3, tB: 4}
	_, err := tiling.RandomAssignment(c, 8, random.New(1))
	assert.True(t, errors.Is(err, board.ErrCatalogMismatch))
}

func TestSwapRoundTrip(t *testing.T) {
	a := tiling.NewAssignment([]board.Tile{tA, tB, tC, tW, tA})
	before := a.Tiles()

	require.NoError(t, a.Swap(0, 3))
	assert.Equal(t, tW, a.Tile(0))
	assert.Equal(t, tA, a.Tile(3))
	assert.NoError(t, a.Verify())

	require.NoError(t, a.Swap(0, 3))
	assert.Equal(t, before, a.Tiles())
}

func TestSwapOutOfRange(t *testing.T) {
	a := tiling.NewAssignment([]board.Tile{tA, tB})
	assert.True(t, errors.Is(a.Swap(0, 2), tiling.ErrIndexOutOfRange))
	assert.True(t, errors.Is(a.Swap(-1, 0), tiling.ErrIndexOutOfRange))
}

func TestSnapshotRestore(t *testing.T) {
	a := tiling.NewAssignment([]board.Tile{tA, tB, tC})
	snap := a.Tiles()
	require.NoError(t, a.Swap(0, 2))
	require.NoError(t, a.Restore(snap))
	assert.Equal(t, snap, a.Tiles())

	err := a.Restore([]board.Tile{tA, tA, tC})
	assert.True(t, errors.Is(err, tiling.ErrInvariantViolation))
	assert.Equal(t, snap, a.Tiles())
}

func TestSnapshotIsDetached(t *testing.T) {
	a := tiling.NewAssignment([]board.Tile{tA, tB})
	snap := a.Tiles()
	snap[0] = tW
	assert.Equal(t, tA, a.Tile(0))
}

func TestIndicesOf(t *testing.T) {
	a := tiling.NewAssignment([]board.Tile{tA, tB, tA, tW})
	assert.Equal(t, []int{0, 2}, a.IndicesOf(tA))
	assert.Nil(t, a.IndicesOf(tC))
	assert.Equal(t, []board.Tile{tA, tB, tW}, a.Present())
}

func TestLikelihoodAssignment(t *testing.T) {
	l := board.Likelihoods{tA: 1, tW: 3}
	a, err := tiling.LikelihoodAssignment(l, 200, random.New(4))
	require.NoError(t, err)
	require.Equal(t, 200, a.Len())

	counts := board.TileCounts(a.Tiles())
	assert.Equal(t, 200, counts[tA]+counts[tW])
	assert.Greater(t, counts[tW], counts[tA])
	assert.Equal(t, board.CatalogOf(a.Tiles()), a.Catalog())

	_, err = tiling.LikelihoodAssignment(board.Likelihoods{}, 10, random.New(4))
	assert.True(t, errors.Is(err, board.ErrInvalidLikelihood))
}
