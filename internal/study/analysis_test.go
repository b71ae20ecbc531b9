package study_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dralexportfolio/active-projects/internal/persistence"
	"github.com/dralexportfolio/active-projects/internal/study"
)

func rowsWithDeltas(deltas ...float64) []persistence.SwapRow {
	rows := make([]persistence.SwapRow, len(deltas))
	for i, d := range deltas {
		rows[i] = persistence.SwapRow{
			StepIndex:          i,
			TileType1:          "brick",
			TileType2:          "water",
			Delta:              d,
			BrickPreEfficiency: float64(i) / 10,
			WaterPreEfficiency: 1 - float64(i)/10,
		}
	}
	return rows
}

func TestAnalyzeMinimizing(t *testing.T) {
	rows := rowsWithDeltas(-4, -3, -2, -1, 1, 2, 3, 4)
	a, err := study.Analyze(rows, false, false)
	require.NoError(t, err)

	assert.Equal(t, 8, a.Rows)
	assert.Equal(t, -4.0, a.Quantiles[0])
	assert.Equal(t, 4.0, a.Quantiles[4])
	assert.Equal(t, 4.0, a.MaxAbsDelta)

	total := 0
	for i, c := range a.Classes {
		assert.Equal(t, study.ClassNames[i], c.Name)
		assert.Len(t, c.Efficiency1, len(c.Deltas))
		assert.Len(t, c.Efficiency2, len(c.Deltas))
		total += len(c.Deltas)
	}
	assert.Equal(t, 8, total)
	assert.Contains(t, a.Classes[0].Deltas, -4.0)
	assert.Contains(t, a.Classes[3].Deltas, 4.0)
	assert.Less(t, a.Classes[0].MeanDelta(), a.Classes[3].MeanDelta())

	// The most improving swap is the first row.
	assert.Equal(t, 0.0, a.Classes[0].Efficiency1[0])
	assert.Equal(t, 1.0, a.Classes[0].Efficiency2[0])
}

func TestAnalyzeQuartileEdges(t *testing.T) {
	cases := []struct {
		name   string
		deltas []float64
		edges  [5]float64
		sizes  [4]int
	}{
		{
			name:   "EightEvenlySpaced",
			deltas: []float64{0, 1, 2, 3, 4, 5, 6, 7},
			edges:  [5]float64{0, 1.75, 3.5, 5.25, 7},
			sizes:  [4]int{2, 2, 2, 2},
		},
		{
			name:   "Unsorted",
			deltas: []float64{7, 3, 0, 5, 1, 6, 2, 4},
			edges:  [5]float64{0, 1.75, 3.5, 5.25, 7},
			sizes:  [4]int{2, 2, 2, 2},
		},
		{
			name:   "FiveValues",
			deltas: []float64{10, 20, 30, 40, 50},
			edges:  [5]float64{10, 20, 30, 40, 50},
			sizes:  [4]int{1, 2, 1, 1},
		},
		{
			name:   "Single",
			deltas: []float64{-3},
			edges:  [5]float64{-3, -3, -3, -3, -3},
			sizes:  [4]int{0, 1, 0, 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := study.Analyze(rowsWithDeltas(tc.deltas...), false, false)
			require.NoError(t, err)
			for i, want := range tc.edges {
				assert.InDelta(t, want, a.Quantiles[i], 1e-12, "edge %d", i)
			}
			var sizes [4]int
			for i, c := range a.Classes {
				sizes[i] = len(c.Deltas)
			}
			assert.Equal(t, tc.sizes, sizes)
		})
	}
}

func TestAnalyzeMaximizingRanksGainsFirst(t *testing.T) {
	a, err := study.Analyze(rowsWithDeltas(-4, -3, -2, -1, 1, 2, 3, 4), true, false)
	require.NoError(t, err)
	assert.Contains(t, a.Classes[0].Deltas, 4.0)
	assert.Contains(t, a.Classes[3].Deltas, -4.0)
}

func TestAnalyzeRejectedKeepsImprovements(t *testing.T) {
	a, err := study.Analyze(rowsWithDeltas(-2, -1, 0, 0, 0, 0), false, true)
	require.NoError(t, err)
	total := 0
	for _, c := range a.Classes {
		for _, d := range c.Deltas {
			assert.Less(t, d, 0.0)
		}
		total += len(c.Deltas)
	}
	assert.Equal(t, 2, total)
	assert.Zero(t, study.Class{}.MeanDelta())
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := study.Analyze(nil, false, false)
	assert.Error(t, err)

	rows := rowsWithDeltas(1)
	rows[0].TileType2 = "lava"
	_, err = study.Analyze(rows, false, false)
	assert.Error(t, err)
}

type rowSource []persistence.SwapRow

func (s rowSource) Swaps(string) ([]persistence.SwapRow, error) { return s, nil }

func TestLoad(t *testing.T) {
	a, err := study.Load(rowSource(rowsWithDeltas(-1, 1)), "run", false, false)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Rows)
}
