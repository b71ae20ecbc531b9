package study

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/persistence"
)

// ClassNames labels the delta quartiles from best to worst.
var ClassNames = [4]string{"Great Swaps", "Good Swaps", "Bad Swaps", "Terrible Swaps"}

// Class collects the swaps whose delta fell in one quartile.
type Class struct {
	Name        string
	Deltas      []float64
	Efficiency1 []float64 // Pre-swap efficiency of the first tile type
	Efficiency2 []float64 // Pre-swap efficiency of the second tile type
}

// MeanDelta returns the mean delta of the class, or 0 when empty.
func (c Class) MeanDelta() float64 {
	if len(c.Deltas) == 0 {
		return 0
	}
	return stat.Mean(c.Deltas, nil)
}

// Analysis is the quartile breakdown of a study's swap deltas.
type Analysis struct {
	Quantiles   [5]float64 // Interpolated badness quantiles at 0, .25, .5, .75, 1
	MaxAbsDelta float64
	Rows        int
	Classes     [4]Class
}

// SwapSource reads stored swap attempts.
type SwapSource interface {
	Swaps(runID string) ([]persistence.SwapRow, error)
}

// Load reads a run's swaps and analyzes them.
func Load(src SwapSource, runID string, maximize, rejected bool) (*Analysis, error) {
	rows, err := src.Swaps(runID)
	if err != nil {
		return nil, fmt.Errorf("read swaps: %w", err)
	}
	return Analyze(rows, maximize, rejected)
}

// Analyze classifies each swap by the quartile of its delta. Deltas are
// ranked so that the first class always holds the most improving swaps,
// whichever direction the objective runs. When the study rejected
// regressions only strictly improving swaps are kept.
func Analyze(rows []persistence.SwapRow, maximize, rejected bool) (*Analysis, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("analyze: no swaps stored")
	}

	badness := func(delta float64) float64 {
		if maximize {
			return -delta
		}
		return delta
	}

	sorted := make([]float64, len(rows))
	for i, r := range rows {
		sorted[i] = badness(r.Delta)
	}
	slices.Sort(sorted)

	a := &Analysis{Rows: len(rows)}
	for i, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		a.Quantiles[i] = quantile(sorted, p)
	}
	a.MaxAbsDelta = math.Max(math.Abs(sorted[0]), math.Abs(sorted[len(sorted)-1]))
	for i := range a.Classes {
		a.Classes[i].Name = ClassNames[i]
	}

	for _, r := range rows {
		b := badness(r.Delta)
		if rejected && b >= 0 {
			continue
		}
		t1, ok1 := board.ParseTile(r.TileType1)
		t2, ok2 := board.ParseTile(r.TileType2)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("analyze: unknown tile in swap %d/%d", r.SimIndex, r.StepIndex)
		}

		c := &a.Classes[a.classify(b)]
		c.Deltas = append(c.Deltas, r.Delta)
		c.Efficiency1 = append(c.Efficiency1, r.PreEfficiency(t1))
		c.Efficiency2 = append(c.Efficiency2, r.PreEfficiency(t2))
	}
	return a, nil
}

// quantile linearly interpolates between the order statistics of sorted at
// rank (n−1)·p, matching numpy's default.
func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

func (a *Analysis) classify(b float64) int {
	q := a.Quantiles
	switch {
	case q[0] <= b && b < q[1]:
		return 0
	case q[1] <= b && b <= q[2]:
		return 1
	case q[2] <= b && b <= q[3]:
		return 2
	default:
		return 3
	}
}
