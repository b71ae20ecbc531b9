package tiling

import (
	"fmt"
	"math"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/random"
)

// Swap is a proposed exchange of the tiles on two polygons.
type Swap struct {
	TileA board.Tile
	TileB board.Tile
	PolyA int
	PolyB int
}

// Proposer picks swaps biased by how far each tile type is from its target.
// SkewPower 0 samples tile types uniformly; larger powers concentrate on
// the worst offender.
type Proposer struct {
	SkewPower float64
	Targets   Targets
}

// NewProposer validates the skew power.
func NewProposer(skew float64, targets Targets) (*Proposer, error) {
	if err := validateSkew(skew); err != nil {
		return nil, err
	}
	return &Proposer{SkewPower: skew, Targets: targets}, nil
}

func validateSkew(skew float64) error {
	if skew < 0 || math.IsNaN(skew) || math.IsInf(skew, 0) {
		return fmt.Errorf("skew %v: %w", skew, ErrInvalidSkew)
	}
	return nil
}

// FirstWeights returns the normalized probability of picking each present
// type first. Clustered types weigh efficiency^skew (favored while too
// spread), spread types weigh (1−efficiency)^skew (favored while too
// clustered).
func (p *Proposer) FirstWeights(r *Report) ([]float64, error) {
	w := make([]float64, len(r.Types))
	for i, t := range r.Types {
		eff := clamp01(r.Efficiency[t])
		if p.Targets[t] == TargetCluster {
			w[i] = math.Pow(eff, p.SkewPower)
		} else {
			w[i] = math.Pow(1-eff, p.SkewPower)
		}
	}
	if !normalize(w) {
		return nil, fmt.Errorf("first tile type weights sum to zero: %w", ErrDegenerateSampling)
	}
	return w, nil
}

// SecondWeights drops the first pick, inverts the remaining probabilities
// (p → 1−p) and renormalizes.
func SecondWeights(first []float64, picked int) ([]float64, error) {
	w := make([]float64, len(first))
	for i, p := range first {
		if i == picked {
			continue
		}
		w[i] = 1 - p
	}
	if !normalize(w) {
		return nil, fmt.Errorf("second tile type weights sum to zero: %w", ErrDegenerateSampling)
	}
	return w, nil
}

// Propose samples two distinct tile types and one polygon of each.
func (p *Proposer) Propose(r *Report, a *Assignment, src random.Source) (Swap, error) {
	if len(r.Types) < 2 {
		return Swap{}, fmt.Errorf("%d tile types: %w", len(r.Types), ErrDegenerateSampling)
	}

	first, err := p.FirstWeights(r)
	if err != nil {
		return Swap{}, err
	}
	i := sample(first, src)

	second, err := SecondWeights(first, i)
	if err != nil {
		return Swap{}, err
	}
	j := sample(second, src)
	if j == i {
		return Swap{}, fmt.Errorf("tile type %s drawn twice: %w", r.Types[i], ErrDegenerateSampling)
	}

	s := Swap{TileA: r.Types[i], TileB: r.Types[j]}
	idxA := a.IndicesOf(s.TileA)
	idxB := a.IndicesOf(s.TileB)
	if len(idxA) == 0 || len(idxB) == 0 {
		return Swap{}, fmt.Errorf("no polygons hold %s or %s: %w", s.TileA, s.TileB, ErrDegenerateSampling)
	}
	s.PolyA = idxA[src.Intn(len(idxA))]
	s.PolyB = idxB[src.Intn(len(idxB))]
	return s, nil
}

// normalize scales w to sum to 1. It reports false when the mass is zero or
// not finite.
func normalize(w []float64) bool {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return false
	}
	for i := range w {
		w[i] /= sum
	}
	return true
}

// sample draws an index from normalized weights. Rounding past the last
// bucket lands on the last index with positive weight.
func sample(w []float64, src random.Source) int {
	r := src.Float64()
	last := -1
	for i, v := range w {
		if v <= 0 {
			continue
		}
		if r < v {
			return i
		}
		r -= v
		last = i
	}
	return last
}

func clamp01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
