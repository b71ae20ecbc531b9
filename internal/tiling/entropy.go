package tiling

import (
	"fmt"
	"math"

	"github.com/dralexportfolio/active-projects/internal/board"
)

// MarginalEntropy returns p·log2(1/p), with 0 for p of exactly 0 or 1.
func MarginalEntropy(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return p * math.Log2(1/p)
}

// Report is the entropy picture of one assignment. Arrays are indexed by
// tile type; entries for tile types absent from the board are zero.
type Report struct {
	Types      []board.Tile // Tile types present, canonical order
	MaxEntropy float64      // log2(len(Types))

	Counts        [board.NumTiles][board.NumTiles]int     // source type → neighbor type → neighbor count
	Probabilities [board.NumTiles][board.NumTiles]float64 // Counts normalized per source type
	Entropy       [board.NumTiles]float64                 // Shannon entropy of each type's neighbor distribution
	Efficiency    [board.NumTiles]float64                 // Entropy / MaxEntropy
}

// Evaluate computes the neighbor-type distribution of every tile type on the
// board and its Shannon entropy. It is a pure function of its inputs.
func Evaluate(tiles []board.Tile, adj *board.Adjacency) (*Report, error) {
	if len(tiles) != adj.Len() {
		return nil, fmt.Errorf("%d tiles, %d polygons: %w", len(tiles), adj.Len(), ErrSizeMismatch)
	}

	r := &Report{Types: board.PresentTiles(tiles)}
	k := len(r.Types)
	if k < 2 {
		return nil, fmt.Errorf("%d tile types present: %w", k, ErrTooFewTileTypes)
	}
	r.MaxEntropy = math.Log2(float64(k))

	adj.VisitEdges(func(i, j int) {
		r.Counts[tiles[i]][tiles[j]]++
	})

	for _, src := range r.Types {
		total := 0
		for _, dst := range r.Types {
			total += r.Counts[src][dst]
		}
		if total == 0 {
			return nil, fmt.Errorf("%s: %w", src, ErrDegenerateDistribution)
		}

		h := 0.0
		for _, dst := range r.Types {
			p := float64(r.Counts[src][dst]) / float64(total)
			r.Probabilities[src][dst] = p
			h += MarginalEntropy(p)
		}
		r.Entropy[src] = h
		r.Efficiency[src] = h / r.MaxEntropy
	}

	return r, nil
}

// Present reports whether tile type t is on the board.
func (r *Report) Present(t board.Tile) bool {
	for _, p := range r.Types {
		if p == t {
			return true
		}
	}
	return false
}

// EfficiencyMap returns the efficiency of each present tile type, keyed by name.
func (r *Report) EfficiencyMap() map[string]float64 {
	m := make(map[string]float64, len(r.Types))
	for _, t := range r.Types {
		m[t.String()] = r.Efficiency[t]
	}
	return m
}
