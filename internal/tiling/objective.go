package tiling

import (
	"fmt"
	"strings"

	"github.com/dralexportfolio/active-projects/internal/board"
)

// Target says how a tile type should be distributed over the board.
type Target uint8

const (
	TargetSpread  Target = iota // High entropy: neighbors of every type
	TargetCluster               // Low entropy: neighbors of its own type
)

// Targets assigns a Target to every tile type.
type Targets [board.NumTiles]Target

// DefaultTargets clusters water and spreads everything else.
func DefaultTargets() Targets {
	var t Targets
	t[board.TileWater] = TargetCluster
	return t
}

// Objective scores a Report. Maximize tells the acceptance rule which
// direction is an improvement.
type Objective interface {
	Name() string
	Score(r *Report) float64
	Maximize() bool
}

// Regressed reports whether moving from pre to post is worse under obj.
// Ties are not regressions.
func Regressed(obj Objective, pre, post float64) bool {
	if obj.Maximize() {
		return post < pre
	}
	return post > pre
}

// SquaredError is the mean squared distance of each present type's entropy
// from its target: 0 for clustered types, MaxEntropy for spread types.
// Lower is better.
type SquaredError struct {
	Targets Targets
}

// Name implements Objective.
func (SquaredError) Name() string { return "squared-error" }

// Maximize implements Objective.
func (SquaredError) Maximize() bool { return false }

// Score implements Objective.
func (o SquaredError) Score(r *Report) float64 {
	sum := 0.0
	for _, t := range r.Types {
		var d float64
		if o.Targets[t] == TargetCluster {
			d = r.Entropy[t]
		} else {
			d = r.MaxEntropy - r.Entropy[t]
		}
		sum += d * d
	}
	return sum / float64(len(r.Types))
}

// WeightedSum adds the entropy of spread types and subtracts the entropy of
// clustered types. Higher is better.
type WeightedSum struct {
	Targets Targets
}

// Name implements Objective.
func (WeightedSum) Name() string { return "weighted-sum" }

// Maximize implements Objective.
func (WeightedSum) Maximize() bool { return true }

// Score implements Objective.
func (o WeightedSum) Score(r *Report) float64 {
	total := 0.0
	for _, t := range r.Types {
		if o.Targets[t] == TargetCluster {
			total -= r.Entropy[t]
		} else {
			total += r.Entropy[t]
		}
	}
	return total
}

// ParseObjective returns the objective named by "squared-error" or
// "weighted-sum".
func ParseObjective(name string, targets Targets) (Objective, error) {
	switch strings.ToLower(name) {
	case "squared-error", "mse":
		return SquaredError{Targets: targets}, nil
	case "weighted-sum", "sum":
		return WeightedSum{Targets: targets}, nil
	default:
		return nil, fmt.Errorf("objective %q: %w", name, ErrNoObjective)
	}
}
