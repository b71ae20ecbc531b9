package tiling

import "errors"

var (
	// ErrInvalidSkew indicates a negative or non-finite skew power.
	ErrInvalidSkew = errors.New("tiling: skew power must be finite and non-negative")
	// ErrInvalidIterations indicates a negative iteration budget.
	ErrInvalidIterations = errors.New("tiling: iteration count must be non-negative")
	// ErrNoObjective indicates a configuration without an objective.
	ErrNoObjective = errors.New("tiling: objective is required")
	// ErrSizeMismatch indicates an assignment and adjacency covering different polygon counts.
	ErrSizeMismatch = errors.New("tiling: assignment and adjacency sizes differ")
	// ErrTooFewTileTypes indicates fewer than two distinct tile types on the board.
	ErrTooFewTileTypes = errors.New("tiling: at least two distinct tile types are required")
	// ErrDegenerateDistribution indicates a present tile type whose polygons have no neighbors.
	ErrDegenerateDistribution = errors.New("tiling: tile type has no neighbors")
	// ErrDegenerateSampling indicates the proposer found no two distinct eligible tile types.
	// It is retryable.
	ErrDegenerateSampling = errors.New("tiling: no eligible swap could be sampled")
	// ErrInvariantViolation indicates the assignment no longer matches its catalog.
	ErrInvariantViolation = errors.New("tiling: assignment drifted from its catalog")
	// ErrIndexOutOfRange indicates a polygon index outside the board.
	ErrIndexOutOfRange = errors.New("tiling: polygon index out of range")
)
