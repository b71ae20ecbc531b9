package tiling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/random"
)

// Policy decides whether a proposed swap is kept.
type Policy uint8

const (
	AcceptAlways       Policy = iota // Keep every swap
	RejectOnRegression               // Undo swaps that worsen the objective
)

// PolicyName returns a name for p.
func PolicyName(p Policy) string {
	switch p {
	case AcceptAlways:
		return "accept-always"
	case RejectOnRegression:
		return "reject-on-regression"
	default:
		return "unknown"
	}
}

func (p Policy) String() string { return PolicyName(p) }

// State is the optimizer's position in its per-iteration cycle.
type State uint8

const (
	StateReady State = iota
	StateProposed
	StateAccepted
	StateRejected
	StateDone
)

// StateName returns a name for s.
func StateName(s State) string {
	switch s {
	case StateReady:
		return "ready"
	case StateProposed:
		return "proposed"
	case StateAccepted:
		return "accepted"
	case StateRejected:
		return "rejected"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

func (s State) String() string { return StateName(s) }

// Config holds optimizer parameters.
type Config struct {
	Iterations int       // Fixed swap budget; no early stopping
	SkewPower  float64   // Proposer bias, >= 0
	Policy     Policy    // Accept rule
	Objective  Objective // Scored before and after each swap
	Targets    Targets   // Spread/cluster intent per tile type
	LogEvery   int       // Progress log interval in iterations (0 = never)
}

// DefaultConfig returns the board generator's settings: skew 1 with
// rejection, minimizing squared error.
func DefaultConfig() Config {
	targets := DefaultTargets()
	return Config{
		Iterations: 1000,
		SkewPower:  1,
		Policy:     RejectOnRegression,
		Objective:  SquaredError{Targets: targets},
		Targets:    targets,
		LogEvery:   250,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations %d: %w", c.Iterations, ErrInvalidIterations)
	}
	if err := validateSkew(c.SkewPower); err != nil {
		return err
	}
	if c.Objective == nil {
		return ErrNoObjective
	}
	return nil
}

// SwapRecord describes one swap attempt.
type SwapRecord struct {
	Iteration     int
	Swap          Swap
	Pre           float64
	Post          float64 // Objective after the attempt; equals Pre when rejected
	Delta         float64 // Post − Pre
	State         State   // StateAccepted or StateRejected
	PreEfficiency [board.NumTiles]float64
}

// Accepted reports whether the swap was kept.
func (r SwapRecord) Accepted() bool {
	return r.State == StateAccepted
}

// Result summarizes a run.
type Result struct {
	Iterations int
	Accepted   int
	Rejected   int
	Skipped    int // Iterations lost to degenerate sampling
	Initial    float64
	Final      float64
}

// Optimizer runs the fixed-budget stochastic hill climb over one
// assignment. It owns the assignment for the duration of a run and is not
// safe for concurrent use.
type Optimizer struct {
	cfg      Config
	assign   *Assignment
	adj      *board.Adjacency
	src      random.Source
	proposer *Proposer
	state    State

	// OnSwap is called after every accepted or rejected attempt.
	OnSwap func(rec SwapRecord)
}

// NewOptimizer validates cfg and binds it to an assignment and adjacency.
func NewOptimizer(cfg Config, a *Assignment, adj *board.Adjacency, src random.Source) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if a.Len() != adj.Len() {
		return nil, fmt.Errorf("%d tiles, %d polygons: %w", a.Len(), adj.Len(), ErrSizeMismatch)
	}
	p, err := NewProposer(cfg.SkewPower, cfg.Targets)
	if err != nil {
		return nil, err
	}
	return &Optimizer{
		cfg:      cfg,
		assign:   a,
		adj:      adj,
		src:      src,
		proposer: p,
		state:    StateReady,
	}, nil
}

// State returns the current state.
func (o *Optimizer) State() State {
	return o.state
}

// Score evaluates the objective for the current assignment.
func (o *Optimizer) Score() (float64, *Report, error) {
	r, err := Evaluate(o.assign.tiles, o.adj)
	if err != nil {
		return 0, nil, err
	}
	return o.cfg.Objective.Score(r), r, nil
}

// Step performs one propose/evaluate/decide cycle. A degenerate-sampling
// error leaves the assignment untouched.
func (o *Optimizer) Step(iteration int) (SwapRecord, error) {
	o.state = StateReady
	pre, report, err := o.Score()
	if err != nil {
		return SwapRecord{}, err
	}

	swap, err := o.proposer.Propose(report, o.assign, o.src)
	if err != nil {
		return SwapRecord{}, err
	}
	if err := o.assign.Swap(swap.PolyA, swap.PolyB); err != nil {
		return SwapRecord{}, err
	}
	o.state = StateProposed

	post, _, err := o.Score()
	if err != nil {
		o.state = StateReady
		if rerr := o.assign.Swap(swap.PolyA, swap.PolyB); rerr != nil {
			return SwapRecord{}, fmt.Errorf("revert after %v: %w", err, rerr)
		}
		return SwapRecord{}, err
	}

	rec := SwapRecord{
		Iteration:     iteration,
		Swap:          swap,
		Pre:           pre,
		PreEfficiency: report.Efficiency,
		State:         StateAccepted,
	}
	if o.cfg.Policy == RejectOnRegression && Regressed(o.cfg.Objective, pre, post) {
		if err := o.assign.Swap(swap.PolyA, swap.PolyB); err != nil {
			return rec, fmt.Errorf("revert rejected swap: %w", err)
		}
		rec.State = StateRejected
		post = pre
	}
	rec.Post = post
	rec.Delta = post - pre
	o.state = rec.State

	if err := o.assign.Verify(); err != nil {
		return rec, err
	}
	return rec, nil
}

// Run executes the configured number of iterations. Cancellation is checked
// between iterations.
func (o *Optimizer) Run(ctx context.Context) (Result, error) {
	initial, _, err := o.Score()
	if err != nil {
		return Result{}, err
	}
	res := Result{Initial: initial, Final: initial}

	slog.Debug("optimizer started",
		"iterations", humanize.Comma(int64(o.cfg.Iterations)),
		"skew", o.cfg.SkewPower,
		"policy", o.cfg.Policy,
		"objective", o.cfg.Objective.Name(),
		"initial", initial,
	)

	for i := 0; i < o.cfg.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rec, err := o.Step(i)
		switch {
		case errors.Is(err, ErrDegenerateSampling):
			res.Skipped++
			res.Iterations++
			slog.Debug("swap skipped", "iteration", i, "error", err)
			continue
		case err != nil:
			return res, fmt.Errorf("iteration %d: %w", i, err)
		}

		res.Iterations++
		if rec.Accepted() {
			res.Accepted++
		} else {
			res.Rejected++
		}
		res.Final = rec.Post

		if o.OnSwap != nil {
			o.OnSwap(rec)
		}
		if o.cfg.LogEvery > 0 && (i+1)%o.cfg.LogEvery == 0 {
			slog.Info("optimizer progress",
				"iteration", humanize.Comma(int64(i+1)),
				"objective", rec.Post,
				"accepted", res.Accepted,
				"rejected", res.Rejected,
			)
		}
	}

	o.state = StateDone
	return res, nil
}
