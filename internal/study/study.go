// Package study runs the entropy study: many independent likelihood-drawn
// tilings of a hexagon board, each hill-climbed for a fixed number of swaps,
// with every swap attempt written to a table store for later analysis.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/persistence"
	"github.com/dralexportfolio/active-projects/internal/random"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

// ErrInvalidConfig indicates study parameters out of range.
var ErrInvalidConfig = errors.New("study: invalid configuration")

// Config holds study parameters.
type Config struct {
	Simulations int               // Independent boards
	Steps       int               // Swap attempts per board
	PerSide     int               // Hexagons along each board edge
	Likelihoods board.Likelihoods // Per-polygon tile draw weights
	Reject      bool              // Undo regressing swaps
	SkewPower   float64           // 0 picks tile types uniformly
	Objective   tiling.Objective  // Scored before and after each swap
	Targets     tiling.Targets
	Seed        int64 // Base seed; simulation i uses random.Derive(Seed, i)
	Workers     int   // Simulations run concurrently, each on private state
}

// DefaultConfig returns the study's standard settings.
func DefaultConfig() Config {
	targets := tiling.DefaultTargets()
	return Config{
		Simulations: 10,
		Steps:       1000,
		PerSide:     5,
		Likelihoods: board.DefaultLikelihoods(),
		Reject:      false,
		SkewPower:   0,
		Objective:   tiling.SquaredError{Targets: targets},
		Targets:     targets,
		Seed:        1,
		Workers:     1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Simulations <= 0 || c.Steps < 0 || c.PerSide <= 0 || c.Workers <= 0 {
		return fmt.Errorf("simulations=%d steps=%d per_side=%d workers=%d: %w",
			c.Simulations, c.Steps, c.PerSide, c.Workers, ErrInvalidConfig)
	}
	if c.Objective == nil {
		return tiling.ErrNoObjective
	}
	return c.Likelihoods.Validate()
}

func (c Config) policy() tiling.Policy {
	if c.Reject {
		return tiling.RejectOnRegression
	}
	return tiling.AcceptAlways
}

// Store is the append-only sink for study results.
type Store interface {
	CreateRun(r persistence.Run) (string, error)
	AppendSwaps(runID string, simIndex int, recs []tiling.SwapRecord) error
	FinishRun(id string, res tiling.Result) error
}

type outcome struct {
	records []tiling.SwapRecord
	result  tiling.Result
	err     error
}

// Run executes every simulation, buffers each one's swap records, and writes
// them to store in simulation order once all have finished. The finished run
// carries summed counts and the mean initial and final objective. It returns
// the run ID.
func Run(ctx context.Context, cfg Config, store Store) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	runID, err := store.CreateRun(persistence.Run{
		Kind:       "study",
		Mode:       fmt.Sprintf("hexagon-%d", cfg.PerSide),
		Seed:       cfg.Seed,
		Iterations: cfg.Steps,
		SkewPower:  cfg.SkewPower,
		Policy:     cfg.policy().String(),
		Objective:  cfg.Objective.Name(),
	})
	if err != nil {
		return "", err
	}

	slog.Info("study started",
		"run", runID,
		"simulations", cfg.Simulations,
		"steps", humanize.Comma(int64(cfg.Steps)),
		"per_side", cfg.PerSide,
		"policy", cfg.policy(),
		"workers", cfg.Workers,
	)

	outcomes := make([]outcome, cfg.Simulations)
	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Simulations; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = simulate(ctx, cfg, i)
		}(i)
	}
	wg.Wait()

	var total tiling.Result
	initial := make([]float64, len(outcomes))
	final := make([]float64, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			return runID, fmt.Errorf("simulation %d: %w", i, o.err)
		}
		if err := store.AppendSwaps(runID, i, o.records); err != nil {
			return runID, fmt.Errorf("store simulation %d: %w", i, err)
		}
		initial[i] = o.result.Initial
		final[i] = o.result.Final
		total.Iterations += o.result.Iterations
		total.Accepted += o.result.Accepted
		total.Rejected += o.result.Rejected
		total.Skipped += o.result.Skipped
	}
	// Boards differ per simulation, so the run row keeps the mean objective.
	total.Initial = stat.Mean(initial, nil)
	total.Final = stat.Mean(final, nil)

	if err := store.FinishRun(runID, total); err != nil {
		return runID, err
	}

	slog.Info("study complete",
		"run", runID,
		"swaps", humanize.Comma(int64(total.Iterations)),
		"accepted", humanize.Comma(int64(total.Accepted)),
		"rejected", humanize.Comma(int64(total.Rejected)),
	)
	return runID, nil
}

// simulate runs one board on its own layout, adjacency, assignment and source.
func simulate(ctx context.Context, cfg Config, index int) outcome {
	layout, err := board.NewLayout(board.HexagonRows(cfg.PerSide))
	if err != nil {
		return outcome{err: err}
	}
	adj := board.AdjacencyFor(layout)
	src := random.Derive(cfg.Seed, index)

	assign, err := tiling.LikelihoodAssignment(cfg.Likelihoods, layout.Len(), src)
	if err != nil {
		return outcome{err: err}
	}

	opt, err := tiling.NewOptimizer(tiling.Config{
		Iterations: cfg.Steps,
		SkewPower:  cfg.SkewPower,
		Policy:     cfg.policy(),
		Objective:  cfg.Objective,
		Targets:    cfg.Targets,
	}, assign, adj, src)
	if err != nil {
		return outcome{err: err}
	}

	records := make([]tiling.SwapRecord, 0, cfg.Steps)
	opt.OnSwap = func(rec tiling.SwapRecord) {
		records = append(records, rec)
	}

	res, err := opt.Run(ctx)
	if err != nil {
		return outcome{err: err}
	}

	slog.Debug("simulation complete",
		"simulation", index,
		"catalog", assign.Catalog().String(),
		"initial", res.Initial,
		"final", res.Final,
	)
	return outcome{records: records, result: res}
}
