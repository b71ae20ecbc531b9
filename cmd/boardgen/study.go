package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dralexportfolio/active-projects/internal/persistence"
	"github.com/dralexportfolio/active-projects/internal/render"
	"github.com/dralexportfolio/active-projects/internal/study"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

var (
	studySims      int
	studySteps     int
	studyPerSide   int
	studyReject    bool
	studySkew      float64
	studyObjective string
	studyWorkers   int
	studyDB        string
	studyPlot      string
)

func init() {
	studyCmd := &cobra.Command{
		Use:   "study",
		Short: "Run the entropy study and plot swap quality against efficiency",
		Long: `Tile many hexagon boards at random, attempt swaps on each, store every
attempt in SQLite, then classify swaps by delta quartile and plot the
pre-swap efficiencies of the two swapped tile types.

Examples:
  boardgen study --db data/entropy_study.db --plot study.png
  boardgen study --simulations 50 --steps 2000 --reject --workers 4`,
		RunE: runStudy,
	}

	defaults := study.DefaultConfig()
	studyCmd.Flags().IntVar(&studySims, "simulations", defaults.Simulations, "Independent boards")
	studyCmd.Flags().IntVar(&studySteps, "steps", defaults.Steps, "Swap attempts per board")
	studyCmd.Flags().IntVar(&studyPerSide, "per-side", defaults.PerSide, "Hexagons along each board edge")
	studyCmd.Flags().BoolVar(&studyReject, "reject", defaults.Reject, "Undo swaps that worsen the objective")
	studyCmd.Flags().Float64Var(&studySkew, "skew", defaults.SkewPower, "Skew power for tile type selection")
	studyCmd.Flags().StringVar(&studyObjective, "objective", defaults.Objective.Name(), "Objective: squared-error or weighted-sum")
	studyCmd.Flags().IntVar(&studyWorkers, "workers", defaults.Workers, "Boards simulated concurrently")
	studyCmd.Flags().StringVar(&studyDB, "db", envOrDefault("BOARDGEN_DB", "data/entropy_study.db"), "SQLite file for swap records")
	studyCmd.Flags().StringVar(&studyPlot, "plot", "study.png", "Scatter plot output")

	rootCmd.AddCommand(studyCmd)
}

func runStudy(cmd *cobra.Command, args []string) error {
	cfg := study.DefaultConfig()
	cfg.Simulations = studySims
	cfg.Steps = studySteps
	cfg.PerSide = studyPerSide
	cfg.Reject = studyReject
	cfg.SkewPower = studySkew
	cfg.Workers = studyWorkers

	obj, err := tiling.ParseObjective(studyObjective, cfg.Targets)
	if err != nil {
		return err
	}
	cfg.Objective = obj
	cfg.Seed = resolvedSeed()

	if err := os.MkdirAll(filepath.Dir(studyDB), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(studyDB), err)
	}
	db, err := persistence.Open(studyDB)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database opened", "path", studyDB)

	runID, err := study.Run(cmd.Context(), cfg, db)
	if err != nil {
		return err
	}

	analysis, err := study.Load(db, runID, obj.Maximize(), cfg.Reject)
	if err != nil {
		return err
	}
	for _, c := range analysis.Classes {
		slog.Info("swap class",
			"class", c.Name,
			"swaps", len(c.Deltas),
			"mean_delta", fmt.Sprintf("%.5f", c.MeanDelta()),
		)
	}

	p, err := render.StudyScatter(analysis)
	if err != nil {
		return err
	}
	if err := render.SavePlot(p, studyPlot); err != nil {
		return err
	}
	slog.Info("plot written", "path", studyPlot, "run", runID)
	return nil
}
