package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dralexportfolio/active-projects/internal/board"
	"github.com/dralexportfolio/active-projects/internal/persistence"
	"github.com/dralexportfolio/active-projects/internal/random"
	"github.com/dralexportfolio/active-projects/internal/render"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

var (
	genMode       string
	genIterations int
	genSkew       float64
	genReject     bool
	genObjective  string
	genOut        string
	genBefore     string
	genTrace      string
	genDB         string
	genScale      float64
)

func init() {
	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and optimize a board",
		Long: `Lay out the board for a game mode, draw a random tiling from its
catalog, and hill-climb it by swapping tiles.

Examples:
  boardgen generate --mode seafarers-56 --out board.png
  boardgen generate --mode original-34 --iterations 5000 --skew 2
  boardgen generate --objective weighted-sum --reject=false --trace trace.png`,
		RunE: runGenerate,
	}

	defaults := tiling.DefaultConfig()
	genCmd.Flags().StringVarP(&genMode, "mode", "m", "seafarers-56", "Game mode: original-34, original-56, seafarers-34, seafarers-56")
	genCmd.Flags().IntVarP(&genIterations, "iterations", "n", defaults.Iterations, "Swap attempts")
	genCmd.Flags().Float64Var(&genSkew, "skew", defaults.SkewPower, "Skew power for tile type selection (0 = uniform)")
	genCmd.Flags().BoolVar(&genReject, "reject", defaults.Policy == tiling.RejectOnRegression, "Undo swaps that worsen the objective")
	genCmd.Flags().StringVar(&genObjective, "objective", defaults.Objective.Name(), "Objective: squared-error or weighted-sum")
	genCmd.Flags().StringVarP(&genOut, "out", "o", "board.png", "Optimized board image")
	genCmd.Flags().StringVar(&genBefore, "before", "", "Initial board image (optional)")
	genCmd.Flags().StringVar(&genTrace, "trace", "", "Objective trace plot (optional)")
	genCmd.Flags().StringVar(&genDB, "db", os.Getenv("BOARDGEN_DB"), "SQLite file to record the run (optional)")
	genCmd.Flags().Float64Var(&genScale, "scale", render.DefaultBoardConfig().Scale, "Pixels per hexagon radius")

	rootCmd.AddCommand(genCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mode, err := board.ParseMode(genMode)
	if err != nil {
		return err
	}
	preset, err := board.PresetFor(mode)
	if err != nil {
		return err
	}

	cfg := tiling.DefaultConfig()
	cfg.Iterations = genIterations
	cfg.SkewPower = genSkew
	cfg.Policy = tiling.AcceptAlways
	if genReject {
		cfg.Policy = tiling.RejectOnRegression
	}
	cfg.Objective, err = tiling.ParseObjective(genObjective, cfg.Targets)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s := resolvedSeed()
	gen, err := tiling.NewGenerator(preset, random.New(s))
	if err != nil {
		return err
	}

	rcfg := render.DefaultBoardConfig()
	rcfg.Scale = genScale
	if genBefore != "" {
		if err := saveBoard(genBefore, gen, rcfg); err != nil {
			return err
		}
	}

	var db *persistence.DB
	var runID string
	if genDB != "" {
		if err := os.MkdirAll(filepath.Dir(genDB), 0755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(genDB), err)
		}
		db, err = persistence.Open(genDB)
		if err != nil {
			return err
		}
		defer db.Close()
		runID, err = db.CreateRun(persistence.Run{
			Kind:       "generate",
			Mode:       board.ModeName(mode),
			Seed:       s,
			Iterations: cfg.Iterations,
			SkewPower:  cfg.SkewPower,
			Policy:     cfg.Policy.String(),
			Objective:  cfg.Objective.Name(),
		})
		if err != nil {
			return err
		}
	}

	var records []tiling.SwapRecord
	res, err := gen.Run(cmd.Context(), cfg, func(rec tiling.SwapRecord) {
		records = append(records, rec)
	})
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	report, err := gen.Report()
	if err != nil {
		return err
	}
	slog.Info("board optimized",
		"mode", mode,
		"iterations", humanize.Comma(int64(res.Iterations)),
		"accepted", res.Accepted,
		"rejected", res.Rejected,
		"skipped", res.Skipped,
		"initial", fmt.Sprintf("%.4f", res.Initial),
		"final", fmt.Sprintf("%.4f", res.Final),
	)
	for _, t := range report.Types {
		slog.Debug("tile entropy",
			"tile", t,
			"entropy", fmt.Sprintf("%.4f", report.Entropy[t]),
		)
	}
	slog.Info("tile efficiency", "efficiency", report.EfficiencyMap())

	if db != nil {
		if err := db.AppendSwaps(runID, 0, records); err != nil {
			return err
		}
		if err := db.SaveBoard(runID, gen.Tiles()); err != nil {
			return err
		}
		if err := db.FinishRun(runID, res); err != nil {
			return err
		}
		slog.Info("run recorded", "run", runID, "db", genDB)
	}

	if genTrace != "" {
		p, err := render.ObjectiveTrace(res.Initial, records, cfg.Objective.Name())
		if err != nil {
			return err
		}
		if err := render.SavePlot(p, genTrace); err != nil {
			return err
		}
		slog.Info("trace written", "path", genTrace)
	}

	return saveBoard(genOut, gen, rcfg)
}

func saveBoard(path string, gen *tiling.Generator, cfg render.BoardConfig) error {
	img, err := render.Board(gen.Layout(), gen.Tiles(), cfg)
	if err != nil {
		return err
	}
	if err := render.SavePNG(path, img); err != nil {
		return err
	}
	slog.Info("board written", "path", path, "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	return nil
}
