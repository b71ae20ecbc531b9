package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dralexportfolio/active-projects/internal/field"
	"github.com/dralexportfolio/active-projects/internal/render"
)

var (
	fieldRows       int
	fieldCols       int
	fieldSpacing    int
	fieldNormalizer float64
	fieldOutDir     string
	fieldPCA        []string
)

func init() {
	fieldCmd := &cobra.Command{
		Use:   "field",
		Short: "Render curl and divergence images of a noise vector field",
		Long: `Build a smooth vector field from simplex noise and write its curl and
divergence as diverging-color PNGs, plus the first principal component of
(curl, divergence) unclipped and with either sign kept.

Examples:
  boardgen field --seed 7 --out-dir backgrounds
  boardgen field --rows 1440 --cols 2560 --normalizer 640
  boardgen field --pca positive`,
		RunE: runField,
	}

	defaults := field.DefaultConfig()
	fieldCmd.Flags().IntVar(&fieldRows, "rows", defaults.Rows, "Image height")
	fieldCmd.Flags().IntVar(&fieldCols, "cols", defaults.Cols, "Image width")
	fieldCmd.Flags().IntVar(&fieldSpacing, "spacing", defaults.Spacing, "Pixels between base vectors")
	fieldCmd.Flags().Float64Var(&fieldNormalizer, "normalizer", defaults.Normalizer, "Softmax normalizer (squared pixels)")
	fieldCmd.Flags().StringVar(&fieldOutDir, "out-dir", ".", "Output directory")
	fieldCmd.Flags().StringSliceVar(&fieldPCA, "pca", []string{"unclipped", "positive", "negative"}, "Principal component images to write: unclipped, positive, negative")

	rootCmd.AddCommand(fieldCmd)
}

func runField(cmd *cobra.Command, args []string) error {
	cfg := field.DefaultConfig()
	cfg.Rows = fieldRows
	cfg.Cols = fieldCols
	cfg.Spacing = fieldSpacing
	cfg.Normalizer = fieldNormalizer
	cfg.Seed = seed

	f, err := field.Generate(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(fieldOutDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", fieldOutDir, err)
	}

	curl, div := f.Curl(), f.Divergence()
	images := map[string][]float64{
		"curl":       curl,
		"divergence": div,
	}
	if len(fieldPCA) > 0 {
		proj, err := field.PrincipalProjection(curl, div)
		if err != nil {
			return err
		}
		for _, name := range fieldPCA {
			c, err := parseClip(name)
			if err != nil {
				return err
			}
			images["pca_"+c.String()] = field.Clipped(proj, c)
		}
	}
	for name, values := range images {
		path := filepath.Join(fieldOutDir, fmt.Sprintf("%s_seed_%d.png", name, cfg.Seed))
		if err := render.SavePNG(path, field.Diverging(values, f.Rows, f.Cols)); err != nil {
			return err
		}
		slog.Info("field image written", "kind", name, "path", path)
	}
	return nil
}

func parseClip(name string) (field.Clip, error) {
	for _, c := range []field.Clip{field.Unclipped, field.KeepPositive, field.KeepNegative} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown pca image %q (want unclipped, positive or negative)", name)
}
