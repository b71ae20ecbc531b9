package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dralexportfolio/active-projects/internal/study"
	"github.com/dralexportfolio/active-projects/internal/tiling"
)

// classColors run from the best quartile (dark blue) to the worst (red).
var classColors = [4]color.RGBA{
	{12, 51, 131, 255},
	{10, 136, 186, 255},
	{242, 143, 56, 255},
	{217, 30, 30, 255},
}

// StudyScatter plots pre-swap efficiency of the first tile type against the
// second, one series per delta quartile.
func StudyScatter(a *study.Analysis) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Deltas In Objective As Functions Of Efficiency Values"
	p.X.Label.Text = "pre-swap efficiency 1"
	p.Y.Label.Text = "pre-swap efficiency 2"
	p.X.Min, p.X.Max = -0.05, 1.05
	p.Y.Min, p.Y.Max = -0.05, 1.05

	for i, c := range a.Classes {
		if len(c.Deltas) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(c.Deltas))
		for j := range c.Deltas {
			pts[j].X = c.Efficiency1[j]
			pts[j].Y = c.Efficiency2[j]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter %s: %w", c.Name, err)
		}
		s.GlyphStyle.Color = classColors[i]
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add(c.Name, s)
	}
	p.Legend.Top = true
	return p, nil
}

// ObjectiveTrace plots the objective after each swap attempt.
func ObjectiveTrace(initial float64, recs []tiling.SwapRecord, objective string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Objective By Iteration"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = objective

	pts := make(plotter.XYs, 0, len(recs)+1)
	pts = append(pts, plotter.XY{X: 0, Y: initial})
	for _, r := range recs {
		pts = append(pts, plotter.XY{X: float64(r.Iteration + 1), Y: r.Post})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	line.Color = classColors[0]
	p.Add(line)
	return p, nil
}

// SavePlot writes p to path; the extension selects the format.
func SavePlot(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
