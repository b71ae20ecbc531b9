// Package field generates the textured vector-field background images:
// base vectors from layered simplex noise on a coarse lattice, blended per
// pixel with softmax weights, then rendered through their curl and divergence.
package field

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// ErrInvalidConfig indicates field dimensions or parameters out of range.
var ErrInvalidConfig = errors.New("field: invalid configuration")

// Config holds vector field generation parameters.
type Config struct {
	Rows        int     // Image height in pixels
	Cols        int     // Image width in pixels
	Seed        int64   // Noise seed
	Spacing     int     // Pixels between base vectors
	Normalizer  float64 // Softmax temperature in squared pixels
	Octaves     int     // Noise layers for base vectors
	Frequency   float64 // Base noise frequency per lattice step
	Persistence float64 // Amplitude falloff per octave
}

// DefaultConfig returns a 1920×1080 background.
func DefaultConfig() Config {
	return Config{
		Rows:        1080,
		Cols:        1920,
		Seed:        0,
		Spacing:     60,
		Normalizer:  320,
		Octaves:     4,
		Frequency:   0.15,
		Persistence: 0.5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Rows < 2 || c.Cols < 2 || c.Spacing <= 0 || c.Octaves <= 0 {
		return fmt.Errorf("rows=%d cols=%d spacing=%d octaves=%d: %w",
			c.Rows, c.Cols, c.Spacing, c.Octaves, ErrInvalidConfig)
	}
	if !(c.Normalizer > 0) || math.IsInf(c.Normalizer, 0) {
		return fmt.Errorf("normalizer %v: %w", c.Normalizer, ErrInvalidConfig)
	}
	return nil
}

// Field is a dense 2D vector field stored row-major.
type Field struct {
	Rows, Cols int
	VX, VY     []float64
}

// NewField allocates a zero field.
func NewField(rows, cols int) *Field {
	return &Field{
		Rows: rows,
		Cols: cols,
		VX:   make([]float64, rows*cols),
		VY:   make([]float64, rows*cols),
	}
}

// At returns the vector at row r, column c.
func (f *Field) At(r, c int) (float64, float64) {
	i := r*f.Cols + c
	return f.VX[i], f.VY[i]
}

// Set stores the vector at row r, column c.
func (f *Field) Set(r, c int, vx, vy float64) {
	i := r*f.Cols + c
	f.VX[i] = vx
	f.VY[i] = vy
}

// Generate builds the field for cfg.
func Generate(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := baseVectors(cfg)
	f := NewField(cfg.Rows, cfg.Cols)

	latRows := len(base)
	latCols := len(base[0])
	sp := float64(cfg.Spacing)

	for r := 0; r < cfg.Rows; r++ {
		lr := r / cfg.Spacing
		for c := 0; c < cfg.Cols; c++ {
			lc := c / cfg.Spacing

			// Softmax over -d²/normalizer for the 4×4 lattice window.
			var logits [16]float64
			var vecs [16][2]float64
			n := 0
			maxLogit := math.Inf(-1)
			for i := lr - 1; i <= lr+2; i++ {
				if i < 0 || i >= latRows {
					continue
				}
				for j := lc - 1; j <= lc+2; j++ {
					if j < 0 || j >= latCols {
						continue
					}
					dy := float64(r) - float64(i)*sp
					dx := float64(c) - float64(j)*sp
					logits[n] = -(dx*dx + dy*dy) / cfg.Normalizer
					vecs[n] = base[i][j]
					maxLogit = math.Max(maxLogit, logits[n])
					n++
				}
			}

			var sum, vx, vy float64
			for k := 0; k < n; k++ {
				w := math.Exp(logits[k] - maxLogit)
				sum += w
				vx += w * vecs[k][0]
				vy += w * vecs[k][1]
			}
			f.Set(r, c, vx/sum, vy/sum)
		}
	}

	slog.Debug("vector field generated",
		"rows", cfg.Rows,
		"cols", cfg.Cols,
		"lattice", fmt.Sprintf("%dx%d", latRows, latCols),
	)
	return f, nil
}

// baseVectors samples an angle and a magnitude per lattice point from two
// independent noise layers.
func baseVectors(cfg Config) [][][2]float64 {
	angleNoise := opensimplex.NewNormalized(cfg.Seed)
	magNoise := opensimplex.NewNormalized(cfg.Seed + 1)

	latRows := (cfg.Rows-1)/cfg.Spacing + 2
	latCols := (cfg.Cols-1)/cfg.Spacing + 2

	base := make([][][2]float64, latRows)
	for i := range base {
		base[i] = make([][2]float64, latCols)
		for j := range base[i] {
			x, y := float64(j), float64(i)
			theta := 2 * math.Pi * octaveNoise(angleNoise, x, y, cfg.Octaves, cfg.Frequency, cfg.Persistence)
			mag := octaveNoise(magNoise, x, y, cfg.Octaves, cfg.Frequency, cfg.Persistence)
			base[i][j] = [2]float64{mag * math.Cos(theta), mag * math.Sin(theta)}
		}
	}
	return base
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// Curl returns ∂vy/∂x − ∂vx/∂y per pixel.
func (f *Field) Curl() []float64 {
	out := make([]float64, f.Rows*f.Cols)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			out[r*f.Cols+c] = f.ddx(f.VY, r, c) - f.ddy(f.VX, r, c)
		}
	}
	return out
}

// Divergence returns ∂vx/∂x + ∂vy/∂y per pixel.
func (f *Field) Divergence() []float64 {
	out := make([]float64, f.Rows*f.Cols)
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			out[r*f.Cols+c] = f.ddx(f.VX, r, c) + f.ddy(f.VY, r, c)
		}
	}
	return out
}

// ddx is a central difference along columns, one-sided at the edges.
func (f *Field) ddx(v []float64, r, c int) float64 {
	lo, hi := max(c-1, 0), min(c+1, f.Cols-1)
	return (v[r*f.Cols+hi] - v[r*f.Cols+lo]) / float64(hi-lo)
}

// ddy is a central difference along rows, one-sided at the edges.
func (f *Field) ddy(v []float64, r, c int) float64 {
	lo, hi := max(r-1, 0), min(r+1, f.Rows-1)
	return (v[hi*f.Cols+c] - v[lo*f.Cols+c]) / float64(hi-lo)
}
