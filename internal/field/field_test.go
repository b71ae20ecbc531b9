package field

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Rows = 24
	cfg.Cols = 36
	cfg.Spacing = 8
	cfg.Normalizer = 20
	cfg.Seed = 3
	return cfg
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(smallConfig())
	require.NoError(t, err)
	b, err := Generate(smallConfig())
	require.NoError(t, err)
	assert.Equal(t, a.VX, b.VX)
	assert.Equal(t, a.VY, b.VY)

	other := smallConfig()
	other.Seed = 4
	c, err := Generate(other)
	require.NoError(t, err)
	assert.NotEqual(t, a.VX, c.VX)
}

func TestGenerateBoundedByBaseVectors(t *testing.T) {
	cfg := smallConfig()
	f, err := Generate(cfg)
	require.NoError(t, err)
	require.Len(t, f.VX, cfg.Rows*cfg.Cols)

	// Each pixel is a convex blend of base vectors of magnitude at most one.
	for i := range f.VX {
		require.False(t, math.IsNaN(f.VX[i]) || math.IsNaN(f.VY[i]))
		assert.LessOrEqual(t, math.Hypot(f.VX[i], f.VY[i]), 1+1e-9)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"TinyRows", func(c *Config) { c.Rows = 1 }},
		{"NoSpacing", func(c *Config) { c.Spacing = 0 }},
		{"NoOctaves", func(c *Config) { c.Octaves = 0 }},
		{"ZeroNormalizer", func(c *Config) { c.Normalizer = 0 }},
		{"NaNNormalizer", func(c *Config) { c.Normalizer = math.NaN() }},
		{"InfNormalizer", func(c *Config) { c.Normalizer = math.Inf(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig()
			tc.mutate(&cfg)
			_, err := Generate(cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Generate() error = %v; want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestDerivatives(t *testing.T) {
	const rows, cols = 5, 7

	constant := NewField(rows, cols)
	linear := NewField(rows, cols)   // (x, y)
	rotation := NewField(rows, cols) // (−y, x)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			constant.Set(r, c, 0.4, -1.2)
			linear.Set(r, c, float64(c), float64(r))
			rotation.Set(r, c, -float64(r), float64(c))
		}
	}

	for i, v := range constant.Curl() {
		assert.Zero(t, v, "curl %d", i)
	}
	for i, v := range constant.Divergence() {
		assert.Zero(t, v, "divergence %d", i)
	}
	for i, v := range linear.Divergence() {
		assert.InDelta(t, 2, v, 1e-12, "divergence %d", i)
	}
	for i, v := range linear.Curl() {
		assert.InDelta(t, 0, v, 1e-12, "curl %d", i)
	}
	for i, v := range rotation.Curl() {
		assert.InDelta(t, 2, v, 1e-12, "curl %d", i)
	}

	vx, vy := rotation.At(2, 3)
	assert.Equal(t, -2.0, vx)
	assert.Equal(t, 3.0, vy)
}

func TestDiverging(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}

	img := Diverging(make([]float64, 6), 2, 3)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, white, img.RGBAAt(x, y))
		}
	}

	img = Diverging([]float64{-2, 0, 2, 1}, 1, 4)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(2, 0))
	assert.Equal(t, color.RGBA{255, 128, 128, 255}, img.RGBAAt(3, 0))
}
