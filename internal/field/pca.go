package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Clip selects which side of a projection survives.
type Clip uint8

const (
	Unclipped    Clip = iota // Keep both signs
	KeepPositive            // Negative values become 0
	KeepNegative            // Positive values become 0
)

// ClipName returns a file-name friendly name for c.
func ClipName(c Clip) string {
	switch c {
	case Unclipped:
		return "unclipped"
	case KeepPositive:
		return "positive"
	case KeepNegative:
		return "negative"
	default:
		return "unknown"
	}
}

func (c Clip) String() string { return ClipName(c) }

// PrincipalProjection treats each pixel as a sample of the given equally
// sized features and returns the centered samples projected onto the first
// principal component.
func PrincipalProjection(features ...[]float64) ([]float64, error) {
	if len(features) == 0 || len(features[0]) < 2 {
		return nil, fmt.Errorf("pca: need at least one feature of two samples: %w", ErrInvalidConfig)
	}
	n := len(features[0])
	d := len(features)

	data := mat.NewDense(n, d, nil)
	means := make([]float64, d)
	for j, f := range features {
		if len(f) != n {
			return nil, fmt.Errorf("pca: feature %d has %d samples, want %d: %w", j, len(f), n, ErrInvalidConfig)
		}
		means[j] = stat.Mean(f, nil)
		for i, v := range f {
			data.Set(i, j, v)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, fmt.Errorf("pca: decomposition failed")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	out := make([]float64, n)
	for i := range out {
		var s float64
		for j := 0; j < d; j++ {
			s += (data.At(i, j) - means[j]) * vecs.At(j, 0)
		}
		out[i] = s
	}
	return out, nil
}

// PCA projects the field's curl and divergence onto their first principal
// component.
func (f *Field) PCA() ([]float64, error) {
	return PrincipalProjection(f.Curl(), f.Divergence())
}

// Clipped returns a copy of values with the side dropped by c set to 0.
func Clipped(values []float64, c Clip) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		switch c {
		case KeepPositive:
			v = math.Max(v, 0)
		case KeepNegative:
			v = math.Min(v, 0)
		}
		out[i] = v
	}
	return out
}
