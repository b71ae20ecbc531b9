package board

import (
	"fmt"
	"math"
)

// DistanceTolerance is the absolute slack allowed when matching a center
// distance against the neighbor distance.
const DistanceTolerance = 1e-3

// Adjacency maps each polygon index to the indices of its neighbors.
// It is symmetric by construction and read-only once built.
type Adjacency struct {
	neighbors [][]int
}

// BuildAdjacency marks every unordered pair of polygons whose center
// distance equals distance within DistanceTolerance. Every index gets an
// entry, including isolated polygons.
func BuildAdjacency(xs, ys []float64, distance float64) (*Adjacency, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%d x values, %d y values: %w", len(xs), len(ys), ErrMismatchedCoordinates)
	}

	n := len(xs)
	a := &Adjacency{neighbors: make([][]int, n)}
	for i := range a.neighbors {
		a.neighbors[i] = []int{}
	}

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Hypot(xs[i]-xs[j], ys[i]-ys[j])
			if math.Abs(d-distance) <= DistanceTolerance {
				a.neighbors[i] = append(a.neighbors[i], j)
				a.neighbors[j] = append(a.neighbors[j], i)
			}
		}
	}
	return a, nil
}

// AdjacencyFor builds the adjacency of a layout at NeighborDistance.
func AdjacencyFor(l *Layout) *Adjacency {
	xs, ys := l.Coordinates()
	a, _ := BuildAdjacency(xs, ys, NeighborDistance)
	return a
}

// Len returns the number of polygons covered.
func (a *Adjacency) Len() int {
	return len(a.neighbors)
}

// Neighbors returns a copy of polygon i's neighbor indices.
func (a *Adjacency) Neighbors(i int) []int {
	return append([]int(nil), a.neighbors[i]...)
}

// Degree returns the number of neighbors of polygon i.
func (a *Adjacency) Degree(i int) int {
	return len(a.neighbors[i])
}

// VisitEdges calls fn for every directed edge i→j. Each unordered pair is
// visited twice, once per direction.
func (a *Adjacency) VisitEdges(fn func(i, j int)) {
	for i, ns := range a.neighbors {
		for _, j := range ns {
			fn(i, j)
		}
	}
}

// Symmetric reports whether every neighbor relation holds in both directions.
func (a *Adjacency) Symmetric() bool {
	for i, ns := range a.neighbors {
		for _, j := range ns {
			if !contains(a.neighbors[j], i) {
				return false
			}
		}
	}
	return true
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
