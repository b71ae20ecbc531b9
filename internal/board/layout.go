package board

import (
	"fmt"
	"math"
)

// NeighborDistance is the center-to-center distance of adjacent
// pointy-top hexagons with unit circumradius (√3).
const NeighborDistance = 1.7320508075688772935

// RowSpacing is the vertical distance between rows of pointy-top hexagons.
const RowSpacing = 1.5

// Point is a polygon center in layout units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout is the ordered, immutable sequence of polygon centers of a board.
type Layout struct {
	rows    []int
	centers []Point
}

// NewLayout places rows of hexagons: row r sits at y = 1.5·r and column c
// at x = √3·(c − rowCount/2), so consecutive rows differing by one tile
// interlock.
func NewLayout(rows []int) (*Layout, error) {
	if err := validateRows(rows); err != nil {
		return nil, err
	}

	l := &Layout{rows: append([]int(nil), rows...)}
	for r, count := range rows {
		y := RowSpacing * float64(r)
		for c := 0; c < count; c++ {
			x := NeighborDistance * (float64(c) - float64(count)/2)
			l.centers = append(l.centers, Point{X: x, Y: y})
		}
	}
	return l, nil
}

// NewLayoutFromPoints wraps explicit polygon centers.
func NewLayoutFromPoints(xs, ys []float64) (*Layout, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%d x values, %d y values: %w", len(xs), len(ys), ErrMismatchedCoordinates)
	}
	l := &Layout{centers: make([]Point, len(xs))}
	for i := range xs {
		l.centers[i] = Point{X: xs[i], Y: ys[i]}
	}
	return l, nil
}

// HexagonRows returns the row counts of a hexagon-shaped board with
// perSide tiles along each edge: perSide … 2·perSide−1 … perSide.
func HexagonRows(perSide int) []int {
	if perSide <= 0 {
		return nil
	}
	var rows []int
	for i := 0; i < perSide; i++ {
		rows = append(rows, perSide+i)
	}
	for i := 0; i < perSide-1; i++ {
		rows = append(rows, 2*perSide-i-2)
	}
	return rows
}

func validateRows(rows []int) error {
	if len(rows) == 0 {
		return ErrInvalidRows
	}
	for _, r := range rows {
		if r <= 0 {
			return fmt.Errorf("row count %d: %w", r, ErrInvalidRows)
		}
	}
	return nil
}

// Len returns the number of polygons.
func (l *Layout) Len() int {
	return len(l.centers)
}

// Rows returns a copy of the tiles per row, or nil for point layouts.
func (l *Layout) Rows() []int {
	return append([]int(nil), l.rows...)
}

// Center returns the center of polygon i.
func (l *Layout) Center(i int) Point {
	return l.centers[i]
}

// Centers returns a copy of all polygon centers.
func (l *Layout) Centers() []Point {
	return append([]Point(nil), l.centers...)
}

// Coordinates returns the x and y values of all centers.
func (l *Layout) Coordinates() (xs, ys []float64) {
	xs = make([]float64, len(l.centers))
	ys = make([]float64, len(l.centers))
	for i, p := range l.centers {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// Bounds returns the smallest box containing every center.
func (l *Layout) Bounds() (min, max Point) {
	if len(l.centers) == 0 {
		return Point{}, Point{}
	}
	min = Point{X: math.Inf(1), Y: math.Inf(1)}
	max = Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range l.centers {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// String returns a summary of the layout.
func (l *Layout) String() string {
	return fmt.Sprintf("Layout(rows=%d, polygons=%d)", len(l.rows), l.Len())
}
