package geom

import "math"

// Point represents a 2D point or vector in pixel space.
//
// Coordinates are float64 because simplification and curve fitting produce
// sub-pixel positions even though tracing starts on integer pixel centers.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor for a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the scalar 2D cross product.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned bounding box.
//
// (MinX, MinY) is the top-left corner, (MaxX, MaxY) the bottom-right.
// An empty Rect has Max < Min on at least one axis.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// BoundsOf computes the bounding box of a point sequence.
// Returns a zero Rect for an empty slice.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r
}

// Contour is an ordered boundary-point sequence traced from an edge map.
//
// Contours are intermediate data: they exist between boundary tracing and
// path generation and are discarded once paths have been emitted.
type Contour struct {
	// Points is the ordered point sequence.
	Points []Point `json:"points"`

	// Closed reports whether the last point connects back to the first.
	Closed bool `json:"closed"`
}

// Length returns the number of points in the contour.
func (c Contour) Length() int {
	return len(c.Points)
}

// Bounds returns the bounding box of the contour's points.
func (c Contour) Bounds() Rect {
	return BoundsOf(c.Points)
}

// PerimeterLength returns the summed segment length of the contour,
// including the closing segment for closed contours.
func (c Contour) PerimeterLength() float64 {
	if len(c.Points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(c.Points); i++ {
		total += c.Points[i].Distance(c.Points[i-1])
	}
	if c.Closed {
		total += c.Points[0].Distance(c.Points[len(c.Points)-1])
	}
	return total
}
