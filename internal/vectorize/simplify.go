package vectorize

import "github.com/ironsheep/vectorize-mcp/internal/geom"

// DistanceFunc measures how far a point strays from the segment (a, b).
// Douglas-Peucker is parameterized on this so callers can swap metrics.
type DistanceFunc func(p, a, b geom.Point) float64

// PerpendicularDistance returns the perpendicular distance from p to the
// line through a and b. For a degenerate line (a == b) it falls back to the
// Euclidean distance from p to a.
func PerpendicularDistance(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	length := ab.Length()
	if length == 0 {
		return p.Distance(a)
	}
	// |cross| / |ab| is the height of the triangle (a, b, p) over base ab.
	return abs(ab.Cross(p.Sub(a))) / length
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Simplify reduces a point sequence with the Douglas-Peucker algorithm
// using the perpendicular distance metric.
//
// The first and last points are always preserved. Inputs with two points or
// fewer are returned unchanged (a copy is not made). Output size is
// non-increasing as tolerance increases, and tolerance 0 removes only
// exactly-collinear points.
func Simplify(points []geom.Point, tolerance float64) []geom.Point {
	return SimplifyWith(points, tolerance, PerpendicularDistance)
}

// SimplifyWith is Simplify with a caller-supplied distance metric.
func SimplifyWith(points []geom.Point, tolerance float64, dist DistanceFunc) []geom.Point {
	if len(points) <= 2 {
		return points
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	simplifyRange(points, 0, len(points)-1, tolerance, dist, keep)

	out := make([]geom.Point, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// simplifyRange marks the points to keep between endpoints lo and hi.
// Recursive max-perpendicular-distance splitting: if the farthest point in
// the open interval exceeds tolerance, keep it and recurse on both halves.
func simplifyRange(points []geom.Point, lo, hi int, tolerance float64, dist DistanceFunc, keep []bool) {
	if hi-lo < 2 {
		return
	}

	maxDist := 0.0
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		if d := dist(points[i], points[lo], points[hi]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxIdx < 0 || maxDist <= tolerance {
		return
	}

	keep[maxIdx] = true
	simplifyRange(points, lo, maxIdx, tolerance, dist, keep)
	simplifyRange(points, maxIdx, hi, tolerance, dist, keep)
}

// SimplifyContour applies Simplify to a contour, preserving its closed flag.
func SimplifyContour(c geom.Contour, tolerance float64) geom.Contour {
	return geom.Contour{
		Points: Simplify(c.Points, tolerance),
		Closed: c.Closed,
	}
}
