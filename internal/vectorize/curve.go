package vectorize

import "github.com/ironsheep/vectorize-mcp/internal/geom"

// SegmentKind discriminates the curve segment variants FitWindows emits.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentQuadratic
	SegmentCubic
)

// Segment is one fitted drawing step. The start point is implicit (the end
// of the previous segment); Ctrl1/Ctrl2 are populated per Kind.
type Segment struct {
	Kind  SegmentKind
	Ctrl1 geom.Point // quadratic control, or first cubic control
	Ctrl2 geom.Point // second cubic control (cubic only)
	End   geom.Point
}

// FitWindows converts a simplified point sequence into curve segments by
// sliding fixed-size windows.
//
// Windows are consumed greedily from the front:
//
//   - 4 remaining points fit a cubic Bezier whose control points sit at 1/3
//     and 2/3 along the chord, pulled toward the interior points. This is a
//     closed-form approximation, not a least-squares fit.
//   - 3 remaining points fit a quadratic Bezier with control
//     2*mid - 0.5*(start+end), which makes the curve pass through mid at
//     t=0.5.
//   - 2 remaining points emit a line.
//
// The first point is the implicit start and is never re-emitted; every
// window ends exactly on an input point, so fitting preserves the
// sequence's endpoints.
func FitWindows(points []geom.Point) []Segment {
	var segs []Segment

	i := 0
	for i < len(points)-1 {
		remaining := len(points) - i

		switch {
		case remaining >= 4:
			p0, p1, p2, p3 := points[i], points[i+1], points[i+2], points[i+3]
			c1 := p0.Add(p3.Sub(p0).Mul(1.0 / 3.0)).Add(p1.Sub(p0.Add(p3.Sub(p0).Mul(1.0 / 3.0))).Mul(0.5))
			c2 := p0.Add(p3.Sub(p0).Mul(2.0 / 3.0)).Add(p2.Sub(p0.Add(p3.Sub(p0).Mul(2.0 / 3.0))).Mul(0.5))
			segs = append(segs, Segment{Kind: SegmentCubic, Ctrl1: c1, Ctrl2: c2, End: p3})
			i += 3
		case remaining == 3:
			p0, p1, p2 := points[i], points[i+1], points[i+2]
			ctrl := p1.Mul(2).Sub(p0.Add(p2).Mul(0.5))
			segs = append(segs, Segment{Kind: SegmentQuadratic, Ctrl1: ctrl, End: p2})
			i += 2
		default:
			segs = append(segs, Segment{Kind: SegmentLine, End: points[i+1]})
			i++
		}
	}
	return segs
}
