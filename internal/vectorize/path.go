package vectorize

import (
	"strconv"
	"strings"

	"github.com/ironsheep/vectorize-mcp/internal/geom"
)

// Path is the final output unit of vectorization: an SVG path-data string
// plus styling and a complexity score.
//
// Data uses only absolute M/L/C/Q/Z commands and always starts with M.
type Path struct {
	// Data is the SVG path-data string.
	Data string `json:"path_data"`

	// Fill is the fill color as "#rrggbb", or "none" for stroke-only paths.
	Fill string `json:"fill"`

	// FillOpacity is the fill opacity in 0-1; 1 (opaque) when omitted.
	FillOpacity float64 `json:"fill_opacity,omitempty"`

	// Stroke is the optional stroke color as "#rrggbb".
	Stroke string `json:"stroke,omitempty"`

	// StrokeWidth is the stroke width in pixels when Stroke is set.
	StrokeWidth float64 `json:"stroke_width,omitempty"`

	// Complexity scores the path: command count + 0.1 * coordinate count.
	Complexity float64 `json:"complexity"`
}

// Options controls path generation from contours.
type Options struct {
	// Tolerance is the Douglas-Peucker simplification tolerance in pixels.
	Tolerance float64

	// FitCurves enables Bezier curve fitting over the simplified points.
	FitCurves bool

	// Precision is the number of decimal places for emitted coordinates.
	// Negative values emit full precision; the default 0 emits integers,
	// which matches pixel-aligned tracing.
	Precision int
}

// FromContour converts one simplified contour into a Path.
//
// The contour is simplified with Options.Tolerance, then emitted either as
// straight line segments or, when Options.FitCurves is set, as Bezier
// windows (see FitWindows). A Z command is appended iff the contour is
// closed. Returns a zero Path for contours with no points.
func FromContour(c geom.Contour, fill string, opts Options) Path {
	simplified := SimplifyContour(c, opts.Tolerance)
	if len(simplified.Points) == 0 {
		return Path{}
	}

	var b pathBuilder
	b.precision = opts.Precision

	b.moveTo(simplified.Points[0])
	if opts.FitCurves && len(simplified.Points) >= 3 {
		for _, seg := range FitWindows(simplified.Points) {
			switch seg.Kind {
			case SegmentCubic:
				b.cubicTo(seg.Ctrl1, seg.Ctrl2, seg.End)
			case SegmentQuadratic:
				b.quadTo(seg.Ctrl1, seg.End)
			default:
				b.lineTo(seg.End)
			}
		}
	} else {
		for _, p := range simplified.Points[1:] {
			b.lineTo(p)
		}
	}
	if simplified.Closed {
		b.close()
	}

	return Path{
		Data:       b.String(),
		Fill:       fill,
		Complexity: b.complexity(),
	}
}

// pathBuilder accumulates absolute path commands and emission stats.
type pathBuilder struct {
	sb        strings.Builder
	precision int
	commands  int
	coords    int
}

func (b *pathBuilder) emit(op byte, pts ...geom.Point) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteByte(op)
	for _, p := range pts {
		b.sb.WriteByte(' ')
		b.sb.WriteString(FormatCoord(p.X, b.precision))
		b.sb.WriteByte(' ')
		b.sb.WriteString(FormatCoord(p.Y, b.precision))
	}
	b.commands++
	b.coords += len(pts) * 2
}

func (b *pathBuilder) moveTo(p geom.Point)          { b.emit('M', p) }
func (b *pathBuilder) lineTo(p geom.Point)          { b.emit('L', p) }
func (b *pathBuilder) quadTo(c, p geom.Point)       { b.emit('Q', c, p) }
func (b *pathBuilder) cubicTo(c1, c2, p geom.Point) { b.emit('C', c1, c2, p) }
func (b *pathBuilder) close()                       { b.emit('Z') }
func (b *pathBuilder) String() string               { return b.sb.String() }

// complexity is the emitted command count plus 0.1 per coordinate.
func (b *pathBuilder) complexity() float64 {
	return float64(b.commands) + 0.1*float64(b.coords)
}

// FormatCoord renders a coordinate with the given decimal precision,
// trimming trailing zeros so "3.00" becomes "3". Negative precision emits
// the shortest exact representation.
func FormatCoord(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if precision > 0 && strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	// Normalize negative zero.
	if s == "-0" {
		s = "0"
	}
	return s
}
