package strategy

import (
	"context"
	"math"

	"github.com/ironsheep/vectorize-mcp/internal/analyze"
	"github.com/ironsheep/vectorize-mcp/internal/config"
	"github.com/ironsheep/vectorize-mcp/internal/edge"
	"github.com/ironsheep/vectorize-mcp/internal/geom"
	"github.com/ironsheep/vectorize-mcp/internal/quantize"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

// Shape variant tuning.
const (
	// shapePaletteCap limits flat-color graphics to 16 colors regardless
	// of the requested count.
	shapePaletteCap = 16

	// shapeEdgeThreshold is the Sobel magnitude cutoff on the quantized
	// image. Flat regions give clean gradients, so the threshold sits
	// high.
	shapeEdgeThreshold = 0.3

	// shapeTolerance is the base simplification tolerance. Geometric
	// shapes survive aggressive simplification.
	shapeTolerance = 2.0

	// shapeMinContour drops contours shorter than 8 points; anything
	// smaller is quantization noise, not a shape.
	shapeMinContour = 8

	// cardinalWindow is the angular window (radians) around horizontal
	// and vertical within which edge magnitudes are boosted.
	cardinalWindow = math.Pi / 12 // 15 degrees

	// cardinalBoost is the magnitude multiplier inside the window.
	cardinalBoost = 1.2

	// rectSnapTolerance is how far (pixels) an edge may deviate from
	// axis-aligned and still collapse to an exact rectangle.
	rectSnapTolerance = 1.5
)

// Shape is the variant tuned for flat-color graphics: logos, icons, and
// diagrams with hard boundaries and few colors.
type Shape struct{}

// Algorithm returns the shapes tag.
func (Shape) Algorithm() analyze.Algorithm { return analyze.AlgorithmShapes }

// Process runs the shape pipeline.
//
// # Algorithm
//
//  1. Frequency-based palette extraction, capped at 16 colors
//  2. Sobel edge detection on the quantized image, threshold 0.3, no blur
//  3. Cardinal boost: magnitudes within 15 degrees of horizontal or
//     vertical gain 1.2x
//  4. Region tracing with tolerance 2.0, no curve fitting, contours under
//     8 points dropped
//  5. Rectangle collapse: 4-point axis-aligned contours snap to exact
//     corners
//  6. Edge overlay: boosted magnitudes at or above the map mean are
//     followed into open stroke paths layered over the fills
func (Shape) Process(ctx context.Context, img *raster.Image, cfg config.Vectorization) Result {
	k := min(cfg.ColorCount, shapePaletteCap)
	pal := quantize.ExtractPalette(img, k)
	mapped := quantize.Map(img, pal)
	notify(ctx, StageQuantize)

	edges := edge.Sobel(mapped, shapeEdgeThreshold)
	boostCardinal(edges)
	notify(ctx, StageEdges)

	tol := effectiveTolerance(shapeTolerance, cfg)
	post := func(c geom.Contour) geom.Contour {
		c = vectorize.SimplifyContour(c, tol)
		c = dropClosingPoint(c, tol)
		return collapseRectangle(c)
	}

	// Simplification already ran in the post hook, so path emission gets
	// tolerance zero.
	opts := vectorize.Options{Precision: cfg.Precision}
	paths := regionPaths(ctx, mapped, pal, cfg, shapeMinContour, opts, post)
	strokeOpts := vectorize.Options{Tolerance: tol, Precision: cfg.Precision}
	paths = append(paths, strokePaths(ctx, edges, pal, shapeMinContour, strokeOpts)...)
	notify(ctx, StageVectorize)

	return Result{Palette: pal, Quantized: mapped, Edges: edges, Paths: paths}
}

// boostCardinal multiplies edge magnitudes whose gradient direction lies
// within cardinalWindow of a cardinal axis. Flat-color graphics are
// dominated by horizontal and vertical boundaries; boosting them keeps
// anti-aliased borders above threshold.
func boostCardinal(m *edge.Map) {
	quarter := math.Pi / 2
	for i, mag := range m.Magnitude {
		if mag == 0 {
			continue
		}
		a := math.Mod(math.Abs(m.Direction[i]), quarter)
		if a < cardinalWindow || quarter-a < cardinalWindow {
			m.Magnitude[i] = mag * cardinalBoost
		}
	}
}

// dropClosingPoint removes a trailing point that sits within tolerance of
// the contour start. Boundary walks end on a pixel adjacent to where they
// began, and the implicit close segment already covers that step.
func dropClosingPoint(c geom.Contour, tol float64) geom.Contour {
	n := len(c.Points)
	if !c.Closed || n < 4 {
		return c
	}
	if c.Points[n-1].Distance(c.Points[0]) <= tol {
		c.Points = c.Points[:n-1]
	}
	return c
}

// collapseRectangle snaps a closed 4-point near-axis-aligned contour to the
// exact corners of its bounding box. Contours that are not rectangular come
// back unchanged.
func collapseRectangle(c geom.Contour) geom.Contour {
	if !c.Closed || len(c.Points) != 4 {
		return c
	}

	// Every edge must be near-horizontal or near-vertical.
	for i := 0; i < 4; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%4]
		if math.Abs(p.X-q.X) > rectSnapTolerance && math.Abs(p.Y-q.Y) > rectSnapTolerance {
			return c
		}
	}

	b := c.Bounds()
	snapped := make([]geom.Point, 4)
	seen := make(map[[2]bool]bool, 4)
	for i, p := range c.Points {
		left := math.Abs(p.X-b.MinX) <= math.Abs(p.X-b.MaxX)
		top := math.Abs(p.Y-b.MinY) <= math.Abs(p.Y-b.MaxY)

		x, y := b.MaxX, b.MaxY
		if left {
			x = b.MinX
		}
		if top {
			y = b.MinY
		}
		snapped[i] = geom.Pt(x, y)
		seen[[2]bool{left, top}] = true
	}

	// All four corners must be distinct or the contour was a sliver, not
	// a rectangle.
	if len(seen) != 4 {
		return c
	}
	return geom.Contour{Points: snapped, Closed: true}
}
