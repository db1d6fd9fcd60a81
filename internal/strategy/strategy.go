// Package strategy implements the three tuned processing variants that turn
// a raster image into palette, edge map, and vector paths.
//
// Each variant runs the same pipeline shape (quantize, preprocess, detect
// edges, vectorize, post-process) with its own parameter table. Variants are
// value types behind the Processor interface; selection happens by algorithm
// tag, not by subclassing.
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

// Result carries every intermediate a variant produces, so callers can
// report progress or recover by switching algorithms without re-running
// earlier stages.
type Result struct {
	// Palette is the quantized palette, ordered by descending weight.
	Palette quantize.Palette

	// Quantized is the palette-mapped image (dithered for the photo
	// variant).
	Quantized *raster.Image

	// Edges is the tuned edge map.
	Edges *edge.Map

	// Paths are the final vector paths in paint order: region fills by
	// descending palette weight, then the edge stroke overlay.
	Paths []vectorize.Path
}

// Processor is one tuned processing variant.
//
// Process never fails: a run that finds nothing returns an empty-but-valid
// Result, and a cancelled context yields the partial result built so far.
// Input validation is the caller's responsibility.
type Processor interface {
	// Algorithm returns the variant's tag.
	Algorithm() analyze.Algorithm

	// Process runs the full variant pipeline on the image.
	Process(ctx context.Context, img *raster.Image, cfg config.Vectorization) Result
}

// ForAlgorithm returns the processor for a resolved algorithm tag.
// AlgorithmAuto must be resolved by the caller first; unknown tags fall back
// to the photo variant, which handles any content.
func ForAlgorithm(a analyze.Algorithm) Processor {
	switch a {
	case analyze.AlgorithmShapes:
		return Shape{}
	case analyze.AlgorithmLineArt:
		return LineArt{}
	default:
		return Photo{}
	}
}

// effectiveTolerance combines a variant's base simplification tolerance with
// the request's scale factors.
func effectiveTolerance(base float64, cfg config.Vectorization) float64 {
	return base * cfg.PathSimplification * cfg.SmoothingLevel.ToleranceScale()
}

// regionPaths traces the boundary of every palette color's region in the
// mapped image and emits one path per surviving contour.
//
// Colors are visited in palette order (descending weight), which makes the
// largest region paint first and keeps the output deterministic. Contours
// with fewer than minContour points are dropped. The optional post hook runs
// on each contour before path emission. Cancellation stops between colors
// and returns the paths built so far.
func regionPaths(ctx context.Context, mapped *raster.Image, pal quantize.Palette, cfg config.Vectorization,
	minContour int, opts vectorize.Options, post func(geom.Contour) geom.Contour) []vectorize.Path {

	w, h := mapped.Width, mapped.Height
	var paths []vectorize.Path

	for _, e := range pal.Colors {
		if ctx.Err() != nil {
			break
		}

		mask := vectorize.MaskForColor(mapped.Pixels, w, h, e.R, e.G, e.B, false)
		for _, c := range vectorize.TraceMask(mask, w, h) {
			if c.Length() < minContour {
				continue
			}
			if post != nil {
				c = post(c)
			}

			p := vectorize.FromContour(c, e.Hex(), opts)
			if p.Data == "" {
				continue
			}
			if cfg.PreserveTransparency && e.A < 255 {
				p.FillOpacity = float64(e.A) / 255.0
			}
			paths = append(paths, p)
		}
	}
	return paths
}

// edgeStrokeWidth is the stroke width of the edge overlay paths.
const edgeStrokeWidth = 1.0

// strokePaths converts the boosted edge map into open stroke paths layered
// over the region fills.
//
// Only pixels at or above the mean nonzero magnitude are followed, so a
// variant's boost decides which edge detail survives: boosted pixels rise
// relative to the mean and pull unboosted ones below it. Contours shorter
// than minContour are dropped. Strokes take the darkest palette color so
// the overlay reads as linework against the fills.
func strokePaths(ctx context.Context, m *edge.Map, pal quantize.Palette, minContour int, opts vectorize.Options) []vectorize.Path {
	if ctx.Err() != nil || m == nil {
		return nil
	}

	var sum float64
	n := 0
	for _, v := range m.Magnitude {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	cutoff := sum / float64(n)

	pruned := &edge.Map{
		Width:     m.Width,
		Height:    m.Height,
		Magnitude: make([]float64, len(m.Magnitude)),
		Direction: m.Direction,
		Algorithm: m.Algorithm,
		Params:    m.Params,
	}
	for i, v := range m.Magnitude {
		if v >= cutoff {
			pruned.Magnitude[i] = v
		}
	}

	stroke := darkestHex(pal)
	var paths []vectorize.Path
	for _, c := range edge.FollowContours(pruned, minContour) {
		p := vectorize.FromContour(c, "none", opts)
		if p.Data == "" {
			continue
		}
		p.Stroke = stroke
		p.StrokeWidth = edgeStrokeWidth
		paths = append(paths, p)
	}
	return paths
}

// darkestHex returns the hex color of the lowest-luminance palette entry,
// or black for an empty palette.
func darkestHex(pal quantize.Palette) string {
	best := ""
	bestLuma := math.Inf(1)
	for _, e := range pal.Colors {
		l := 0.3*float64(e.R) + 0.59*float64(e.G) + 0.11*float64(e.B)
		if l < bestLuma {
			bestLuma = l
			best = e.Hex()
		}
	}
	if best == "" {
		return "#000000"
	}
	return best
}
