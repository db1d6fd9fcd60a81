package strategy

import (
	"context"
	"math"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ironsheep/vectorize-mcp/internal/analyze"
	"github.com/ironsheep/vectorize-mcp/internal/config"
	"github.com/ironsheep/vectorize-mcp/internal/edge"
	"github.com/ironsheep/vectorize-mcp/internal/quantize"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

// LineArt variant tuning.
const (
	// lineArtPaletteCap limits drawings to 32 colors; line work rarely
	// uses more.
	lineArtPaletteCap = 32

	// lineArtEdgeThreshold is the Sobel cutoff after the contrast
	// pre-pass.
	lineArtEdgeThreshold = 0.2

	// lineArtBlurRadius is the light Gaussian blur applied before edge
	// detection to suppress scanner noise without widening strokes.
	lineArtBlurRadius = 1.0

	// lineArtTolerance balances stroke fidelity against path size.
	lineArtTolerance = 1.5

	// lineArtMinContour drops contours under 6 points.
	lineArtMinContour = 6

	// continuityBoost scales the 8-neighbor continuity magnitude boost.
	continuityBoost = 0.3

	// Sigmoid contrast curve parameters: midpoint on the normalized
	// channel scale and steepness. A steep curve pushes near-white paper
	// to white and near-black ink to black.
	sigmoidMidpoint = 0.5
	sigmoidSlope    = 10.0
)

// LineArt is the variant tuned for drawings, sketches, and technical line
// work.
type LineArt struct{}

// Algorithm returns the lineart tag.
func (LineArt) Algorithm() analyze.Algorithm { return analyze.AlgorithmLineArt }

// Process runs the line-art pipeline.
//
// # Algorithm
//
//  1. Median-cut palette, capped at 32 colors
//  2. Edge pre-pass on a working copy: sigmoid contrast stretch, then a
//     radius-1 Gaussian blur
//  3. Sobel edge detection on the pre-passed copy, threshold 0.2
//  4. Continuity boost: each magnitude scales by 1 + 0.3*(nonzero
//     8-neighbors / 8), bridging small stroke gaps
//  5. Region tracing with tolerance 1.5, curve fitting on, contours under
//     6 points dropped
//  6. Edge overlay: continuity-boosted magnitudes at or above the map mean
//     are followed into open stroke paths layered over the fills
//
// The pre-pass feeds edge detection only; quantization and tracing see the
// original pixels so fills keep their true colors.
func (LineArt) Process(ctx context.Context, img *raster.Image, cfg config.Vectorization) Result {
	k := min(cfg.ColorCount, lineArtPaletteCap)
	pal := quantize.MedianCut(img, k)
	mapped := quantize.Map(img, pal)
	notify(ctx, StageQuantize)

	prepped := contrastStretch(img)
	prepped = raster.FromImage(blur.Gaussian(prepped.ToImage(), lineArtBlurRadius))

	edges := edge.Sobel(prepped, lineArtEdgeThreshold)
	boostContinuity(edges)
	notify(ctx, StageEdges)

	opts := vectorize.Options{
		Tolerance: effectiveTolerance(lineArtTolerance, cfg),
		FitCurves: true,
		Precision: cfg.Precision,
	}
	paths := regionPaths(ctx, mapped, pal, cfg, lineArtMinContour, opts, nil)
	paths = append(paths, strokePaths(ctx, edges, pal, lineArtMinContour, opts)...)
	notify(ctx, StageVectorize)

	return Result{Palette: pal, Quantized: mapped, Edges: edges, Paths: paths}
}

// contrastStretch applies a sigmoid contrast curve to every channel,
// leaving alpha untouched.
func contrastStretch(img *raster.Image) *raster.Image {
	// The curve only depends on the channel value, so precompute all 256
	// outputs once.
	var lut [256]byte
	for v := 0; v < 256; v++ {
		n := float64(v) / 255.0
		s := 1.0 / (1.0 + math.Exp(-sigmoidSlope*(n-sigmoidMidpoint)))
		lut[v] = byte(math.Round(s * 255.0))
	}

	out := img.Clone()
	for i := 0; i < len(out.Pixels); i += 4 {
		out.Pixels[i] = lut[out.Pixels[i]]
		out.Pixels[i+1] = lut[out.Pixels[i+1]]
		out.Pixels[i+2] = lut[out.Pixels[i+2]]
	}
	return out
}

// boostContinuity scales each nonzero magnitude by the fraction of its
// 8-neighbors that are also edges. Isolated responses stay put; pixels
// inside a stroke chain get up to a 1.3x boost, which helps hysteresis-free
// Sobel output survive later thresholding as connected strokes.
func boostContinuity(m *edge.Map) {
	w, h := m.Width, m.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if m.Magnitude[i] == 0 {
				continue
			}

			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					if m.Magnitude[ny*w+nx] > 0 {
						neighbors++
					}
				}
			}

			continuity := float64(neighbors) / 8.0
			m.Magnitude[i] *= 1 + continuityBoost*continuity
		}
	}
}
