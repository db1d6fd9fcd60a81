package strategy

import (
	"context"

	"github.com/ironsheep/vectorize-mcp/internal/analyze"
	"github.com/ironsheep/vectorize-mcp/internal/config"
	"github.com/ironsheep/vectorize-mcp/internal/edge"
	"github.com/ironsheep/vectorize-mcp/internal/quantize"
	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

// Photo variant tuning.
const (
	// photoKMeansIters bounds Lloyd's algorithm; clusters stabilize well
	// before this on photographic content.
	photoKMeansIters = 10

	// photoCannyLow and photoCannyHigh are the hysteresis thresholds.
	// Photographs need a sensitive detector; weak edges chain off strong
	// seeds.
	photoCannyLow  = 0.1
	photoCannyHigh = 0.2

	// photoBlurKernel is the Gaussian kernel size inside Canny.
	photoBlurKernel = 3

	// photoTolerance keeps simplification gentle so soft boundaries
	// survive.
	photoTolerance = 0.5

	// photoMinContour keeps almost everything; photographs are detail.
	photoMinContour = 3

	// photoContrastBoost scales the local-contrast magnitude boost.
	photoContrastBoost = 0.5
)

// Photo is the variant tuned for continuous-tone content: photographs and
// soft gradients.
type Photo struct{}

// Algorithm returns the photo tag.
func (Photo) Algorithm() analyze.Algorithm { return analyze.AlgorithmPhoto }

// Process runs the photo pipeline.
//
// # Algorithm
//
//  1. K-means palette at the full requested color count, plus a
//     Floyd-Steinberg dithered rendition for the quantized intermediate
//  2. Canny edge detection (low 0.1, high 0.2, blur kernel 3)
//  3. Local contrast boost: each magnitude scales by 1 + 0.5*contrast of
//     its 3x3 luminance window
//  4. Region tracing over the luma-matched image with tolerance 0.5,
//     curve fitting on, contours under 3 points dropped
//  5. Edge overlay: contrast-boosted magnitudes at or above the map mean
//     are followed into open stroke paths layered over the fills
//
// Palette matching uses luma channel weights (.3/.59/.11) in both the
// dither pass and the traced regions: perceived-brightness mismatches are
// what the eye notices in photographs. The dithered image is reported as
// the quantized intermediate but is not traced, since error diffusion
// deliberately speckles flat runs and would shred region boundaries.
func (Photo) Process(ctx context.Context, img *raster.Image, cfg config.Vectorization) Result {
	pal := quantize.KMeans(ctx, img, cfg.ColorCount, photoKMeansIters)
	dithered := quantize.DitherFloydSteinbergLuma(img, pal)
	regions := quantize.MapLuma(img, pal)
	notify(ctx, StageQuantize)

	edges := edge.Canny(ctx, img, photoCannyLow, photoCannyHigh, photoBlurKernel)
	boostLocalContrast(edges, img)
	notify(ctx, StageEdges)

	opts := vectorize.Options{
		Tolerance: effectiveTolerance(photoTolerance, cfg),
		FitCurves: true,
		Precision: cfg.Precision,
	}
	paths := regionPaths(ctx, regions, pal, cfg, photoMinContour, opts, nil)
	paths = append(paths, strokePaths(ctx, edges, pal, photoMinContour, opts)...)
	notify(ctx, StageVectorize)

	return Result{Palette: pal, Quantized: dithered, Edges: edges, Paths: paths}
}

// boostLocalContrast scales each nonzero edge magnitude by
// 1 + photoContrastBoost * contrast, where contrast is the max-min spread
// of normalized luminance over the pixel's 3x3 window.
func boostLocalContrast(m *edge.Map, img *raster.Image) {
	w, h := m.Width, m.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if m.Magnitude[i] == 0 {
				continue
			}

			lo, hi := 1.0, 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					l := img.Luminance(nx, ny) / 255.0
					if l < lo {
						lo = l
					}
					if l > hi {
						hi = l
					}
				}
			}

			contrast := hi - lo
			if contrast < 0 {
				contrast = 0
			}
			m.Magnitude[i] *= 1 + photoContrastBoost*contrast
		}
	}
}
