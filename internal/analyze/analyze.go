package analyze

import (
	"math"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// Algorithm identifies a processing strategy.
type Algorithm string

const (
	// AlgorithmAuto lets the selector choose.
	AlgorithmAuto Algorithm = "auto"

	// AlgorithmShapes is tuned for flat-color graphics (logos, icons).
	AlgorithmShapes Algorithm = "shapes"

	// AlgorithmPhoto is tuned for photographic, continuous-tone content.
	AlgorithmPhoto Algorithm = "photo"

	// AlgorithmLineArt is tuned for drawings and sketches.
	AlgorithmLineArt Algorithm = "lineart"
)

// Valid reports whether a is a known algorithm name.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmAuto, AlgorithmShapes, AlgorithmPhoto, AlgorithmLineArt:
		return true
	}
	return false
}

// Characteristics is the analysis snapshot classification decisions are
// based on.
type Characteristics struct {
	// UniqueColors counts distinct colors after 8-bit channel bucketing.
	UniqueColors int `json:"unique_colors"`

	// MonochromaticRatio is the fraction of pixels whose maximum channel
	// pair difference is below 20 (near-gray pixels).
	MonochromaticRatio float64 `json:"monochromatic_ratio"`

	// EdgeDensity is the fraction of probed pixels whose one-sided gradient
	// exceeds the low probe threshold.
	EdgeDensity float64 `json:"edge_density"`

	// SharpEdgeRatio is the fraction of edge pixels whose gradient also
	// exceeds the high probe threshold.
	SharpEdgeRatio float64 `json:"sharp_edge_ratio"`

	// ContrastLevel is (max-min)/255 over grayscale values.
	ContrastLevel float64 `json:"contrast_level"`

	// HasTransparency is true if any pixel has alpha below 255.
	HasTransparency bool `json:"has_transparency"`
}

// Probe thresholds for the selector's one-sided gradient measure. These are
// deliberately independent of the edge package's detectors: classification
// needs a cheap global statistic, not a per-pixel field.
const (
	probeLowThreshold  = 10.0
	probeHighThreshold = 50.0
)

// monochromeDiff is the channel-pair difference below which a pixel counts
// as near-gray.
const monochromeDiff = 20

// Analyze computes the characteristics snapshot for an image.
//
// All measures are single-pass and deterministic. Edge density uses a
// one-sided gradient probe: for each non-border pixel, the larger of the
// luminance differences to its east and south neighbors, compared against
// the 10/50 probe thresholds.
func Analyze(img *raster.Image) Characteristics {
	var ch Characteristics
	if img == nil || img.Width == 0 || img.Height == 0 {
		return ch
	}

	w, h := img.Width, img.Height
	colors := make(map[uint32]struct{})
	monochrome := 0

	minGray, maxGray := math.Inf(1), math.Inf(-1)
	edgePixels, sharpPixels, probed := 0, 0, 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(x, y)

			colors[uint32(r)<<16|uint32(g)<<8|uint32(b)] = struct{}{}

			if a < 255 {
				ch.HasTransparency = true
			}

			if maxPairDiff(r, g, b) < monochromeDiff {
				monochrome++
			}

			gray := img.Luminance(x, y)
			if gray < minGray {
				minGray = gray
			}
			if gray > maxGray {
				maxGray = gray
			}

			// One-sided gradient probe toward east and south.
			if x < w-1 || y < h-1 {
				grad := 0.0
				if x < w-1 {
					grad = math.Abs(img.Luminance(x+1, y) - gray)
				}
				if y < h-1 {
					if d := math.Abs(img.Luminance(x, y+1) - gray); d > grad {
						grad = d
					}
				}
				probed++
				if grad > probeLowThreshold {
					edgePixels++
					if grad > probeHighThreshold {
						sharpPixels++
					}
				}
			}
		}
	}

	ch.UniqueColors = len(colors)
	ch.MonochromaticRatio = float64(monochrome) / float64(w*h)
	if probed > 0 {
		ch.EdgeDensity = float64(edgePixels) / float64(probed)
	}
	if edgePixels > 0 {
		ch.SharpEdgeRatio = float64(sharpPixels) / float64(edgePixels)
	}
	ch.ContrastLevel = (maxGray - minGray) / 255.0
	return ch
}

// maxPairDiff returns the largest absolute difference among the three
// channel pairs.
func maxPairDiff(r, g, b uint8) int {
	d1 := absInt(int(r) - int(g))
	d2 := absInt(int(g) - int(b))
	d3 := absInt(int(r) - int(b))
	if d2 > d1 {
		d1 = d2
	}
	if d3 > d1 {
		d1 = d3
	}
	return d1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Select classifies the characteristics into an algorithm.
//
// Decision order is line art, then shapes, then photo (photo is the
// fallback for anything continuous-tone):
//
//   - lineart: uniqueColors <= 32, edge density strictly between 0.05 and
//     0.6, contrast > 0.3, monochromatic ratio > 0.6
//   - shapes: uniqueColors <= 16, sharp edge ratio > 0.7, contrast > 0.6,
//     monochromatic ratio < 0.8
//   - photo: everything else
func Select(ch Characteristics) Algorithm {
	if ch.UniqueColors <= 32 &&
		ch.EdgeDensity > 0.05 && ch.EdgeDensity < 0.6 &&
		ch.ContrastLevel > 0.3 &&
		ch.MonochromaticRatio > 0.6 {
		return AlgorithmLineArt
	}
	if ch.UniqueColors <= 16 &&
		ch.SharpEdgeRatio > 0.7 &&
		ch.ContrastLevel > 0.6 &&
		ch.MonochromaticRatio < 0.8 {
		return AlgorithmShapes
	}
	return AlgorithmPhoto
}
