package quantize

import (
	"context"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// Entry is a single palette color with an optional usage weight.
//
// Weight is the fraction of source pixels attributed to this entry (0-1).
// It is informational; mapping functions ignore it.
type Entry struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha component (0-255)

	Weight float64 `json:"weight,omitempty"` // Fraction of pixels using this color (0-1)
}

// Hex returns the entry's color as "#rrggbb" (lowercase, alpha excluded).
func (e Entry) Hex() string {
	return colorful.Color{
		R: float64(e.R) / 255.0,
		G: float64(e.G) / 255.0,
		B: float64(e.B) / 255.0,
	}.Hex()
}

// Palette is a bounded, ordered list of representative colors.
//
// Order is significant: extraction orders by descending frequency, and the
// mapping functions break distance ties by first match.
type Palette struct {
	Colors []Entry `json:"colors"`
}

// Len returns the number of palette entries.
func (p Palette) Len() int { return len(p.Colors) }

// bucket8 quantizes a component to 8-step granularity.
func bucket8(v uint8) uint8 {
	return v / 8 * 8
}

// ExtractPalette reduces an image's colors to at most maxColors entries by
// frequency.
//
// Colors are bucketed to 8-step RGB granularity, counted, sorted by
// descending frequency, and truncated. Ties are broken by packed RGBA value
// so the result is deterministic. Entries that are perceptually identical to
// an already-kept entry (Lab distance below a small epsilon) are merged into
// it rather than occupying a palette slot.
//
// Degenerate inputs degrade gracefully: a single-color image yields a
// one-entry palette, an empty image an empty palette.
func ExtractPalette(img *raster.Image, maxColors int) Palette {
	if img == nil || maxColors <= 0 {
		return Palette{}
	}

	type bucketKey uint32
	counts := make(map[bucketKey]int)
	alphas := make(map[bucketKey]uint8)

	total := 0
	for i := 0; i+3 < len(img.Pixels); i += 4 {
		r := bucket8(img.Pixels[i])
		g := bucket8(img.Pixels[i+1])
		b := bucket8(img.Pixels[i+2])
		a := img.Pixels[i+3]

		key := bucketKey(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
		counts[key]++
		// Keep the most opaque alpha seen for the bucket.
		if a > alphas[key] {
			alphas[key] = a
		}
		total++
	}
	if total == 0 {
		return Palette{}
	}

	type freq struct {
		key   bucketKey
		count int
	}
	ordered := make([]freq, 0, len(counts))
	for k, n := range counts {
		ordered = append(ordered, freq{key: k, count: n})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return ordered[i].key < ordered[j].key
	})

	const labEpsilon = 0.01

	palette := Palette{Colors: make([]Entry, 0, maxColors)}
	kept := make([]colorful.Color, 0, maxColors)
	for _, f := range ordered {
		if len(palette.Colors) >= maxColors {
			break
		}
		e := Entry{
			R:      uint8(f.key >> 16),
			G:      uint8(f.key >> 8),
			B:      uint8(f.key),
			A:      alphas[f.key],
			Weight: float64(f.count) / float64(total),
		}
		c := colorful.Color{R: float64(e.R) / 255, G: float64(e.G) / 255, B: float64(e.B) / 255}

		merged := false
		for i, k := range kept {
			if c.DistanceLab(k) < labEpsilon {
				palette.Colors[i].Weight += e.Weight
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		palette.Colors = append(palette.Colors, e)
		kept = append(kept, c)
	}
	return palette
}

// distRGB returns the squared Euclidean RGB distance between a pixel and an
// entry. Squared form is sufficient for nearest-neighbor comparison.
func distRGB(r, g, b uint8, e Entry) float64 {
	dr := float64(r) - float64(e.R)
	dg := float64(g) - float64(e.G)
	db := float64(b) - float64(e.B)
	return dr*dr + dg*dg + db*db
}

// lumaWeights are the perceptual channel weights used by luma-weighted
// palette matching.
var lumaWeights = [3]float64{0.3, 0.59, 0.11}

// distLuma returns the luma-weighted squared distance between a pixel and an
// entry.
func distLuma(r, g, b uint8, e Entry) float64 {
	dr := float64(r) - float64(e.R)
	dg := float64(g) - float64(e.G)
	db := float64(b) - float64(e.B)
	return lumaWeights[0]*dr*dr + lumaWeights[1]*dg*dg + lumaWeights[2]*db*db
}

// Nearest returns the index of the palette entry closest to (r, g, b) by
// Euclidean RGB distance. Ties resolve to the first (lowest-index) match.
// Returns -1 for an empty palette.
func (p Palette) Nearest(r, g, b uint8) int {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range p.Colors {
		if d := distRGB(r, g, b, e); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// NearestLuma is Nearest with luma-weighted (0.3, 0.59, 0.11) channel
// distances, which favors matches the eye considers closer.
func (p Palette) NearestLuma(r, g, b uint8) int {
	best := -1
	bestDist := math.Inf(1)
	for i, e := range p.Colors {
		if d := distLuma(r, g, b, e); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Map remaps every pixel to its nearest palette color (Euclidean RGB,
// first-match tie-break). The source alpha channel is preserved so that
// transparency survives quantization.
//
// Mapping is idempotent: mapping an already-mapped image with the same
// palette is a no-op. An empty palette returns an unmodified copy.
func Map(img *raster.Image, p Palette) *raster.Image {
	return mapWith(img, p, Palette.Nearest)
}

// MapLuma is Map using luma-weighted palette matching.
func MapLuma(img *raster.Image, p Palette) *raster.Image {
	return mapWith(img, p, Palette.NearestLuma)
}

func mapWith(img *raster.Image, p Palette, nearest func(Palette, uint8, uint8, uint8) int) *raster.Image {
	out := img.Clone()
	if p.Len() == 0 {
		return out
	}
	for i := 0; i+3 < len(out.Pixels); i += 4 {
		idx := nearest(p, out.Pixels[i], out.Pixels[i+1], out.Pixels[i+2])
		e := p.Colors[idx]
		out.Pixels[i] = e.R
		out.Pixels[i+1] = e.G
		out.Pixels[i+2] = e.B
	}
	return out
}

// KMeans clusters the image's colors into exactly k palette entries using
// Lloyd's algorithm.
//
// Centroids are seeded deterministically by even-stride sampling over the
// pixel buffer, so identical inputs always produce identical palettes.
// Iteration stops when every centroid moves less than one unit, after
// maxIter rounds (10 if maxIter <= 0), or when ctx is cancelled; in all
// cases the current centroids are returned, so the result is always a valid
// k-entry palette.
//
// If the image has fewer than k distinct colors, centroids duplicate so that
// the palette still has exactly k entries. Entries are ordered by descending
// weight, like every other quantizer in this package.
func KMeans(ctx context.Context, img *raster.Image, k int, maxIter int) Palette {
	if img == nil || k <= 0 {
		return Palette{}
	}
	if maxIter <= 0 {
		maxIter = 10
	}

	pixelCount := len(img.Pixels) / 4
	if pixelCount == 0 {
		// No samples to cluster; k copies of black keep the contract.
		p := Palette{Colors: make([]Entry, k)}
		for i := range p.Colors {
			p.Colors[i] = Entry{A: 255}
		}
		return p
	}

	type centroid struct{ r, g, b float64 }

	// Deterministic seeding: k samples at even strides through the buffer.
	centroids := make([]centroid, k)
	for i := 0; i < k; i++ {
		pi := (pixelCount * i / k) * 4
		centroids[i] = centroid{
			r: float64(img.Pixels[pi]),
			g: float64(img.Pixels[pi+1]),
			b: float64(img.Pixels[pi+2]),
		}
	}

	assign := make([]int, pixelCount)
	for iter := 0; iter < maxIter; iter++ {
		if ctx != nil && ctx.Err() != nil {
			break
		}

		// Assignment step.
		for pi := 0; pi < pixelCount; pi++ {
			i := pi * 4
			r := float64(img.Pixels[i])
			g := float64(img.Pixels[i+1])
			b := float64(img.Pixels[i+2])

			best := 0
			bestDist := math.Inf(1)
			for ci, c := range centroids {
				dr, dg, db := r-c.r, g-c.g, b-c.b
				if d := dr*dr + dg*dg + db*db; d < bestDist {
					bestDist = d
					best = ci
				}
			}
			assign[pi] = best
		}

		// Update step.
		sums := make([]struct {
			r, g, b float64
			n       int
		}, k)
		for pi := 0; pi < pixelCount; pi++ {
			i := pi * 4
			s := &sums[assign[pi]]
			s.r += float64(img.Pixels[i])
			s.g += float64(img.Pixels[i+1])
			s.b += float64(img.Pixels[i+2])
			s.n++
		}

		maxMove := 0.0
		for ci := range centroids {
			if sums[ci].n == 0 {
				continue // empty cluster keeps its previous centroid
			}
			next := centroid{
				r: sums[ci].r / float64(sums[ci].n),
				g: sums[ci].g / float64(sums[ci].n),
				b: sums[ci].b / float64(sums[ci].n),
			}
			move := math.Sqrt((next.r-centroids[ci].r)*(next.r-centroids[ci].r) +
				(next.g-centroids[ci].g)*(next.g-centroids[ci].g) +
				(next.b-centroids[ci].b)*(next.b-centroids[ci].b))
			if move > maxMove {
				maxMove = move
			}
			centroids[ci] = next
		}
		if maxMove < 1.0 {
			break
		}
	}

	counts := make([]int, k)
	for _, a := range assign {
		counts[a]++
	}

	p := Palette{Colors: make([]Entry, k)}
	for i, c := range centroids {
		p.Colors[i] = Entry{
			R:      uint8(math.Round(clampF(c.r, 0, 255))),
			G:      uint8(math.Round(clampF(c.g, 0, 255))),
			B:      uint8(math.Round(clampF(c.b, 0, 255))),
			A:      255,
			Weight: float64(counts[i]) / float64(pixelCount),
		}
	}

	// Heaviest cluster first, matching the order ExtractPalette produces.
	sort.SliceStable(p.Colors, func(i, j int) bool {
		return p.Colors[i].Weight > p.Colors[j].Weight
	})
	return p
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
