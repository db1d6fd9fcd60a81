package quantize

import (
	"sort"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// MedianCut builds a palette by recursively splitting the color space.
//
// Starting from the full set of pixel colors, the box with the longest RGB
// axis is split at that axis's median until 2^ceil(log2 k) boxes exist (or
// no box can split further). Each box contributes its mean color, heaviest
// box first, and the palette is truncated to the k heaviest entries. The
// result may have fewer than k entries for images with few distinct colors.
func MedianCut(img *raster.Image, k int) Palette {
	if img == nil || k <= 0 {
		return Palette{}
	}

	pixelCount := len(img.Pixels) / 4
	if pixelCount == 0 {
		return Palette{}
	}

	type rgb struct{ r, g, b uint8 }
	samples := make([]rgb, pixelCount)
	for pi := 0; pi < pixelCount; pi++ {
		i := pi * 4
		samples[pi] = rgb{img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2]}
	}

	target := nextPow2(k)
	boxes := [][]rgb{samples}

	for len(boxes) < target {
		// Pick the box with the longest axis; stop when nothing can split.
		bestBox := -1
		bestRange := 0
		bestAxis := 0
		for bi, box := range boxes {
			if len(box) < 2 {
				continue
			}
			var minC, maxC [3]uint8
			minC = [3]uint8{255, 255, 255}
			for _, s := range box {
				for a, v := range [3]uint8{s.r, s.g, s.b} {
					if v < minC[a] {
						minC[a] = v
					}
					if v > maxC[a] {
						maxC[a] = v
					}
				}
			}
			for a := 0; a < 3; a++ {
				if r := int(maxC[a]) - int(minC[a]); r > bestRange {
					bestRange = r
					bestBox = bi
					bestAxis = a
				}
			}
		}
		if bestBox < 0 || bestRange == 0 {
			break
		}

		box := boxes[bestBox]
		axis := bestAxis
		sort.SliceStable(box, func(i, j int) bool {
			return component(box[i].r, box[i].g, box[i].b, axis) <
				component(box[j].r, box[j].g, box[j].b, axis)
		})

		mid := len(box) / 2
		boxes[bestBox] = box[:mid]
		boxes = append(boxes, box[mid:])
	}

	p := Palette{Colors: make([]Entry, 0, len(boxes))}
	for _, box := range boxes {
		if len(box) == 0 {
			continue
		}
		var sr, sg, sb int
		for _, s := range box {
			sr += int(s.r)
			sg += int(s.g)
			sb += int(s.b)
		}
		n := len(box)
		p.Colors = append(p.Colors, Entry{
			R:      uint8(sr / n),
			G:      uint8(sg / n),
			B:      uint8(sb / n),
			A:      255,
			Weight: float64(n) / float64(pixelCount),
		})
	}

	// Heaviest entry first, matching the order ExtractPalette produces.
	sort.SliceStable(p.Colors, func(i, j int) bool {
		return p.Colors[i].Weight > p.Colors[j].Weight
	})
	// Splitting runs to the next power of two, so for non-power-of-two k
	// the lightest surplus boxes are dropped here.
	if len(p.Colors) > k {
		p.Colors = p.Colors[:k]
	}
	return p
}

// component selects the r, g, or b component by axis index.
func component(r, g, b uint8, axis int) uint8 {
	switch axis {
	case 0:
		return r
	case 1:
		return g
	default:
		return b
	}
}

// nextPow2 returns the smallest power of two >= n (minimum 1).
func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
