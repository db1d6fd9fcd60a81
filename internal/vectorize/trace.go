package vectorize

import "github.com/ironsheep/vectorize-mcp/internal/geom"

// maxTraceSteps bounds a single boundary walk. A boundary can never be
// longer than the pixel count, but a hard cap keeps a malformed mask from
// looping; hitting it yields an open contour.
const maxTraceSteps = 10000

// walkOffsets is the Moore neighborhood ordered orthogonal-first
// (E, S, W, N, then diagonals). Orthogonal preference keeps the walk from
// cutting corners diagonally and stranding corner pixels.
var walkOffsets = [8][2]int{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
}

// TraceMask extracts region boundary contours from a binary mask.
//
// The mask is scanned row-major. Each unvisited boundary pixel (a true
// pixel with at least one false or out-of-bounds Moore neighbor) starts a
// walk that follows boundary pixels neighbor-to-neighbor, preferring
// orthogonal steps. Visited pixels are tracked in an index-addressed
// boolean arena, so every pixel is visited at most once across all
// contours.
//
// A walk ends when no unvisited boundary neighbor remains; the contour is
// closed if its last pixel neighbors its first (it returned to the start),
// open if the walk was cut off by the maxTraceSteps safety bound or ended
// elsewhere (thin strokes). Interior pixels are never walked, so the cost
// is one scan plus total boundary length.
func TraceMask(mask []bool, w, h int) []geom.Contour {
	if w <= 0 || h <= 0 || len(mask) < w*h {
		return nil
	}

	inMask := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h && mask[y*w+x]
	}

	// Precompute the boundary set: masked pixels touching the outside.
	boundary := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				continue
			}
			for _, off := range walkOffsets {
				if !inMask(x+off[0], y+off[1]) {
					boundary[y*w+x] = true
					break
				}
			}
		}
	}

	visited := make([]bool, w*h)
	var contours []geom.Contour

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !boundary[y*w+x] || visited[y*w+x] {
				continue
			}
			if c := walkBoundary(x, y, w, h, boundary, visited); len(c.Points) > 0 {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// walkBoundary follows the boundary set from (sx, sy) until it runs out of
// unvisited boundary neighbors or hits the step bound.
func walkBoundary(sx, sy, w, h int, boundary, visited []bool) geom.Contour {
	points := make([]geom.Point, 0, 64)
	x, y := sx, sy

	for step := 0; step < maxTraceSteps; step++ {
		visited[y*w+x] = true
		points = append(points, geom.Pt(float64(x), float64(y)))

		nextFound := false
		for _, off := range walkOffsets {
			nx, ny := x+off[0], y+off[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			if boundary[ny*w+nx] && !visited[ny*w+nx] {
				x, y = nx, ny
				nextFound = true
				break
			}
		}
		if !nextFound {
			return geom.Contour{Points: points, Closed: closesOnStart(x, y, sx, sy, len(points))}
		}
	}
	return geom.Contour{Points: points, Closed: false}
}

// closesOnStart reports whether the walk's final pixel returned to (is a
// Moore neighbor of) the starting pixel. Single-pixel contours count as
// closed.
func closesOnStart(x, y, sx, sy, n int) bool {
	if n == 1 {
		return true
	}
	dx, dy := x-sx, y-sy
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= 1 && dy <= 1
}

// MaskForColor builds a binary mask of the pixels whose RGB exactly matches
// (r, g, b). Used to trace the region occupied by one palette entry of a
// quantized image. When requireOpaque is set, transparent pixels (alpha 0)
// are excluded from the mask.
func MaskForColor(pixels []byte, w, h int, r, g, b uint8, requireOpaque bool) []bool {
	mask := make([]bool, w*h)
	for i := 0; i < w*h; i++ {
		p := i * 4
		if pixels[p] == r && pixels[p+1] == g && pixels[p+2] == b {
			if requireOpaque && pixels[p+3] == 0 {
				continue
			}
			mask[i] = true
		}
	}
	return mask
}
