package edge

import "github.com/ironsheep/vectorize-mcp/internal/geom"

// FollowContours groups the map's nonzero pixels into contours with an
// 8-connected flood trace.
//
// Scanning is row-major, so contour order (and the order of points within a
// contour) is deterministic. Each pixel is visited at most once via an
// index-addressed visited arena. Contours with fewer than minLength points
// are dropped.
//
// The contours produced here follow edge ink rather than region boundaries;
// they are open by construction (the Moore boundary tracer in the vectorize
// package produces closed region outlines).
func FollowContours(m *Map, minLength int) []geom.Contour {
	w, h := m.Width, m.Height
	visited := make([]bool, w*h)
	var contours []geom.Contour

	// All 8 neighbors, in a fixed order for determinism.
	offsets := [8][2]int{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	}

	stack := make([]int, 0, 256)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			start := y*w + x
			if visited[start] || m.Magnitude[start] == 0 {
				continue
			}

			points := make([]geom.Point, 0, 64)
			visited[start] = true
			stack = append(stack[:0], start)

			for len(stack) > 0 {
				i := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				ix, iy := i%w, i/w
				points = append(points, geom.Pt(float64(ix), float64(iy)))

				for _, off := range offsets {
					nx, ny := ix+off[0], iy+off[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					n := ny*w + nx
					if !visited[n] && m.Magnitude[n] > 0 {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}

			if len(points) >= minLength {
				contours = append(contours, geom.Contour{Points: points})
			}
		}
	}
	return contours
}
