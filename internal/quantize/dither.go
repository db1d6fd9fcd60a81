package quantize

import "github.com/ironsheep/vectorize-mcp/internal/raster"

// DitherFloydSteinberg remaps the image to the palette with Floyd-Steinberg
// error diffusion.
//
// Each pixel snaps to its nearest palette entry (Euclidean RGB) and the
// quantization error is distributed to the unvisited neighbors with the
// standard kernel:
//
//	        *    7/16
//	3/16  5/16   1/16
//
// Diffusion runs left-to-right, top-to-bottom. Alpha is preserved from the
// source. An empty palette returns an unmodified copy.
func DitherFloydSteinberg(img *raster.Image, p Palette) *raster.Image {
	return ditherWith(img, p, Palette.Nearest)
}

// DitherFloydSteinbergLuma is DitherFloydSteinberg using luma-weighted
// palette matching, pairing with MapLuma.
func DitherFloydSteinbergLuma(img *raster.Image, p Palette) *raster.Image {
	return ditherWith(img, p, Palette.NearestLuma)
}

func ditherWith(img *raster.Image, p Palette, nearest func(Palette, uint8, uint8, uint8) int) *raster.Image {
	out := img.Clone()
	if p.Len() == 0 {
		return out
	}

	w, h := out.Width, out.Height

	// Working copy of the channel values as float64 so diffused error can go
	// below 0 or above 255 before clamping at snap time.
	work := make([]float64, w*h*3)
	for pi := 0; pi < w*h; pi++ {
		work[pi*3] = float64(out.Pixels[pi*4])
		work[pi*3+1] = float64(out.Pixels[pi*4+1])
		work[pi*3+2] = float64(out.Pixels[pi*4+2])
	}

	diffuse := func(x, y int, factor, errR, errG, errB float64) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		i := (y*w + x) * 3
		work[i] += errR * factor
		work[i+1] += errG * factor
		work[i+2] += errB * factor
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			r := uint8(clampF(work[i], 0, 255))
			g := uint8(clampF(work[i+1], 0, 255))
			b := uint8(clampF(work[i+2], 0, 255))

			e := p.Colors[nearest(p, r, g, b)]
			pi := (y*w + x) * 4
			out.Pixels[pi] = e.R
			out.Pixels[pi+1] = e.G
			out.Pixels[pi+2] = e.B

			errR := float64(r) - float64(e.R)
			errG := float64(g) - float64(e.G)
			errB := float64(b) - float64(e.B)

			diffuse(x+1, y, 7.0/16.0, errR, errG, errB)
			diffuse(x-1, y+1, 3.0/16.0, errR, errG, errB)
			diffuse(x, y+1, 5.0/16.0, errR, errG, errB)
			diffuse(x+1, y+1, 1.0/16.0, errR, errG, errB)
		}
	}
	return out
}
