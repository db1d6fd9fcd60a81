package edge

import (
	"context"
	"math"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

// Params records the tuning an edge map was produced with.
type Params struct {
	// Threshold is the Sobel magnitude cutoff (Sobel maps only).
	Threshold float64 `json:"threshold,omitempty"`

	// LowThreshold and HighThreshold are the hysteresis bounds (Canny maps only).
	LowThreshold  float64 `json:"low_threshold,omitempty"`
	HighThreshold float64 `json:"high_threshold,omitempty"`

	// KernelSize is the Gaussian blur kernel size (Canny maps only).
	KernelSize int `json:"kernel_size,omitempty"`
}

// Map holds per-pixel gradient magnitude and direction for an image.
//
// Magnitude and Direction are row-major fields with the same dimensions as
// the source image. Magnitude is computed on luminance normalized to 0-1, so
// values fall in [0, ~5.66] (the Sobel kernel bound). Direction is in
// radians from math.Atan2. A Map is immutable once produced.
type Map struct {
	// Width and Height match the source image dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Magnitude is the per-pixel gradient magnitude, zero where no edge
	// survived thresholding.
	Magnitude []float64 `json:"-"`

	// Direction is the per-pixel gradient direction in radians.
	Direction []float64 `json:"-"`

	// Algorithm is "sobel" or "canny".
	Algorithm string `json:"algorithm"`

	// Params are the parameters the map was produced with.
	Params Params `json:"params"`
}

// At returns the magnitude at (x, y); out-of-bounds coordinates return 0.
func (m *Map) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Magnitude[y*m.Width+x]
}

// EdgeCount returns the number of pixels with nonzero magnitude.
func (m *Map) EdgeCount() int {
	n := 0
	for _, v := range m.Magnitude {
		if v > 0 {
			n++
		}
	}
	return n
}

// Density returns the fraction of pixels with nonzero magnitude.
func (m *Map) Density() float64 {
	if m.Width*m.Height == 0 {
		return 0
	}
	return float64(m.EdgeCount()) / float64(m.Width*m.Height)
}

// sobelX and sobelY are the standard 3x3 Sobel kernels.
var sobelX = [3][3]float64{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

var sobelY = [3][3]float64{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// luminanceField converts the image to a row-major luminance field in 0-1
// using ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B).
func luminanceField(img *raster.Image) []float64 {
	field := make([]float64, img.Width*img.Height)
	for i := range field {
		p := i * 4
		r := float64(img.Pixels[p]) / 255.0
		g := float64(img.Pixels[p+1]) / 255.0
		b := float64(img.Pixels[p+2]) / 255.0
		field[i] = 0.299*r + 0.587*g + 0.114*b
	}
	return field
}

// gradients computes Sobel Gx/Gy over the field and returns magnitude and
// direction fields. Border pixels are left at zero.
func gradients(field []float64, w, h int) (magnitude, direction []float64) {
	magnitude = make([]float64, w*h)
	direction = make([]float64, w*h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := field[(y+ky)*w+(x+kx)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*w+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*w+x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// Sobel computes an edge map using the 3x3 Sobel operator.
//
// The image is converted to BT.601 luminance, gradients are computed with
// the Sobel kernels, and magnitudes below threshold are zeroed. Border
// pixels are excluded (always zero) because the kernel does not fit there.
//
// The result is deterministic: no randomness, no iteration order effects.
func Sobel(img *raster.Image, threshold float64) *Map {
	w, h := img.Width, img.Height
	field := luminanceField(img)
	magnitude, direction := gradients(field, w, h)

	for i, v := range magnitude {
		if v < threshold {
			magnitude[i] = 0
		}
	}

	return &Map{
		Width:     w,
		Height:    h,
		Magnitude: magnitude,
		Direction: direction,
		Algorithm: "sobel",
		Params:    Params{Threshold: threshold},
	}
}

// gaussianKernel builds a normalized size x size Gaussian kernel with
// sigma = size/3. Size is forced odd (size+1 if even, minimum 3).
func gaussianKernel(size int) ([][]float64, int) {
	if size < 3 {
		size = 3
	}
	if size%2 == 0 {
		size++
	}
	sigma := float64(size) / 3.0
	half := size / 2

	kernel := make([][]float64, size)
	sum := 0.0
	for ky := 0; ky < size; ky++ {
		kernel[ky] = make([]float64, size)
		for kx := 0; kx < size; kx++ {
			dx := float64(kx - half)
			dy := float64(ky - half)
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[ky][kx] = v
			sum += v
		}
	}
	for ky := range kernel {
		for kx := range kernel[ky] {
			kernel[ky][kx] /= sum
		}
	}
	return kernel, half
}

// blurField convolves the field with a Gaussian kernel, replicating edge
// values at the borders.
func blurField(field []float64, w, h, kernelSize int) []float64 {
	kernel, half := gaussianKernel(kernelSize)

	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for ky := -half; ky <= half; ky++ {
				for kx := -half; kx <= half; kx++ {
					py := clamp(y+ky, 0, h-1)
					px := clamp(x+kx, 0, w-1)
					sum += field[py*w+px] * kernel[ky+half][kx+half]
				}
			}
			out[y*w+x] = sum
		}
	}
	return out
}

// Canny computes an edge map with the Canny algorithm.
//
// Stages:
//
//  1. BT.601 luminance conversion
//  2. Gaussian blur (kernelSize x kernelSize, sigma = kernelSize/3)
//  3. Sobel gradients
//  4. Non-maximum suppression along four octant buckets (±22.5°)
//  5. Hysteresis: pixels with magnitude >= high seed an 8-connected flood
//     that keeps neighbors with magnitude >= low
//
// Long phases poll ctx between rows; on cancellation the map produced so far
// is returned, which is always structurally valid (correct dimensions, only
// surviving magnitudes nonzero).
func Canny(ctx context.Context, img *raster.Image, low, high float64, kernelSize int) *Map {
	w, h := img.Width, img.Height
	result := &Map{
		Width:     w,
		Height:    h,
		Magnitude: make([]float64, w*h),
		Direction: make([]float64, w*h),
		Algorithm: "canny",
		Params:    Params{LowThreshold: low, HighThreshold: high, KernelSize: kernelSize},
	}

	field := luminanceField(img)
	blurred := blurField(field, w, h, kernelSize)
	magnitude, direction := gradients(blurred, w, h)
	copy(result.Direction, direction)

	suppressed := nonMaxSuppress(magnitude, direction, w, h)

	// Hysteresis: seed from strong pixels, flood across weak ones.
	const (
		unvisited = 0
		kept      = 1
	)
	state := make([]uint8, w*h)
	stack := make([]int, 0, 256)

	for y := 1; y < h-1; y++ {
		if ctx != nil && ctx.Err() != nil {
			return result
		}
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if suppressed[i] < high || state[i] == kept {
				continue
			}
			state[i] = kept
			stack = append(stack, i)
			for len(stack) > 0 {
				j := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				jx, jy := j%w, j/w
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := jx+dx, jy+dy
						if nx < 1 || ny < 1 || nx >= w-1 || ny >= h-1 {
							continue
						}
						n := ny*w + nx
						if state[n] == unvisited && suppressed[n] >= low {
							state[n] = kept
							stack = append(stack, n)
						}
					}
				}
			}
		}
	}

	for i := range state {
		if state[i] == kept {
			result.Magnitude[i] = suppressed[i]
		}
	}
	return result
}

// nonMaxSuppress thins edges to single-pixel width by keeping only pixels
// that are local maxima along their gradient direction. Directions are
// bucketed into four octants (horizontal, vertical, and the two diagonals)
// at ±22.5° boundaries.
func nonMaxSuppress(magnitude, direction []float64, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			angle := direction[i]
			mag := magnitude[i]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude[(y-1)*w+(x+1)]
				n2 = magnitude[(y+1)*w+(x-1)]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude[(y-1)*w+x]
				n2 = magnitude[(y+1)*w+x]
			default:
				n1 = magnitude[(y-1)*w+(x-1)]
				n2 = magnitude[(y+1)*w+(x+1)]
			}

			if mag >= n1 && mag >= n2 {
				out[i] = mag
			}
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
