package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage indicates a malformed RasterImage (non-positive dimensions
// or a pixel buffer whose length does not match width*height*4).
//
// This is the fatal InvalidInput class: callers should fail fast and must not
// retry with the same input.
var ErrInvalidImage = errors.New("invalid raster image")

// Image is a fixed-size RGBA pixel grid.
//
// Pixels is a row-major RGBA8 buffer of length Width*Height*4: the pixel at
// (x, y) starts at offset (y*Width+x)*4 with components in R, G, B, A order.
// The engine treats Image values as immutable inputs; every pipeline stage
// returns new data rather than mutating its input.
type Image struct {
	// Width of the image in pixels.
	Width int `json:"width"`

	// Height of the image in pixels.
	Height int `json:"height"`

	// Pixels is the RGBA8 buffer, row-major, length Width*Height*4.
	Pixels []byte `json:"-"`
}

// New allocates a zeroed (fully transparent black) image.
// Returns ErrInvalidImage for non-positive dimensions.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*4),
	}, nil
}

// Validate checks the structural invariants of the image.
//
// Returns nil for a well-formed image, or an error wrapping ErrInvalidImage
// describing the first violation found.
func (m *Image) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, m.Width, m.Height)
	}
	if want := m.Width * m.Height * 4; len(m.Pixels) != want {
		return fmt.Errorf("%w: pixel buffer length %d, want %d", ErrInvalidImage, len(m.Pixels), want)
	}
	return nil
}

// At returns the RGBA components of the pixel at (x, y).
// Coordinates outside the image return transparent black.
func (m *Image) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0, 0, 0, 0
	}
	i := (y*m.Width + x) * 4
	return m.Pixels[i], m.Pixels[i+1], m.Pixels[i+2], m.Pixels[i+3]
}

// Set writes the RGBA components of the pixel at (x, y).
// Out-of-bounds coordinates are ignored.
func (m *Image) Set(x, y int, r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	i := (y*m.Width + x) * 4
	m.Pixels[i] = r
	m.Pixels[i+1] = g
	m.Pixels[i+2] = b
	m.Pixels[i+3] = a
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	pixels := make([]byte, len(m.Pixels))
	copy(pixels, m.Pixels)
	return &Image{Width: m.Width, Height: m.Height, Pixels: pixels}
}

// Luminance returns the BT.601 luminance of the pixel at (x, y), in 0-255.
func (m *Image) Luminance(x, y int) float64 {
	r, g, b, _ := m.At(x, y)
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// FromImage converts any image.Image into a row-major RGBA8 Image.
//
// The source is first normalized to NRGBA (non-premultiplied 8-bit) so that
// 16-bit, paletted, and YCbCr sources all land in the same representation.
func FromImage(src image.Image) *Image {
	nrgba := imaging.Clone(src)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	out := &Image{Width: w, Height: h, Pixels: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		srcRow := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dstRow := out.Pixels[y*w*4 : (y+1)*w*4]
		copy(dstRow, srcRow)
	}
	return out
}

// ToImage converts the raster buffer back into a standard *image.NRGBA,
// e.g. for PNG encoding of intermediate results.
func (m *Image) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+m.Width*4], m.Pixels[y*m.Width*4:(y+1)*m.Width*4])
	}
	return out
}

// Fill sets every pixel to the given color. Useful for building test images.
func (m *Image) Fill(c color.NRGBA) {
	for i := 0; i < len(m.Pixels); i += 4 {
		m.Pixels[i] = c.R
		m.Pixels[i+1] = c.G
		m.Pixels[i+2] = c.B
		m.Pixels[i+3] = c.A
	}
}

// FillRect sets every pixel inside the half-open rectangle [x1,x2)x[y1,y2).
func (m *Image) FillRect(x1, y1, x2, y2 int, c color.NRGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, c.R, c.G, c.B, c.A)
		}
	}
}
