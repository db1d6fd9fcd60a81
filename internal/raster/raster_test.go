package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	img, err := New(4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", img.Width, img.Height)
	}
	if len(img.Pixels) != 4*3*4 {
		t.Errorf("buffer length: got %d, want %d", len(img.Pixels), 4*3*4)
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("New(%d,%d): got %v, want ErrInvalidImage", tt.w, tt.h, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	img, _ := New(2, 2)
	if err := img.Validate(); err != nil {
		t.Errorf("valid image: got %v", err)
	}

	img.Pixels = img.Pixels[:8] // truncated buffer
	if err := img.Validate(); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("truncated buffer: got %v, want ErrInvalidImage", err)
	}

	var nilImg *Image
	if err := nilImg.Validate(); !errors.Is(err, ErrInvalidImage) {
		t.Errorf("nil image: got %v, want ErrInvalidImage", err)
	}
}

func TestAtSet(t *testing.T) {
	img, _ := New(3, 3)
	img.Set(1, 2, 10, 20, 30, 40)

	r, g, b, a := img.At(1, 2)
	if r != 10 || g != 20 || b != 30 || a != 40 {
		t.Errorf("At(1,2): got (%d,%d,%d,%d), want (10,20,30,40)", r, g, b, a)
	}

	// Out of bounds reads return transparent black, writes are ignored.
	r, g, b, a = img.At(-1, 5)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("out-of-bounds At: got (%d,%d,%d,%d), want zeros", r, g, b, a)
	}
	img.Set(99, 99, 1, 1, 1, 1) // must not panic
}

func TestFromImageToImage_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(3, 1, color.NRGBA{0, 0, 255, 128})

	m := FromImage(src)
	if m.Width != 4 || m.Height != 2 {
		t.Fatalf("dimensions: got %dx%d, want 4x2", m.Width, m.Height)
	}

	r, _, _, a := m.At(0, 0)
	if r != 255 || a != 255 {
		t.Errorf("pixel (0,0): got r=%d a=%d, want r=255 a=255", r, a)
	}
	_, _, b, a := m.At(3, 1)
	if b != 255 || a != 128 {
		t.Errorf("pixel (3,1): got b=%d a=%d, want b=255 a=128", b, a)
	}

	back := m.ToImage()
	if got := back.NRGBAAt(3, 1); got != (color.NRGBA{0, 0, 255, 128}) {
		t.Errorf("round trip pixel (3,1): got %v", got)
	}
}

func TestLuminance(t *testing.T) {
	img, _ := New(1, 1)
	img.Set(0, 0, 255, 255, 255, 255)
	if got := img.Luminance(0, 0); got != 255 {
		t.Errorf("white luminance: got %v, want 255", got)
	}

	img.Set(0, 0, 0, 0, 0, 255)
	if got := img.Luminance(0, 0); got != 0 {
		t.Errorf("black luminance: got %v, want 0", got)
	}
}

func TestFillRect(t *testing.T) {
	img, _ := New(4, 4)
	img.Fill(color.NRGBA{255, 255, 255, 255})
	img.FillRect(0, 0, 2, 2, color.NRGBA{255, 0, 0, 255})

	r, _, _, _ := img.At(1, 1)
	if r != 255 {
		t.Errorf("inside rect: got r=%d, want 255", r)
	}
	r, g, b, _ := img.At(3, 3)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("outside rect: got (%d,%d,%d), want white", r, g, b)
	}
}

func TestClone(t *testing.T) {
	img, _ := New(2, 2)
	img.Set(0, 0, 1, 2, 3, 4)

	cp := img.Clone()
	cp.Set(0, 0, 9, 9, 9, 9)

	r, _, _, _ := img.At(0, 0)
	if r != 1 {
		t.Errorf("clone mutated original: got r=%d, want 1", r)
	}
}
