package analyze

import (
	"image/color"
	"testing"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
)

var (
	white  = color.NRGBA{255, 255, 255, 255}
	red    = color.NRGBA{255, 0, 0, 255}
	green  = color.NRGBA{0, 255, 0, 255}
	blue   = color.NRGBA{0, 0, 255, 255}
	yellow = color.NRGBA{255, 255, 0, 255}
)

// quadrantImage is an 8x8 image with four solid color quadrants: the
// flat-color hard-boundary case.
func quadrantImage(t *testing.T) *raster.Image {
	t.Helper()
	img, err := raster.New(8, 8)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	img.FillRect(0, 0, 4, 4, red)
	img.FillRect(4, 0, 8, 4, green)
	img.FillRect(0, 4, 4, 8, blue)
	img.FillRect(4, 4, 8, 8, yellow)
	return img
}

// lineArtImage is a 16x16 white image with a black cross and both
// diagonals: the near-monochrome stroke case.
func lineArtImage(t *testing.T) *raster.Image {
	t.Helper()
	img, err := raster.New(16, 16)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	img.Fill(white)
	for i := 0; i < 16; i++ {
		img.Set(8, i, 0, 0, 0, 255)    // vertical
		img.Set(i, 8, 0, 0, 0, 255)    // horizontal
		img.Set(i, i, 0, 0, 0, 255)    // diagonal
		img.Set(i, 15-i, 0, 0, 0, 255) // anti-diagonal
	}
	return img
}

// gradientImage is an 8x8 smooth RGB gradient: the continuous-tone case.
func gradientImage(t *testing.T) *raster.Image {
	t.Helper()
	img, err := raster.New(8, 8)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, uint8(x*30), uint8(y*30), uint8((x+y)*15), 255)
		}
	}
	return img
}

func TestSelect_Quadrants_Shapes(t *testing.T) {
	ch := Analyze(quadrantImage(t))

	if ch.UniqueColors != 4 {
		t.Errorf("unique colors: got %d, want 4", ch.UniqueColors)
	}
	if ch.MonochromaticRatio != 0 {
		t.Errorf("monochromatic ratio: got %v, want 0", ch.MonochromaticRatio)
	}
	if ch.SharpEdgeRatio <= 0.7 {
		t.Errorf("sharp edge ratio: got %v, want > 0.7", ch.SharpEdgeRatio)
	}
	if ch.ContrastLevel <= 0.6 {
		t.Errorf("contrast: got %v, want > 0.6", ch.ContrastLevel)
	}

	if got := Select(ch); got != AlgorithmShapes {
		t.Errorf("Select: got %q, want shapes (analysis %+v)", got, ch)
	}
}

func TestSelect_CrossAndDiagonals_LineArt(t *testing.T) {
	ch := Analyze(lineArtImage(t))

	if ch.UniqueColors != 2 {
		t.Errorf("unique colors: got %d, want 2", ch.UniqueColors)
	}
	if ch.MonochromaticRatio != 1 {
		t.Errorf("monochromatic ratio: got %v, want 1", ch.MonochromaticRatio)
	}
	if ch.ContrastLevel != 1 {
		t.Errorf("contrast: got %v, want 1", ch.ContrastLevel)
	}
	if ch.EdgeDensity <= 0.05 || ch.EdgeDensity >= 0.6 {
		t.Errorf("edge density: got %v, want in (0.05, 0.6)", ch.EdgeDensity)
	}

	if got := Select(ch); got != AlgorithmLineArt {
		t.Errorf("Select: got %q, want lineart (analysis %+v)", got, ch)
	}
}

func TestSelect_Gradient_Photo(t *testing.T) {
	ch := Analyze(gradientImage(t))

	if ch.UniqueColors <= 32 {
		t.Errorf("unique colors: got %d, want > 32", ch.UniqueColors)
	}
	if got := Select(ch); got != AlgorithmPhoto {
		t.Errorf("Select: got %q, want photo (analysis %+v)", got, ch)
	}
}

func TestAnalyze_Transparency(t *testing.T) {
	img, err := raster.New(4, 4)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	img.Fill(white)

	if ch := Analyze(img); ch.HasTransparency {
		t.Error("opaque image reported transparency")
	}

	img.Set(2, 2, 255, 255, 255, 100)
	if ch := Analyze(img); !ch.HasTransparency {
		t.Error("semi-transparent pixel not detected")
	}
}

func TestAnalyze_UniformImage(t *testing.T) {
	img, err := raster.New(6, 6)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	img.Fill(color.NRGBA{150, 150, 150, 255})

	ch := Analyze(img)
	if ch.UniqueColors != 1 {
		t.Errorf("unique colors: got %d, want 1", ch.UniqueColors)
	}
	if ch.EdgeDensity != 0 {
		t.Errorf("edge density: got %v, want 0", ch.EdgeDensity)
	}
	if ch.ContrastLevel != 0 {
		t.Errorf("contrast: got %v, want 0", ch.ContrastLevel)
	}
	if ch.MonochromaticRatio != 1 {
		t.Errorf("monochromatic ratio: got %v, want 1", ch.MonochromaticRatio)
	}

	// Uniform images are continuous-tone by elimination.
	if got := Select(ch); got != AlgorithmPhoto {
		t.Errorf("Select: got %q, want photo", got)
	}
}

func TestAnalyze_NilImage(t *testing.T) {
	ch := Analyze(nil)
	if ch.UniqueColors != 0 || ch.EdgeDensity != 0 {
		t.Errorf("nil image: got %+v, want zero characteristics", ch)
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name           string
		img            func(*testing.T) *raster.Image
		wantAlgorithm  Algorithm
		wantConfidence float64
	}{
		{"quadrants", quadrantImage, AlgorithmShapes, 0.8},
		{"line art", lineArtImage, AlgorithmLineArt, 0.9},
		{"gradient", gradientImage, AlgorithmPhoto, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.img(t))
			if rec.Algorithm != tt.wantAlgorithm {
				t.Errorf("algorithm: got %q, want %q", rec.Algorithm, tt.wantAlgorithm)
			}
			if rec.Confidence != tt.wantConfidence {
				t.Errorf("confidence: got %v, want %v", rec.Confidence, tt.wantConfidence)
			}
			if len(rec.Alternatives) > 2 {
				t.Errorf("alternatives: got %d, want at most 2", len(rec.Alternatives))
			}
			for _, alt := range rec.Alternatives {
				if alt.Algorithm == rec.Algorithm {
					t.Error("recommended algorithm listed as its own alternative")
				}
				if alt.Justification == "" {
					t.Errorf("alternative %q has no justification", alt.Algorithm)
				}
			}
		})
	}
}

func TestRecommend_WeakPhotoFallback(t *testing.T) {
	// A uniform image classifies as photo with few colors: the weak 0.5
	// confidence case.
	img, err := raster.New(4, 4)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	img.Fill(color.NRGBA{120, 130, 140, 255})

	rec := Recommend(img)
	if rec.Algorithm != AlgorithmPhoto {
		t.Fatalf("algorithm: got %q, want photo", rec.Algorithm)
	}
	if rec.Confidence != 0.5 {
		t.Errorf("confidence: got %v, want 0.5", rec.Confidence)
	}
}

func TestAlgorithmValid(t *testing.T) {
	for _, a := range []Algorithm{AlgorithmAuto, AlgorithmShapes, AlgorithmPhoto, AlgorithmLineArt} {
		if !a.Valid() {
			t.Errorf("%q should be valid", a)
		}
	}
	if Algorithm("sketch").Valid() {
		t.Error("unknown algorithm reported valid")
	}
}
