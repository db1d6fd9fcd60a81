package svg

import (
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/vectorize-mcp/internal/raster"
	"github.com/ironsheep/vectorize-mcp/internal/vectorize"
)

func TestGenerate_Empty(t *testing.T) {
	content, stats, err := Generate(nil, 10, 20, Options{Precision: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if stats.PathCount != 0 {
		t.Errorf("path count: got %d, want 0", stats.PathCount)
	}
	if stats.ColorCount != 0 {
		t.Errorf("color count: got %d, want 0", stats.ColorCount)
	}
	if stats.OriginalSize != 10*20*4 {
		t.Errorf("original size: got %d, want %d", stats.OriginalSize, 10*20*4)
	}
	if stats.VectorSize != len(content) {
		t.Errorf("vector size: got %d, want %d", stats.VectorSize, len(content))
	}

	if !strings.Contains(content, `viewBox="0 0 10 20"`) {
		t.Errorf("missing viewBox: %q", content)
	}
	if issues := Validate(content); len(issues) != 0 {
		t.Errorf("empty document should validate, got %v", issues)
	}
}

func TestGenerate_GroupsByFill(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 0 0 L 4 0 L 4 4 Z", Fill: "#ff0000"},
		{Data: "M 10 10 L 14 10 Z", Fill: "#0000ff"},
		{Data: "M 20 20 L 24 20 Z", Fill: "#ff0000"},
	}

	content, stats, err := Generate(paths, 32, 32, Options{Precision: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if stats.ColorCount != 2 {
		t.Errorf("color count: got %d, want 2", stats.ColorCount)
	}
	if stats.PathCount != 3 {
		t.Errorf("path count: got %d, want 3", stats.PathCount)
	}

	// Groups appear in first-seen color order.
	redIdx := strings.Index(content, `<g fill="#ff0000">`)
	blueIdx := strings.Index(content, `<g fill="#0000ff">`)
	if redIdx < 0 || blueIdx < 0 {
		t.Fatalf("missing fill groups in %q", content)
	}
	if redIdx > blueIdx {
		t.Error("red group should precede blue (first seen)")
	}

	// Two red paths, un-merged, stay separate elements.
	if got := strings.Count(content, "<path "); got != 3 {
		t.Errorf("path elements: got %d, want 3", got)
	}

	if issues := Validate(content); len(issues) != 0 {
		t.Errorf("document should validate, got %v", issues)
	}
}

func TestGenerate_StrokeGroups(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 0 0 L 4 0 L 4 4 Z", Fill: "#ff0000"},
		{Data: "M 2 2 L 6 2", Fill: "none", Stroke: "#000000", StrokeWidth: 1},
		{Data: "M 2 6 L 6 6", Fill: "none", Stroke: "#000000", StrokeWidth: 1},
	}

	content, stats, err := Generate(paths, 8, 8, Options{Precision: 0})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(content, `<g fill="none" stroke="#000000" stroke-width="1">`) {
		t.Errorf("stroke group attributes missing: %q", content)
	}
	// Both stroked paths share one group; the stroke group does not count
	// as a fill color.
	if got := strings.Count(content, "<g "); got != 2 {
		t.Errorf("group elements: got %d, want 2", got)
	}
	if stats.ColorCount != 1 {
		t.Errorf("color count: got %d, want 1", stats.ColorCount)
	}
	if stats.PathCount != 3 {
		t.Errorf("path count: got %d, want 3", stats.PathCount)
	}
	if issues := Validate(content); len(issues) != 0 {
		t.Errorf("document should validate, got %v", issues)
	}
}

func TestGenerate_MergesSiblings(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 0 0 L 4 0 Z", Fill: "#ff0000"},
		{Data: "M 8 8 L 12 8 Z", Fill: "#ff0000"},
	}

	content, _, err := Generate(paths, 16, 16, Options{Precision: 2, Optimize: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if got := strings.Count(content, "<path "); got != 1 {
		t.Errorf("path elements after merge: got %d, want 1", got)
	}
	if !strings.Contains(content, `d="M 0 0 L 4 0 Z M 8 8 L 12 8 Z"`) {
		t.Errorf("merged path data missing: %q", content)
	}
	if issues := Validate(content); len(issues) != 0 {
		t.Errorf("document should validate, got %v", issues)
	}
}

func TestGenerate_RoundsCoordinates(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 1.23456 2 L 3.98765 4.5", Fill: "#000000"},
	}

	content, _, err := Generate(paths, 8, 8, Options{Precision: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(content, `d="M 1.23 2 L 3.99 4.5"`) {
		t.Errorf("coordinates not rounded to 2 decimals: %q", content)
	}
}

func TestGenerate_StripsZeroLengthLines(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 1 1 L 1 1 L 5 1 L 5 1 Z", Fill: "#000000"},
	}

	content, _, err := Generate(paths, 8, 8, Options{Precision: 0, Optimize: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(content, `d="M 1 1 L 5 1 Z"`) {
		t.Errorf("zero-length lines not stripped: %q", content)
	}
}

func TestGenerate_FillOpacity(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 0 0 L 4 0 Z", Fill: "#00ff00", FillOpacity: 0.5},
	}

	content, _, err := Generate(paths, 8, 8, Options{Precision: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(content, `fill-opacity="0.5"`) {
		t.Errorf("missing fill-opacity: %q", content)
	}
}

func TestGenerate_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, _, err := Generate(nil, dims[0], dims[1], Options{}); !errors.Is(err, raster.ErrInvalidImage) {
			t.Errorf("dims %v: got %v, want ErrInvalidImage", dims, err)
		}
	}
}

func TestGenerate_RejectsBadPathData(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "L 1 2", Fill: "#000000"}, // no leading moveto
	}
	if _, _, err := Generate(paths, 8, 8, Options{}); err == nil {
		t.Error("bad path data should fail")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	paths := []vectorize.Path{
		{Data: "M 0 0 L 4 0 L 4 4 Z", Fill: "#ff0000"},
		{Data: "M 1 1 L 2 2 Z", Fill: "#00ff00"},
	}

	first, _, err := Generate(paths, 16, 16, Options{Precision: 2, Optimize: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, _, err := Generate(paths, 16, 16, Options{Precision: 2, Optimize: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first != second {
		t.Error("identical input should produce byte-identical output")
	}
}
