package vectorize

import (
	"testing"

	"github.com/ironsheep/vectorize-mcp/internal/geom"
)

func TestSimplify_CollinearRun(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0), geom.Pt(4, 0),
	}

	got := Simplify(points, 0.1)
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	if got[0] != geom.Pt(0, 0) || got[1] != geom.Pt(4, 0) {
		t.Errorf("got %v, want endpoints (0,0) and (4,0)", got)
	}
}

func TestSimplify_PreservesEndpoints(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0), geom.Pt(5, 9), geom.Pt(11, 2), geom.Pt(14, 14), geom.Pt(20, 1),
	}

	for _, tolerance := range []float64{0, 0.5, 2, 10, 1000} {
		got := Simplify(points, tolerance)
		if len(got) < 2 {
			t.Fatalf("tolerance %v: got %d points, want at least 2", tolerance, len(got))
		}
		if got[0] != points[0] {
			t.Errorf("tolerance %v: first point %v, want %v", tolerance, got[0], points[0])
		}
		if got[len(got)-1] != points[len(points)-1] {
			t.Errorf("tolerance %v: last point %v, want %v", tolerance, got[len(got)-1], points[len(points)-1])
		}
	}
}

func TestSimplify_MonotoneInTolerance(t *testing.T) {
	points := []geom.Point{
		geom.Pt(0, 0), geom.Pt(1, 3), geom.Pt(2, -2), geom.Pt(3, 4),
		geom.Pt(4, 0), geom.Pt(5, 5), geom.Pt(6, -1), geom.Pt(7, 0),
	}

	prev := len(points) + 1
	for _, tolerance := range []float64{0, 0.5, 1, 2, 4, 8} {
		n := len(Simplify(points, tolerance))
		if n > prev {
			t.Errorf("output grew from %d to %d as tolerance rose to %v", prev, n, tolerance)
		}
		prev = n
	}
}

func TestSimplify_ShortInputsUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
	}{
		{"empty", nil},
		{"single", []geom.Point{geom.Pt(1, 1)}},
		{"pair", []geom.Point{geom.Pt(0, 0), geom.Pt(3, 3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.points, 5)
			if len(got) != len(tt.points) {
				t.Fatalf("length changed: got %d, want %d", len(got), len(tt.points))
			}
			for i := range got {
				if got[i] != tt.points[i] {
					t.Errorf("point %d changed: got %v, want %v", i, got[i], tt.points[i])
				}
			}
		})
	}
}

func TestSimplify_KeepsSignificantDeviation(t *testing.T) {
	// A sharp spike above tolerance must survive.
	points := []geom.Point{
		geom.Pt(0, 0), geom.Pt(5, 10), geom.Pt(10, 0),
	}
	got := Simplify(points, 1)
	if len(got) != 3 {
		t.Errorf("spike removed: got %v", got)
	}
}

func TestPerpendicularDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b geom.Point
		want    float64
	}{
		{"above horizontal line", geom.Pt(5, 3), geom.Pt(0, 0), geom.Pt(10, 0), 3},
		{"on the line", geom.Pt(5, 0), geom.Pt(0, 0), geom.Pt(10, 0), 0},
		{"degenerate line", geom.Pt(3, 4), geom.Pt(0, 0), geom.Pt(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PerpendicularDistance(tt.p, tt.a, tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimplifyContour_PreservesClosedFlag(t *testing.T) {
	c := geom.Contour{
		Points: []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0)},
		Closed: true,
	}
	got := SimplifyContour(c, 0.5)
	if !got.Closed {
		t.Error("closed flag lost")
	}
	if len(got.Points) != 2 {
		t.Errorf("got %d points, want 2", len(got.Points))
	}
}
