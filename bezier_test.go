package bongocat

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBezierCurveEndpoints(t *testing.T) {
	pts := []Vec2{{1, 2}, {5, 9}, {-3, 4}, {10, 10}}
	got, err := BezierCurve(pts, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != pts[0] || got[1] != pts[3] {
		t.Errorf("endpoints = %v, want %v and %v", got, pts[0], pts[3])
	}
}

func TestBezierCurveDegreeZero(t *testing.T) {
	got, err := BezierCurve([]Vec2{{7, -1}}, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range got {
		if p != (Vec2{7, -1}) {
			t.Errorf("sample %d = %v", i, p)
		}
	}
}

func TestBezierCurveLinear(t *testing.T) {
	got, err := BezierCurve([]Vec2{{0, 0}, {10, 20}}, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range got {
		f := float64(i) / 4
		assertVec2(t, "linear", p, Vec2{10 * f, 20 * f}, 1e-12)
	}
}

func TestBezierCurveInvalidSamples(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if _, err := BezierCurve([]Vec2{{0, 0}, {1, 1}}, n); !errors.Is(err, ErrInvalidSampleCount) {
			t.Errorf("samples=%d: err = %v, want ErrInvalidSampleCount", n, err)
		}
	}
}

func TestBezierCurveEmpty(t *testing.T) {
	got, err := BezierCurve(nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestBezierCurveMatchesDeCasteljau(t *testing.T) {
	pts := []Vec2{{0, 0}, {30, 80}, {90, -20}, {120, 40}, {60, 60}}
	cps := make([]mgl64.Vec2, len(pts))
	for i, p := range pts {
		cps[i] = mgl64.Vec2{p.X, p.Y}
	}
	got, err := BezierCurve(pts, 17)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range got {
		want := mgl64.BezierCurve2D(float64(i)/16, cps)
		assertVec2(t, "sample", p, Vec2{want[0], want[1]}, 1e-9)
	}
}

func TestBinomials(t *testing.T) {
	want := []float64{1, 5, 10, 10, 5, 1}
	for i, b := range binomials(5) {
		assertNear(t, "C(5,k)", b, want[i])
	}
}

// The paw stroke smooths 15 joined samples, a degree-14 curve. The weights
// must still sum to one there.
func TestBezierCurveDegree14PartitionOfUnity(t *testing.T) {
	pts := make([]Vec2, 15)
	for i := range pts {
		pts[i] = Vec2{1, 1}
	}
	got, err := BezierCurve(pts, 30)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range got {
		assertVec2(t, "sample", p, Vec2{1, 1}, 1e-12)
	}
	assertNear(t, "C(14,7)", binomials(14)[7], 3432)
}
