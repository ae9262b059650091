package bongocat

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tol %v)", name, got, want, tol)
	}
}

func assertVec2(t *testing.T, name string, got, want Vec2, tol float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMat4(t *testing.T, name string, got, want Transform4x4) {
	t.Helper()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.Abs(got.At(row, col)-want.At(row, col)) > epsilon {
				t.Errorf("%s[%d][%d] = %v, want %v", name, row, col, got.At(row, col), want.At(row, col))
			}
		}
	}
}

// --- constructors ---

func TestScaleDiagonal(t *testing.T) {
	m := Scale(2, 3, 4)
	assertNear(t, "[0][0]", m.At(0, 0), 2)
	assertNear(t, "[1][1]", m.At(1, 1), 3)
	assertNear(t, "[2][2]", m.At(2, 2), 4)
	assertNear(t, "[3][3]", m.At(3, 3), 1)
	assertNear(t, "[0][1]", m.At(0, 1), 0)
}

func TestRotateZeroIsIdentity(t *testing.T) {
	for _, axes := range []AxisPair{AxesXY, AxesXZ, AxesZY} {
		assertMat4(t, "rotate(0)", Rotate(0, axes), mgl64.Ident4())
	}
}

func TestRotateEntries(t *testing.T) {
	a := 0.3
	m := Rotate(a, AxesXY)
	assertNear(t, "[0][0]", m.At(0, 0), math.Cos(a))
	assertNear(t, "[0][1]", m.At(0, 1), math.Sin(a))
	assertNear(t, "[1][0]", m.At(1, 0), -math.Sin(a))
	assertNear(t, "[1][1]", m.At(1, 1), math.Cos(a))
	assertNear(t, "[2][2]", m.At(2, 2), 1)
}

func TestRotateInverse(t *testing.T) {
	for _, a := range []float64{0.1, 1, math.Pi / 2, 2.5} {
		assertMat4(t, "rotate(a)@rotate(-a)", Compose(Rotate(a, AxesXZ), Rotate(-a, AxesXZ)), mgl64.Ident4())
	}
}

func TestRotateSwappedAxesIsSignInverse(t *testing.T) {
	a := 0.7
	assertMat4(t, "rotate(a,(1,0))", Rotate(a, AxisPair{1, 0}), Rotate(-a, AxisPair{0, 1}))
}

func TestRotateInvalidAxesPanics(t *testing.T) {
	for _, axes := range []AxisPair{{0, 0}, {0, 3}, {-1, 1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Rotate(%v) did not panic", axes)
				}
			}()
			Rotate(1, axes)
		}()
	}
}

func TestTranslateMovesOrigin(t *testing.T) {
	got := ApplyRow(mgl64.Vec4{0, 0, 0, 1}, Translate(1, 2, 3))
	assertNear(t, "x", got[0], 1)
	assertNear(t, "y", got[1], 2)
	assertNear(t, "z", got[2], 3)
	assertNear(t, "w", got[3], 1)
}

func TestTranslateLeavesDirections(t *testing.T) {
	got := ApplyRow(mgl64.Vec4{1, 0, 0, 0}, Translate(5, 5, 5))
	assertNear(t, "x", got[0], 1)
	assertNear(t, "y", got[1], 0)
}

func TestApplyRowIsRowVectorProduct(t *testing.T) {
	m := Compose(Rotate(0.4, AxesXZ), Translate(1, -2, 3), Perspective(DefaultPerspective))
	v := mgl64.Vec4{2, -1, 0.5, 1}
	got := ApplyRow(v, m)
	for col := 0; col < 4; col++ {
		var want float64
		for row := 0; row < 4; row++ {
			want += v[row] * m.At(row, col)
		}
		assertNearTol(t, "component", got[col], want, 1e-12)
	}
}

func TestPerspectiveEntries(t *testing.T) {
	p := Perspective(DefaultPerspective)
	assertNear(t, "p[2][2]", p.At(2, 2), 1.0/1000)
	assertNear(t, "p[3][2]", p.At(3, 2), -0.0001)
	assertNear(t, "p[2][3]", p.At(2, 3), 1)
	assertNear(t, "p[3][3]", p.At(3, 3), 0)

	ip := InversePerspective(DefaultPerspective)
	assertNear(t, "ip[2][2]", ip.At(2, 2), 0)
	assertNear(t, "ip[3][2]", ip.At(3, 2), 1)
	assertNear(t, "ip[2][3]", ip.At(2, 3), -10000)
	assertNear(t, "ip[3][3]", ip.At(3, 3), 10)
}

// --- composition ---

func TestComposeEmptyIsIdentity(t *testing.T) {
	assertMat4(t, "Compose()", Compose(), mgl64.Ident4())
}

func TestComposeAppliesLeftFirst(t *testing.T) {
	// Scale then translate: (1,0) -> (2,0) -> (12,0).
	m := Compose(Scale(2, 2, 1), Translate(10, 0, 0))
	got := TransformPoint(m, Vec2{1, 0})
	assertNear(t, "x", got[0], 12)

	// Translate then scale: (1,0) -> (11,0) -> (22,0).
	m = Compose(Translate(10, 0, 0), Scale(2, 2, 1))
	got = TransformPoint(m, Vec2{1, 0})
	assertNear(t, "x", got[0], 22)
}

func TestComposeAssociative(t *testing.T) {
	a, b, c := Rotate(0.4, AxesXY), Translate(1, 2, 3), Scale(2, 0.5, 1)
	assertMat4(t, "assoc", Compose(Compose(a, b), c), Compose(a, Compose(b, c)))
}

func TestTranAndRotFinite(t *testing.T) {
	m := TranAndRot(10, 20, [3]float64{0.1, -0.2, 0.3}, DefaultPerspective)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.IsNaN(m.At(i, j)) || math.IsInf(m.At(i, j), 0) {
				t.Fatalf("entry [%d][%d] not finite: %v", i, j, m.At(i, j))
			}
		}
	}
}

func TestTranAndRotZeroIsIdentityMap(t *testing.T) {
	m := TranAndRot(10, 20, [3]float64{}, DefaultPerspective)
	for _, p := range []Vec2{{10, 20}, {15, 20}, {3, -7}, {0, 0}} {
		got := TransformPoint(m, p)
		assertVec2(t, "xy", Vec2{got[0], got[1]}, p, 1e-9)
		assertNear(t, "z", got[2], 0)
		assertNear(t, "w", got[3], 1)
	}
}

func TestTranAndRotPivot(t *testing.T) {
	tests := []struct {
		name string
		rot  [3]float64
		p    Vec2
		want mgl64.Vec4
	}{
		{"xy pivot", [3]float64{0, 0, 0.5}, Vec2{10, 20}, mgl64.Vec4{-0.8126851531803325, 22.345906623849487, 0, 1}},
		{"xy offset", [3]float64{0, 0, 0.5}, Vec2{15, 20}, mgl64.Vec4{3.5752276562715313, 24.7430343168705, 0, 1}},
		{"xy below", [3]float64{0, 0, 0.5}, Vec2{3, -7}, mgl64.Vec4{5.988726455900539, -4.70480131742, 0, 1}},
		// All three planes: XZ, then ZY, then XY. Any other order moves y by more than 1.
		{"all planes", [3]float64{0.1, -0.2, 0.3}, Vec2{15, 20}, mgl64.Vec4{63.04973826778071, 131.88753903739186, 5.448486442849514, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformPoint(TranAndRot(10, 20, tt.rot, DefaultPerspective), tt.p)
			for i := 0; i < 4; i++ {
				assertNearTol(t, "component", got[i], tt.want[i], 1e-6)
			}
		})
	}
}

// --- canvas model ---

func TestCanvasModelCorners(t *testing.T) {
	m := CanvasModel(CanvasRows, CanvasCols)
	tests := []struct {
		p      Vec2 // (row, col)
		clipXY Vec2
	}{
		{Vec2{0, 0}, Vec2{-1, 1}},
		{Vec2{0, CanvasCols}, Vec2{1, 1}},
		{Vec2{CanvasRows, CanvasCols}, Vec2{1, -1}},
		{Vec2{CanvasRows, 0}, Vec2{-1, -1}},
		{Vec2{CanvasRows / 2, CanvasCols / 2}, Vec2{0, 0}},
	}
	for _, tt := range tests {
		got := TransformPoint(m, tt.p)
		assertVec2(t, "clip", Vec2{got[0], got[1]}, tt.clipXY, 1e-12)
		assertNear(t, "w", got[3], 1)
	}
}
