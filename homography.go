package bongocat

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform acting on homogeneous 2D column
// vectors (x, y, 1). The bottom-right entry is normalized to 1.
type Homography struct {
	m mgl64.Mat3
}

// DefaultTargetQuad is where the monitor corners (top-left, top-right,
// bottom-right, bottom-left) land in canvas space: the quad the paw can reach
// on the mascot's desk.
var DefaultTargetQuad = [4]Vec2{{254, 135}, {212, 70}, {187, 111}, {232, 192}}

// ScreenCorners returns the corners of a w x h screen in the order
// top-left, top-right, bottom-right, bottom-left.
func ScreenCorners(w, h float64) [4]Vec2 {
	return [4]Vec2{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

// SolveHomography computes the projective transform mapping each src point to
// the matching dst point. It solves the 8x8 linear system given by the four
// correspondences. Degenerate configurations, such as three collinear
// points, return ErrSingularSystem.
func SolveHomography(src, dst [4]Vec2) (Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		// mat.Condition: the LU factorization hit a zero or near-zero pivot.
		return Homography{}, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}
	for k := 0; k < 8; k++ {
		if f := h.AtVec(k); math.IsNaN(f) || math.IsInf(f, 0) {
			return Homography{}, fmt.Errorf("%w: non-finite coefficient h%d", ErrSingularSystem, k)
		}
	}

	m := mgl64.Mat3{}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			k := row*3 + col
			if k == 8 {
				m.Set(row, col, 1)
				continue
			}
			m.Set(row, col, h.AtVec(k))
		}
	}
	return Homography{m: m}, nil
}

// Matrix returns the 3x3 matrix. Entries are addressed with At(row, col).
func (h Homography) Matrix() mgl64.Mat3 {
	return h.m
}

// Apply maps p through the homography and divides by the resulting Z. Points
// on the line at infinity map to infinite coordinates.
func (h Homography) Apply(p Vec2) Vec2 {
	r := h.m.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return Vec2{r[0] / r[2], r[1] / r[2]}
}
