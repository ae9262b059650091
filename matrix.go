package bongocat

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform4x4 is a homogeneous 4x4 transform. Entries are addressed with
// At(row, col)/Set(row, col) and points are row vectors multiplied on the
// left: v' = v @ M. Composition therefore reads left to right in the order
// transforms are applied.
type Transform4x4 = mgl64.Mat4

// AxisPair names the two axes a rotation block is written into.
type AxisPair [2]int

// Axis pairs used by TranAndRot.
var (
	AxesXZ = AxisPair{0, 2}
	AxesZY = AxisPair{2, 1}
	AxesXY = AxisPair{0, 1}
)

// PerspectiveCoefficients are the fixed entries of the stylized
// pseudo-perspective sandwich used to pivot a rotation around an arbitrary
// point. They are tuned by eye; InversePerspective is not the exact inverse
// of Perspective.
type PerspectiveCoefficients struct {
	Depth        float64 // Perspective [2][2]
	DepthBias    float64 // Perspective [3][2]
	InvDepthBias float64 // InversePerspective [2][3]
	InvW         float64 // InversePerspective [3][3]
	PivotDepth   float64 // z shift around the rotation block
}

// DefaultPerspective holds the coefficients the mascot rig was tuned with.
var DefaultPerspective = PerspectiveCoefficients{
	Depth:        1.0 / 1000,
	DepthBias:    -0.0001,
	InvDepthBias: -10000,
	InvW:         10,
	PivotDepth:   0.3,
}

// Scale returns a diagonal scaling matrix.
func Scale(sx, sy, sz float64) Transform4x4 {
	m := mgl64.Ident4()
	m.Set(0, 0, sx)
	m.Set(1, 1, sy)
	m.Set(2, 2, sz)
	return m
}

// Rotate returns a rotation by angle radians written into the plane of the
// given axes. Rotating about (i, j) and (j, i) are sign-inverse. Panics if
// the axes are not two distinct indices in [0, 3).
func Rotate(angle float64, axes AxisPair) Transform4x4 {
	i, j := axes[0], axes[1]
	if i == j || i < 0 || j < 0 || i > 2 || j > 2 {
		panic(fmt.Sprintf("bongocat: invalid rotation axes %v", axes))
	}
	sin, cos := math.Sincos(angle)
	m := mgl64.Ident4()
	m.Set(i, i, cos)
	m.Set(i, j, sin)
	m.Set(j, i, -sin)
	m.Set(j, j, cos)
	return m
}

// Translate returns a matrix whose translation row (row 3) is (dx, dy, dz).
func Translate(dx, dy, dz float64) Transform4x4 {
	m := mgl64.Ident4()
	m.Set(3, 0, dx)
	m.Set(3, 1, dy)
	m.Set(3, 2, dz)
	return m
}

// Perspective returns the forward pseudo-perspective warp.
func Perspective(c PerspectiveCoefficients) Transform4x4 {
	m := mgl64.Ident4()
	m.Set(2, 2, c.Depth)
	m.Set(3, 2, c.DepthBias)
	m.Set(2, 3, 1)
	m.Set(3, 3, 0)
	return m
}

// InversePerspective returns the approximate inverse of Perspective.
func InversePerspective(c PerspectiveCoefficients) Transform4x4 {
	m := mgl64.Ident4()
	m.Set(2, 2, 0)
	m.Set(3, 2, 1)
	m.Set(2, 3, c.InvDepthBias)
	m.Set(3, 3, c.InvW)
	return m
}

// Compose multiplies the given matrices left to right. With row vectors the
// leftmost matrix is applied first. Compose() is the identity.
func Compose(ms ...Transform4x4) Transform4x4 {
	out := mgl64.Ident4()
	for _, m := range ms {
		out = out.Mul4(m)
	}
	return out
}

// TranAndRot builds a rotation that pivots around (dx, dy) instead of the
// origin. rot holds the angles for the XZ, ZY and XY planes, applied in that
// order between two perspective sandwiches.
func TranAndRot(dx, dy float64, rot [3]float64, c PerspectiveCoefficients) Transform4x4 {
	p := Perspective(c)
	ip := InversePerspective(c)
	return Compose(
		p, Translate(-dx, -dy, 0), ip,
		Translate(0, 0, -c.PivotDepth),
		Rotate(rot[0], AxesXZ), Rotate(rot[1], AxesZY), Rotate(rot[2], AxesXY),
		Translate(0, 0, c.PivotDepth),
		p, Translate(dx, dy, 0), ip,
	)
}

// ApplyRow returns the row vector v multiplied by m (v @ m).
func ApplyRow(v mgl64.Vec4, m Transform4x4) mgl64.Vec4 {
	return m.Transpose().Mul4x1(v)
}

// TransformPoint maps the canvas point (x, y, 0, 1) through m.
func TransformPoint(m Transform4x4, p Vec2) mgl64.Vec4 {
	return ApplyRow(mgl64.Vec4{p.X, p.Y, 0, 1}, m)
}

// CanvasModel returns the model matrix that maps a canvas of the given size
// (rows x cols) into clip space: rows run top to bottom and cols left to
// right on screen.
func CanvasModel(rows, cols float64) Transform4x4 {
	return Compose(
		Scale(2/rows, 2/cols, 1),
		Translate(-1, -1, 0),
		Rotate(-math.Pi/2, AxesXY),
	)
}
