package bongocat

import (
	"errors"
	"image/color"
	"math"
)

// Vec2 is a 2D point or direction in canvas space. Value type, no identity.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// BBox is an axis-aligned box in canvas space: (MinX, MinY, MaxX, MaxY).
// The first axis is the canvas row axis, matching the asset manifests.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains reports whether (x, y) lies inside the box. Edges are inside.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// premul returns the premultiplied components as vertex colors.
func (c Color) premul() (r, g, b, a float32) {
	a64 := clamp01(c.A)
	return float32(clamp01(c.R) * a64), float32(clamp01(c.G) * a64), float32(clamp01(c.B) * a64), float32(a64)
}

// toRGBA converts c to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	r, g, b, a := c.premul()
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: uint8(a * 255)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Errors returned by the geometry core. Test with errors.Is.
var (
	// ErrSingularSystem is returned when a homography cannot be solved
	// because the point correspondences are degenerate.
	ErrSingularSystem = errors.New("bongocat: singular homography system")

	// ErrInvalidSampleCount is returned when a curve is sampled at fewer
	// than two parameter values.
	ErrInvalidSampleCount = errors.New("bongocat: bezier sample count must be at least 2")

	// ErrDegenerateGeometry is returned when trajectory synthesis has to
	// normalize a zero-length direction.
	ErrDegenerateGeometry = errors.New("bongocat: degenerate trajectory geometry")
)

// geomEpsilon is the shortest direction length trajectory synthesis will
// normalize.
const geomEpsilon = 1e-9
