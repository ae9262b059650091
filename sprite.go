package bongocat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// QuadVertex is one corner of a sprite quad: a homogeneous position and a
// texture coordinate. UV.X follows the bbox's first axis (texture rows) and
// UV.Y its second axis (texture columns), both as fractions of the padded
// backing store.
type QuadVertex struct {
	Pos mgl64.Vec4
	UV  Vec2
}

// SpriteQuad holds four vertices in the fixed order (min,min), (min,max),
// (max,max), (max,min) of the source bbox. Renderers rely on this order for
// winding, so transforms never reorder it.
type SpriteQuad [4]QuadVertex

// NewSpriteQuad pairs the corners of box with the corners of the usable
// texture extent. When model is non-nil every position is multiplied by it.
func NewSpriteQuad(box BBox, extent Vec2, model *Transform4x4) SpriteQuad {
	q := SpriteQuad{
		{Pos: mgl64.Vec4{box.MinX, box.MinY, 0, 1}, UV: Vec2{0, 0}},
		{Pos: mgl64.Vec4{box.MinX, box.MaxY, 0, 1}, UV: Vec2{0, extent.Y}},
		{Pos: mgl64.Vec4{box.MaxX, box.MaxY, 0, 1}, UV: Vec2{extent.X, extent.Y}},
		{Pos: mgl64.Vec4{box.MaxX, box.MinY, 0, 1}, UV: Vec2{extent.X, 0}},
	}
	if model != nil {
		q = q.Transform(*model)
	}
	return q
}

// Transform returns a copy of q with every position multiplied by m.
// Texture coordinates are unchanged.
func (q SpriteQuad) Transform(m Transform4x4) SpriteQuad {
	for i := range q {
		q[i].Pos = ApplyRow(q[i].Pos, m)
	}
	return q
}

// PaddedSize returns the side of the square power-of-two backing store used
// for a rows x cols image. The side is always strictly larger than the
// longer edge.
func PaddedSize(rows, cols int) int {
	longest := max(rows, cols)
	if longest < 1 {
		return 1
	}
	return 1 << (int(math.Floor(math.Log2(float64(longest)))) + 1)
}

// TextureExtent returns the usable UV extent of a rows x cols image stored in
// its padded backing store.
func TextureExtent(rows, cols int) Vec2 {
	d := float64(PaddedSize(rows, cols))
	return Vec2{float64(rows) / d, float64(cols) / d}
}

// Layer is a static sprite of the mascot rig.
type Layer struct {
	Name   string
	Box    BBox
	Extent Vec2
}

// Quad returns the layer's quad translated by offset in canvas space and
// then mapped through model.
func (l Layer) Quad(offset Vec2, model Transform4x4) SpriteQuad {
	q := NewSpriteQuad(l.Box, l.Extent, nil)
	if offset != (Vec2{}) {
		q = q.Transform(Translate(offset.X, offset.Y, 0))
	}
	return q.Transform(model)
}

// KeySprite is a sprite shown while its key is held.
type KeySprite struct {
	ID     string
	Box    BBox
	Extent Vec2
}

// Quad returns the key sprite's quad mapped through model.
func (k KeySprite) Quad(model Transform4x4) SpriteQuad {
	return NewSpriteQuad(k.Box, k.Extent, &model)
}
