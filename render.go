package bongocat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Only touched from the game loop.
var whitePixelImage *ebiten.Image

// ensureWhitePixel returns the 1x1 white image used for untextured fills,
// creating it on first use.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(ColorWhite.toRGBA())
	}
	return whitePixelImage
}

// quadIndices splits a SpriteQuad into two triangles sharing the diagonal
// from the first to the third corner.
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}

// clipToScreen converts a homogeneous clip-space position into window
// pixels. Clip y points up, window y points down.
func clipToScreen(v mgl64.Vec4, w, h float64) Vec2 {
	x, y := v[0], v[1]
	if v[3] != 0 && v[3] != 1 {
		x /= v[3]
		y /= v[3]
	}
	return Vec2{(x + 1) / 2 * w, (1 - y) / 2 * h}
}

// appendQuadVertices appends the four corners of q in window pixels. UV.X
// indexes texture rows, so it becomes SrcY.
func appendQuadVertices(dst []ebiten.Vertex, q SpriteQuad, side, w, h, alpha float64) []ebiten.Vertex {
	a := float32(alpha)
	for _, c := range q {
		p := clipToScreen(c.Pos, w, h)
		dst = append(dst, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   float32(c.UV.Y * side),
			SrcY:   float32(c.UV.X * side),
			ColorR: a, ColorG: a, ColorB: a, ColorA: a,
		})
	}
	return dst
}

// projectCurve maps canvas-space curve points through model into window
// pixels.
func projectCurve(dst, curve []Vec2, model Transform4x4, w, h float64) []Vec2 {
	for _, p := range curve {
		dst = append(dst, clipToScreen(TransformPoint(model, p), w, h))
	}
	return dst
}

// buildFan triangulates a closed polygon as a fan around its first point.
// Drawn with the even-odd rule, the fan fills self-intersecting outlines the
// same way a scanline polygon fill does.
func buildFan(verts []ebiten.Vertex, inds []uint16, points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	base := uint16(len(verts))
	r, g, b, a := c.premul()
	for _, p := range points {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for i := 0; i < n-2; i++ {
		inds = append(inds, base, base+uint16(i+1), base+uint16(i+2))
	}
	return verts, inds
}

// buildRibbon turns a polyline into a strip of quads width pixels wide.
// For N points: 2N vertices, 6(N-1) indices.
func buildRibbon(verts []ebiten.Vertex, inds []uint16, points []Vec2, width float64, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 2 || width <= 0 {
		return verts, inds
	}
	base := uint16(len(verts))
	halfW := width / 2
	r, g, b, a := c.premul()

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(points[0], points[1])
		case n - 1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			// Average of adjacent segment normals, stretched to keep the
			// width at the joint and clamped at sharp corners.
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			if ln := math.Hypot(nx, ny); ln > 1e-10 {
				nx /= ln
				ny /= ln
			} else {
				nx, ny = nx0, ny0
			}
			if dot := nx0*nx + ny0*ny; dot > 0.1 {
				scale := math.Min(1/dot, 2)
				nx *= scale
				ny *= scale
			}
		}
		p := points[i]
		verts = append(verts,
			ebiten.Vertex{
				DstX: float32(p.X + nx*halfW), DstY: float32(p.Y + ny*halfW),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			},
			ebiten.Vertex{
				DstX: float32(p.X - nx*halfW), DstY: float32(p.Y - ny*halfW),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			},
		)
	}
	for i := 0; i < n-1; i++ {
		v := base + uint16(i*2)
		inds = append(inds, v, v+1, v+2, v+1, v+3, v+2)
	}
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// Renderer draws Frames with ebiten. Vertex and index buffers grow to their
// high-water mark and are reused across frames.
type Renderer struct {
	assets *AssetTable
	model  Transform4x4

	verts []ebiten.Vertex
	inds  []uint16
	path  []Vec2
}

// NewRenderer returns a renderer for the sprites in assets. model is the
// matrix used for the paw stroke; sprite quads arrive already transformed.
func NewRenderer(assets *AssetTable, model Transform4x4) *Renderer {
	return &Renderer{assets: assets, model: model}
}

// Draw paints f onto dst: layers in manifest order, then held key sprites,
// then the paw stroke filled white and outlined black. opacity scales the
// whole picture.
func (r *Renderer) Draw(dst *ebiten.Image, f *Frame, lineWidth, opacity float64) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	for i := range f.Layers {
		tex, ok := r.assets.LayerTexture(f.Layers[i].Name)
		if !ok {
			continue
		}
		r.drawQuad(dst, tex, &f.Layers[i], w, h, opacity)
	}
	for i := range f.Keys {
		tex, ok := r.assets.KeyTexture(f.Keys[i].Name)
		if !ok {
			continue
		}
		r.drawQuad(dst, tex, &f.Keys[i], w, h, opacity)
	}

	if len(f.Curve) < 3 {
		return
	}
	r.path = projectCurve(r.path[:0], f.Curve, r.model, w, h)

	fill := ColorWhite
	fill.A = opacity
	r.verts, r.inds = buildFan(r.verts[:0], r.inds[:0], r.path, fill)
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.FillRule = ebiten.FillRuleEvenOdd
	op.AntiAlias = true
	dst.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), &op)

	outline := ColorBlack
	outline.A = opacity
	r.verts, r.inds = buildRibbon(r.verts[:0], r.inds[:0], r.path, lineWidth, outline)
	op.FillRule = ebiten.FillRuleNonZero
	dst.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), &op)
}

func (r *Renderer) drawQuad(dst *ebiten.Image, tex Texture, q *DrawQuad, w, h, opacity float64) {
	r.verts = appendQuadVertices(r.verts[:0], q.Quad, float64(tex.Side), w, h, q.Alpha*opacity)
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Filter = ebiten.FilterLinear
	dst.DrawTriangles(r.verts, quadIndices, tex.Image, &op)
}

// markerSize is the side of the debug marker square, in pixels.
const markerSize = 6

// DrawMarker paints a small filled square centered on the canvas point p.
func (r *Renderer) DrawMarker(dst *ebiten.Image, p Vec2, c Color) {
	b := dst.Bounds()
	s := clipToScreen(TransformPoint(r.model, p), float64(b.Dx()), float64(b.Dy()))
	const h = markerSize / 2
	square := []Vec2{{s.X - h, s.Y - h}, {s.X + h, s.Y - h}, {s.X + h, s.Y + h}, {s.X - h, s.Y + h}}
	r.verts, r.inds = buildFan(r.verts[:0], r.inds[:0], square, c)
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), &op)
}
