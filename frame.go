package bongocat

// PawLayerName is the layer moved along with the paw stroke.
const PawLayerName = "mouse"

// Canvas and window dimensions of the shipped rig. The canvas is addressed
// (row, col); the window is wide, so rows run vertically on screen.
const (
	CanvasRows   = 354
	CanvasCols   = 612
	WindowWidth  = CanvasCols
	WindowHeight = CanvasRows
)

// AnimationConstants gathers every stylistic tunable of the rig in one place
// so tests and alternative rigs can override them.
type AnimationConstants struct {
	Perspective PerspectiveCoefficients
	Trajectory  TrajectoryShape
	TargetQuad  [4]Vec2 // where the screen corners land in canvas space
	CanvasRows  float64
	CanvasCols  float64
}

// DefaultConstants returns the constants of the shipped rig.
func DefaultConstants() AnimationConstants {
	return AnimationConstants{
		Perspective: DefaultPerspective,
		Trajectory:  DefaultTrajectoryShape,
		TargetQuad:  DefaultTargetQuad,
		CanvasRows:  CanvasRows,
		CanvasCols:  CanvasCols,
	}
}

// ScreenMapping converts raw screen coordinates into canvas space and knows
// where the mascot window sits on screen.
type ScreenMapping struct {
	H      Homography
	Screen Vec2 // monitor size in pixels
	Window Vec2 // window size in pixels
}

// NewScreenMapping solves the screen -> canvas homography for a monitor of
// the given size.
func NewScreenMapping(screen, window Vec2, target [4]Vec2) (ScreenMapping, error) {
	h, err := SolveHomography(ScreenCorners(screen.X, screen.Y), target)
	if err != nil {
		return ScreenMapping{}, err
	}
	return ScreenMapping{H: h, Screen: screen, Window: window}, nil
}

// ToLocal maps a screen point into canvas space.
func (m ScreenMapping) ToLocal(p Vec2) Vec2 {
	return m.H.Apply(p)
}

// WindowRect returns the on-screen rectangle of the mascot window: docked to
// the bottom-right corner and lifted by moveUp pixels.
func (m ScreenMapping) WindowRect(moveUp float64) BBox {
	return BBox{
		MinX: m.Screen.X - m.Window.X,
		MinY: m.Screen.Y - m.Window.Y - moveUp,
		MaxX: m.Screen.X,
		MaxY: m.Screen.Y - moveUp,
	}
}

// Hovering reports whether the screen point p lies over the mascot window.
func (m ScreenMapping) Hovering(p Vec2, moveUp float64) bool {
	return m.WindowRect(moveUp).Contains(p.X, p.Y)
}

// AnimationContext is everything a frame needs besides the per-tick
// snapshots. It is built once at startup and passed down explicitly.
type AnimationContext struct {
	Model   Transform4x4
	Mapping ScreenMapping
	Shape   TrajectoryShape
	Layers  []Layer     // draw order
	Keys    []KeySprite // draw order
}

// DrawQuad is a sprite quad ready for the renderer.
type DrawQuad struct {
	Name  string
	Quad  SpriteQuad
	Alpha float64
}

// Frame is the geometry of one tick. Nothing in it is retained between ticks.
type Frame struct {
	Control   Vec2   // cursor in canvas space
	Curve     []Vec2 // paw stroke in canvas space; nil when skipped
	PawOffset Vec2
	Layers    []DrawQuad
	Keys      []DrawQuad
	Hovering  bool

	// Err is the trajectory error that caused the curve to be skipped.
	Err error
}

// ComputeFrame derives one frame from the current snapshots. keyAlpha gives
// the opacity of each visible key sprite; when nil, held keys are drawn
// opaque and everything else is hidden. fallbackPaw is used as the paw offset
// when the trajectory is degenerate this tick.
//
// ComputeFrame never fails: a degenerate trajectory is reported in Frame.Err
// with Curve left nil.
func ComputeFrame(ctx *AnimationContext, cfg *Config, in *InputSnapshot, keyAlpha map[string]float64, fallbackPaw Vec2) Frame {
	f := Frame{
		Control:  ctx.Mapping.ToLocal(in.Cursor),
		Hovering: ctx.Mapping.Hovering(in.Cursor, cfg.MoveUp),
	}

	tr, err := SynthesizeTrajectory(cfg.BezierStart, cfg.BezierFinish, f.Control, cfg.DrawOffset, ctx.Shape)
	if err != nil {
		f.Err = err
		f.PawOffset = fallbackPaw
	} else {
		f.Curve = tr.Curve
		f.PawOffset = tr.PawOffset
	}

	f.Layers = make([]DrawQuad, 0, len(ctx.Layers))
	for _, l := range ctx.Layers {
		var off Vec2
		if l.Name == PawLayerName {
			off = f.PawOffset
		}
		f.Layers = append(f.Layers, DrawQuad{Name: l.Name, Quad: l.Quad(off, ctx.Model), Alpha: 1})
	}

	for _, k := range ctx.Keys {
		alpha := 0.0
		if keyAlpha != nil {
			alpha = keyAlpha[k.ID]
		} else if in.Pressed(k.ID) {
			alpha = 1
		}
		if alpha <= 0 {
			continue
		}
		f.Keys = append(f.Keys, DrawQuad{Name: k.ID, Quad: k.Quad(ctx.Model), Alpha: alpha})
	}
	return f
}
