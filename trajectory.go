package bongocat

import (
	"fmt"
	"math"
)

// TrajectoryShape holds the stylistic constants that shape the paw stroke.
// They were tuned by eye against the mascot art, not derived.
type TrajectoryShape struct {
	LiftDirection Vec2    // tangent of the paw leaving the shoulder
	LiftScale     float64 // fraction of the shoulder->cursor distance
	BumpDistance  float64 // width of the downstroke bump at the cursor
	LandDirection Vec2    // tangent of the paw landing back on the body
	LandScale     float64 // fraction of the bump->finish distance
	Push          float64 // length of the bridging handles around the bump

	SegmentSamples int // samples per segment before smoothing
	CurveSamples   int // samples of the smoothed stroke

	PawAnchor Vec2 // rest position of the paw sprite
}

// DefaultTrajectoryShape matches the shipped mascot rig.
var DefaultTrajectoryShape = TrajectoryShape{
	LiftDirection:  Vec2{0.69, -0.7237},
	LiftScale:      0.5,
	BumpDistance:   45,
	LandDirection:  Vec2{0.8, -0.6},
	LandScale:      0.25,
	Push:           20,
	SegmentSamples: 5,
	CurveSamples:   30,
	PawAnchor:      Vec2{124, 203},
}

// Trajectory is one frame's paw stroke.
type Trajectory struct {
	// Curve is the smoothed stroke, CurveSamples points from start to finish.
	Curve []Vec2
	// PawOffset translates the paw layer so it sits on the stroke.
	PawOffset Vec2

	// Control point sets of the three segments, kept for debug drawing.
	Lift, Bridge, Land []Vec2
}

// SynthesizeTrajectory builds the paw stroke from the shoulder (start) to the
// cursor (control) and back to the body (finish). drawOffset is the
// configured constant offset added to the paw position.
//
// Three Bezier segments are built: a lift from start to the cursor, a short
// bridge that curls around a bump beside the cursor, and a landing from the
// bump to finish. Each is sampled, the samples are concatenated and the
// result is smoothed through one more Bezier pass. Any zero-length direction
// returns ErrDegenerateGeometry.
func SynthesizeTrajectory(start, finish, control, drawOffset Vec2, shape TrajectoryShape) (Trajectory, error) {
	liftHandle := start.Add(shape.LiftDirection.Scale(control.Sub(start).Len() * shape.LiftScale))

	// Perpendicular of (liftHandle -> control), rotated toward the body.
	perp := Vec2{liftHandle.Y - control.Y, control.X - liftHandle.X}
	bump, err := along(control, perp, shape.BumpDistance, "bump")
	if err != nil {
		return Trajectory{}, err
	}

	landHandle := finish.Add(shape.LandDirection.Scale(finish.Sub(bump).Len() * shape.LandScale))

	nearControl, err := along(control, control.Sub(landHandle), shape.Push, "control handle")
	if err != nil {
		return Trajectory{}, err
	}
	nearBump, err := along(bump, bump.Sub(landHandle), shape.Push, "bump handle")
	if err != nil {
		return Trajectory{}, err
	}

	tr := Trajectory{
		Lift:   []Vec2{start, liftHandle, control},
		Bridge: []Vec2{control, nearControl, nearBump, bump},
		Land:   []Vec2{bump, landHandle, finish},
	}

	joined := make([]Vec2, 0, 3*shape.SegmentSamples)
	for _, seg := range [][]Vec2{tr.Lift, tr.Bridge, tr.Land} {
		pts, err := BezierCurve(seg, shape.SegmentSamples)
		if err != nil {
			return Trajectory{}, err
		}
		joined = append(joined, pts...)
	}
	tr.Curve, err = BezierCurve(joined, shape.CurveSamples)
	if err != nil {
		return Trajectory{}, err
	}

	tr.PawOffset = control.Add(bump).Scale(0.5).Add(drawOffset).Sub(shape.PawAnchor)
	return tr, nil
}

// along returns from + dir normalized to length dist. NaN and infinite
// directions count as degenerate.
func along(from, dir Vec2, dist float64, what string) (Vec2, error) {
	l := dir.Len()
	if !(l >= geomEpsilon) || math.IsInf(l, 0) {
		return Vec2{}, fmt.Errorf("%w: zero-length %s direction", ErrDegenerateGeometry, what)
	}
	return from.Add(dir.Scale(dist / l)), nil
}
