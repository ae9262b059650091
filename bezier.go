package bongocat

import "math"

// BezierCurve samples the Bezier curve defined by points at samples parameter
// values evenly spaced over [0, 1], endpoints included. The degree is
// len(points)-1 and the curve is evaluated in Bernstein form. The result is
// freshly allocated on every call.
func BezierCurve(points []Vec2, samples int) ([]Vec2, error) {
	if samples < 2 {
		return nil, ErrInvalidSampleCount
	}
	out := make([]Vec2, samples)
	if len(points) == 0 {
		return out[:0], nil
	}

	n := len(points) - 1
	binom := binomials(n)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		u := 1 - t
		var p Vec2
		for j, cp := range points {
			w := binom[j] * math.Pow(u, float64(n-j)) * math.Pow(t, float64(j))
			p.X += w * cp.X
			p.Y += w * cp.Y
		}
		out[i] = p
	}
	return out, nil
}

// binomials returns the row C(n, 0..n) of Pascal's triangle.
func binomials(n int) []float64 {
	row := make([]float64, n+1)
	row[0] = 1
	for k := 1; k <= n; k++ {
		row[k] = row[k-1] * float64(n-k+1) / float64(k)
	}
	return row
}
