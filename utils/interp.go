// SPDX-License-Identifier: EPL-2.0

package utils

// Lerp returns a + (b-a)*t. t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Unlerp is the inverse of Lerp: it returns where x sits between a and b.
// A degenerate range (a == b) returns 1 when x >= a and 0 otherwise.
func Unlerp(a, b, x float32) float32 {
	if a == b {
		if x >= a {
			return 1
		}
		return 0
	}
	return (x - a) / (b - a)
}

// Saturate clamps x to [0, 1].
func Saturate(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// CubicInterpolate performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position between y1 and y2 (0 <= x <= 1);
// y0 and y3 are the neighbouring samples.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}
