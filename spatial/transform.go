// SPDX-License-Identifier: EPL-2.0

package spatial

import "math"

// Quat is a rotation quaternion. The zero value is not a valid rotation;
// use Identity.
type Quat struct {
	X, Y, Z, W float32
}

// Identity returns the identity rotation.
func Identity() Quat { return Quat{W: 1} }

// AxisAngle builds a rotation of angle radians around axis.
func AxisAngle(axis Vec3, angle float32) Quat {
	a := axis.NormalizeSafe(Up)
	s, c := math.Sincos(float64(angle) * 0.5)
	fs := float32(s)
	return Quat{a.X * fs, a.Y * fs, a.Z * fs, float32(c)}
}

// YawDegrees returns a rotation around +Y, the usual way listeners turn.
func YawDegrees(deg float32) Quat {
	return AxisAngle(Up, deg*math.Pi/180)
}

// Mul composes two rotations; the result applies r first, then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conjugate is the inverse of a unit quaternion.
func (q Quat) Conjugate() Quat { return Quat{-q.X, -q.Y, -q.Z, q.W} }

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Transform is a rigid transform: rotation followed by translation.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// At returns an unrotated transform at p.
func At(p Vec3) Transform {
	return Transform{Position: p, Rotation: Identity()}
}

func (t Transform) rotation() Quat {
	if t.Rotation == (Quat{}) {
		return Identity()
	}
	return t.Rotation
}

// Forward is the transform's +Z axis in world space.
func (t Transform) Forward() Vec3 { return t.rotation().Rotate(Forward) }

// Right is the transform's +X axis in world space.
func (t Transform) Right() Vec3 { return t.rotation().Rotate(Right) }

// InverseTransformPoint maps a world-space point into the transform's local space.
func (t Transform) InverseTransformPoint(p Vec3) Vec3 {
	return t.rotation().Conjugate().Rotate(p.Sub(t.Position))
}

// Angles returns the azimuth and elevation, in radians, of a local-space
// direction. A zero direction faces straight ahead.
func Angles(local Vec3) (azimuth, elevation float32) {
	horizontal := math.Hypot(float64(local.X), float64(local.Z))
	if horizontal == 0 && local.Y == 0 {
		return 0, 0
	}
	azimuth = float32(math.Atan2(float64(local.X), float64(local.Z)))
	elevation = float32(math.Atan2(float64(local.Y), horizontal))
	return azimuth, elevation
}
