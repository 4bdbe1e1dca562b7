// Package geom provides the planar and spatial primitives the model is
// built from, along with the project-wide numeric constants.
package geom

import (
	"errors"
	"math"
)

const (
	// Epsilon is the coordinate fudge distance. Two points closer than
	// this are the same point.
	Epsilon = 1e-6

	// Alpha weighs the y coordinate in the node ordering key y*Alpha + x,
	// so nodes sort row-major on the plan.
	Alpha = 1e4

	// G is the gravitational acceleration in in/s^2 (lb-in-s unit system).
	G = 386.22
)

// ErrZeroLength is returned when a direction is requested from two
// coincident points.
var ErrZeroLength = errors.New("zero-length vector has no direction")

// Vec2 is a point or direction on the plan (x east, y north).
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return v.Sub(w).Norm() }

// Unit returns v normalized to unit length.
func (v Vec2) Unit() (Vec2, error) {
	n := v.Norm()
	if n < Epsilon {
		return Vec2{}, ErrZeroLength
	}
	return Vec2{v.X / n, v.Y / n}, nil
}

// Angle returns the direction of v measured counterclockwise from the
// positive x axis, in (-pi, pi].
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Vec3 is a point or direction in space (z up).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Dist returns the distance between v and w.
func (v Vec3) Dist(w Vec3) float64 { return v.Sub(w).Norm() }

// Unit returns v normalized to unit length.
func (v Vec3) Unit() (Vec3, error) {
	n := v.Norm()
	if n < Epsilon {
		return Vec3{}, ErrZeroLength
	}
	return v.Scale(1 / n), nil
}

// XY projects v onto the plan.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float64

// MulVec returns m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transpose of m. For an orthonormal transformation
// this is its inverse.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// Solve2 solves the 2x2 system [a b; c d] * [x y]' = [e f]'. ok is false
// when the system is singular within Epsilon.
func Solve2(a, b, c, d, e, f float64) (x, y float64, ok bool) {
	det := a*d - b*c
	if math.Abs(det) <= Epsilon {
		return 0, 0, false
	}
	return (e*d - b*f) / det, (a*f - e*c) / det, true
}

// AngReduce wraps an angle into [0, 2*pi).
func AngReduce(a float64) float64 {
	twoPi := 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
