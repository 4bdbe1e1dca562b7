package geom

import "math"

// up is the global vertical direction.
var up = Vec3{0, 0, 1}

// RotationMatrix returns the Rodrigues rotation matrix for a rotation of
// theta radians about the given axis. The axis does not need to be
// normalized.
func RotationMatrix(axis Vec3, theta float64) Mat3 {
	n := axis.Norm()
	if n < Epsilon {
		// Rotation about nothing is the identity.
		return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	}
	u := axis.Scale(1 / n)
	c := math.Cos(theta)
	s := math.Sin(theta)
	t := 1 - c
	return Mat3{
		{c + u.X*u.X*t, u.X*u.Y*t - u.Z*s, u.X*u.Z*t + u.Y*s},
		{u.Y*u.X*t + u.Z*s, c + u.Y*u.Y*t, u.Y*u.Z*t - u.X*s},
		{u.Z*u.X*t - u.Y*s, u.Z*u.Y*t + u.X*s, c + u.Z*u.Z*t},
	}
}

// TransformationMatrix builds the global-to-local transformation from the
// element's local axes. Rows are x, y, z; the transpose maps local back
// to global.
func TransformationMatrix(x, y, z Vec3) Mat3 {
	return Mat3{
		{x.X, x.Y, x.Z},
		{y.X, y.Y, y.Z},
		{z.X, z.Y, z.Z},
	}
}

// LocalAxes derives the local coordinate system of a linear element from
// its two end points and its rotation angle about its own axis, following
// the OpenSees convention. The local x axis runs from pi to pj. For
// vertical members the z axis lies on the plan at the given angle;
// otherwise the y axis starts from the global up direction,
// orthogonalized against x and rotated about it by ang.
func LocalAxes(pi, pj Vec3, ang float64) (x, y, z Vec3, err error) {
	x, err = pj.Sub(pi).Unit()
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}

	if x.XY().Norm() < Epsilon {
		// Vertical member: x is straight up or down.
		z = Vec3{math.Cos(ang), math.Sin(ang), 0}
		y = z.Cross(x)
		return x, y, z, nil
	}

	y = up.Sub(x.Scale(up.Dot(x)))
	y, err = y.Unit()
	if err != nil {
		return Vec3{}, Vec3{}, Vec3{}, err
	}
	y = RotationMatrix(x, ang).MulVec(y)
	z = x.Cross(y)
	return x, y, z, nil
}
