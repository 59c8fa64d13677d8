// Package spatialmath defines spatial mathematical operations.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object or a frame of reference in 3D Euclidean space.
type Orientation interface {
	Quaternion() quat.Number
	AxisAngles() *R4AA
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &quaternion{1, 0, 0, 0}
}

// NewOrientationFromQuaternion returns an Orientation from the given quaternion, normalized to a
// unit quaternion.
func NewOrientationFromQuaternion(q quat.Number) Orientation {
	norm := quat.Abs(q)
	if norm == 0 {
		return NewZeroOrientation()
	}
	normed := quaternion(quat.Scale(1/norm, q))
	return &normed
}

// OrientationBetween returns the orientation representing the difference between the two given Orientations.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := quaternion(quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion())))
	return &q
}

// OrientationAlmostEqual will return a bool describing whether two Orientations are approximately the same.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Note that
// q and -q describe the same rotation, and this comparison accounts for that.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	b2 := quat.Scale(-1, b)
	return quatAlmostEqual(a, b, tol) || quatAlmostEqual(a, b2, tol)
}

func quatAlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) < tol &&
		math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol &&
		math.Abs(a.Kmag-b.Kmag) < tol
}

// QuatToR4AA converts a quaternion to an R4 axis angle in the same way the C++ Eigen library does.
// The angle returned is the shortest-path angle, in [0, pi].
func QuatToR4AA(q quat.Number) *R4AA {
	// q and -q represent the same rotation; flipping the sign keeps acos on the short arc.
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	w := q.Real
	if w > 1 {
		w = 1
	}
	denom := math.Sqrt(1 - w*w)
	theta := 2 * math.Acos(w)
	if denom < 1e-6 {
		// angle is indistinguishable from zero, axis is arbitrary
		return &R4AA{Theta: theta, RZ: 1}
	}
	return &R4AA{theta, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}

// quaternion is an orientation in quaternion representation.
type quaternion quat.Number

// Quaternion returns orientation in quaternion representation.
func (q *quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// AxisAngles returns the orientation in axis angle representation.
func (q *quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(q.Quaternion())
}
