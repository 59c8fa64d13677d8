package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"

	"github.com/yclihkclr/motion-policy-networks/utils"
)

// Pose represents a 6dof pose, position and orientation, with respect to the origin.
// The Point() method returns the position in (x, y, z) coordinates, and the Orientation() method
// returns an Orientation object, which has methods to parametrize the rotation in multiple ways.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// NewZeroPose returns a pose at (0,0,0) with the same orientation as whatever frame it is placed in.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := newDualQuaternionFromRotation(o)
	q.SetTranslation(p)
	return q
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in reference to.
func NewPoseFromPoint(point r3.Vector) Pose {
	return newDualQuaternionFromPoint(point)
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the origin.
func NewPoseFromOrientation(o Orientation) Pose {
	if o == nil {
		return NewZeroPose()
	}
	return newDualQuaternionFromRotation(o)
}

// Compose returns the composition of two poses, the result of applying a to b.
func Compose(a, b Pose) Pose {
	aq := newDualQuaternionFromPose(a)
	result := &dualQuaternion{aq.Transformation(newDualQuaternionFromPose(b).Number)}

	// Note: the resulting dual quaternion is not normalized if the two input dual quaternions are
	// not exactly normalized. Normalization is skipped to save operations.
	return result
}

// PoseInverse returns the inverse of the given pose, such that Compose(p, PoseInverse(p)) is the
// identity pose.
func PoseInverse(p Pose) Pose {
	q := newDualQuaternionFromPose(p)
	// quaternion conjugation of both parts; dualquat.Conj would also negate the dual part.
	return &dualQuaternion{dualquat.ConjQuat(q.Number)}
}

// TransformPoint applies the rotation and translation of the given pose to the given point.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return newDualQuaternionFromPose(p).transformPoint(pt)
}

// OrientDistDegrees returns the arclength between two orientations, in degrees.
func OrientDistDegrees(o1, o2 Orientation) float64 {
	return utils.RadToDeg(QuatToR4AA(OrientationBetween(o1, o2).Quaternion()).Theta)
}

// PoseAlmostCoincident checks if two poses approximately are at the same 3D coordinate location.
func PoseAlmostCoincident(a, b Pose) bool {
	return PoseAlmostCoincidentEps(a, b, 1e-8)
}

// PoseAlmostCoincidentEps checks if two poses approximately are at the same 3D coordinate location,
// with a user-defined epsilon.
func PoseAlmostCoincidentEps(a, b Pose, epsilon float64) bool {
	ptA, ptB := a.Point(), b.Point()
	return utils.Float64AlmostEqual(ptA.X, ptB.X, epsilon) &&
		utils.Float64AlmostEqual(ptA.Y, ptB.Y, epsilon) &&
		utils.Float64AlmostEqual(ptA.Z, ptB.Z, epsilon)
}

// PoseAlmostEqual checks if both the position and orientation of two poses are approximately equal.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostCoincident(a, b) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}
