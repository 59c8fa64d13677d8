// Package referenceframe defines joint-space inputs, per-joint limits, and the kinematic model
// contract used to move between joint configurations and end-effector poses.
package referenceframe

import (
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// OOBErrString is a string that all out-of-bounds errors contain, so that they can be checked for
// distinct from other errors.
const OOBErrString = "input out of bounds"

// Limit represents the limits of motion for a joint.
type Limit struct {
	Min float64
	Max float64
}

// Model is a kinematic model of a robot. Transform computes the pose of the model's end-effector
// frame at the given configuration; it must be deterministic and pure.
type Model interface {
	Name() string
	DoF() []Limit
	Transform(inputs []Input) (spatialmath.Pose, error)
}
