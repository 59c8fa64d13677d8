// Package franka contains a kinematic model of the Franka Emika Panda arm and a point sampler for
// its surface geometry.
package franka

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// EndEffectorFrame is the name of the frame whose pose Transform reports: the TCP of the gripper.
const EndEffectorFrame = "right_gripper"

// DoF is the number of actuated joints of the arm.
const DoF = 7

// dhParam is one row of the modified Denavit-Hartenberg table: the fixed part of the transform
// from the previous joint frame to this one, applied before the joint rotation.
type dhParam struct {
	a     float64
	d     float64
	alpha float64
}

// Modified DH table of the Panda, from the Franka Control Interface documentation. Units are
// meters and radians.
var dhParams = [DoF]dhParam{
	{0, 0.333, 0},
	{0, 0, -math.Pi / 2},
	{0, 0.316, math.Pi / 2},
	{0.0825, 0, math.Pi / 2},
	{-0.0825, 0.384, -math.Pi / 2},
	{0, 0, math.Pi / 2},
	{0.088, 0, math.Pi / 2},
}

// Joint limits of the physical arm, in radians.
var jointLimits = []referenceframe.Limit{
	{Min: -2.8973, Max: 2.8973},
	{Min: -1.7628, Max: 1.7628},
	{Min: -2.8973, Max: 2.8973},
	{Min: -3.0718, Max: -0.0698},
	{Min: -2.8973, Max: 2.8973},
	{Min: -0.0175, Max: 3.7525},
	{Min: -2.8973, Max: 2.8973},
}

// Arm is a kinematic model of the Panda. It implements referenceframe.Model against the
// EndEffectorFrame. A single Arm is safe to reuse serially across many configurations.
type Arm struct {
	name       string
	jointFixed []spatialmath.Pose
	eeOffset   spatialmath.Pose
}

// NewArm returns a Panda kinematic model with the given name.
func NewArm(name string) *Arm {
	fixed := make([]spatialmath.Pose, 0, DoF)
	for _, dh := range dhParams {
		step := spatialmath.Compose(
			spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: dh.alpha, RX: 1}),
			spatialmath.NewPose(r3.Vector{X: dh.a, Z: dh.d}, nil),
		)
		fixed = append(fixed, step)
	}

	// flange, then the hand at its 45 degree mounting and the TCP between the fingertips
	eeOffset := spatialmath.Compose(
		spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.107}),
		spatialmath.Compose(
			spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: -math.Pi / 4, RZ: 1}),
			spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.1034}),
		),
	)

	return &Arm{name: name, jointFixed: fixed, eeOffset: eeOffset}
}

// Name returns the name of the arm.
func (a *Arm) Name() string {
	return a.name
}

// DoF returns the per-joint limits of the arm.
func (a *Arm) DoF() []referenceframe.Limit {
	limits := make([]referenceframe.Limit, DoF)
	copy(limits, jointLimits)
	return limits
}

// Transform computes the pose of the end-effector frame at the given configuration.
func (a *Arm) Transform(inputs []referenceframe.Input) (spatialmath.Pose, error) {
	poses, err := a.LinkPoses(inputs)
	if err != nil {
		return nil, err
	}
	return poses[len(poses)-1], nil
}

// LinkPoses computes the pose of every link frame of the arm at the given configuration: the base,
// each of the seven joint frames, and finally the end-effector frame.
func (a *Arm) LinkPoses(inputs []referenceframe.Input) ([]spatialmath.Pose, error) {
	if len(inputs) != DoF {
		return nil, referenceframe.NewIncorrectInputLengthError(len(inputs), DoF)
	}
	poses := make([]spatialmath.Pose, 0, DoF+2)
	cur := spatialmath.NewZeroPose()
	poses = append(poses, cur)
	for i, input := range inputs {
		joint := spatialmath.Compose(
			a.jointFixed[i],
			spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: input.Value, RZ: 1}),
		)
		cur = spatialmath.Compose(cur, joint)
		poses = append(poses, cur)
	}
	poses = append(poses, spatialmath.Compose(cur, a.eeOffset))
	return poses, nil
}
