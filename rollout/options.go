package rollout

import (
	"github.com/yclihkclr/motion-policy-networks/pointcloud"
)

// Default values for planning options. The point counts and thresholds are those the policy
// network was trained against; the thresholds are tuned constants, not invariants.
const (
	defaultNumRobotPoints    = 2048
	defaultNumObstaclePoints = 4096
	defaultNumTargetPoints   = 128

	// Give up after this many prediction steps.
	defaultMaxRolloutLength = 150

	// Interactive use wants an answer quickly and accepts more failures.
	defaultInteractiveRolloutLength = 30

	// The rollout succeeds when the end effector is within this distance of the target, in the
	// length units of the robot model (meters)...
	defaultGoalPositionThreshold = 0.01

	// ...and within this many degrees of the target orientation, simultaneously.
	defaultGoalOrientationThresholdDeg = 15.

	// random seed for obstacle subsampling.
	defaultRandomSeed = 0
)

// PlannerOptions specify how a Planner builds scenes and when it stops.
type PlannerOptions struct {
	// Sizes of the three scene cloud segments, fixed for the lifetime of a plan.
	NumRobotPoints    int
	NumObstaclePoints int
	NumTargetPoints   int

	// Max number of policy queries per plan.
	MaxRolloutLength int

	GoalPositionThreshold       float64
	GoalOrientationThresholdDeg float64

	// Seed for obstacle point subsampling; fixed by default so plans are reproducible.
	RandomSeed int64
}

// NewBasicPlannerOptions returns planning options with the offline-evaluation step budget.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{
		NumRobotPoints:              defaultNumRobotPoints,
		NumObstaclePoints:           defaultNumObstaclePoints,
		NumTargetPoints:             defaultNumTargetPoints,
		MaxRolloutLength:            defaultMaxRolloutLength,
		GoalPositionThreshold:       defaultGoalPositionThreshold,
		GoalOrientationThresholdDeg: defaultGoalOrientationThresholdDeg,
		RandomSeed:                  defaultRandomSeed,
	}
}

// NewInteractivePlannerOptions returns planning options with the short step budget used when a
// person is waiting on the answer.
func NewInteractivePlannerOptions() *PlannerOptions {
	opt := NewBasicPlannerOptions()
	opt.MaxRolloutLength = defaultInteractiveRolloutLength
	return opt
}

func (opt *PlannerOptions) layout() pointcloud.SceneLayout {
	return pointcloud.SceneLayout{
		NumRobotPoints:    opt.NumRobotPoints,
		NumObstaclePoints: opt.NumObstaclePoints,
		NumTargetPoints:   opt.NumTargetPoints,
	}
}
