// Package rollout implements closed-loop trajectory planning with a learned motion policy. A
// Planner repeatedly queries the policy with a labeled scene point cloud and the current
// normalized joint configuration, integrates the predicted joint delta, and stops when the
// end-effector is close enough to the target pose or a step budget runs out.
package rollout

import (
	"context"

	"github.com/golang/geo/r3"

	"github.com/yclihkclr/motion-policy-networks/pointcloud"
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// Policy is a learned motion policy. Predict maps a scene cloud and a normalized joint
// configuration to a normalized joint delta of the same length. Calls are synchronous and
// blocking; the planner issues them one at a time.
type Policy interface {
	Predict(ctx context.Context, scene *pointcloud.SceneCloud, qNorm []referenceframe.Input) ([]referenceframe.Input, error)
}

// RobotPointSampler produces surface point clouds of the robot. Implementations may reuse internal
// buffers and need only be safe for serial use; the planner never calls them concurrently.
type RobotPointSampler interface {
	// SamplePoints returns n points from the robot surface at the given configuration.
	SamplePoints(inputs []referenceframe.Input, n int) ([]r3.Vector, error)

	// SampleEndEffector returns n points from the end-effector region posed at the given pose.
	SampleEndEffector(pose spatialmath.Pose, n int) ([]r3.Vector, error)
}

// DepthCamera renders a scene point cloud from a camera pose, labeling which points belong to the
// robot so they can be excluded from the obstacle segment.
type DepthCamera interface {
	RenderPointCloud(ctx context.Context, cameraPose spatialmath.Pose) (points []r3.Vector, isRobot []bool, err error)
}
