// Package inject provides dependency-injected implementations of the rollout interfaces for use
// in testing. Each stub delegates to a settable function field and fails loudly when the field a
// test exercises was never set.
package inject

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/yclihkclr/motion-policy-networks/pointcloud"
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// Policy is an injected motion policy.
type Policy struct {
	PredictFunc func(
		ctx context.Context,
		scene *pointcloud.SceneCloud,
		qNorm []referenceframe.Input,
	) ([]referenceframe.Input, error)
}

// Predict calls the injected PredictFunc.
func (p *Policy) Predict(
	ctx context.Context,
	scene *pointcloud.SceneCloud,
	qNorm []referenceframe.Input,
) ([]referenceframe.Input, error) {
	if p.PredictFunc == nil {
		return nil, errors.New("Predict unimplemented")
	}
	return p.PredictFunc(ctx, scene, qNorm)
}

// RobotPointSampler is an injected robot surface sampler.
type RobotPointSampler struct {
	SamplePointsFunc      func(inputs []referenceframe.Input, n int) ([]r3.Vector, error)
	SampleEndEffectorFunc func(pose spatialmath.Pose, n int) ([]r3.Vector, error)
}

// SamplePoints calls the injected SamplePointsFunc.
func (s *RobotPointSampler) SamplePoints(inputs []referenceframe.Input, n int) ([]r3.Vector, error) {
	if s.SamplePointsFunc == nil {
		return nil, errors.New("SamplePoints unimplemented")
	}
	return s.SamplePointsFunc(inputs, n)
}

// SampleEndEffector calls the injected SampleEndEffectorFunc.
func (s *RobotPointSampler) SampleEndEffector(pose spatialmath.Pose, n int) ([]r3.Vector, error) {
	if s.SampleEndEffectorFunc == nil {
		return nil, errors.New("SampleEndEffector unimplemented")
	}
	return s.SampleEndEffectorFunc(pose, n)
}

// Model is an injected kinematic model.
type Model struct {
	NameFunc      func() string
	DoFFunc       func() []referenceframe.Limit
	TransformFunc func(inputs []referenceframe.Input) (spatialmath.Pose, error)
}

// Name calls the injected NameFunc, or returns a fixed name if none is set.
func (m *Model) Name() string {
	if m.NameFunc == nil {
		return "inject"
	}
	return m.NameFunc()
}

// DoF calls the injected DoFFunc.
func (m *Model) DoF() []referenceframe.Limit {
	if m.DoFFunc == nil {
		return nil
	}
	return m.DoFFunc()
}

// Transform calls the injected TransformFunc.
func (m *Model) Transform(inputs []referenceframe.Input) (spatialmath.Pose, error) {
	if m.TransformFunc == nil {
		return nil, errors.New("Transform unimplemented")
	}
	return m.TransformFunc(inputs)
}

// DepthCamera is an injected depth camera.
type DepthCamera struct {
	RenderPointCloudFunc func(ctx context.Context, cameraPose spatialmath.Pose) ([]r3.Vector, []bool, error)
}

// RenderPointCloud calls the injected RenderPointCloudFunc.
func (c *DepthCamera) RenderPointCloud(
	ctx context.Context,
	cameraPose spatialmath.Pose,
) ([]r3.Vector, []bool, error) {
	if c.RenderPointCloudFunc == nil {
		return nil, nil, errors.New("RenderPointCloud unimplemented")
	}
	return c.RenderPointCloudFunc(ctx, cameraPose)
}
