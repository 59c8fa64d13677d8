package rollout

import (
	"context"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/yclihkclr/motion-policy-networks/pointcloud"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// ObstacleSource produces the obstacle segment of a scene cloud. A source is resolved exactly once
// per plan, before the first policy query; the rollout loop itself never learns which variant was
// used.
type ObstacleSource interface {
	obstaclePoints(ctx context.Context, numPoints int, randSource *rand.Rand) ([]r3.Vector, error)
}

// ObstaclePoints returns an ObstacleSource backed by a pre-acquired point cloud, e.g. from a real
// depth sensor. The cloud is subsampled by index, without replacement, down to the requested
// count; it must already be cleaned of robot points and outliers.
func ObstaclePoints(points []r3.Vector) ObstacleSource {
	return &pointsSource{points: points}
}

type pointsSource struct {
	points []r3.Vector
}

func (s *pointsSource) obstaclePoints(_ context.Context, numPoints int, randSource *rand.Rand) ([]r3.Vector, error) {
	return pointcloud.SubsamplePoints(s.points, numPoints, randSource)
}

// ObstacleGeometries returns an ObstacleSource that samples points from known primitive geometry.
// Cylinders are replaced by their bounding boxes before sampling; this substitution is lossy by
// design and matches what the policy saw in training.
func ObstacleGeometries(geometries []spatialmath.Geometry) ObstacleSource {
	return &geometriesSource{geometries: geometries}
}

type geometriesSource struct {
	geometries []spatialmath.Geometry
}

func (s *geometriesSource) obstaclePoints(_ context.Context, numPoints int, randSource *rand.Rand) ([]r3.Vector, error) {
	boxed := spatialmath.CylindersToBoxes(s.geometries)
	return pointcloud.MixedGeometryCloud(boxed, numPoints, randSource)
}

// ObstacleDepthCamera returns an ObstacleSource that renders the scene from a simulated depth
// camera at the given pose, drops points belonging to the robot, and subsamples the rest.
func ObstacleDepthCamera(camera DepthCamera, cameraPose spatialmath.Pose) ObstacleSource {
	return &depthSource{camera: camera, cameraPose: cameraPose}
}

type depthSource struct {
	camera     DepthCamera
	cameraPose spatialmath.Pose
}

func (s *depthSource) obstaclePoints(ctx context.Context, numPoints int, randSource *rand.Rand) ([]r3.Vector, error) {
	points, isRobot, err := s.camera.RenderPointCloud(ctx, s.cameraPose)
	if err != nil {
		return nil, err
	}
	if len(points) != len(isRobot) {
		return nil, errors.Errorf("depth camera returned %d points but %d robot labels", len(points), len(isRobot))
	}
	scene := make([]r3.Vector, 0, len(points))
	for i, pt := range points {
		if isRobot[i] {
			continue
		}
		scene = append(scene, pt)
	}
	return pointcloud.SubsamplePoints(scene, numPoints, randSource)
}
