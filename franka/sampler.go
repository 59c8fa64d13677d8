package franka

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/yclihkclr/motion-policy-networks/pointcloud"
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// linkGeometry attaches a primitive to one of the frames reported by Arm.LinkPoses. The geometry
// pose is expressed in that frame.
type linkGeometry struct {
	frame    int
	geometry spatialmath.Geometry
}

// Coarse primitive stand-ins for the link meshes of the Panda. Frame 0 is the base, frames 1-7 the
// joint frames, frame 8 the gripper.
func linkGeometries() ([]linkGeometry, error) {
	specs := []struct {
		frame  int
		offset spatialmath.Pose
		radius float64
		length float64
	}{
		{0, spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.07}), 0.09, 0.14},
		{1, spatialmath.NewPoseFromPoint(r3.Vector{Z: -0.1}), 0.06, 0.2},
		{2, spatialmath.NewZeroPose(), 0.06, 0.15},
		{3, spatialmath.NewPoseFromPoint(r3.Vector{Z: -0.14}), 0.055, 0.28},
		{4, spatialmath.NewZeroPose(), 0.055, 0.12},
		{5, spatialmath.NewPoseFromPoint(r3.Vector{Z: -0.16}), 0.045, 0.3},
		{6, spatialmath.NewZeroPose(), 0.045, 0.12},
		{7, spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.03}), 0.045, 0.1},
	}
	geometries := make([]linkGeometry, 0, len(specs))
	for _, spec := range specs {
		cyl, err := spatialmath.NewCylinder(spec.offset, spec.radius, spec.length, "")
		if err != nil {
			return nil, err
		}
		geometries = append(geometries, linkGeometry{frame: spec.frame, geometry: cyl})
	}
	return geometries, nil
}

// The hand body and both fingers, expressed in the gripper (TCP) frame. The TCP sits between the
// fingertips, so everything extends backwards along -z.
func gripperGeometries() ([]spatialmath.Geometry, error) {
	hand, err := spatialmath.NewBox(
		spatialmath.NewPoseFromPoint(r3.Vector{Z: -0.066}), r3.Vector{X: 0.063, Y: 0.2, Z: 0.07}, "")
	if err != nil {
		return nil, err
	}
	geometries := []spatialmath.Geometry{hand}
	for _, y := range []float64{-0.04, 0.04} {
		finger, err := spatialmath.NewBox(
			spatialmath.NewPoseFromPoint(r3.Vector{Y: y, Z: -0.02}), r3.Vector{X: 0.018, Y: 0.018, Z: 0.05}, "")
		if err != nil {
			return nil, err
		}
		geometries = append(geometries, finger)
	}
	return geometries, nil
}

// Sampler produces surface point clouds of the arm at arbitrary configurations, and of the gripper
// at arbitrary poses. A Sampler reuses internal buffers and so is safe for serial reuse only, not
// for concurrent calls.
type Sampler struct {
	arm        *Arm
	links      []linkGeometry
	gripper    []spatialmath.Geometry
	randSource *rand.Rand

	// scratch buffers reused across calls
	posedLinks   []spatialmath.Geometry
	posedGripper []spatialmath.Geometry
}

// NewSampler returns a surface sampler for the given arm. If randSource is nil a fixed-seed source
// is used.
func NewSampler(arm *Arm, randSource *rand.Rand) (*Sampler, error) {
	if arm == nil {
		return nil, errors.New("arm cannot be nil")
	}
	if randSource == nil {
		//nolint:gosec
		randSource = rand.New(rand.NewSource(1))
	}
	links, err := linkGeometries()
	if err != nil {
		return nil, err
	}
	gripper, err := gripperGeometries()
	if err != nil {
		return nil, err
	}
	return &Sampler{
		arm:          arm,
		links:        links,
		gripper:      gripper,
		randSource:   randSource,
		posedLinks:   make([]spatialmath.Geometry, len(links)),
		posedGripper: make([]spatialmath.Geometry, len(gripper)),
	}, nil
}

// SamplePoints returns n points sampled from the surface of the arm at the given configuration.
func (s *Sampler) SamplePoints(inputs []referenceframe.Input, n int) ([]r3.Vector, error) {
	linkPoses, err := s.arm.LinkPoses(inputs)
	if err != nil {
		return nil, err
	}
	for i, lg := range s.links {
		s.posedLinks[i] = lg.geometry.Transform(linkPoses[lg.frame])
	}
	return pointcloud.MixedGeometryCloud(s.posedLinks, n, s.randSource)
}

// SampleEndEffector returns n points sampled from the surface of the gripper posed at the given
// end-effector pose.
func (s *Sampler) SampleEndEffector(pose spatialmath.Pose, n int) ([]r3.Vector, error) {
	for i, g := range s.gripper {
		s.posedGripper[i] = g.Transform(pose)
	}
	return pointcloud.MixedGeometryCloud(s.posedGripper, n, s.randSource)
}
