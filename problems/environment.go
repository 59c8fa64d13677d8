package problems

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// EnvironmentType names a family of evaluation scenes. The environment decides which fixed camera
// view is used when problems are converted to depth observations.
type EnvironmentType string

// The environment families used in evaluation.
const (
	EnvTabletop    = EnvironmentType("tabletop")
	EnvCubby       = EnvironmentType("cubby")
	EnvMergedCubby = EnvironmentType("merged_cubby")
	EnvDresser     = EnvironmentType("dresser")
)

// ParseEnvironmentType maps a string onto a known environment family.
func ParseEnvironmentType(s string) (EnvironmentType, error) {
	switch EnvironmentType(s) {
	case EnvTabletop, EnvCubby, EnvMergedCubby, EnvDresser:
		return EnvironmentType(s), nil
	}
	return "", errors.Errorf("unknown environment type %q", s)
}

// Fixed evaluation camera placements, stored as the pose of the camera in the world frame. The
// renderer wants the opposite transform, so CameraPose inverts these.
var (
	shelfCameraPose = spatialmath.NewPose(
		r3.Vector{X: 0.08307640315968651, Y: 1.986952324350807, Z: 0.9996085854670145},
		spatialmath.NewOrientationFromQuaternion(quat.Number{
			Real: -0.10162310189063647,
			Imag: -0.06726290364234049,
			Jmag: 0.5478233048853433,
			Kmag: 0.8276702686337273,
		}),
	)
	tabletopCameraPose = spatialmath.NewPose(
		r3.Vector{X: 1.5031788593125708, Y: -1.817341016921562, Z: 1.278088299149147},
		spatialmath.NewOrientationFromQuaternion(quat.Number{
			Real: 0.8687241016192855,
			Imag: 0.4180885960330695,
			Jmag: 0.11516106409944685,
			Kmag: 0.23928704613569252,
		}),
	)
)

// CameraPose returns the rendering transform of the fixed evaluation camera for this environment
// family. The cubby and dresser scenes share one placement; tabletop scenes use another.
func (e EnvironmentType) CameraPose() (spatialmath.Pose, error) {
	switch e {
	case EnvCubby, EnvMergedCubby, EnvDresser:
		return spatialmath.PoseInverse(shelfCameraPose), nil
	case EnvTabletop:
		return spatialmath.PoseInverse(tabletopCameraPose), nil
	}
	return nil, errors.Errorf("no camera placement for environment type %q", e)
}
