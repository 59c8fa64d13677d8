package rollout

import (
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
)

// Trajectory is an ordered sequence of joint configurations in raw units, starting at the initial
// configuration of a plan, one entry per accepted rollout step.
type Trajectory [][]referenceframe.Input

// Interpolate resamples the trajectory by linear interpolation, inserting stepsPerSegment evenly
// spaced configurations between every pair of consecutive waypoints. Values below 1 return the
// trajectory unchanged.
func (t Trajectory) Interpolate(stepsPerSegment int) Trajectory {
	if stepsPerSegment < 1 || len(t) == 0 {
		return t
	}
	interpolated := make(Trajectory, 0, (len(t)-1)*stepsPerSegment+1)
	interpolated = append(interpolated, t[0])
	for i := 0; i < len(t)-1; i++ {
		for step := 1; step <= stepsPerSegment; step++ {
			by := float64(step) / float64(stepsPerSegment)
			interpolated = append(interpolated, referenceframe.InterpolateInputs(t[i], t[i+1], by))
		}
	}
	return interpolated
}
