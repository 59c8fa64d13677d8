package rollout

import (
	"context"
	"math"
	"math/rand"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/yclihkclr/motion-policy-networks/pointcloud"
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
	"github.com/yclihkclr/motion-policy-networks/utils"
)

// Result is the outcome of a plan. Success is true iff the rollout reached the goal thresholds
// before exhausting its step budget; the trajectory is returned either way, since a failed attempt
// is still worth inspecting or replaying.
type Result struct {
	Success    bool
	Trajectory Trajectory
}

// Planner rolls out a motion policy toward end-effector targets. A Planner holds no per-plan
// state besides its obstacle-subsampling rand source and its (serially reusable) sampler, so it
// may be reused across many plans, one at a time.
type Planner struct {
	policy     Policy
	model      referenceframe.Model
	sampler    RobotPointSampler
	opts       *PlannerOptions
	randSource *rand.Rand
	logger     golog.Logger
}

// NewPlanner wires a policy, a kinematic model, and a robot surface sampler into a planner. A nil
// opts uses NewBasicPlannerOptions.
func NewPlanner(
	policy Policy,
	model referenceframe.Model,
	sampler RobotPointSampler,
	opts *PlannerOptions,
	logger golog.Logger,
) (*Planner, error) {
	if policy == nil {
		return nil, errors.New("policy cannot be nil")
	}
	if model == nil {
		return nil, errors.New("kinematic model cannot be nil")
	}
	if sampler == nil {
		return nil, errors.New("robot point sampler cannot be nil")
	}
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	return &Planner{
		policy:  policy,
		model:   model,
		sampler: sampler,
		opts:    opts,
		//nolint:gosec
		randSource: rand.New(rand.NewSource(opts.RandomSeed)),
		logger:     logger,
	}, nil
}

// Options returns the options the planner was built with.
func (p *Planner) Options() *PlannerOptions {
	return p.opts
}

// Plan rolls the policy out from the given start configuration toward the target end-effector
// pose, rebuilding the robot segment of the scene cloud after every accepted step. It returns a
// Result with Success false, and the partial trajectory, when the step budget runs out; an error
// return is reserved for precondition violations and collaborator failures.
func (p *Planner) Plan(
	ctx context.Context,
	start []referenceframe.Input,
	target spatialmath.Pose,
	obstacles ObstacleSource,
) (*Result, error) {
	limits := p.model.DoF()
	if err := referenceframe.CheckInputLimits(start, limits); err != nil {
		return nil, errors.Wrap(err, "starting configuration is not feasible")
	}
	if obstacles == nil {
		return nil, errors.New("obstacle source cannot be nil")
	}

	scene, err := p.buildScene(ctx, start, target, obstacles)
	if err != nil {
		return nil, err
	}

	trajectory := Trajectory{start}
	qNorm, err := referenceframe.NormalizeInputs(start, limits)
	if err != nil {
		return nil, err
	}

	success := false
	steps := 0
	for ; steps < p.opts.MaxRolloutLength; steps++ {
		delta, err := p.policy.Predict(ctx, scene, qNorm)
		if err != nil {
			return nil, errors.Wrap(err, "policy prediction failed")
		}
		if len(delta) != len(qNorm) {
			return nil, referenceframe.NewIncorrectInputLengthError(len(delta), len(qNorm))
		}
		for i := range qNorm {
			qNorm[i].Value = utils.Clamp(qNorm[i].Value+delta[i].Value, -1, 1)
		}
		q, err := referenceframe.UnnormalizeInputs(qNorm, limits)
		if err != nil {
			return nil, err
		}
		trajectory = append(trajectory, q)

		eePose, err := p.model.Transform(q)
		if err != nil {
			return nil, err
		}
		if p.goalReached(eePose, target) {
			success = true
			break
		}

		// obstacle and target segments are static per plan, so only the robot points move
		robotPts, err := p.sampler.SamplePoints(q, p.opts.NumRobotPoints)
		if err != nil {
			return nil, err
		}
		if err := scene.SetRobotPoints(robotPts); err != nil {
			return nil, err
		}
	}

	if p.logger != nil {
		if success {
			p.logger.Debugf("rollout reached the goal after %d steps", steps+1)
		} else {
			p.logger.Debugf("rollout gave up after %d steps", steps)
		}
	}
	return &Result{Success: success, Trajectory: trajectory}, nil
}

// buildScene assembles the initial three-segment scene cloud: robot points at the start
// configuration, obstacle points from the source, and gripper points posed at the target.
func (p *Planner) buildScene(
	ctx context.Context,
	start []referenceframe.Input,
	target spatialmath.Pose,
	obstacles ObstacleSource,
) (*pointcloud.SceneCloud, error) {
	obstaclePts, err := obstacles.obstaclePoints(ctx, p.opts.NumObstaclePoints, p.randSource)
	if err != nil {
		return nil, errors.Wrap(err, "could not acquire obstacle points")
	}
	robotPts, err := p.sampler.SamplePoints(start, p.opts.NumRobotPoints)
	if err != nil {
		return nil, err
	}
	targetPts, err := p.sampler.SampleEndEffector(target, p.opts.NumTargetPoints)
	if err != nil {
		return nil, err
	}

	scene := pointcloud.NewSceneCloud(p.opts.layout())
	if err := scene.SetRobotPoints(robotPts); err != nil {
		return nil, err
	}
	if err := scene.SetObstaclePoints(obstaclePts); err != nil {
		return nil, err
	}
	if err := scene.SetTargetPoints(targetPts); err != nil {
		return nil, err
	}
	return scene, nil
}

// goalReached is the success test: the end effector must be simultaneously within the position
// threshold and within the orientation threshold of the target.
func (p *Planner) goalReached(eePose, target spatialmath.Pose) bool {
	if eePose.Point().Distance(target.Point()) >= p.opts.GoalPositionThreshold {
		return false
	}
	angle := spatialmath.OrientDistDegrees(eePose.Orientation(), target.Orientation())
	return math.Abs(angle) < p.opts.GoalOrientationThresholdDeg
}
