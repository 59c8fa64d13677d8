// Package main runs a policy network over a problem set and reports success rates per
// environment family.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/yclihkclr/motion-policy-networks/franka"
	"github.com/yclihkclr/motion-policy-networks/ml/inference"
	"github.com/yclihkclr/motion-policy-networks/problems"
	"github.com/yclihkclr/motion-policy-networks/rollout"
)

var logger = golog.NewDevelopmentLogger("evaluator")

func main() {
	app := &cli.App{
		Name:  "evaluator",
		Usage: "evaluate a policy network against a planning problem set",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "model",
				Usage:    "path to the policy network (.tflite)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "problems",
				Usage:    "path to the problem set (.json)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "environment family to evaluate (tabletop, cubby, merged_cubby, dresser, all)",
				Value: "all",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "interpreter threads (0 uses all CPUs)",
			},
			&cli.BoolFlag{
				Name:  "primitives",
				Usage: "sample obstacle observations from primitives even when a problem stores a point cloud",
			},
		},
		Action: runEvaluation,
	}
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func runEvaluation(c *cli.Context) error {
	set, err := problems.Load(c.String("problems"))
	if err != nil {
		return err
	}
	envs, err := selectEnvironments(set, c.String("env"))
	if err != nil {
		return err
	}

	policy, err := inference.NewTFLitePolicy(c.String("model"), c.Int("threads"), logger)
	if err != nil {
		return err
	}
	defer policy.Close()

	arm := franka.NewArm("panda")
	sampler, err := franka.NewSampler(arm, nil)
	if err != nil {
		return err
	}
	planner, err := rollout.NewPlanner(policy, arm, sampler, rollout.NewBasicPlannerOptions(), logger)
	if err != nil {
		return err
	}

	overall := &tally{}
	for _, env := range envs {
		group := &tally{}
		for i := range set[env] {
			problem := &set[env][i]
			if err := evaluateProblem(c.Context, planner, problem, c.Bool("primitives"), group); err != nil {
				return errors.Wrapf(err, "problem %q in %q", problem.Name, env)
			}
		}
		logger.Infow("environment finished", group.fields(string(env))...)
		overall.merge(group)
	}
	logger.Infow("evaluation finished", overall.fields("all")...)
	return nil
}

func selectEnvironments(set problems.ProblemSet, name string) ([]problems.EnvironmentType, error) {
	if name == "all" {
		envs := make([]problems.EnvironmentType, 0, len(set))
		for env := range set {
			envs = append(envs, env)
		}
		sort.Slice(envs, func(i, j int) bool { return envs[i] < envs[j] })
		return envs, nil
	}
	env, err := problems.ParseEnvironmentType(name)
	if err != nil {
		return nil, err
	}
	if _, ok := set[env]; !ok {
		return nil, errors.Errorf("problem set has no %q problems", env)
	}
	return []problems.EnvironmentType{env}, nil
}

func evaluateProblem(
	ctx context.Context,
	planner *rollout.Planner,
	problem *problems.Problem,
	primitivesOnly bool,
	group *tally,
) error {
	var source rollout.ObstacleSource
	var err error
	if primitivesOnly {
		geometries, gerr := problem.ObstacleGeometries()
		if gerr != nil {
			return gerr
		}
		source = rollout.ObstacleGeometries(geometries)
	} else {
		source, err = problem.ObstacleSource()
		if err != nil {
			return err
		}
	}

	start := time.Now()
	result, err := planner.Plan(ctx, problem.StartInputs(), problem.Target.Pose(), source)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	group.add(result, elapsed)
	logger.Debugw("problem finished",
		"name", problem.Name,
		"success", result.Success,
		"steps", len(result.Trajectory)-1,
		"duration", elapsed.String(),
	)
	return nil
}

// tally accumulates evaluation outcomes. Step and time means are taken over successful plans
// only, since failed rollouts always burn the full budget.
type tally struct {
	attempts     int
	successes    int
	successSteps int
	successTime  time.Duration
}

func (s *tally) add(result *rollout.Result, elapsed time.Duration) {
	s.attempts++
	if result.Success {
		s.successes++
		s.successSteps += len(result.Trajectory) - 1
		s.successTime += elapsed
	}
}

func (s *tally) merge(other *tally) {
	s.attempts += other.attempts
	s.successes += other.successes
	s.successSteps += other.successSteps
	s.successTime += other.successTime
}

func (s *tally) fields(name string) []interface{} {
	fields := []interface{}{
		"group", name,
		"attempts", s.attempts,
		"successes", s.successes,
	}
	if s.attempts > 0 {
		fields = append(fields, "success_rate",
			fmt.Sprintf("%.1f%%", 100*float64(s.successes)/float64(s.attempts)))
	}
	if s.successes > 0 {
		fields = append(fields,
			"mean_steps", float64(s.successSteps)/float64(s.successes),
			"mean_time", (s.successTime / time.Duration(s.successes)).String(),
		)
	}
	return fields
}
