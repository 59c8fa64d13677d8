// Package main runs the interactive planning server: it loads a policy network and serves plan
// requests against streamed-in obstacle point clouds.
package main

import (
	"context"
	"fmt"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/yclihkclr/motion-policy-networks/franka"
	"github.com/yclihkclr/motion-policy-networks/ml/inference"
	"github.com/yclihkclr/motion-policy-networks/rollout"
	"github.com/yclihkclr/motion-policy-networks/web"
)

var (
	defaultPort = 8080
	logger      = golog.NewDevelopmentLogger("planning_server")
)

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Port       utils.NetPortFlag `flag:"port,usage=port to listen on"`
	ModelPath  string            `flag:"model,usage=path to the policy network (.tflite)"`
	NumThreads int               `flag:"threads,usage=interpreter threads (0 uses all CPUs)"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Port == 0 {
		argsParsed.Port = utils.NetPortFlag(defaultPort)
	}
	if argsParsed.ModelPath == "" {
		return errors.New("a policy network path is required (-model)")
	}
	return runServer(ctx, argsParsed, logger)
}

func runServer(ctx context.Context, args Arguments, logger golog.Logger) error {
	policy, err := inference.NewTFLitePolicy(args.ModelPath, args.NumThreads, logger)
	if err != nil {
		return err
	}
	defer policy.Close()

	arm := franka.NewArm("panda")
	sampler, err := franka.NewSampler(arm, nil)
	if err != nil {
		return err
	}

	opts := rollout.NewInteractivePlannerOptions()
	scenePoints := opts.NumRobotPoints + opts.NumObstaclePoints + opts.NumTargetPoints
	if policy.NumPoints() != scenePoints {
		return errors.Errorf("policy network expects %d scene points, planner produces %d",
			policy.NumPoints(), scenePoints)
	}
	if policy.DoF() != len(arm.DoF()) {
		return errors.Errorf("policy network expects %d joints, arm has %d", policy.DoF(), len(arm.DoF()))
	}

	planner, err := rollout.NewPlanner(policy, arm, sampler, opts, logger)
	if err != nil {
		return err
	}

	service := web.NewService(planner, logger)
	if err := service.Start(fmt.Sprintf(":%d", args.Port)); err != nil {
		return err
	}
	defer func() {
		utils.UncheckedError(service.Close())
	}()

	utils.ContextMainReadyFunc(ctx)()
	<-ctx.Done()
	return nil
}
