package franka

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

func TestArmKinematics(t *testing.T) {
	arm := NewArm("panda")
	test.That(t, arm.Name(), test.ShouldEqual, "panda")
	test.That(t, len(arm.DoF()), test.ShouldEqual, DoF)

	// the all-zero configuration puts the TCP at a known position: the flange sits at
	// (0.088, 0, 0.926) pointing straight down, and the TCP another 0.1034 below it
	zero := referenceframe.FloatsToInputs(make([]float64, DoF))
	pose, err := arm.Transform(zero)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point().X, test.ShouldAlmostEqual, 0.088, 1e-9)
	test.That(t, pose.Point().Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, pose.Point().Z, test.ShouldAlmostEqual, 0.8226, 1e-9)
	test.That(t, pose.Orientation().AxisAngles().Theta, test.ShouldAlmostEqual, math.Pi, 1e-9)

	_, err = arm.Transform(referenceframe.FloatsToInputs([]float64{0, 0}))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestArmTransformDeterministic(t *testing.T) {
	arm := NewArm("panda")
	q := referenceframe.FloatsToInputs([]float64{0.3, -0.5, 0.2, -1.8, 0.1, 1.5, -0.4})
	p1, err := arm.Transform(q)
	test.That(t, err, test.ShouldBeNil)
	p2, err := arm.Transform(q)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(p1, p2), test.ShouldBeTrue)
}

func TestLinkPoses(t *testing.T) {
	arm := NewArm("panda")
	poses, err := arm.LinkPoses(referenceframe.FloatsToInputs(make([]float64, DoF)))
	test.That(t, err, test.ShouldBeNil)
	// base, seven joints, gripper
	test.That(t, len(poses), test.ShouldEqual, DoF+2)
	test.That(t, spatialmath.PoseAlmostEqual(poses[0], spatialmath.NewZeroPose()), test.ShouldBeTrue)
	test.That(t, poses[1].Point().Z, test.ShouldAlmostEqual, 0.333)
}

func TestSampler(t *testing.T) {
	arm := NewArm("panda")
	//nolint:gosec
	sampler, err := NewSampler(arm, rand.New(rand.NewSource(7)))
	test.That(t, err, test.ShouldBeNil)

	q := referenceframe.FloatsToInputs([]float64{0, -0.78, 0, -2.35, 0, 1.57, 0.78})
	pts, err := sampler.SamplePoints(q, 512)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(pts), test.ShouldEqual, 512)
	// every sampled point is within the reach of the arm
	for _, pt := range pts {
		test.That(t, pt.Norm(), test.ShouldBeLessThan, 1.5)
	}

	eePose, err := arm.Transform(q)
	test.That(t, err, test.ShouldBeNil)
	eePts, err := sampler.SampleEndEffector(eePose, 64)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(eePts), test.ShouldEqual, 64)

	_, err = sampler.SamplePoints(referenceframe.FloatsToInputs([]float64{0}), 10)
	test.That(t, err, test.ShouldNotBeNil)
}
