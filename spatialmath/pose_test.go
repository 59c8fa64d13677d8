package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestPoseBasics(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	test.That(t, p.Point().X, test.ShouldAlmostEqual, 1)
	test.That(t, p.Point().Y, test.ShouldAlmostEqual, 2)
	test.That(t, p.Point().Z, test.ShouldAlmostEqual, 3)
	test.That(t, p.Orientation().AxisAngles().Theta, test.ShouldAlmostEqual, math.Pi/2)

	zero := NewZeroPose()
	test.That(t, PoseAlmostEqual(Compose(zero, p), p), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(p, PoseInverse(p)), zero), test.ShouldBeTrue)
}

func TestPoseInverse(t *testing.T) {
	p := NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	inv := PoseInverse(p)

	// inverting composes to identity from either side
	test.That(t, PoseAlmostEqual(Compose(p, inv), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(inv, p), NewZeroPose()), test.ShouldBeTrue)

	// the inverse sends the pose's own translation back to the origin
	origin := TransformPoint(inv, p.Point())
	test.That(t, origin.X, test.ShouldAlmostEqual, 0)
	test.That(t, origin.Y, test.ShouldAlmostEqual, 0)
	test.That(t, origin.Z, test.ShouldAlmostEqual, 0)

	test.That(t, PoseAlmostEqual(PoseInverse(inv), p), test.ShouldBeTrue)
}

func TestTransformPoint(t *testing.T) {
	// 90 degrees about z maps +x to +y
	p := NewPose(r3.Vector{X: 0, Y: 0, Z: 1}, &R4AA{Theta: math.Pi / 2, RZ: 1})
	pt := TransformPoint(p, r3.Vector{X: 1, Y: 0, Z: 0})
	test.That(t, pt.X, test.ShouldAlmostEqual, 0)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 1)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 1)

	// composing a pose with a point-pose is the same transformation
	viaCompose := Compose(p, NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0})).Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, viaCompose.X)
	test.That(t, pt.Y, test.ShouldAlmostEqual, viaCompose.Y)
	test.That(t, pt.Z, test.ShouldAlmostEqual, viaCompose.Z)
}

func TestOrientDistDegrees(t *testing.T) {
	zero := NewZeroOrientation()
	test.That(t, OrientDistDegrees(zero, zero), test.ShouldAlmostEqual, 0)

	rot20 := &R4AA{Theta: 20 * math.Pi / 180, RX: 1}
	test.That(t, OrientDistDegrees(zero, rot20), test.ShouldAlmostEqual, 20, 1e-8)
	test.That(t, OrientDistDegrees(rot20, zero), test.ShouldAlmostEqual, 20, 1e-8)

	// distances are along the shortest path
	rot350 := &R4AA{Theta: 350 * math.Pi / 180, RX: 1}
	test.That(t, OrientDistDegrees(zero, rot350), test.ShouldAlmostEqual, 10, 1e-8)
}

func TestQuatToR4AA(t *testing.T) {
	aa := QuatToR4AA(quat.Number{Real: math.Cos(math.Pi / 4), Imag: math.Sin(math.Pi / 4)})
	test.That(t, aa.Theta, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, aa.RX, test.ShouldAlmostEqual, 1)

	// q and -q are the same rotation
	aaNeg := QuatToR4AA(quat.Number{Real: -math.Cos(math.Pi / 4), Imag: -math.Sin(math.Pi / 4)})
	test.That(t, aaNeg.Theta, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, aaNeg.RX, test.ShouldAlmostEqual, 1)
}

func TestQuaternionAlmostEqual(t *testing.T) {
	q := quat.Number{Real: math.Cos(1), Imag: math.Sin(1)}
	qNeg := quat.Scale(-1, q)
	test.That(t, QuaternionAlmostEqual(q, qNeg, 1e-8), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q, quat.Number{Real: 1}, 1e-8), test.ShouldBeFalse)
}
