package pointcloud

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

var testLayout = SceneLayout{NumRobotPoints: 16, NumObstaclePoints: 32, NumTargetPoints: 8}

func makePoints(n int, base float64) []r3.Vector {
	pts := make([]r3.Vector, n)
	for i := range pts {
		pts[i] = r3.Vector{X: base, Y: float64(i), Z: 0}
	}
	return pts
}

func TestSceneCloudLayout(t *testing.T) {
	cloud := NewSceneCloud(testLayout)
	test.That(t, cloud.Size(), test.ShouldEqual, 56)

	shape := cloud.Tensor().Shape()
	test.That(t, shape[0], test.ShouldEqual, 56)
	test.That(t, shape[1], test.ShouldEqual, 4)

	for row := 0; row < cloud.Size(); row++ {
		_, label := cloud.At(row)
		switch {
		case row < 16:
			test.That(t, label, test.ShouldEqual, LabelRobot)
		case row < 48:
			test.That(t, label, test.ShouldEqual, LabelObstacle)
		default:
			test.That(t, label, test.ShouldEqual, LabelTarget)
		}
	}
}

func TestSceneCloudSegments(t *testing.T) {
	cloud := NewSceneCloud(testLayout)
	test.That(t, cloud.SetRobotPoints(makePoints(16, 1)), test.ShouldBeNil)
	test.That(t, cloud.SetObstaclePoints(makePoints(32, 2)), test.ShouldBeNil)
	test.That(t, cloud.SetTargetPoints(makePoints(8, 3)), test.ShouldBeNil)

	pt, label := cloud.At(0)
	test.That(t, pt.X, test.ShouldEqual, 1)
	test.That(t, label, test.ShouldEqual, LabelRobot)
	pt, label = cloud.At(16)
	test.That(t, pt.X, test.ShouldEqual, 2)
	test.That(t, label, test.ShouldEqual, LabelObstacle)
	pt, label = cloud.At(48)
	test.That(t, pt.X, test.ShouldEqual, 3)
	test.That(t, label, test.ShouldEqual, LabelTarget)

	// rewriting the robot segment must not disturb any other row or any label
	before := append([]float32{}, cloud.Data()[16*4:]...)
	test.That(t, cloud.SetRobotPoints(makePoints(16, 9)), test.ShouldBeNil)
	test.That(t, cloud.Data()[0], test.ShouldEqual, float32(9))
	after := cloud.Data()[16*4:]
	for i := range before {
		test.That(t, after[i], test.ShouldEqual, before[i])
	}
}

func TestSceneCloudSegmentSizeErrors(t *testing.T) {
	cloud := NewSceneCloud(testLayout)
	test.That(t, cloud.SetRobotPoints(makePoints(15, 0)), test.ShouldNotBeNil)
	test.That(t, cloud.SetObstaclePoints(makePoints(33, 0)), test.ShouldNotBeNil)
	test.That(t, cloud.SetTargetPoints(makePoints(0, 0)), test.ShouldNotBeNil)
}

func TestSceneCloudTensorSharesBuffer(t *testing.T) {
	cloud := NewSceneCloud(testLayout)
	test.That(t, cloud.SetRobotPoints(makePoints(16, 7)), test.ShouldBeNil)
	val, err := cloud.Tensor().At(0, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, val, test.ShouldEqual, float32(7))
}

func TestMixedGeometryCloud(t *testing.T) {
	//nolint:gosec
	r := rand.New(rand.NewSource(5))
	b1, err := spatialmath.NewBox(spatialmath.NewZeroPose(), r3.Vector{X: 1, Y: 1, Z: 1}, "")
	test.That(t, err, test.ShouldBeNil)
	b2, err := spatialmath.NewBox(spatialmath.NewPoseFromPoint(r3.Vector{X: 5, Y: 0, Z: 0}), r3.Vector{X: 2, Y: 2, Z: 2}, "")
	test.That(t, err, test.ShouldBeNil)

	pts, err := MixedGeometryCloud([]spatialmath.Geometry{b1, b2}, 100, r)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(pts), test.ShouldEqual, 100)

	_, err = MixedGeometryCloud(nil, 100, r)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = MixedGeometryCloud([]spatialmath.Geometry{b1}, 0, r)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSubsamplePoints(t *testing.T) {
	pts := makePoints(100, 0)

	//nolint:gosec
	r := rand.New(rand.NewSource(3))
	picked, err := SubsamplePoints(pts, 10, r)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(picked), test.ShouldEqual, 10)

	// the same seed reproduces the same selection
	//nolint:gosec
	r2 := rand.New(rand.NewSource(3))
	picked2, err := SubsamplePoints(pts, 10, r2)
	test.That(t, err, test.ShouldBeNil)
	for i := range picked {
		test.That(t, picked[i], test.ShouldResemble, picked2[i])
	}

	_, err = SubsamplePoints(makePoints(5, 0), 10, r)
	test.That(t, err, test.ShouldNotBeNil)
}
