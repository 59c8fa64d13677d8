package problems

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

const testProblemJSON = `{
	"tabletop": [
		{
			"name": "reach_over_block",
			"start": [0, -0.785, 0, -2.356, 0, 1.571, 0.785],
			"target": {
				"position": [0.6, 0.1, 0.4],
				"quaternion": [0, 1, 0, 0]
			},
			"obstacles": [
				{
					"type": "box",
					"label": "table",
					"center": [0.6, 0, 0.1],
					"quaternion": [1, 0, 0, 0],
					"dims": [0.8, 1.2, 0.2]
				},
				{
					"type": "cylinder",
					"label": "can",
					"center": [0.5, 0.2, 0.3],
					"quaternion": [1, 0, 0, 0],
					"radius": 0.04,
					"length": 0.12
				}
			]
		}
	],
	"dresser": [
		{
			"name": "top_drawer",
			"start": [0, 0, 0, -1.5, 0, 1.5, 0],
			"target": {"position": [0.4, 0.6, 0.8], "quaternion": [1, 0, 0, 0]},
			"obstacles": [],
			"obstacle_point_cloud": [[0.1, 0.2, 0.3], [0.4, 0.5, 0.6]]
		}
	]
}`

func writeTestProblems(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "problems.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestLoad(t *testing.T) {
	set, err := Load(writeTestProblems(t, testProblemJSON))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, set.TotalProblems(), test.ShouldEqual, 2)

	tabletop := set[EnvTabletop]
	test.That(t, len(tabletop), test.ShouldEqual, 1)
	problem := tabletop[0]
	test.That(t, problem.Name, test.ShouldEqual, "reach_over_block")
	test.That(t, len(problem.StartInputs()), test.ShouldEqual, 7)
	test.That(t, problem.Target.Pose().Point(), test.ShouldResemble, r3.Vector{X: 0.6, Y: 0.1, Z: 0.4})

	geometries, err := problem.ObstacleGeometries()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(geometries), test.ShouldEqual, 2)
	test.That(t, geometries[0].Label(), test.ShouldEqual, "table")

	// primitives back the source when no cloud is stored
	source, err := problem.ObstacleSource()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, source, test.ShouldNotBeNil)

	// a stored cloud wins over primitives
	dresser := set[EnvDresser][0]
	source, err = dresser.ObstacleSource()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, source, test.ShouldNotBeNil)
}

func TestLoadRejectsBadSets(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = Load(writeTestProblems(t, `{"moonbase": []}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "moonbase")

	_, err = Load(writeTestProblems(t, `{"tabletop": [{"name": "empty", "start": []}]}`))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGeometryConfig(t *testing.T) {
	_, err := GeometryConfig{Type: "sphere"}.Geometry()
	test.That(t, err, test.ShouldNotBeNil)

	_, err = GeometryConfig{Type: "cylinder", Quaternion: [4]float64{1, 0, 0, 0}}.Geometry()
	test.That(t, err, test.ShouldNotBeNil)

	g, err := GeometryConfig{
		Type:       "box",
		Center:     [3]float64{1, 2, 3},
		Quaternion: [4]float64{1, 0, 0, 0},
		Dims:       [3]float64{0.2, 0.4, 0.6},
	}.Geometry()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.Pose().Point(), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
}

func TestEnvironmentType(t *testing.T) {
	for _, name := range []string{"tabletop", "cubby", "merged_cubby", "dresser"} {
		env, err := ParseEnvironmentType(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, string(env), test.ShouldEqual, name)

		pose, err := env.CameraPose()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, pose, test.ShouldNotBeNil)
	}
	_, err := ParseEnvironmentType("warehouse")
	test.That(t, err, test.ShouldNotBeNil)

	// the camera transform undoes the stored world placement
	pose, err := EnvDresser.CameraPose()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(
		spatialmath.Compose(pose, shelfCameraPose), spatialmath.NewZeroPose()), test.ShouldBeTrue)

	tabletopPose, err := EnvTabletop.CameraPose()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostCoincident(pose, tabletopPose), test.ShouldBeFalse)
}
