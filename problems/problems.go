// Package problems loads planning problem sets from JSON files: a start configuration, a target
// gripper pose, and the obstacles of the scene, grouped by environment family.
package problems

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/rollout"
	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// PoseConfig is the JSON form of a pose: a position and a wxyz quaternion.
type PoseConfig struct {
	Position   [3]float64 `json:"position"`
	Quaternion [4]float64 `json:"quaternion"`
}

// Pose converts the config into a pose.
func (c PoseConfig) Pose() spatialmath.Pose {
	return spatialmath.NewPose(
		r3.Vector{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]},
		spatialmath.NewOrientationFromQuaternion(quat.Number{
			Real: c.Quaternion[0],
			Imag: c.Quaternion[1],
			Jmag: c.Quaternion[2],
			Kmag: c.Quaternion[3],
		}),
	)
}

// GeometryConfig is the JSON form of an obstacle primitive. Dims are full extents for boxes;
// cylinders use radius and length instead.
type GeometryConfig struct {
	Type       string     `json:"type"`
	Label      string     `json:"label,omitempty"`
	Center     [3]float64 `json:"center"`
	Quaternion [4]float64 `json:"quaternion"`
	Dims       [3]float64 `json:"dims,omitempty"`
	Radius     float64    `json:"radius,omitempty"`
	Length     float64    `json:"length,omitempty"`
}

// Geometry converts the config into a geometry.
func (c GeometryConfig) Geometry() (spatialmath.Geometry, error) {
	pose := PoseConfig{Position: c.Center, Quaternion: c.Quaternion}.Pose()
	switch c.Type {
	case "box":
		return spatialmath.NewBox(pose, r3.Vector{X: c.Dims[0], Y: c.Dims[1], Z: c.Dims[2]}, c.Label)
	case "cylinder":
		return spatialmath.NewCylinder(pose, c.Radius, c.Length, c.Label)
	}
	return nil, errors.Errorf("unsupported geometry type %q", c.Type)
}

// Problem is one planning task: where the arm starts, where the gripper should end up, and what
// is in the way. A problem may carry a pre-rendered obstacle point cloud alongside its primitive
// obstacles.
type Problem struct {
	Name               string           `json:"name"`
	Start              []float64        `json:"start"`
	Target             PoseConfig       `json:"target"`
	Obstacles          []GeometryConfig `json:"obstacles"`
	ObstaclePointCloud [][3]float64     `json:"obstacle_point_cloud,omitempty"`
}

// StartInputs returns the start configuration as model inputs.
func (p *Problem) StartInputs() []referenceframe.Input {
	return referenceframe.FloatsToInputs(p.Start)
}

// ObstacleGeometries builds the primitive obstacles of the problem.
func (p *Problem) ObstacleGeometries() ([]spatialmath.Geometry, error) {
	geometries := make([]spatialmath.Geometry, 0, len(p.Obstacles))
	for i, cfg := range p.Obstacles {
		g, err := cfg.Geometry()
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		geometries = append(geometries, g)
	}
	return geometries, nil
}

// ObstacleSource returns the obstacle observation for the problem. A pre-rendered point cloud
// takes priority over the primitives when present.
func (p *Problem) ObstacleSource() (rollout.ObstacleSource, error) {
	if len(p.ObstaclePointCloud) > 0 {
		points := make([]r3.Vector, len(p.ObstaclePointCloud))
		for i, pt := range p.ObstaclePointCloud {
			points[i] = r3.Vector{X: pt[0], Y: pt[1], Z: pt[2]}
		}
		return rollout.ObstaclePoints(points), nil
	}
	geometries, err := p.ObstacleGeometries()
	if err != nil {
		return nil, err
	}
	if len(geometries) == 0 {
		return nil, errors.Errorf("problem %q has no obstacles", p.Name)
	}
	return rollout.ObstacleGeometries(geometries), nil
}

// ProblemSet groups problems by environment family.
type ProblemSet map[EnvironmentType][]Problem

// TotalProblems returns the number of problems across all environment families.
func (s ProblemSet) TotalProblems() int {
	total := 0
	for _, group := range s {
		total += len(group)
	}
	return total
}

// Load reads a problem set from a JSON file and validates its environment keys and start
// configurations.
func Load(path string) (ProblemSet, error) {
	//nolint:gosec
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read problem set")
	}
	var set ProblemSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, errors.Wrap(err, "could not parse problem set")
	}
	for env, group := range set {
		if _, err := ParseEnvironmentType(string(env)); err != nil {
			return nil, err
		}
		for i := range group {
			if len(group[i].Start) == 0 {
				return nil, errors.Errorf("problem %d in %q has no start configuration", i, env)
			}
		}
	}
	return set, nil
}
