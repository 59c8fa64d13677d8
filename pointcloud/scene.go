// Package pointcloud contains the labeled scene point cloud fed to a motion policy, along with the
// sampling helpers used to build its segments.
package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Values stored in the label column of a scene cloud, one per segment.
const (
	LabelRobot    float32 = 0
	LabelObstacle float32 = 1
	LabelTarget   float32 = 2
)

// pointStride is the number of columns per point: xyz plus the label channel.
const pointStride = 4

// SceneLayout fixes the sizes of the three segments of a scene cloud for the lifetime of a plan.
type SceneLayout struct {
	NumRobotPoints    int
	NumObstaclePoints int
	NumTargetPoints   int
}

// TotalPoints returns the number of rows of a scene cloud with this layout.
func (l SceneLayout) TotalPoints() int {
	return l.NumRobotPoints + l.NumObstaclePoints + l.NumTargetPoints
}

// SceneCloud is a fixed-size stacked buffer of labeled 3D points describing a planning scene:
// robot surface points, then obstacle points, then target gripper points, each row carrying its
// segment label in a fourth channel. The buffer is allocated once; segment writes mutate xyz of a
// known sub-range in place and never touch the labels.
type SceneCloud struct {
	layout SceneLayout
	data   []float32
	dense  *tensor.Dense
}

// NewSceneCloud preallocates a scene cloud with the given layout and writes the label column. All
// xyz values start at zero.
func NewSceneCloud(layout SceneLayout) *SceneCloud {
	rows := layout.TotalPoints()
	data := make([]float32, rows*pointStride)
	for row := 0; row < rows; row++ {
		label := LabelRobot
		switch {
		case row >= layout.NumRobotPoints+layout.NumObstaclePoints:
			label = LabelTarget
		case row >= layout.NumRobotPoints:
			label = LabelObstacle
		}
		data[row*pointStride+3] = label
	}
	return &SceneCloud{
		layout: layout,
		data:   data,
		dense:  tensor.New(tensor.WithShape(rows, pointStride), tensor.WithBacking(data)),
	}
}

// Layout returns the segment sizes of the cloud.
func (c *SceneCloud) Layout() SceneLayout {
	return c.layout
}

// Size returns the number of points in the cloud.
func (c *SceneCloud) Size() int {
	return c.layout.TotalPoints()
}

// Tensor returns the cloud as a dense (rows, 4) float32 tensor. The tensor shares the cloud's
// backing buffer, so segment writes are visible through it without copying.
func (c *SceneCloud) Tensor() *tensor.Dense {
	return c.dense
}

// Data returns the raw row-major backing buffer of the cloud.
func (c *SceneCloud) Data() []float32 {
	return c.data
}

// At returns the xyz and label of the given row.
func (c *SceneCloud) At(row int) (r3.Vector, float32) {
	i := row * pointStride
	return r3.Vector{X: float64(c.data[i]), Y: float64(c.data[i+1]), Z: float64(c.data[i+2])}, c.data[i+3]
}

// SetRobotPoints overwrites the xyz of the robot segment. This is the only segment expected to
// change between rollout steps.
func (c *SceneCloud) SetRobotPoints(pts []r3.Vector) error {
	if len(pts) != c.layout.NumRobotPoints {
		return newWrongSegmentSizeError("robot", len(pts), c.layout.NumRobotPoints)
	}
	c.setSegment(0, pts)
	return nil
}

// SetObstaclePoints overwrites the xyz of the obstacle segment.
func (c *SceneCloud) SetObstaclePoints(pts []r3.Vector) error {
	if len(pts) != c.layout.NumObstaclePoints {
		return newWrongSegmentSizeError("obstacle", len(pts), c.layout.NumObstaclePoints)
	}
	c.setSegment(c.layout.NumRobotPoints, pts)
	return nil
}

// SetTargetPoints overwrites the xyz of the target segment.
func (c *SceneCloud) SetTargetPoints(pts []r3.Vector) error {
	if len(pts) != c.layout.NumTargetPoints {
		return newWrongSegmentSizeError("target", len(pts), c.layout.NumTargetPoints)
	}
	c.setSegment(c.layout.NumRobotPoints+c.layout.NumObstaclePoints, pts)
	return nil
}

func (c *SceneCloud) setSegment(startRow int, pts []r3.Vector) {
	for i, pt := range pts {
		j := (startRow + i) * pointStride
		c.data[j] = float32(pt.X)
		c.data[j+1] = float32(pt.Y)
		c.data[j+2] = float32(pt.Z)
	}
}

func newWrongSegmentSizeError(segment string, actual, expected int) error {
	return errors.Errorf("%s segment must contain exactly %d points, got %d", segment, expected, actual)
}
