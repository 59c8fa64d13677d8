package spatialmath

import (
	"fmt"
	"math/rand"

	"github.com/golang/geo/r3"
)

// The half-extent axes of the three pairs of box faces. For each entry, the first two vectors span
// the face and the third is the outward direction of the fixed coordinate.
var boxFaceAxes = [3][3]int{
	{1, 2, 0}, // +-x faces
	{0, 2, 1}, // +-y faces
	{0, 1, 2}, // +-z faces
}

// box is a geometric primitive that represents a 3D rectangular prism. It has a pose and half size
// that fully define it.
type box struct {
	pose     Pose
	halfSize [3]float64
	label    string
}

// NewBox instantiates a new box Geometry.
func NewBox(pose Pose, dims r3.Vector, label string) (Geometry, error) {
	// Negative dimensions not allowed. Zero dimensions are allowed for bounding boxes, etc.
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadGeometryDimensionsError(&box{})
	}
	return &box{
		pose:     pose,
		halfSize: [3]float64{dims.X / 2, dims.Y / 2, dims.Z / 2},
		label:    label,
	}, nil
}

// String returns a human readable string that represents the box.
func (b *box) String() string {
	c := b.pose.Point()
	return fmt.Sprintf("Type: Box | Position: X:%.1f, Y:%.1f, Z:%.1f | Dims: X:%.2f, Y:%.2f, Z:%.2f",
		c.X, c.Y, c.Z, 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

// Label returns the label of this box.
func (b *box) Label() string {
	return b.label
}

// Pose returns the pose of the box.
func (b *box) Pose() Pose {
	return b.pose
}

// Transform premultiplies the box pose with a transform, allowing the box to be moved in space.
func (b *box) Transform(toPremultiply Pose) Geometry {
	return &box{
		pose:     Compose(toPremultiply, b.pose),
		halfSize: b.halfSize,
		label:    b.label,
	}
}

// SurfaceArea returns the surface area of the box.
func (b *box) SurfaceArea() float64 {
	x, y, z := 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2]
	return 2 * (x*y + y*z + x*z)
}

// SamplePoints returns n points sampled uniformly at random from the surface of the box, weighted
// by face area.
func (b *box) SamplePoints(n int, randSource *rand.Rand) []r3.Vector {
	faceAreas := [3]float64{
		b.halfSize[1] * b.halfSize[2],
		b.halfSize[0] * b.halfSize[2],
		b.halfSize[0] * b.halfSize[1],
	}
	totalArea := faceAreas[0] + faceAreas[1] + faceAreas[2]

	pts := make([]r3.Vector, 0, n)
	for i := 0; i < n; i++ {
		// pick one of the three face pairs by area, then one face of the pair
		pick := randSource.Float64() * totalArea
		pair := 0
		for pick > faceAreas[pair] && pair < 2 {
			pick -= faceAreas[pair]
			pair++
		}
		axes := boxFaceAxes[pair]

		var local [3]float64
		local[axes[0]] = (2*randSource.Float64() - 1) * b.halfSize[axes[0]]
		local[axes[1]] = (2*randSource.Float64() - 1) * b.halfSize[axes[1]]
		local[axes[2]] = b.halfSize[axes[2]]
		if randSource.Float64() < 0.5 {
			local[axes[2]] *= -1
		}
		pts = append(pts, TransformPoint(b.pose, r3.Vector{X: local[0], Y: local[1], Z: local[2]}))
	}
	return pts
}
