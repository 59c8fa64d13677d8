package spatialmath

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// cylinder is a geometric primitive with a pose, radius, and length that fully define it. The axis
// of the cylinder is the z axis of its pose, and its length is centered on the pose point.
type cylinder struct {
	pose   Pose
	radius float64
	length float64
	label  string
}

// NewCylinder instantiates a new cylinder Geometry.
func NewCylinder(pose Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadGeometryDimensionsError(&cylinder{})
	}
	return &cylinder{pose: pose, radius: radius, length: length, label: label}, nil
}

// String returns a human readable string that represents the cylinder.
func (c *cylinder) String() string {
	pt := c.pose.Point()
	return fmt.Sprintf("Type: Cylinder | Position: X:%.1f, Y:%.1f, Z:%.1f | Radius: %.2f, Length: %.2f",
		pt.X, pt.Y, pt.Z, c.radius, c.length)
}

// Label returns the label of this cylinder.
func (c *cylinder) Label() string {
	return c.label
}

// Pose returns the pose of the cylinder.
func (c *cylinder) Pose() Pose {
	return c.pose
}

// Transform premultiplies the cylinder pose with a transform, allowing the cylinder to be moved in space.
func (c *cylinder) Transform(toPremultiply Pose) Geometry {
	return &cylinder{
		pose:   Compose(toPremultiply, c.pose),
		radius: c.radius,
		length: c.length,
		label:  c.label,
	}
}

// SurfaceArea returns the surface area of the cylinder, lateral surface plus both caps.
func (c *cylinder) SurfaceArea() float64 {
	return 2*math.Pi*c.radius*c.length + 2*math.Pi*c.radius*c.radius
}

// SamplePoints returns n points sampled uniformly at random from the surface of the cylinder,
// distributed between the lateral surface and the two caps by area.
func (c *cylinder) SamplePoints(n int, randSource *rand.Rand) []r3.Vector {
	lateralArea := 2 * math.Pi * c.radius * c.length
	capArea := math.Pi * c.radius * c.radius

	pts := make([]r3.Vector, 0, n)
	for i := 0; i < n; i++ {
		pick := randSource.Float64() * (lateralArea + 2*capArea)
		phi := 2 * math.Pi * randSource.Float64()
		var local r3.Vector
		if pick < lateralArea {
			local = r3.Vector{
				X: c.radius * math.Cos(phi),
				Y: c.radius * math.Sin(phi),
				Z: (randSource.Float64() - 0.5) * c.length,
			}
		} else {
			// sqrt gives a uniform density over the cap disk
			r := c.radius * math.Sqrt(randSource.Float64())
			z := c.length / 2
			if pick < lateralArea+capArea {
				z = -z
			}
			local = r3.Vector{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
		}
		pts = append(pts, TransformPoint(c.pose, local))
	}
	return pts
}

// toBox returns the bounding box of the cylinder in its own frame, dimensions (2r, 2r, length) at
// the same center and orientation.
func (c *cylinder) toBox() Geometry {
	return &box{
		pose:     c.pose,
		halfSize: [3]float64{c.radius, c.radius, c.length / 2},
		label:    c.label,
	}
}
