package spatialmath

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Geometry is an entry point with which to access all types of geometric primitives used to
// describe obstacles and robot links.
type Geometry interface {
	Pose() Pose
	Label() string
	SurfaceArea() float64

	// Transform premultiplies the geometry pose with a transform, allowing the geometry to be
	// moved in space. The receiver is untouched.
	Transform(toPremultiply Pose) Geometry

	// SamplePoints returns n points sampled uniformly at random from the surface of the geometry,
	// in the frame the geometry's pose is expressed in.
	SamplePoints(n int, randSource *rand.Rand) []r3.Vector
}

// newBadGeometryDimensionsError is returned when the dimensions passed into a geometry constructor
// do not make sense for that geometry.
func newBadGeometryDimensionsError(g Geometry) error {
	return errors.Errorf("invalid dimensions for a geometry of type %T", g)
}

// CylindersToBoxes returns a copy of the given geometry list with every cylinder replaced by its
// bounding box, a box with dimensions (2r, 2r, height) at the same center and orientation. The
// substitution is lossy and one-way; all other geometries are passed through untouched.
func CylindersToBoxes(geometries []Geometry) []Geometry {
	boxed := make([]Geometry, 0, len(geometries))
	for _, g := range geometries {
		if cyl, ok := g.(*cylinder); ok {
			boxed = append(boxed, cyl.toBox())
			continue
		}
		boxed = append(boxed, g)
	}
	return boxed
}

// GeometryPointDensity divides a total point budget between geometries proportionally to their
// surface areas. The returned counts always sum to numPoints; leftovers from rounding are assigned
// to the geometries with the largest areas.
func GeometryPointDensity(geometries []Geometry, numPoints int) []int {
	totalArea := 0.
	for _, g := range geometries {
		totalArea += g.SurfaceArea()
	}
	counts := make([]int, len(geometries))
	assigned := 0
	largest := 0
	for i, g := range geometries {
		counts[i] = int(float64(numPoints) * g.SurfaceArea() / totalArea)
		assigned += counts[i]
		if g.SurfaceArea() > geometries[largest].SurfaceArea() {
			largest = i
		}
	}
	counts[largest] += numPoints - assigned
	return counts
}
