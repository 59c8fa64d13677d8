package pointcloud

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/yclihkclr/motion-policy-networks/spatialmath"
)

// MixedGeometryCloud samples numPoints points from the surfaces of the given geometries, dividing
// the budget between geometries proportionally to surface area.
func MixedGeometryCloud(geometries []spatialmath.Geometry, numPoints int, randSource *rand.Rand) ([]r3.Vector, error) {
	if len(geometries) == 0 {
		return nil, errors.New("cannot sample points from an empty geometry list")
	}
	if numPoints <= 0 {
		return nil, errors.Errorf("number of points to sample must be positive, got %d", numPoints)
	}
	counts := spatialmath.GeometryPointDensity(geometries, numPoints)
	pts := make([]r3.Vector, 0, numPoints)
	for i, g := range geometries {
		pts = append(pts, g.SamplePoints(counts[i], randSource)...)
	}
	return pts, nil
}

// SubsamplePoints picks n points from the given cloud uniformly at random without replacement,
// selecting by index rather than rebuilding the cloud. It errors if fewer than n points are
// available.
func SubsamplePoints(pts []r3.Vector, n int, randSource *rand.Rand) ([]r3.Vector, error) {
	if len(pts) < n {
		return nil, errors.Errorf("cannot subsample %d points from a cloud of %d", n, len(pts))
	}
	picked := make([]r3.Vector, n)
	for i, idx := range randSource.Perm(len(pts))[:n] {
		picked[i] = pts[idx]
	}
	return picked, nil
}
