package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates an empty R4AA struct.
func NewR4AA() *R4AA {
	return &R4AA{0, 0, 0, 1}
}

// Quaternion returns orientation in quaternion representation.
func (aa *R4AA) Quaternion() quat.Number {
	sinA := math.Sin(aa.Theta / 2)
	// Ensure that point xyz is on the unit sphere
	aa.Normalize()
	return quat.Number{
		Real: math.Cos(aa.Theta / 2),
		Imag: sinA * aa.RX,
		Jmag: sinA * aa.RY,
		Kmag: sinA * aa.RZ,
	}
}

// AxisAngles returns the orientation in axis angle representation.
func (aa *R4AA) AxisAngles() *R4AA {
	return aa
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
func (aa *R4AA) Normalize() {
	norm := math.Sqrt(aa.RX*aa.RX + aa.RY*aa.RY + aa.RZ*aa.RZ)
	if norm == 0 {
		aa.RZ = 1
		return
	}
	aa.RX /= norm
	aa.RY /= norm
	aa.RZ /= norm
}
