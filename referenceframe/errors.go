package referenceframe

import (
	"github.com/pkg/errors"
)

// NewIncorrectInputLengthError returns an error describing a mismatch between the length of an
// input slice and the degrees of freedom it was used against.
func NewIncorrectInputLengthError(actual, expected int) error {
	return errors.Errorf("number of inputs does not match frame DoF, expected %d but got %d", expected, actual)
}

// newLimitViolationError returns an error describing a joint whose value lies outside its limits.
func newLimitViolationError(index int, value float64, limit Limit) error {
	return errors.Errorf("%s: joint %d value %.5f is not within limits [%.5f, %.5f]",
		OOBErrString, index, value, limit.Min, limit.Max)
}

// newDegenerateLimitError is returned when a joint limit has no extent and so cannot support the
// affine map onto [-1, 1].
func newDegenerateLimitError(index int, limit Limit) error {
	return errors.Errorf("joint %d limits [%.5f, %.5f] have no extent", index, limit.Min, limit.Max)
}
