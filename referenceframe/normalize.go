package referenceframe

import (
	"go.uber.org/multierr"
)

// NormalizeInputs maps each input affinely from its joint's limit range onto [-1, 1]. The map is
// exactly inverted by UnnormalizeInputs for values strictly inside the limits. Inputs outside the
// limits are mapped outside [-1, 1]; no clamping happens here.
func NormalizeInputs(inputs []Input, limits []Limit) ([]Input, error) {
	if len(inputs) != len(limits) {
		return nil, NewIncorrectInputLengthError(len(inputs), len(limits))
	}
	normalized := make([]Input, len(inputs))
	for i, input := range inputs {
		if limits[i].Max <= limits[i].Min {
			return nil, newDegenerateLimitError(i, limits[i])
		}
		normalized[i] = Input{2*(input.Value-limits[i].Min)/(limits[i].Max-limits[i].Min) - 1}
	}
	return normalized, nil
}

// UnnormalizeInputs maps each input affinely from [-1, 1] back onto its joint's limit range. It is
// the inverse of NormalizeInputs.
func UnnormalizeInputs(normalized []Input, limits []Limit) ([]Input, error) {
	if len(normalized) != len(limits) {
		return nil, NewIncorrectInputLengthError(len(normalized), len(limits))
	}
	inputs := make([]Input, len(normalized))
	for i, norm := range normalized {
		if limits[i].Max <= limits[i].Min {
			return nil, newDegenerateLimitError(i, limits[i])
		}
		inputs[i] = Input{(norm.Value+1)/2*(limits[i].Max-limits[i].Min) + limits[i].Min}
	}
	return inputs, nil
}

// CheckInputLimits returns an error if any input lies outside its joint's limits, both bounds
// inclusive. Every violating joint is reported.
func CheckInputLimits(inputs []Input, limits []Limit) error {
	if len(inputs) != len(limits) {
		return NewIncorrectInputLengthError(len(inputs), len(limits))
	}
	var errAll error
	for i, input := range inputs {
		if input.Value < limits[i].Min || input.Value > limits[i].Max {
			multierr.AppendInto(&errAll, newLimitViolationError(i, input.Value, limits[i]))
		}
	}
	return errAll
}
