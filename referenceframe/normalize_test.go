package referenceframe

import (
	"math/rand"
	"strings"
	"testing"

	"go.viam.com/test"
)

var testLimits = []Limit{
	{-2.8973, 2.8973},
	{-1.7628, 1.7628},
	{-3.0718, -0.0698},
	{-0.0175, 3.7525},
}

func TestNormalizeRoundTrip(t *testing.T) {
	//nolint:gosec
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 100; trial++ {
		inputs := make([]Input, len(testLimits))
		for i, limit := range testLimits {
			inputs[i] = Input{limit.Min + r.Float64()*(limit.Max-limit.Min)}
		}
		normalized, err := NormalizeInputs(inputs, testLimits)
		test.That(t, err, test.ShouldBeNil)
		for _, n := range normalized {
			test.That(t, n.Value, test.ShouldBeBetweenOrEqual, -1, 1)
		}
		restored, err := UnnormalizeInputs(normalized, testLimits)
		test.That(t, err, test.ShouldBeNil)
		for i := range inputs {
			test.That(t, restored[i].Value, test.ShouldAlmostEqual, inputs[i].Value, 1e-12)
		}
	}
}

func TestNormalizeEndpoints(t *testing.T) {
	lows := make([]Input, len(testLimits))
	highs := make([]Input, len(testLimits))
	for i, limit := range testLimits {
		lows[i] = Input{limit.Min}
		highs[i] = Input{limit.Max}
	}
	normalized, err := NormalizeInputs(lows, testLimits)
	test.That(t, err, test.ShouldBeNil)
	for _, n := range normalized {
		test.That(t, n.Value, test.ShouldAlmostEqual, -1)
	}
	normalized, err = NormalizeInputs(highs, testLimits)
	test.That(t, err, test.ShouldBeNil)
	for _, n := range normalized {
		test.That(t, n.Value, test.ShouldAlmostEqual, 1)
	}
}

func TestNormalizeErrors(t *testing.T) {
	_, err := NormalizeInputs(FloatsToInputs([]float64{0}), testLimits)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NormalizeInputs(FloatsToInputs([]float64{0}), []Limit{{1, 1}})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = UnnormalizeInputs(FloatsToInputs([]float64{0, 0}), []Limit{{-1, 1}})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCheckInputLimits(t *testing.T) {
	within := FloatsToInputs([]float64{0, 0, -1, 1})
	test.That(t, CheckInputLimits(within, testLimits), test.ShouldBeNil)

	// bounds are inclusive
	edges := FloatsToInputs([]float64{-2.8973, 1.7628, -0.0698, -0.0175})
	test.That(t, CheckInputLimits(edges, testLimits), test.ShouldBeNil)

	oob := FloatsToInputs([]float64{0, 2, -1, 4})
	err := CheckInputLimits(oob, testLimits)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, strings.Contains(err.Error(), OOBErrString), test.ShouldBeTrue)
	test.That(t, strings.Contains(err.Error(), "joint 1"), test.ShouldBeTrue)
	test.That(t, strings.Contains(err.Error(), "joint 3"), test.ShouldBeTrue)
}

func TestInterpolateInputs(t *testing.T) {
	from := FloatsToInputs([]float64{0, -1})
	to := FloatsToInputs([]float64{1, 1})
	mid := InterpolateInputs(from, to, 0.5)
	test.That(t, mid[0].Value, test.ShouldAlmostEqual, 0.5)
	test.That(t, mid[1].Value, test.ShouldAlmostEqual, 0)
}
