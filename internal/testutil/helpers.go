// Package testutil provides reusable assertions for synthesized audio in tests.
package testutil

import (
	"fmt"
	"math"

	"github.com/stretchr/testify/assert"
)

// TestingT is the subset of *testing.T the assertions need.
type TestingT interface {
	assert.TestingT
	Helper()
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t TestingT, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, fmt.Sprintf(
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal), msgAndArgs...)
		}
	}
	return true
}

// AssertMaxStep verifies that no two consecutive samples differ by more
// than maxStep. A phase-continuous tone never jumps further than its
// steepest slope allows.
func AssertMaxStep(t TestingT, s []int16, maxStep float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		step := math.Abs(float64(s[i]) - float64(s[i-1]))
		if step > maxStep {
			return assert.Fail(t, fmt.Sprintf(
				"discontinuity: |s[%d]-s[%d]| = %.0f exceeds %.0f", i, i-1, step, maxStep), msgAndArgs...)
		}
	}
	return true
}

// AssertSilent verifies that every sample is exactly zero.
func AssertSilent(t TestingT, s []int16, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, fmt.Sprintf("expected silence: s[%d]=%d", i, v), msgAndArgs...)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t TestingT, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	if relError > tolerance {
		return assert.Fail(t, fmt.Sprintf(
			"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
			relError, tolerance, expected, actual), msgAndArgs...)
	}
	return true
}
