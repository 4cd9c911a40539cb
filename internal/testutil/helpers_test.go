package testutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recorder captures failures instead of failing the running test.
type recorder struct {
	errors []string
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Helper() {}

func TestAssertions_Pass(t *testing.T) {
	r := &recorder{}
	assert.True(t, AssertAllInRange(r, []float64{-0.2, 0, 0.2}, -0.2, 0.2))
	assert.True(t, AssertMaxStep(r, []int16{0, 100, 0, -100}, 100))
	assert.True(t, AssertSilent(r, []int16{0, 0, 0}))
	assert.True(t, AssertRelativeError(r, 100, 100.5, 0.01))
	assert.True(t, AssertRelativeError(r, 0, 0.001, 0.01))
	assert.Empty(t, r.errors)
}

func TestAssertions_ForwardMessage(t *testing.T) {
	tests := []struct {
		name   string
		assert func(r *recorder) bool
		want   string
	}{
		{"range", func(r *recorder) bool {
			return AssertAllInRange(r, []float64{0, 2}, -1, 1, "window %d", 7)
		}, "s[1]=2.000000"},
		{"step", func(r *recorder) bool {
			return AssertMaxStep(r, []int16{0, 5000}, 100, "window %d", 7)
		}, "discontinuity"},
		{"silence", func(r *recorder) bool {
			return AssertSilent(r, []int16{0, 3}, "window %d", 7)
		}, "s[1]=3"},
		{"relative error", func(r *recorder) bool {
			return AssertRelativeError(r, 100, 150, 0.01, "window %d", 7)
		}, "exceeds tolerance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			assert.False(t, tt.assert(r))
			if assert.Len(t, r.errors, 1) {
				assert.Contains(t, r.errors[0], tt.want)
				assert.Contains(t, r.errors[0], "window 7")
			}
		})
	}
}
