// Package pipeline holds the sample storage shared by the synthesis stages.
// Samples are appended in emission order and read back once by the
// container writer.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned when an append would grow the buffer
// past its configured maximum sample count.
var ErrCapacityExceeded = errors.New("sample capacity exceeded")

// SampleBuffer is an append-only sequence of 16-bit PCM samples with a
// hard upper bound on its length.
// It is not safe for concurrent use; a synthesis run owns exactly one.
type SampleBuffer struct {
	data []int16
	max  int
}

// NewSampleBuffer creates a buffer that preallocates initial samples and
// never holds more than maxSamples. A non-positive initial uses a default hint,
// clamped to maxSamples.
func NewSampleBuffer(initial, maxSamples int) *SampleBuffer {
	maxSamples = max(maxSamples, 0)
	if initial <= 0 {
		initial = defaultInitialCapacity
	}
	initial = min(initial, maxSamples)

	return &SampleBuffer{
		data: make([]int16, 0, initial),
		max:  maxSamples,
	}
}

// Append adds samples to the end of the buffer.
// The append is all-or-nothing: if the result would exceed the maximum,
// the buffer is left unchanged and ErrCapacityExceeded is returned.
func (b *SampleBuffer) Append(samples []int16) error {
	needed := len(samples)
	if needed == 0 {
		return nil
	}

	if needed > b.max-len(b.data) {
		return fmt.Errorf("%w: %d + %d samples exceeds maximum of %d",
			ErrCapacityExceeded, len(b.data), needed, b.max)
	}

	if len(b.data)+needed > cap(b.data) {
		b.grow(len(b.data) + needed)
	}

	b.data = append(b.data, samples...)
	return nil
}

// Len returns the number of samples appended so far.
func (b *SampleBuffer) Len() int {
	return len(b.data)
}

// At returns the sample at index i. It panics if i is out of range,
// like a slice index.
func (b *SampleBuffer) At(i int) int16 {
	return b.data[i]
}

// Samples returns the appended samples. The slice aliases the buffer's
// storage and must not be modified.
func (b *SampleBuffer) Samples() []int16 {
	return b.data[:len(b.data):len(b.data)]
}

// Max returns the maximum number of samples the buffer will accept.
func (b *SampleBuffer) Max() int {
	return b.max
}

// Remaining returns how many more samples can be appended.
func (b *SampleBuffer) Remaining() int {
	return b.max - len(b.data)
}

// Capacity returns the current allocation in samples.
func (b *SampleBuffer) Capacity() int {
	return cap(b.data)
}

// grow increases the allocation to at least minCapacity, never past max.
func (b *SampleBuffer) grow(minCapacity int) {
	// Calculate new capacity (double until sufficient)
	newCapacity := max(cap(b.data), 1)
	for newCapacity < minCapacity {
		newCapacity *= bufferGrowthFactor
	}
	newCapacity = min(newCapacity, b.max)

	newData := make([]int16, len(b.data), newCapacity)
	copy(newData, b.data)
	b.data = newData
}
