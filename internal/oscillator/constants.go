package oscillator

import "math"

// Timing constants
const (
	microsecondsPerSecond = 1_000_000.0

	// roundHalfUp is added before flooring to round sample counts half-up.
	roundHalfUp = 0.5
)

// Synthesis constants
const (
	twoPi = 2 * math.Pi

	// chunkSize is the number of samples synthesized per append.
	chunkSize = 1024

	// silenceValue is the centre of the signed 16-bit range.
	silenceValue int16 = 0

	maxInt16 = 32767
	minInt16 = -32768
)
