package rtty

// Sample rate limits
const (
	// MaxSampleRate is the highest supported output sample rate in Hz.
	MaxSampleRate = 44100

	// MaxDurationSeconds bounds a single run: the sample sink holds at most
	// this many seconds at MaxSampleRate.
	MaxDurationSeconds = 3200

	// DefaultMaxSamples is the sample sink capacity used when
	// Config.MaxSamples is zero.
	DefaultMaxSamples = MaxDurationSeconds * MaxSampleRate
)

// Defaults matching common 300 baud AFSK practice
const (
	DefaultSampleRate = 22050
	DefaultBaudRate   = 300
	DefaultMarkFreq   = 1500
	DefaultSpaceFreq  = 1200
	DefaultBitWidth   = 8
	DefaultStopBits   = 1
	DefaultVolume     = 0.20 // fraction of 16-bit full scale, leaves headroom
)

// Validation limits
const (
	minBitWidth = 1
	maxBitWidth = 8
	maxStopBits = 255

	// minShiftHz is the smallest mark/space separation considered usable.
	minShiftHz = 20.0
)

// Sample format constants
const (
	bitsPerSample         = 16
	fullScale16           = 1 << 15 // magnitude of the int16 range
	microsecondsPerSecond = 1_000_000.0
	nyquistDivisor        = 2
)
