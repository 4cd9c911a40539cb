package rtty

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tphakala/go-rtty/internal/container"
	"github.com/tphakala/go-rtty/internal/framing"
	"github.com/tphakala/go-rtty/internal/pipeline"
)

// Common errors returned by the generator.
var (
	// ErrInvalidConfig indicates invalid or contradictory run parameters.
	ErrInvalidConfig = errors.New("invalid rtty configuration")

	// ErrOpenResource indicates the input could not be read or the output
	// could not be created.
	ErrOpenResource = errors.New("cannot open resource")

	// ErrCapacityExceeded indicates the run would synthesize more samples
	// than the configured maximum.
	ErrCapacityExceeded = pipeline.ErrCapacityExceeded

	// ErrUnknownFormat indicates an unsupported output container.
	ErrUnknownFormat = errors.New("unknown audio format")
)

// Parity selects the parity bit sent after the data bits.
type Parity = framing.Parity

// Parity modes. The numeric values match the historical CLI codes 0-4.
const (
	ParityNone = framing.ParityNone
	ParityOdd  = framing.ParityOdd
	ParityEven = framing.ParityEven
	ParityZero = framing.ParityZero
	ParityOne  = framing.ParityOne
)

// ParseParity accepts a parity name (none, odd, even, zero, one, with
// space and mark as aliases for zero and one) or its numeric code 0-4.
func ParseParity(s string) (Parity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "none", "n":
		return ParityNone, nil
	case "odd", "o":
		return ParityOdd, nil
	case "even", "e":
		return ParityEven, nil
	case "zero", "space", "s":
		return ParityZero, nil
	case "one", "mark", "m":
		return ParityOne, nil
	}

	if n, err := strconv.Atoi(name); err == nil && Parity(n).Valid() {
		return Parity(n), nil
	}
	return ParityNone, fmt.Errorf("%w: unknown parity %q", ErrInvalidConfig, s)
}

// Format selects the audio container written at the end of a run.
type Format int

const (
	// FormatWAV writes a RIFF/WAVE file with signed little-endian samples.
	FormatWAV Format = iota

	// FormatAIFF writes a FORM/AIFF file with big-endian samples offset
	// by +32768.
	FormatAIFF
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatWAV:
		return "wav"
	case FormatAIFF:
		return "aiff"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file name extension for the format, with the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat accepts "wav", "aiff" or "aif" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "wav", "wave":
		return FormatWAV, nil
	case "aiff", "aif":
		return FormatAIFF, nil
	default:
		return FormatWAV, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) kind() (container.Kind, error) {
	switch f {
	case FormatWAV:
		return container.WAV, nil
	case FormatAIFF:
		return container.AIFF, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}
}

// Config holds the parameters of one synthesis run.
// It is read once by New and never modified afterwards.
type Config struct {
	// SampleRate is the output sample rate in Hz, at most MaxSampleRate.
	SampleRate int

	// BaudRate is the signalling rate in bits per second.
	// Fractional rates such as 45.45 are allowed.
	BaudRate float64

	// MarkFreq is the tone in Hz for 1 bits, stop bits and idle carrier.
	MarkFreq float64

	// SpaceFreq is the tone in Hz for 0 bits and the start bit.
	SpaceFreq float64

	// BitWidth is the number of data bits taken from each byte, LSB first.
	BitWidth int

	// Parity selects the optional parity bit.
	Parity Parity

	// StopBits is the number of mark bits closing each frame.
	StopBits int

	// Volume is the peak amplitude as a fraction of 16-bit full scale.
	Volume float64

	// MaxSamples caps the number of synthesized samples.
	// Zero selects DefaultMaxSamples.
	MaxSamples int
}

// DefaultConfig returns 300 baud, 1500/1200 Hz, 8N1 at 22050 Hz.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		BaudRate:   DefaultBaudRate,
		MarkFreq:   DefaultMarkFreq,
		SpaceFreq:  DefaultSpaceFreq,
		BitWidth:   DefaultBitWidth,
		Parity:     ParityNone,
		StopBits:   DefaultStopBits,
		Volume:     DefaultVolume,
	}
}

// Validate checks that the configuration can be synthesized.
// All problems are reported together; each wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.SampleRate <= 0 || c.SampleRate > MaxSampleRate {
		invalid("sample rate %d must be in 1..%d Hz", c.SampleRate, MaxSampleRate)
	}

	if !(c.BaudRate > 0) || math.IsInf(c.BaudRate, 0) {
		invalid("baud rate %v must be positive", c.BaudRate)
	}

	if !finiteNonNegative(c.MarkFreq) {
		invalid("mark frequency %v must be a non-negative number", c.MarkFreq)
	}
	if !finiteNonNegative(c.SpaceFreq) {
		invalid("space frequency %v must be a non-negative number", c.SpaceFreq)
	}

	if c.BitWidth < minBitWidth || c.BitWidth > maxBitWidth {
		invalid("bit width %d must be in %d..%d", c.BitWidth, minBitWidth, maxBitWidth)
	}

	if !c.Parity.Valid() {
		invalid("unknown parity %d", int(c.Parity))
	}

	if c.StopBits < 0 || c.StopBits > maxStopBits {
		invalid("stop bits %d must be in 0..%d", c.StopBits, maxStopBits)
	}

	if !(c.Volume > 0 && c.Volume <= 1) {
		invalid("volume %v must be in (0, 1]", c.Volume)
	}

	if c.MaxSamples < 0 {
		invalid("max samples %d must not be negative", c.MaxSamples)
	}

	return errors.Join(errs...)
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Warnings returns advisory messages about settings that are legal but
// unusual. They never prevent synthesis.
func (c *Config) Warnings() []string {
	var warnings []string

	if math.Abs(c.MarkFreq-c.SpaceFreq) < minShiftHz {
		warnings = append(warnings, fmt.Sprintf(
			"mark/space shift of %.0f Hz is too small to be usable (minimum %.0f Hz)",
			math.Abs(c.MarkFreq-c.SpaceFreq), minShiftHz))
	}

	if c.MarkFreq < c.SpaceFreq {
		warnings = append(warnings, fmt.Sprintf(
			"mark (%.0f Hz) is usually higher than space (%.0f Hz)", c.MarkFreq, c.SpaceFreq))
	}

	if c.SampleRate > 0 {
		nyquist := float64(c.SampleRate) / nyquistDivisor
		for _, tone := range []struct {
			name string
			freq float64
		}{{"mark", c.MarkFreq}, {"space", c.SpaceFreq}} {
			if tone.freq >= nyquist {
				warnings = append(warnings, fmt.Sprintf(
					"%s frequency %.0f Hz is at or above the Nyquist limit of %.0f Hz",
					tone.name, tone.freq, nyquist))
			}
		}
	}

	return warnings
}

// BitDuration returns the length of one bit in microseconds.
func (c *Config) BitDuration() float64 {
	return microsecondsPerSecond / c.BaudRate
}

// FrameBits returns the number of bit-durations each input byte occupies.
func (c *Config) FrameBits() int {
	return c.framing().FrameBits()
}

// Amplitude returns the peak sample magnitude.
func (c *Config) Amplitude() float64 {
	return math.Floor(fullScale16 * c.Volume)
}

// EstimateSamples returns the number of samples a run over n input bytes
// produces, including preamble and postamble.
func (c *Config) EstimateSamples(n int64) int64 {
	bits := float64(framing.PreambleBits+framing.PostambleBits) + float64(n)*float64(c.FrameBits())
	return int64(math.Round(bits * c.BitDuration() * float64(c.SampleRate) / microsecondsPerSecond))
}

func (c *Config) maxSamples() int {
	if c.MaxSamples == 0 {
		return DefaultMaxSamples
	}
	return c.MaxSamples
}

func (c *Config) framing() framing.Settings {
	return framing.Settings{
		Mark:        c.MarkFreq,
		Space:       c.SpaceFreq,
		BitDuration: c.BitDuration(),
		BitWidth:    c.BitWidth,
		Parity:      c.Parity,
		StopBits:    c.StopBits,
	}
}
