// Package oscillator implements a phase-continuous sine tone generator.
//
// Successive tones share one running phase, so a change of frequency never
// restarts the waveform. Requested durations are converted to whole samples
// with the rounding error carried into the next request, which keeps the
// total emitted duration within one sample period of the total requested.
package oscillator

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// Appender receives synthesized samples in emission order.
type Appender interface {
	Append(samples []int16) error
}

// Oscillator holds the running phase and drift remainder of a synthesis run.
type Oscillator struct {
	out Appender

	sampleRate    float64
	usPerSample   float64
	twoPiOverRate float64
	amplitude     float64

	phase   float64 // radians, kept in [0, 2π)
	drift   float64 // carried rounding remainder in µs
	emitted int

	// Working buffers (reused across tones)
	sines []float64
	pcm   []int16
}

// New creates an oscillator for the given sample rate. Amplitude is the
// peak sample magnitude (for example 20% of 32768).
func New(sampleRate int, amplitude float64, out Appender) *Oscillator {
	rate := float64(sampleRate)
	return &Oscillator{
		out:           out,
		sampleRate:    rate,
		usPerSample:   microsecondsPerSecond / rate,
		twoPiOverRate: twoPi / rate,
		amplitude:     amplitude,
		sines:         make([]float64, chunkSize),
		pcm:           make([]int16, chunkSize),
	}
}

// SampleCount returns the number of samples a tone of durationUS occupies
// given the current drift remainder, and the remainder left afterwards.
func (o *Oscillator) SampleCount(durationUS float64) (n int, remainder float64) {
	total := durationUS + o.drift
	n = max(int(math.Floor(total/o.usPerSample+roundHalfUp)), 0)
	return n, total - float64(n)*o.usPerSample
}

// PlayTone appends a tone of freqHz lasting durationUS microseconds.
// A zero frequency produces flat silence and leaves the phase untouched.
func (o *Oscillator) PlayTone(freqHz, durationUS float64) error {
	n, remainder := o.SampleCount(durationUS)
	o.drift = remainder

	if freqHz == 0 {
		return o.silence(n)
	}

	delta := o.twoPiOverRate * freqHz
	for n > 0 {
		size := min(n, chunkSize)

		sines := o.sines[:size]
		for i := range sines {
			sines[i] = math.Sin(o.phase)
			o.phase += delta
		}

		f64.Scale(sines, sines, o.amplitude)

		pcm := o.pcm[:size]
		for i, v := range sines {
			pcm[i] = quantize(v)
		}

		if err := o.out.Append(pcm); err != nil {
			return err
		}
		o.emitted += size
		n -= size
	}

	o.phase = math.Mod(o.phase, twoPi)
	return nil
}

// silence appends n centre-value samples.
func (o *Oscillator) silence(n int) error {
	pcm := o.pcm[:min(n, chunkSize)]
	for i := range pcm {
		pcm[i] = silenceValue
	}

	for n > 0 {
		size := min(n, chunkSize)
		if err := o.out.Append(pcm[:size]); err != nil {
			return err
		}
		o.emitted += size
		n -= size
	}
	return nil
}

// quantize truncates toward zero and clamps to the int16 range.
func quantize(v float64) int16 {
	switch {
	case v >= maxInt16:
		return maxInt16
	case v <= minInt16:
		return minInt16
	default:
		return int16(v)
	}
}

// Phase returns the current phase in radians, in [0, 2π).
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// Drift returns the carried rounding remainder in microseconds.
func (o *Oscillator) Drift() float64 {
	return o.drift
}

// Emitted returns the total number of samples appended.
func (o *Oscillator) Emitted() int {
	return o.emitted
}

// MicrosecondsPerSample returns the duration of one sample period.
func (o *Oscillator) MicrosecondsPerSample() float64 {
	return o.usPerSample
}
