// Package spectrum measures the tones present in synthesized audio.
//
// It is used to check generated RTTY signals: the dominant frequency of a
// window of samples should sit on the configured mark or space tone.
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Peak is the strongest tone found in one analysis window.
type Peak struct {
	Offset    int     // first sample of the window
	Freq      float64 // Hz, refined by parabolic interpolation
	Magnitude float64 // linear magnitude of the peak bin
}

// Analyzer computes windowed FFT peaks for a fixed window size.
// It reuses its working buffers and is not safe for concurrent use.
type Analyzer struct {
	fft        *fourier.FFT
	size       int
	sampleRate float64

	// Working buffers (pre-allocated for zero allocation during analysis)
	window []float64
	block  []float64
	coeffs []complex128
	mags   []float64
}

// NewAnalyzer creates an analyzer for windows of size samples.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < minWindowSize {
		return nil, fmt.Errorf("window size %d is below minimum %d", size, minWindowSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %v", sampleRate)
	}

	window := make([]float64, size)
	for i := range window {
		window[i] = hannHalf - hannHalf*math.Cos(2*math.Pi*float64(i)/float64(size-1))
	}

	return &Analyzer{
		fft:        fourier.NewFFT(size),
		size:       size,
		sampleRate: sampleRate,
		window:     window,
		block:      make([]float64, size),
		mags:       make([]float64, size/2+1),
	}, nil
}

// Size returns the window length in samples.
func (a *Analyzer) Size() int {
	return a.size
}

// BinWidth returns the frequency spacing of FFT bins in Hz.
func (a *Analyzer) BinWidth() float64 {
	return a.sampleRate / float64(a.size)
}

// Peak returns the dominant frequency of samples. Input shorter than the
// window is zero padded; longer input is truncated.
func (a *Analyzer) Peak(samples []float64) Peak {
	n := min(len(samples), a.size)
	mean := Mean(samples[:n])
	for i := range a.block {
		if i < n {
			a.block[i] = (samples[i] - mean) * a.window[i]
		} else {
			a.block[i] = 0
		}
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.block)
	for i, c := range a.coeffs {
		a.mags[i] = cmplx.Abs(c)
	}

	k := floats.MaxIdx(a.mags)
	return Peak{
		Freq:      (float64(k) + a.interpolate(k)) * a.BinWidth(),
		Magnitude: a.mags[k],
	}
}

// interpolate returns the fractional bin offset of the true peak near k,
// fitting a parabola through the log magnitudes of k and its neighbours.
func (a *Analyzer) interpolate(k int) float64 {
	if k == 0 || k >= len(a.mags)-1 {
		return 0
	}
	if a.mags[k-1] <= 0 || a.mags[k+1] <= 0 {
		return 0
	}
	l, c, r := math.Log(a.mags[k-1]), math.Log(a.mags[k]), math.Log(a.mags[k+1])
	den := l - parabolaDivisor*c + r
	if den == 0 {
		return 0
	}
	return (l - r) / (parabolaDivisor * den)
}

// Track returns the peak of each window of a.Size() samples, advancing
// hop samples between windows. A trailing partial window is skipped.
func (a *Analyzer) Track(samples []float64, hop int) []Peak {
	if hop <= 0 {
		hop = a.size
	}

	var peaks []Peak
	for off := 0; off+a.size <= len(samples); off += hop {
		p := a.Peak(samples[off : off+a.size])
		p.Offset = off
		peaks = append(peaks, p)
	}
	return peaks
}

// Mean returns the average sample value (the DC offset).
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return f64.Sum(samples) / float64(len(samples))
}

// RMS returns the root-mean-square level of samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Sqrt(f64.DotProduct(samples, samples) / float64(len(samples)))
}

// ToneLevel returns the amplitude of the freq component of samples,
// found by correlating them with a quadrature reference tone.
func ToneLevel(samples []float64, freq, sampleRate float64) float64 {
	n := len(samples)
	if n == 0 || sampleRate <= 0 {
		return 0
	}

	cos := make([]float64, n)
	sin := make([]float64, n)
	step := 2 * math.Pi * freq / sampleRate
	for i := range cos {
		sin[i], cos[i] = math.Sincos(step * float64(i))
	}

	re := f64.DotProduct(samples, cos)
	im := f64.DotProduct(samples, sin)
	return quadratureScale * math.Hypot(re, im) / float64(n)
}
