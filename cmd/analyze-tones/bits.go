package main

import (
	"math"
	"strings"

	rtty "github.com/tphakala/go-rtty"
	"github.com/tphakala/go-rtty/internal/framing"
	"github.com/tphakala/go-rtty/internal/spectrum"
)

// symbol labels the tone found in one bit period.
type symbol byte

const (
	symSpace  symbol = '0'
	symMark   symbol = '1'
	symSilent symbol = '_'
)

// bit is one measured bit period.
type bit struct {
	offset int     // first sample of the bit
	freq   float64 // dominant frequency in the measurement window
	level  float64 // RMS level of the measurement window
	sym    symbol
}

// measureBits slices samples (normalized to [-1, 1)) into bit periods and
// labels each with the configured tone that dominates it.
// The bit grid starts at the first non-silent sample.
func measureBits(samples []float64, sampleRate int, cfg *rtty.Config) ([]bit, error) {
	bitSamples := float64(sampleRate) * cfg.BitDuration() / microsecondsPerSecond
	margin := int(bitSamples / windowMarginDivisor)
	window := max(int(bitSamples)-2*margin, minWindow)

	analyzer, err := spectrum.NewAnalyzer(window, float64(sampleRate))
	if err != nil {
		return nil, err
	}

	first := leadingSilence(samples)
	var bits []bit
	for i := 0; ; i++ {
		off := first + int(math.Round(float64(i)*bitSamples))
		lo, hi := off+margin, off+margin+window
		if hi > len(samples) {
			break
		}

		w := samples[lo:hi]
		b := bit{
			offset: off,
			freq:   analyzer.Peak(w).Freq,
			level:  spectrum.RMS(w),
		}
		switch {
		case b.level < silenceThreshold:
			b.sym = symSilent
		case spectrum.ToneLevel(w, cfg.MarkFreq, float64(sampleRate)) >=
			spectrum.ToneLevel(w, cfg.SpaceFreq, float64(sampleRate)):
			b.sym = symMark
		default:
			b.sym = symSpace
		}
		bits = append(bits, b)
	}
	return bits, nil
}

// leadingSilence returns the index of the first sample above the silence
// threshold, or len(samples) when there is none.
func leadingSilence(samples []float64) int {
	for i, s := range samples {
		if math.Abs(s) >= silenceThreshold {
			return i
		}
	}
	return len(samples)
}

// bitString renders symbols as a compact string.
func bitString(bits []bit) string {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		buf[i] = byte(b.sym)
	}
	return string(buf)
}

// expectedBits returns the symbols a transmission of message should
// measure as: the preamble, one frame per byte, and the postamble.
func expectedBits(message []byte, cfg *rtty.Config) string {
	settings := framing.Settings{
		Mark:     cfg.MarkFreq,
		Space:    cfg.SpaceFreq,
		BitWidth: cfg.BitWidth,
		Parity:   cfg.Parity,
		StopBits: cfg.StopBits,
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(string(symMark), framing.PreambleBits))
	for _, b := range message {
		for _, tone := range settings.Frame(b) {
			sym := symSpace
			if tone.Freq == cfg.MarkFreq {
				sym = symMark
			}
			sb.WriteByte(byte(sym))
		}
	}
	sb.WriteString(strings.Repeat(string(symMark), framing.PostambleBits))
	return sb.String()
}

// firstMismatch returns the index of the first position where got and
// want differ, len(got) if got ends before want does, or -1 when want is
// a prefix of got. Trailing silence in got is not compared.
func firstMismatch(got, want string) int {
	for i := range len(want) {
		if i >= len(got) || got[i] != want[i] {
			return i
		}
	}
	return -1
}
