// Package framing turns bytes into the tone sequence of an asynchronous
// serial (RTTY) frame: a start bit, the data bits least-significant first,
// an optional parity bit, and the stop bits.
package framing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Player renders one tone request.
type Player interface {
	PlayTone(freqHz, durationUS float64) error
}

// Tone is one entry of a frame: a frequency held for a number of
// bit-durations.
type Tone struct {
	Freq float64
	Bits float64
}

// Settings describes the wire-level framing.
type Settings struct {
	Mark        float64 // Hz, sent for 1 bits, stop bits and idle carrier
	Space       float64 // Hz, sent for 0 bits and the start bit
	BitDuration float64 // µs per bit
	BitWidth    int
	Parity      Parity
	StopBits    int
}

// FrameBits returns the number of bit-durations one byte occupies.
func (s Settings) FrameBits() int {
	n := startBits + s.BitWidth + s.StopBits
	if s.Parity != ParityNone {
		n += parityBit
	}
	return n
}

func (s Settings) tone(bit uint8) float64 {
	if bit&1 == 1 {
		return s.Mark
	}
	return s.Space
}

// Frame returns the tones that encode b, in transmission order.
func (s Settings) Frame(b byte) []Tone {
	tones := make([]Tone, 0, s.FrameBits())

	tones = append(tones, Tone{Freq: s.Space, Bits: 1})

	c := uint(b)
	for range s.BitWidth {
		tones = append(tones, Tone{Freq: s.tone(uint8(c)), Bits: 1})
		c >>= 1
	}

	if bit, ok := ParityBit(s.Parity, b); ok {
		tones = append(tones, Tone{Freq: s.tone(bit), Bits: 1})
	}

	for range s.StopBits {
		tones = append(tones, Tone{Freq: s.Mark, Bits: 1})
	}

	return tones
}

// Encoder drives a Player with framed bytes.
type Encoder struct {
	settings Settings
	player   Player
	bytes    int64

	// OnByte, if set, is called after each byte with the running count.
	OnByte func(n int64)
}

// NewEncoder creates an encoder that sends tones to p.
func NewEncoder(s Settings, p Player) *Encoder {
	return &Encoder{settings: s, player: p}
}

// Bytes returns the number of bytes encoded so far.
func (e *Encoder) Bytes() int64 {
	return e.bytes
}

// Preamble sends the mark carrier that precedes the first byte.
func (e *Encoder) Preamble() error {
	return e.carrier(PreambleBits)
}

// Postamble sends the mark carrier that follows the last byte.
func (e *Encoder) Postamble() error {
	return e.carrier(PostambleBits)
}

func (e *Encoder) carrier(bits int) error {
	if err := e.player.PlayTone(e.settings.Mark, e.settings.BitDuration*float64(bits)); err != nil {
		return fmt.Errorf("carrier (%d bits): %w", bits, err)
	}
	return nil
}

// Pause sends durationUS of silence.
func (e *Encoder) Pause(durationUS float64) error {
	return e.player.PlayTone(0, durationUS)
}

// EncodeByte sends one complete frame for b.
func (e *Encoder) EncodeByte(b byte) error {
	for i, t := range e.settings.Frame(b) {
		if err := e.player.PlayTone(t.Freq, e.settings.BitDuration*t.Bits); err != nil {
			return fmt.Errorf("byte %d (0x%02x) bit %d: %w", e.bytes, b, i, err)
		}
	}

	e.bytes++
	if e.OnByte != nil {
		e.OnByte(e.bytes)
	}
	return nil
}

// Encode sends every byte read from r until end of input. It returns the
// number of bytes encoded. Reaching EOF is not an error.
func (e *Encoder) Encode(r io.Reader) (int64, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var n int64
	for {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("failed to read input: %w", err)
		}

		if err := e.EncodeByte(b); err != nil {
			return n, err
		}
		n++
	}
}
