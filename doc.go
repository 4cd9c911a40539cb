// Package rtty synthesizes RTTY (radio teletype) audio in pure Go.
//
// Each input byte is sent as an asynchronous serial frame using
// frequency-shift keying: a start bit, the data bits least-significant
// first, an optional parity bit and one or more stop bits. A 1 bit is the
// mark tone, a 0 bit the space tone. The tones come from a single
// phase-continuous oscillator, so the waveform has no clicks at bit
// boundaries. The result is written as 16-bit mono PCM in a WAV or AIFF
// container.
//
// # Quick Start
//
// For a one-shot conversion:
//
//	cfg := rtty.DefaultConfig()
//	a, err := rtty.Synthesize(strings.NewReader("RYRYRY CQ CQ\n"), &cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := a.Encode(out, rtty.FormatWAV); err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control over the stream, drive a Generator directly:
//
//	g, err := rtty.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = g.Preamble()
//	_ = g.Pause(500 * time.Millisecond)
//	_, _ = g.Write([]byte("DE N0CALL\n"))
//	_ = g.Postamble()
//	a := g.Audio()
//
// # Timing
//
// Bit durations rarely divide evenly into samples (one 300 baud bit is
// 73.5 samples at 22050 Hz). Each tone is rounded to whole samples and the
// rounding error is carried into the next tone, so the total length of
// the output never drifts more than one sample period from the requested
// timing.
//
// # Framing
//
// A run starts with 1040 bit-durations of mark carrier and ends with 240.
// Parity is computed over all eight bits of the input byte, even when
// fewer data bits are sent:
//
//   - [ParityOdd]: 1 when the byte has an odd number of set bits.
//   - [ParityEven]: the complement of the odd value.
//   - [ParityZero], [ParityOne]: a constant space or mark.
//
// # Output
//
// WAV output stores signed little-endian samples. AIFF output stores
// big-endian samples offset by +32768, so silence is 0 in a WAV file and
// 0x8000 in an AIFF file. Sizes are known before writing starts, so the
// destination only needs to be an io.Writer.
//
// # Limits
//
// The sample rate is at most [MaxSampleRate]. A run holds at most
// [DefaultMaxSamples] samples unless [Config.MaxSamples] says otherwise;
// exceeding it fails with [ErrCapacityExceeded] rather than truncating.
package rtty
