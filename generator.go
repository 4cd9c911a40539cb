package rtty

import (
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/tphakala/go-rtty/internal/container"
	"github.com/tphakala/go-rtty/internal/framing"
	"github.com/tphakala/go-rtty/internal/oscillator"
	"github.com/tphakala/go-rtty/internal/pipeline"
	"github.com/tphakala/simd/f64"
)

// Generator is the mutable state of one synthesis run: the oscillator
// phase and drift remainder, the frame encoder, and the growing sample
// sink. A Generator is not safe for concurrent use.
type Generator struct {
	config  Config
	sink    *pipeline.SampleBuffer
	osc     *oscillator.Oscillator
	encoder *framing.Encoder
}

// New validates config and creates a generator ready for Preamble.
func New(config *Config) (*Generator, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{config: *config}
	g.config.MaxSamples = config.maxSamples()

	// Preallocate for roughly the fixed carrier; the sink grows as needed.
	g.sink = pipeline.NewSampleBuffer(int(g.config.EstimateSamples(0)), g.config.MaxSamples)
	g.osc = oscillator.New(g.config.SampleRate, g.config.Amplitude(), g.sink)
	g.encoder = framing.NewEncoder(g.config.framing(), g.osc)

	return g, nil
}

// Config returns a copy of the run configuration.
func (g *Generator) Config() Config {
	return g.config
}

// OnProgress registers fn to be called after each encoded byte with the
// running byte count. Pass nil to remove it.
func (g *Generator) OnProgress(fn func(bytes int64)) {
	g.encoder.OnByte = fn
}

// Preamble emits the mark carrier that precedes the data.
func (g *Generator) Preamble() error {
	return g.encoder.Preamble()
}

// Postamble emits the mark carrier that follows the data.
func (g *Generator) Postamble() error {
	return g.encoder.Postamble()
}

// WriteByte emits one framed byte.
func (g *Generator) WriteByte(b byte) error {
	return g.encoder.EncodeByte(b)
}

// Write emits a frame for every byte of p. It implements io.Writer.
func (g *Generator) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := g.encoder.EncodeByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// ReadFrom emits a frame for every byte read from r until end of input.
// It implements io.ReaderFrom.
func (g *Generator) ReadFrom(r io.Reader) (int64, error) {
	return g.encoder.Encode(r)
}

// Pause emits d of silence.
func (g *Generator) Pause(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: negative pause %v", ErrInvalidConfig, d)
	}
	return g.encoder.Pause(d.Seconds() * microsecondsPerSecond)
}

// Bytes returns the number of input bytes encoded so far.
func (g *Generator) Bytes() int64 {
	return g.encoder.Bytes()
}

// Len returns the number of samples synthesized so far.
func (g *Generator) Len() int {
	return g.sink.Len()
}

// Audio returns the samples synthesized so far. The returned Audio
// shares storage with the generator; further synthesis does not change it.
func (g *Generator) Audio() *Audio {
	return &Audio{
		SampleRate: g.config.SampleRate,
		Samples:    g.sink.Samples(),
	}
}

// Synthesize runs a complete pass: preamble, every byte of r, postamble.
func Synthesize(r io.Reader, config *Config) (*Audio, error) {
	g, err := New(config)
	if err != nil {
		return nil, err
	}

	if err := g.Preamble(); err != nil {
		return nil, err
	}
	if _, err := g.ReadFrom(r); err != nil {
		return nil, err
	}
	if err := g.Postamble(); err != nil {
		return nil, err
	}

	return g.Audio(), nil
}

// Audio is a finished mono 16-bit sample sequence.
// Samples are signed and centred on zero; the container writer applies
// any format-specific offset.
type Audio struct {
	SampleRate int
	Samples    []int16
}

// Len returns the number of samples.
func (a *Audio) Len() int {
	return len(a.Samples)
}

// Duration returns the playing time of the samples.
func (a *Audio) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(a.Samples)) / float64(a.SampleRate) * float64(time.Second))
}

// Encode writes the samples to w in the given container format and
// returns the number of bytes written.
func (a *Audio) Encode(w io.Writer, f Format) (int64, error) {
	kind, err := f.kind()
	if err != nil {
		return 0, err
	}
	return container.Write(w, kind, a.SampleRate, a.Samples)
}

// EncodedSize returns the number of bytes Encode writes for format f.
func (a *Audio) EncodedSize(f Format) int64 {
	kind, err := f.kind()
	if err != nil {
		return 0
	}
	return container.Size(kind, len(a.Samples))
}

// IntBuffer returns the samples as a go-audio buffer for use with the
// go-audio encoders and transforms.
func (a *Audio) IntBuffer() *audio.IntBuffer {
	data := make([]int, len(a.Samples))
	for i, s := range a.Samples {
		data[i] = int(s)
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	}
}

// Float64 returns the samples normalized to [-1, 1).
func (a *Audio) Float64() []float64 {
	raw := make([]float64, len(a.Samples))
	for i, s := range a.Samples {
		raw[i] = float64(s)
	}
	out := make([]float64, len(raw))
	f64.Scale(out, raw, 1.0/fullScale16)
	return out
}
