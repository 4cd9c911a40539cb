// Package container serializes 16-bit mono PCM into WAV or AIFF files.
//
// The whole sample sequence is known before writing starts, so every size
// field is computed up front and the output only needs to be an io.Writer.
package container

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Kind selects the output container.
type Kind int

const (
	// WAV is a RIFF/WAVE file: little-endian, signed samples.
	WAV Kind = iota
	// AIFF is a FORM/AIFF file: big-endian, samples offset by +32768.
	AIFF
)

// String returns the lower-case container name.
func (k Kind) String() string {
	switch k {
	case WAV:
		return "wav"
	case AIFF:
		return "aiff"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var (
	// ErrUnknownKind is returned for a Kind other than WAV or AIFF.
	ErrUnknownKind = errors.New("unknown container kind")

	// ErrTooLarge is returned when the sample count does not fit the
	// container's 32-bit size fields.
	ErrTooLarge = errors.New("audio too large for container")

	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("invalid sample rate")
)

// Write serializes samples in the container selected by kind.
// It returns the number of bytes written.
func Write(w io.Writer, kind Kind, sampleRate int, samples []int16) (int64, error) {
	switch kind {
	case WAV:
		return WriteWAV(w, sampleRate, samples)
	case AIFF:
		return WriteAIFF(w, sampleRate, samples)
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// Size returns the total file size for n samples in the given container.
func Size(kind Kind, n int) int64 {
	if kind == AIFF {
		return AIFFSize(n)
	}
	return WAVSize(n)
}

func checkArgs(kind Kind, sampleRate, n int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if Size(kind, n)-chunkHeadSize > maxChunkSize {
		return fmt.Errorf("%w: %d samples", ErrTooLarge, n)
	}
	return nil
}

// countingWriter counts bytes that reach the destination writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// bufferedOutput buffers writes and reports bytes delivered downstream.
type bufferedOutput struct {
	*bufio.Writer
	counter *countingWriter
}

func newBufferedOutput(w io.Writer) *bufferedOutput {
	counter := &countingWriter{w: w}
	return &bufferedOutput{
		Writer:  bufio.NewWriterSize(counter, writerBufferSize),
		counter: counter,
	}
}

// finish flushes the buffer and returns the total bytes written.
func (b *bufferedOutput) finish() (int64, error) {
	err := b.Flush()
	return b.counter.n, err
}
