package container

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WAVSize returns the size in bytes of a WAV file holding n samples.
func WAVSize(n int) int64 {
	return wavHeaderSize + int64(n)*bytesPerSample
}

// wavHeader builds the 44-byte canonical PCM header.
func wavHeader(sampleRate, n int) []byte {
	audioSize := uint32(n * bytesPerSample)
	byteRate := uint32(sampleRate * numChannels * bytesPerSample)

	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], wavRiffHeaderSize+audioSize) // 4 + (8+16) + (8+audio)
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], audioSize)

	return header
}

// WriteWAV writes a mono 16-bit PCM WAV file. Samples are stored signed,
// little-endian. It returns the number of bytes written.
func WriteWAV(w io.Writer, sampleRate int, samples []int16) (int64, error) {
	if err := checkArgs(WAV, sampleRate, len(samples)); err != nil {
		return 0, err
	}

	out := newBufferedOutput(w)
	if _, err := out.Write(wavHeader(sampleRate, len(samples))); err != nil {
		return out.counter.n, fmt.Errorf("failed to write WAV header: %w", err)
	}

	if err := writeSamples(out, samples, func(dst []byte, s int16) {
		binary.LittleEndian.PutUint16(dst, uint16(s))
	}); err != nil {
		return out.counter.n, fmt.Errorf("failed to write WAV data: %w", err)
	}

	return out.finish()
}

// writeSamples encodes samples in blocks through put and writes them.
func writeSamples(w io.Writer, samples []int16, put func(dst []byte, s int16)) error {
	const block = writerBufferSize / bytesPerSample
	buf := make([]byte, min(len(samples), block)*bytesPerSample)

	for len(samples) > 0 {
		n := min(len(samples), block)
		out := buf[:n*bytesPerSample]
		for i, s := range samples[:n] {
			put(out[i*bytesPerSample:], s)
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}
