package container

import (
	"encoding/binary"
	"fmt"
	"io"
)

// AIFFSize returns the size in bytes of an AIFF file holding n samples.
func AIFFSize(n int) int64 {
	return aiffHeaderSize + int64(n)*bytesPerSample
}

// aiffHeader builds the FORM, COMM and SSND headers.
func aiffHeader(sampleRate, n int) []byte {
	audioSize := uint32(aiffSSNDPrefixSize + n*bytesPerSample)
	totalSize := uint32(chunkIDSize+chunkHeadSize+aiffCommChunkSize+chunkHeadSize) + audioSize

	header := make([]byte, aiffHeaderSize)

	// FORM chunk
	copy(header[0:4], "FORM")
	binary.BigEndian.PutUint32(header[4:8], totalSize)
	copy(header[8:12], "AIFF")

	// COMM chunk
	copy(header[12:16], "COMM")
	binary.BigEndian.PutUint32(header[16:20], aiffCommChunkSize)
	binary.BigEndian.PutUint16(header[20:22], numChannels)
	binary.BigEndian.PutUint32(header[22:26], uint32(n)) // sample frames
	binary.BigEndian.PutUint16(header[26:28], bitsPerSample)
	rate := EncodeExtended(float64(sampleRate))
	copy(header[28:38], rate[:])

	// SSND chunk
	copy(header[38:42], "SSND")
	binary.BigEndian.PutUint32(header[42:46], audioSize)
	binary.BigEndian.PutUint32(header[46:50], 0) // offset
	binary.BigEndian.PutUint32(header[50:54], 0) // block size

	return header
}

// WriteAIFF writes a mono 16-bit AIFF file. Samples are stored big-endian
// with a +32768 offset, so silence is 0x8000. It returns the number of
// bytes written.
func WriteAIFF(w io.Writer, sampleRate int, samples []int16) (int64, error) {
	if err := checkArgs(AIFF, sampleRate, len(samples)); err != nil {
		return 0, err
	}

	out := newBufferedOutput(w)
	if _, err := out.Write(aiffHeader(sampleRate, len(samples))); err != nil {
		return out.counter.n, fmt.Errorf("failed to write AIFF header: %w", err)
	}

	if err := writeSamples(out, samples, func(dst []byte, s int16) {
		binary.BigEndian.PutUint16(dst, OffsetSample(s))
	}); err != nil {
		return out.counter.n, fmt.Errorf("failed to write AIFF data: %w", err)
	}

	return out.finish()
}

// OffsetSample maps a signed sample onto the unsigned AIFF convention.
func OffsetSample(s int16) uint16 {
	return uint16(int32(s) + aiffSampleOffset)
}
