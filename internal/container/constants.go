package container

// Sample format (fixed for every run)
const (
	numChannels    = 1
	bitsPerSample  = 16
	bitsPerByte    = 8
	bytesPerSample = bitsPerSample / bitsPerByte
	blockAlign     = numChannels * bytesPerSample
)

// WAV format constants
const (
	wavHeaderSize      = 44 // RIFF + fmt + data chunk headers
	wavRiffHeaderSize  = 36 // "WAVE" + fmt chunk + data chunk header
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFormatPCM       = 1
)

// AIFF format constants
const (
	aiffHeaderSize     = 54 // FORM + COMM + SSND headers incl. offset/blockSize
	aiffCommChunkSize  = 18
	aiffSSNDPrefixSize = 8 // offset + blockSize fields
	aiffSampleOffset   = 32768
)

// Chunk field sizes
const (
	chunkIDSize   = 4
	chunkHeadSize = 8 // ID + size
	maxChunkSize  = 1<<32 - 1
)

// 80-bit extended float layout
const (
	extendedSize     = 10
	extendedBias     = 16383
	extendedSignMask = 0x8000
)

// I/O buffer size
const writerBufferSize = 256 * 1024
