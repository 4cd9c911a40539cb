package framing

// Carrier lead-in and lead-out, in bit-durations of mark tone.
const (
	PreambleBits  = 1040
	PostambleBits = 240
)

// Frame layout
const (
	startBits = 1
	parityBit = 1

	// MaxBitWidth is the widest data unit a byte can supply.
	MaxBitWidth = 8
)
