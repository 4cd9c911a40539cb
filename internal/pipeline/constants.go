package pipeline

// Sample buffer sizing
const (
	// defaultInitialCapacity is the starting allocation when the caller
	// passes no size hint (about one second at 44.1 kHz).
	defaultInitialCapacity = 44100

	bufferGrowthFactor = 2 // Factor for buffer growth
)
