package spectrum

// Hann window coefficients
const (
	hannHalf = 0.5
)

// Peak interpolation
const (
	// parabolaDivisor appears in the three-point parabolic vertex formula.
	parabolaDivisor = 2.0

	// minWindowSize is the smallest analysis window that yields
	// neighbouring bins for interpolation.
	minWindowSize = 4
)

// Tone level
const (
	// quadratureScale converts the correlation magnitude of a real tone
	// to its peak amplitude.
	quadratureScale = 2.0
)
