package container

import (
	"encoding/binary"
	"math"
)

// EncodeExtended returns v as a big-endian IEEE 754 80-bit extended
// precision float, the encoding AIFF uses for its sample rate field.
// The integer bit of the mantissa is explicit.
func EncodeExtended(v float64) [extendedSize]byte {
	var out [extendedSize]byte
	if v == 0 || math.IsNaN(v) {
		return out
	}

	var sign uint16
	if v < 0 {
		sign = extendedSignMask
		v = -v
	}

	// v = frac * 2^exp with frac in [0.5, 1)
	frac, exp := math.Frexp(v)
	biased := uint16(exp - 1 + extendedBias)
	mantissa := uint64(math.Ldexp(frac, 64))

	binary.BigEndian.PutUint16(out[0:2], sign|biased)
	binary.BigEndian.PutUint64(out[2:10], mantissa)
	return out
}

// DecodeExtended is the inverse of EncodeExtended for finite values.
func DecodeExtended(b [extendedSize]byte) float64 {
	se := binary.BigEndian.Uint16(b[0:2])
	mantissa := binary.BigEndian.Uint64(b[2:10])
	if mantissa == 0 {
		return 0
	}

	exp := int(se&^extendedSignMask) - extendedBias
	v := math.Ldexp(float64(mantissa), exp-63)
	if se&extendedSignMask != 0 {
		v = -v
	}
	return v
}
