package framing

import "fmt"

// Parity selects how the optional parity bit is produced.
// The numeric values match the historical command-line codes.
type Parity int

const (
	// ParityNone sends no parity bit.
	ParityNone Parity = iota
	// ParityOdd sends the odd-parity value of the byte.
	ParityOdd
	// ParityEven sends the complement of the odd-parity value.
	ParityEven
	// ParityZero always sends a space.
	ParityZero
	// ParityOne always sends a mark.
	ParityOne
)

var parityNames = [...]string{"none", "odd", "even", "zero", "one"}

// String returns the lower-case name of the parity mode.
func (p Parity) String() string {
	if p < ParityNone || p > ParityOne {
		return fmt.Sprintf("Parity(%d)", int(p))
	}
	return parityNames[p]
}

// Valid reports whether p is one of the defined modes.
func (p Parity) Valid() bool {
	return p >= ParityNone && p <= ParityOne
}

// OddParity folds all eight bits of b down to one: 1 iff b has an odd
// number of set bits.
func OddParity(b byte) uint8 {
	b ^= b>>4 | b<<4
	b ^= b >> 2
	b ^= b >> 1
	return b & 1
}

// ParityBit returns the bit sent for b under mode. ok is false when the
// mode sends no parity bit.
func ParityBit(mode Parity, b byte) (bit uint8, ok bool) {
	switch mode {
	case ParityOdd:
		return OddParity(b), true
	case ParityEven:
		k := ^OddParity(b) & 1
		return k, true
	case ParityZero:
		return 0, true
	case ParityOne:
		return 1, true
	default:
		return 0, false
	}
}
