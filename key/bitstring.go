package key

import "strings"

// BitString returns a string containing the binary representation of a key
// as seen through the analyzer. Intended for debugging and test failure
// messages.
func BitString[K any](a Analyzer[K], k K) string {
	length := a.LengthInBits(k)
	b := new(strings.Builder)
	b.Grow(length)
	for i := 0; i < length; i++ {
		if a.IsBitSet(k, i, length) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// HexString returns a string containing the hexadecimal representation of a
// key as seen through the analyzer, one nibble per four bits, padded with
// zero bits at the end when the length is not a multiple of four.
func HexString[K any](a Analyzer[K], k K) string {
	length := a.LengthInBits(k)
	b := new(strings.Builder)
	b.Grow((length + 3) / 4)

	const hex = "0123456789abcdef"

	for i := 0; i < length; i += 4 {
		var n byte
		for j := 0; j < 4; j++ {
			n <<= 1
			if a.IsBitSet(k, i+j, length) {
				n |= 1
			}
		}
		b.WriteByte(hex[n])
	}
	return b.String()
}
