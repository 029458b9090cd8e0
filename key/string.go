package key

import (
	"math/bits"
	"unicode/utf16"
)

// StringAnalyzer inspects string keys as sequences of UTF-16 code units,
// 16 bits per unit, most significant bit first within each unit. Offsets
// and lengths handed to BitIndex and IsPrefix must fall on 16-bit
// boundaries; unaligned ranges panic with ErrUnalignedRange.
type StringAnalyzer struct{}

var _ Analyzer[string] = StringAnalyzer{}

func (StringAnalyzer) BitsPerElement() int {
	return 16
}

func (StringAnalyzer) LengthInBits(k string) int {
	return len(stringUnits(k)) * 16
}

func (StringAnalyzer) IsBitSet(k string, bitIndex, lengthInBits int) bool {
	if bitIndex < 0 || bitIndex >= lengthInBits {
		return false
	}
	units := stringUnits(k)
	index := bitIndex / 16
	if index >= len(units) {
		return false
	}
	return units[index]&(0x8000>>uint(bitIndex%16)) != 0
}

func (StringAnalyzer) BitIndex(k string, offsetInBits, lengthInBits int, other string, otherOffsetInBits, otherLengthInBits int) int {
	if offsetInBits%16 != 0 || otherOffsetInBits%16 != 0 ||
		lengthInBits%16 != 0 || otherLengthInBits%16 != 0 {
		panic(errUnaligned(offsetInBits, lengthInBits, 16))
	}

	ku := stringUnits(k)
	ou := stringUnits(other)

	off1 := offsetInBits / 16
	off2 := otherOffsetInBits / 16
	n1 := lengthInBits / 16
	n2 := otherLengthInBits / 16

	length := n1
	if n2 > length {
		length = n2
	}

	allNull := true
	for i := 0; i < length; i++ {
		a := unitAt(ku, off1+i, off1+n1)
		b := unitAt(ou, off2+i, off2+n2)

		if a != b {
			x := a ^ b
			return i*16 + bits.LeadingZeros16(x)
		}
		if a != 0 {
			allNull = false
		}
	}

	if allNull {
		return NullBitKey
	}
	return EqualBitKey
}

// Compare orders strings by their UTF-16 code units so that the order is
// consistent with the bit order the trie induces. For ASCII strings this
// coincides with the usual byte-wise order.
func (StringAnalyzer) Compare(a, b string) int {
	au := stringUnits(a)
	bu := stringUnits(b)
	n := len(au)
	if len(bu) < n {
		n = len(bu)
	}
	for i := 0; i < n; i++ {
		if au[i] != bu[i] {
			if au[i] < bu[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(au) < len(bu):
		return -1
	case len(au) > len(bu):
		return 1
	}
	return 0
}

func (StringAnalyzer) IsPrefix(prefix string, offsetInBits, lengthInBits int, k string) bool {
	if offsetInBits%16 != 0 || lengthInBits%16 != 0 {
		panic(errUnaligned(offsetInBits, lengthInBits, 16))
	}

	pu := stringUnits(prefix)
	ku := stringUnits(k)

	off := offsetInBits / 16
	n := lengthInBits / 16
	for i := 0; i < n; i++ {
		if unitAt(pu, off+i, off+n) != unitAt(ku, i, len(ku)) {
			return false
		}
	}
	return true
}

func stringUnits(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// unitAt reads the code unit at index, treating units at or past limit or
// past the end of the slice as zero.
func unitAt(units []uint16, index, limit int) uint16 {
	if index >= limit || index >= len(units) {
		return 0
	}
	return units[index]
}
