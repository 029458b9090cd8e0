package key

// Uint32Analyzer inspects fixed-width 32-bit keys, most significant bit
// first. Offsets handed to BitIndex must be zero; fixed-width keys have no
// sub-ranges to offset into.
type Uint32Analyzer struct{}

var _ Analyzer[uint32] = Uint32Analyzer{}

func (Uint32Analyzer) BitsPerElement() int {
	return 1
}

func (Uint32Analyzer) LengthInBits(k uint32) int {
	return 32
}

func (Uint32Analyzer) IsBitSet(k uint32, bitIndex, lengthInBits int) bool {
	if bitIndex < 0 || bitIndex >= lengthInBits || bitIndex >= 32 {
		return false
	}
	return k&(1<<uint(31-bitIndex)) != 0
}

func (ua Uint32Analyzer) BitIndex(k uint32, offsetInBits, lengthInBits int, other uint32, otherOffsetInBits, otherLengthInBits int) int {
	if offsetInBits != 0 || otherOffsetInBits != 0 {
		panic(errOffsets(offsetInBits, otherOffsetInBits))
	}

	length := lengthInBits
	if otherLengthInBits > length {
		length = otherLengthInBits
	}

	allNull := true
	for i := 0; i < length; i++ {
		a := ua.IsBitSet(k, i, lengthInBits)
		b := ua.IsBitSet(other, i, otherLengthInBits)
		if a {
			allNull = false
		}
		if a != b {
			return i
		}
	}

	if allNull {
		return NullBitKey
	}
	return EqualBitKey
}

func (Uint32Analyzer) Compare(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (ua Uint32Analyzer) IsPrefix(prefix uint32, offsetInBits, lengthInBits int, k uint32) bool {
	for i := 0; i < lengthInBits; i++ {
		if ua.IsBitSet(prefix, offsetInBits+i, 32) != ua.IsBitSet(k, i, 32) {
			return false
		}
	}
	return true
}

// Uint16Analyzer inspects fixed-width 16-bit keys such as character code
// units, most significant bit first.
type Uint16Analyzer struct{}

var _ Analyzer[uint16] = Uint16Analyzer{}

func (Uint16Analyzer) BitsPerElement() int {
	return 1
}

func (Uint16Analyzer) LengthInBits(k uint16) int {
	return 16
}

func (Uint16Analyzer) IsBitSet(k uint16, bitIndex, lengthInBits int) bool {
	if bitIndex < 0 || bitIndex >= lengthInBits || bitIndex >= 16 {
		return false
	}
	return k&(1<<uint(15-bitIndex)) != 0
}

func (ua Uint16Analyzer) BitIndex(k uint16, offsetInBits, lengthInBits int, other uint16, otherOffsetInBits, otherLengthInBits int) int {
	if offsetInBits != 0 || otherOffsetInBits != 0 {
		panic(errOffsets(offsetInBits, otherOffsetInBits))
	}

	length := lengthInBits
	if otherLengthInBits > length {
		length = otherLengthInBits
	}

	allNull := true
	for i := 0; i < length; i++ {
		a := ua.IsBitSet(k, i, lengthInBits)
		b := ua.IsBitSet(other, i, otherLengthInBits)
		if a {
			allNull = false
		}
		if a != b {
			return i
		}
	}

	if allNull {
		return NullBitKey
	}
	return EqualBitKey
}

func (Uint16Analyzer) Compare(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (ua Uint16Analyzer) IsPrefix(prefix uint16, offsetInBits, lengthInBits int, k uint16) bool {
	for i := 0; i < lengthInBits; i++ {
		if ua.IsBitSet(prefix, offsetInBits+i, 16) != ua.IsBitSet(k, i, 16) {
			return false
		}
	}
	return true
}
