package key

import "math/big"

// BigIntAnalyzer inspects arbitrary-precision integer keys with bit index 0
// at the least significant bit (the Int.Bit convention). A nil or zero key
// has no meaningful bits and reports NullBitKey.
//
// Because the LSB-first bit order is not consistent with numeric comparison,
// iteration over a trie keyed by *big.Int follows the trie's bit order, not
// numeric order. Prefix views still work as expected: a view over the bits
// of 0b1 holds exactly the odd keys.
type BigIntAnalyzer struct{}

var _ Analyzer[*big.Int] = BigIntAnalyzer{}

func (BigIntAnalyzer) BitsPerElement() int {
	return 1
}

func (BigIntAnalyzer) LengthInBits(k *big.Int) int {
	if k == nil {
		return 0
	}
	return k.BitLen()
}

func (BigIntAnalyzer) IsBitSet(k *big.Int, bitIndex, lengthInBits int) bool {
	if k == nil || bitIndex < 0 || bitIndex >= lengthInBits {
		return false
	}
	return k.Bit(bitIndex) != 0
}

func (BigIntAnalyzer) BitIndex(k *big.Int, offsetInBits, lengthInBits int, other *big.Int, otherOffsetInBits, otherLengthInBits int) int {
	if offsetInBits != 0 || otherOffsetInBits != 0 {
		panic(errOffsets(offsetInBits, otherOffsetInBits))
	}

	if k == nil || k.Sign() == 0 {
		return NullBitKey
	}
	if other == nil {
		other = new(big.Int)
	}

	x := new(big.Int).Xor(k, other)
	if x.Sign() == 0 {
		return EqualBitKey
	}
	for i := 0; ; i++ {
		if x.Bit(i) != 0 {
			return i
		}
	}
}

func (BigIntAnalyzer) Compare(a, b *big.Int) int {
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return a.Cmp(b)
}

func (ba BigIntAnalyzer) IsPrefix(prefix *big.Int, offsetInBits, lengthInBits int, k *big.Int) bool {
	keyLength := ba.LengthInBits(k)
	prefixLength := ba.LengthInBits(prefix)
	for i := 0; i < lengthInBits; i++ {
		if ba.IsBitSet(prefix, offsetInBits+i, prefixLength) != ba.IsBitSet(k, i, keyLength) {
			return false
		}
	}
	return true
}
