package key

import (
	"errors"
	"fmt"
)

var ErrUnalignedRange = errors.New("offset and length do not fall on element boundaries")

func errUnaligned(offsetInBits, lengthInBits, bitsPerElement int) error {
	return fmt.Errorf("%w: offset=%d length=%d element=%d bits",
		ErrUnalignedRange, offsetInBits, lengthInBits, bitsPerElement)
}

func errOffsets(offsetInBits, otherOffsetInBits int) error {
	return fmt.Errorf("%w: offsets must be 0 for fixed-width keys (offset=%d, otherOffset=%d)",
		ErrUnalignedRange, offsetInBits, otherOffsetInBits)
}
