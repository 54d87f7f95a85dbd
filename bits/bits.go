// Package bits packs and unpacks fixed-width fields inside one 32-bit word.
// The functions are pure and independent of any transport, so the grouped
// notification layout can be tested without a kernel.
package bits

import mathbits "math/bits"

// WordBits is the number of usable bits in a packed word.
const WordBits = 32

// Mask returns a mask of width bits starting at bit position at.
func Mask(at, width uint) uint32 {
	if width == 0 {
		return 0
	}
	return (^uint32(0) >> (WordBits - width)) << at
}

// Replace returns word with the width bits at position at replaced by the low
// bits of field. Bits outside the range are preserved.
func Replace(word, field uint32, at, width uint) uint32 {
	m := Mask(at, width)
	return (word &^ m) | ((field << at) & m)
}

// Extract returns the width bits of word starting at position at.
func Extract(word uint32, at, width uint) uint32 {
	if width == 0 {
		return 0
	}
	return (word >> at) & (^uint32(0) >> (WordBits - width))
}

// Width returns the minimum number of bits able to represent states distinct
// values, ceil(log2(states)). Zero or one state needs no bits.
func Width(states uint32) uint {
	if states <= 1 {
		return 0
	}
	return uint(mathbits.Len32(states - 1))
}
