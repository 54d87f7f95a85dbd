package codec

import "reflect"

// Helpers for types riding inside a single 32-bit notification word.

// Fits32 reports whether T is inline and at most 32 bits wide, the
// precondition for storing it in a notification word.
func Fits32[T any]() bool {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	return isInline(t) && t.Size() <= 4
}

// Word32 packs v into the low bytes of a 32-bit word. The caller must have
// checked Fits32.
func Word32[T any](v T) uint32 {
	var zero T
	n := int(reflect.TypeOf(&zero).Elem().Size())
	var word uint32
	copy(inlineBytes(&word, 4), inlineBytes(&v, n))
	return word
}

// FromWord32 unpacks a value of T from the low bytes of word.
func FromWord32[T any](word uint32) T {
	var v T
	n := int(reflect.TypeOf(&v).Elem().Size())
	copy(inlineBytes(&v, n), inlineBytes(&word, 4))
	return v
}
