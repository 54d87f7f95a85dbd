// Package codec turns typed items into the fixed-size byte slots the kernel's
// queues copy around. A type is classified exactly once, at construction:
//
//   - Inline types contain no pointers, so the slot's bytes are the item's
//     bytes and a plain copy transfers no ownership.
//   - Boxed types (anything holding a pointer, slice, string, map, channel,
//     function or interface) are parked in a per-codec Arena; the slot then
//     carries only a 4-byte handle, and ownership travels with it.
//
// The split exists because the kernel buffer is opaque to the garbage
// collector: a pointer smuggled through it as raw bytes would not keep its
// pointee alive. Interrupt-context queues reject Boxed types outright, since
// arena traffic is not allowed inside a handler.
package codec

import (
	"encoding/binary"
	"reflect"
	"unsafe"

	"quark/kernel"
)

// Class is the once-per-type storage decision.
type Class uint8

const (
	// Inline items are bitwise-copied into the slot.
	Inline Class = iota
	// Boxed items live in the arena; the slot holds a handle.
	Boxed
)

func (c Class) String() string {
	switch c {
	case Inline:
		return "inline"
	case Boxed:
		return "boxed"
	default:
		return "unknown"
	}
}

// HandleSize is the encoded size of an arena handle.
const HandleSize = 4

// Codec encodes and decodes items of one type. The zero Codec is invalid;
// obtain one from For.
type Codec[T any] struct {
	class Class
	size  int
	arena *Arena[T]
}

// For classifies T and returns its codec. The decision is made here, once,
// never per item.
func For[T any]() Codec[T] {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	if isInline(t) {
		return Codec[T]{class: Inline, size: int(t.Size())}
	}
	return Codec[T]{class: Boxed, size: HandleSize, arena: NewArena[T]()}
}

// isInline reports whether a value's raw bytes are a complete, safe
// representation: no pointers anywhere in the type.
func isInline(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isInline(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !isInline(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Uintptr is deliberately boxed: it usually smuggles an address.
		return false
	}
}

// Class returns the storage decision for this codec's type.
func (c Codec[T]) Class() Class { return c.class }

// SlotSize returns the fixed kernel slot size for this type. Zero-size types
// still occupy one byte so the queue geometry stays valid.
func (c Codec[T]) SlotSize() int {
	if c.size < 1 {
		return 1
	}
	return c.size
}

// Arena exposes the backing arena, nil for inline codecs.
func (c Codec[T]) Arena() *Arena[T] { return c.arena }

// Live returns the number of boxed items currently owned by the arena.
// Always zero for inline codecs.
func (c Codec[T]) Live() int {
	if c.arena == nil {
		return 0
	}
	return c.arena.Len()
}

// Encode writes item into slot. For boxed types this allocates an arena
// entry; a false result means the arena refused the allocation and nothing
// was written or retained.
func (c Codec[T]) Encode(item T, slot []byte) bool {
	if c.class == Inline {
		copy(slot[:c.SlotSize()], inlineBytes(&item, c.size))
		return true
	}
	h, ok := c.arena.Put(item)
	if !ok {
		return false
	}
	binary.LittleEndian.PutUint32(slot, uint32(h))
	return true
}

// Decode consumes slot and returns the item. For boxed types ownership of the
// arena entry transfers to the caller: the entry is released here, exactly
// once per successful Encode.
func (c Codec[T]) Decode(slot []byte) T {
	if c.class == Inline {
		var item T
		copy(inlineBytes(&item, c.size), slot)
		return item
	}
	h := Handle(binary.LittleEndian.Uint32(slot))
	item, ok := c.arena.Take(h)
	if !ok {
		kernel.Fatalf("codec: decode of unknown arena handle %d", h)
	}
	return item
}

// DecodePeek returns the item without consuming the arena entry, for
// non-popping reads.
func (c Codec[T]) DecodePeek(slot []byte) T {
	if c.class == Inline {
		return c.Decode(slot)
	}
	h := Handle(binary.LittleEndian.Uint32(slot))
	item, ok := c.arena.Get(h)
	if !ok {
		kernel.Fatalf("codec: peek of unknown arena handle %d", h)
	}
	return item
}

// Release drops the arena entry referenced by slot without decoding it, for
// reset and teardown paths. No-op for inline codecs.
func (c Codec[T]) Release(slot []byte) {
	if c.class == Inline {
		return
	}
	h := Handle(binary.LittleEndian.Uint32(slot))
	c.arena.Drop(h)
}

// inlineBytes exposes the raw bytes of v. Legal only for inline types, which
// hold no pointers the collector would need to see.
func inlineBytes[T any](v *T, n int) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), n)
}
