package task

import (
	"quark/bits"
	"quark/codec"
	"quark/kernel"
)

// GroupState views one notification word as an array of small state fields,
// one per group, packed side by side. With numStates possible values a group
// needs ceil(log2(numStates)) bits, and NewGroupState fails fast when the
// groups do not fit the 32-bit word.
//
// Set updates one group with a clear-then-set pair of kernel calls. The pair
// is not atomic: two tasks setting different groups at the same time can
// lose one of the writes. The intended shape is a single writer per word;
// concurrent writers must serialize around the view themselves or use
// SetAll, which writes the whole word in one call.
type GroupState[T any] struct {
	view
	groups uint
	width  uint
}

// NewGroupState binds a grouped view to word index of t, holding numGroups
// fields of numStates possible values each.
func NewGroupState[T any](t *kernel.Task, index int, numStates uint32, numGroups uint) GroupState[T] {
	if !codec.Fits32[T]() {
		kernel.Fatalf("task %q: group state type %T does not fit a notification word", t.Name(), *new(T))
	}
	if numStates < 2 {
		kernel.Fatalf("task %q: grouped view needs at least 2 states, got %d", t.Name(), numStates)
	}
	width := bits.Width(numStates)
	if width*numGroups > bits.WordBits {
		kernel.Fatalf("task %q: %d groups of %d states need %d bits, word has %d",
			t.Name(), numGroups, numStates, width*numGroups, bits.WordBits)
	}
	return GroupState[T]{
		view:   view{t: t, index: index},
		groups: numGroups,
		width:  width,
	}
}

// Groups returns the number of fields in the word.
func (g GroupState[T]) Groups() uint { return g.groups }

func (g GroupState[T]) at(group uint) uint {
	if group >= g.groups {
		kernel.Fatalf("task %q: group %d out of %d", g.t.Name(), group, g.groups)
	}
	return group * g.width
}

// Set writes v into one group, waking the owner if it is waiting. See the
// type comment for the single-writer requirement.
func (g GroupState[T]) Set(group uint, v T) {
	at := g.at(group)
	g.t.NotifyValueClear(g.index, bits.Mask(at, g.width))
	g.t.Notify(g.index, bits.Replace(0, codec.Word32(v), at, g.width), kernel.NotifySetBits)
}

// SetAll writes every group in one kernel call.
func (g GroupState[T]) SetAll(vals []T) {
	if uint(len(vals)) != g.groups {
		kernel.Fatalf("task %q: SetAll got %d values for %d groups", g.t.Name(), len(vals), g.groups)
	}
	var word uint32
	for i, v := range vals {
		word = bits.Replace(word, codec.Word32(v), uint(i)*g.width, g.width)
	}
	g.t.Notify(g.index, word, kernel.NotifyOverwrite)
}

// Get waits up to timeout for a write and returns every group's value.
func (g GroupState[T]) Get(timeout kernel.Ticks) ([]T, bool) {
	word, ok := g.t.NotifyWait(g.index, 0, 0, timeout)
	if !ok {
		return nil, false
	}
	return g.unpack(word), true
}

// AwaitGet blocks until a write arrives and returns every group's value.
func (g GroupState[T]) AwaitGet() []T {
	vals, ok := g.Get(kernel.Forever)
	if !ok {
		kernel.Fatalf("task %q: unbounded group state wait failed", g.t.Name())
	}
	return vals
}

// CurrentValues returns every group's value without waiting.
func (g GroupState[T]) CurrentValues() []T {
	return g.unpack(g.t.NotifyValueClear(g.index, 0))
}

func (g GroupState[T]) unpack(word uint32) []T {
	vals := make([]T, g.groups)
	for i := range vals {
		vals[i] = codec.FromWord32[T](bits.Extract(word, uint(i)*g.width, g.width))
	}
	return vals
}
