package codec

import "testing"

type pose struct {
	X, Y int32
	Yaw  float32
}

type report struct {
	Tag  string
	Data []byte
}

func TestClassification(t *testing.T) {
	if got := For[uint32]().Class(); got != Inline {
		t.Fatalf("For[uint32]().Class() = %v, want inline", got)
	}
	if got := For[pose]().Class(); got != Inline {
		t.Fatalf("For[pose]().Class() = %v, want inline", got)
	}
	if got := For[[4]pose]().Class(); got != Inline {
		t.Fatalf("For[[4]pose]().Class() = %v, want inline", got)
	}
	if got := For[string]().Class(); got != Boxed {
		t.Fatalf("For[string]().Class() = %v, want boxed", got)
	}
	if got := For[report]().Class(); got != Boxed {
		t.Fatalf("For[report]().Class() = %v, want boxed", got)
	}
	if got := For[*pose]().Class(); got != Boxed {
		t.Fatalf("For[*pose]().Class() = %v, want boxed", got)
	}
	if got := For[any]().Class(); got != Boxed {
		t.Fatalf("For[any]().Class() = %v, want boxed", got)
	}
	if got := For[uintptr]().Class(); got != Boxed {
		t.Fatalf("For[uintptr]().Class() = %v, want boxed", got)
	}
}

func TestInlineRoundTrip(t *testing.T) {
	c := For[pose]()
	slot := make([]byte, c.SlotSize())

	in := pose{X: -3, Y: 14, Yaw: 1.5}
	if ok := c.Encode(in, slot); !ok {
		t.Fatalf("Encode() ok = false, want true")
	}
	if got := c.Decode(slot); got != in {
		t.Fatalf("Decode() = %+v, want %+v", got, in)
	}
	if got := c.Live(); got != 0 {
		t.Fatalf("Live() = %d for inline codec, want 0", got)
	}
}

func TestBoxedRoundTripReleasesArena(t *testing.T) {
	c := For[report]()
	if got := c.SlotSize(); got != HandleSize {
		t.Fatalf("SlotSize() = %d for boxed codec, want %d", got, HandleSize)
	}

	const n = 16
	slots := make([][]byte, n)
	for i := 0; i < n; i++ {
		slots[i] = make([]byte, c.SlotSize())
		in := report{Tag: "r", Data: []byte{byte(i)}}
		if ok := c.Encode(in, slots[i]); !ok {
			t.Fatalf("Encode() #%d ok = false, want true", i)
		}
	}
	if got := c.Live(); got != n {
		t.Fatalf("Live() = %d after %d encodes, want %d", got, n, n)
	}

	for i := 0; i < n; i++ {
		out := c.Decode(slots[i])
		if len(out.Data) != 1 || out.Data[0] != byte(i) {
			t.Fatalf("Decode() #%d = %+v, want data [%d]", i, out, i)
		}
	}
	if got := c.Live(); got != 0 {
		t.Fatalf("Live() = %d after draining, want 0", got)
	}
}

func TestBoxedPeekDoesNotRelease(t *testing.T) {
	c := For[string]()
	slot := make([]byte, c.SlotSize())
	c.Encode("hello", slot)

	if got := c.DecodePeek(slot); got != "hello" {
		t.Fatalf("DecodePeek() = %q, want %q", got, "hello")
	}
	if got := c.Live(); got != 1 {
		t.Fatalf("Live() = %d after peek, want 1", got)
	}
	if got := c.Decode(slot); got != "hello" {
		t.Fatalf("Decode() after peek = %q, want %q", got, "hello")
	}
	if got := c.Live(); got != 0 {
		t.Fatalf("Live() = %d after decode, want 0", got)
	}
}

func TestArenaLimit(t *testing.T) {
	a := NewArena[string]()
	a.SetLimit(2)

	h1, ok := a.Put("a")
	if !ok {
		t.Fatalf("Put() #1 ok = false, want true")
	}
	if _, ok := a.Put("b"); !ok {
		t.Fatalf("Put() #2 ok = false, want true")
	}
	if _, ok := a.Put("c"); ok {
		t.Fatalf("Put() ok = true past the limit, want false")
	}

	if _, ok := a.Take(h1); !ok {
		t.Fatalf("Take() ok = false, want true")
	}
	if _, ok := a.Put("c"); !ok {
		t.Fatalf("Put() ok = false after freeing a slot, want true")
	}
}

func TestArenaHandleReuseAndInvalidHandles(t *testing.T) {
	a := NewArena[int]()

	h, _ := a.Put(1)
	a.Take(h)
	h2, _ := a.Put(2)
	if h2 != h {
		t.Fatalf("Put() after Take() handle = %d, want reused %d", h2, h)
	}

	if _, ok := a.Take(0); ok {
		t.Fatalf("Take(0) ok = true, want false")
	}
	if _, ok := a.Get(Handle(99)); ok {
		t.Fatalf("Get(99) ok = true, want false")
	}
	a.Take(h2)
	if _, ok := a.Take(h2); ok {
		t.Fatalf("Take() ok = true on a released handle, want false")
	}
}

func TestWord32RoundTrip(t *testing.T) {
	type mode uint8
	if !Fits32[mode]() {
		t.Fatalf("Fits32[mode]() = false, want true")
	}
	if !Fits32[float32]() {
		t.Fatalf("Fits32[float32]() = false, want true")
	}
	if Fits32[float64]() {
		t.Fatalf("Fits32[float64]() = true, want false")
	}
	if Fits32[string]() {
		t.Fatalf("Fits32[string]() = true, want false")
	}

	if got := FromWord32[mode](Word32(mode(7))); got != 7 {
		t.Fatalf("FromWord32(Word32(7)) = %d, want 7", got)
	}
	if got := FromWord32[float32](Word32(float32(2.25))); got != 2.25 {
		t.Fatalf("FromWord32(Word32(2.25)) = %v, want 2.25", got)
	}
}
