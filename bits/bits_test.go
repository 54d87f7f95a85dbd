package bits

import "testing"

func TestMask(t *testing.T) {
	tests := []struct {
		at, width uint
		want      uint32
	}{
		{0, 0, 0x00000000},
		{0, 1, 0x00000001},
		{0, 8, 0x000000FF},
		{4, 4, 0x000000F0},
		{28, 4, 0xF0000000},
		{0, 32, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		if got := Mask(tt.at, tt.width); got != tt.want {
			t.Fatalf("Mask(%d, %d) = %#08x, want %#08x", tt.at, tt.width, got, tt.want)
		}
	}
}

func TestReplacePreservesOtherBits(t *testing.T) {
	word := uint32(0xFFFFFFFF)
	got := Replace(word, 0b0101, 8, 4)
	if want := uint32(0xFFFFF5FF); got != want {
		t.Fatalf("Replace() = %#08x, want %#08x", got, want)
	}
}

func TestReplaceTruncatesOversizeField(t *testing.T) {
	got := Replace(0, 0xFF, 0, 4)
	if want := uint32(0x0F); got != want {
		t.Fatalf("Replace() = %#08x, want %#08x", got, want)
	}
}

func TestExtractRoundTrip(t *testing.T) {
	var word uint32
	fields := []uint32{3, 0, 7, 5}
	for i, f := range fields {
		word = Replace(word, f, uint(i)*3, 3)
	}
	for i, f := range fields {
		if got := Extract(word, uint(i)*3, 3); got != f {
			t.Fatalf("Extract(group %d) = %d, want %d", i, got, f)
		}
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		states uint32
		want   uint
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{256, 8},
		{257, 9},
	}
	for _, tt := range tests {
		if got := Width(tt.states); got != tt.want {
			t.Fatalf("Width(%d) = %d, want %d", tt.states, got, tt.want)
		}
	}
}
