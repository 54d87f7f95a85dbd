package ticks

import (
	"testing"
	"time"

	"quark/kernel"
)

func TestToTicks(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want kernel.Ticks
	}{
		{"zero", 0, kernel.NoWait},
		{"negative", -time.Second, kernel.NoWait},
		{"one ms", time.Millisecond, 1},
		{"one second", time.Second, 1000},
		{"rounds down", 400 * time.Microsecond, 0},
		{"rounds up", 600 * time.Microsecond, 1},
		{"forever sentinel", Forever, kernel.Forever},
		{"saturates", Forever - 1, kernel.Forever},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToTicks(tt.d); got != tt.want {
				t.Fatalf("ToTicks(%v) = %d, want %d", tt.d, got, tt.want)
			}
		})
	}
}

func TestDurationRoundTrip(t *testing.T) {
	if got := Duration(kernel.Forever); got != Forever {
		t.Fatalf("Duration(Forever) = %v, want the Forever sentinel", got)
	}
	if got := Duration(250); got != 250*time.Millisecond {
		t.Fatalf("Duration(250) = %v, want 250ms", got)
	}
	if got := ToTicks(Duration(77)); got != 77 {
		t.Fatalf("ToTicks(Duration(77)) = %d, want 77", got)
	}
}
