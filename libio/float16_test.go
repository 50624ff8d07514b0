package libio

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestFloat16ExactValues(t *testing.T) {
	tests := []struct {
		f    float32
		bits uint16
	}{
		{0, 0x0000},
		{1, 0x3c00},
		{-1, 0xbc00},
		{0.5, 0x3800},
		{2, 0x4000},
		{65504, 0x7bff}, // largest finite half
		{5.9604645e-8, 0x0001},
	}
	for _, tt := range tests {
		if got := Float16bits(tt.f); got != tt.bits {
			t.Errorf("Float16bits(%v) = 0x%04x, want 0x%04x", tt.f, got, tt.bits)
		}
		if got := Float16frombits(tt.bits); got != tt.f {
			t.Errorf("Float16frombits(0x%04x) = %v, want %v", tt.bits, got, tt.f)
		}
	}
}

func TestFloat16Overflow(t *testing.T) {
	if got := Float16frombits(Float16bits(100000)); !math32.IsInf(got, 1) {
		t.Errorf("100000 should overflow to +inf, got %v", got)
	}
	if got := Float16frombits(Float16bits(-100000)); !math32.IsInf(got, -1) {
		t.Errorf("-100000 should overflow to -inf, got %v", got)
	}
}

func TestFloat16NaN(t *testing.T) {
	if got := Float16frombits(Float16bits(math32.NaN())); !math32.IsNaN(got) {
		t.Errorf("NaN did not survive the round trip, got %v", got)
	}
}

func TestFloat16Infinity(t *testing.T) {
	if got := Float16frombits(Float16bits(math32.Inf(1))); !math32.IsInf(got, 1) {
		t.Errorf("+inf did not survive the round trip, got %v", got)
	}
}

func TestFloat16RoundTripPreservesRepresentable(t *testing.T) {
	// Every multiple of 1/256 in [0,1] fits in a half exactly.
	for i := 0; i <= 256; i++ {
		f := float32(i) / 256
		if got := Float16frombits(Float16bits(f)); got != f {
			t.Errorf("round trip of %v yielded %v", f, got)
		}
	}
}
