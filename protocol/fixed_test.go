package protocol

import (
	"math"
	"testing"
)

func TestToFixed_RoundTrip(t *testing.T) {
	cases := []struct {
		v      float64
		shift  uint
		bits   uint
		signed bool
	}{
		{1.5, TorqueShift, 16, true},
		{-23.9, TorqueShift, 16, true},
		{3.14, VelocityShift, 16, true},
		{-0.007, VelocityShift, 16, true},
		{0.5, PositionShift, 32, true},
		{-12.566, PositionShift, 32, true},
		{0.01, GainShift, 16, false},
		{1.0, GainShift, 16, false},
		{0.0, GainShift, 16, false},
	}

	for _, c := range cases {
		raw := ToFixed(c.v, c.shift, c.bits, c.signed)
		back := FromFixed(raw, c.shift)

		step := 1.0 / float64(int64(1)<<c.shift)
		if math.Abs(back-c.v) > step/2 {
			t.Fatalf("round trip %v (q%d): got %v, off by more than half step %v", c.v, c.shift, back, step/2)
		}
	}
}

func TestToFixed_Saturates(t *testing.T) {
	// Past the int16 positive limit: clamps, never wraps negative.
	if got := ToFixed(1000.0, TorqueShift, 16, true); got != 32767 {
		t.Fatalf("positive overflow: got %d, want 32767", got)
	}
	if got := ToFixed(-1000.0, TorqueShift, 16, true); got != -32768 {
		t.Fatalf("negative overflow: got %d, want -32768", got)
	}
	if got := ToFixed(-5.0, GainShift, 16, false); got != 0 {
		t.Fatalf("unsigned underflow: got %d, want 0", got)
	}
	if got := ToFixed(10.0, GainShift, 16, false); got != 65535 {
		t.Fatalf("unsigned overflow: got %d, want 65535", got)
	}
}

func TestToFixed_GainUnit(t *testing.T) {
	// kp=1.0 is in-domain and must quantize exactly, not clip to 32767.
	if got := ToFixed(1.0, GainShift, 16, false); got != 32768 {
		t.Fatalf("ToFixed(1.0, q15) = %d, want 32768", got)
	}
}
