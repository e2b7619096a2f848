package protocol

import "math"

// ToFixed converts a physical value to its fixed-point representation:
// round(v * 2^shift), saturated to the representable range of an integer of
// the given bit width. Saturation is deterministic; values never wrap.
func ToFixed(v float64, shift uint, bits uint, signed bool) int64 {
	scaled := math.Round(v * float64(int64(1)<<shift))

	var min, max float64
	if signed {
		max = float64(int64(1)<<(bits-1) - 1)
		min = -float64(int64(1) << (bits - 1))
	} else {
		max = float64(uint64(1)<<bits - 1)
		min = 0
	}

	if scaled > max {
		return int64(max)
	}
	if scaled < min {
		return int64(min)
	}
	return int64(scaled)
}

// FromFixed converts a fixed-point value back to a physical quantity.
// Inverse of ToFixed up to the quantization step 2^-shift.
func FromFixed(raw int64, shift uint) float64 {
	return float64(raw) / float64(int64(1)<<shift)
}

// clamp01 bounds a gain to its [0, 1] domain before quantization.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
