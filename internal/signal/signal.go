// Package signal holds the bounded-signal primitives shared by every scorer.
//
// A signal is a float64 that is semantically a percentage in [0,100].
// Out-of-range input is clamped and non-finite input (NaN, ±Inf) becomes 0,
// so a single bad telemetry sample never poisons a score.
package signal

import "math"

const (
	// Min is the lower bound of every bounded signal.
	Min = 0.0

	// Max is the upper bound of every bounded signal.
	Max = 100.0
)

// Clamp returns v limited to [Min, Max]. Non-finite values map to 0.
// Clamp is idempotent: Clamp(Clamp(v)) == Clamp(v).
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < Min {
		return Min
	}
	if v > Max {
		return Max
	}
	return v
}

// NonNegative returns v with negatives and non-finite values mapped to 0.
// No upper bound is applied.
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Round rounds half up to the nearest integer.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Score clamps v and rounds it, yielding an integer in [0,100].
func Score(v float64) int {
	return Round(Clamp(v))
}
