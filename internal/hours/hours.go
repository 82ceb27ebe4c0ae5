// Package hours implements the decihour encoding used to store a week of
// daily hour values in a single integer column. Each day is one unsigned
// byte of tenths of an hour; the seven bytes (Saturday first) occupy the
// low 56 bits, little-endian.
package hours

import (
	"math"

	"github.com/bcit-infosys/timesheet-manager/backend/internal/domain"
)

// Maximum hours a single day cell may carry.
const MaxPerDay = 24.0

// Round snaps an hour value to the 0.1 h resolution of the encoding.
func Round(v float64) float64 {
	return math.Round(v*10) / 10
}

// Clamp forces an hour value into [0, MaxPerDay]. Out-of-range input is
// silently clamped, never rejected: the encoding is lossy by design.
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxPerDay {
		return MaxPerDay
	}
	return v
}

// Pack encodes seven day-hour values into the low 56 bits of a uint64.
// Values are clamped to [0,24] and rounded to tenths first, so the per-day
// byte never exceeds 240.
func Pack(h [domain.DaysInWeek]float64) uint64 {
	var packed uint64
	for i := 0; i < domain.DaysInWeek; i++ {
		tenths := int64(math.Round(Clamp(h[i]) * 10))
		if tenths < 0 {
			tenths = 0
		}
		if tenths > 255 {
			tenths = 255 // one byte per day
		}
		packed |= uint64(tenths) << (i * 8)
	}
	return packed
}

// Unpack is the inverse of Pack over the canonical domain: any vector of
// values in [0,24] at 0.1 h steps round-trips exactly.
func Unpack(packed uint64) [domain.DaysInWeek]float64 {
	var h [domain.DaysInWeek]float64
	for i := 0; i < domain.DaysInWeek; i++ {
		tenths := (packed >> (i * 8)) & 0xFF
		h[i] = float64(tenths) / 10
	}
	return h
}
