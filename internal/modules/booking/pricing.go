package booking

import (
	"math"
	"time"
)

// Nights returns the whole-day span of the half-open interval
// [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// Quote computes nights * rate rounded to two decimals. The price is
// snapshotted onto the booking at creation time and never recomputed from
// a later room rate.
func Quote(rate float64, checkIn, checkOut time.Time) (float64, error) {
	if rate <= 0 {
		return 0, ErrInvalidRate
	}
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, ErrInvalidInterval
	}
	total := float64(nights) * rate
	return math.Round(total*100) / 100, nil
}

// Overlaps is the half-open interval overlap test: [a,b) conflicts with
// [c,d) iff a < d && b > c. Same-day turnover (b == c) is not a conflict.
func Overlaps(a, b, c, d time.Time) bool {
	return a.Before(d) && b.After(c)
}
