package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(day("2026-03-10"), day("2026-03-13")))
	assert.Equal(t, 1, Nights(day("2026-03-10"), day("2026-03-11")))
	assert.Equal(t, 0, Nights(day("2026-03-10"), day("2026-03-10")))
	assert.Equal(t, -2, Nights(day("2026-03-12"), day("2026-03-10")))
}

func TestQuote(t *testing.T) {
	t.Run("three nights at 100", func(t *testing.T) {
		total, err := Quote(100, day("2026-03-10"), day("2026-03-13"))
		require.NoError(t, err)
		assert.Equal(t, 300.0, total)
	})

	t.Run("rounds to two decimals", func(t *testing.T) {
		total, err := Quote(33.335, day("2026-03-10"), day("2026-03-13"))
		require.NoError(t, err)
		assert.Equal(t, 100.01, total)
	})

	t.Run("zero-length interval", func(t *testing.T) {
		_, err := Quote(100, day("2026-03-10"), day("2026-03-10"))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("inverted interval", func(t *testing.T) {
		_, err := Quote(100, day("2026-03-13"), day("2026-03-10"))
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("non-positive rate", func(t *testing.T) {
		_, err := Quote(0, day("2026-03-10"), day("2026-03-13"))
		assert.ErrorIs(t, err, ErrInvalidRate)

		_, err = Quote(-50, day("2026-03-10"), day("2026-03-13"))
		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		a, b, c, d     string
		expectConflict bool
	}{
		{"identical intervals", "2026-03-10", "2026-03-13", "2026-03-10", "2026-03-13", true},
		{"partial overlap at start", "2026-03-08", "2026-03-11", "2026-03-10", "2026-03-13", true},
		{"partial overlap at end", "2026-03-12", "2026-03-15", "2026-03-10", "2026-03-13", true},
		{"fully contained", "2026-03-11", "2026-03-12", "2026-03-10", "2026-03-13", true},
		{"fully containing", "2026-03-08", "2026-03-15", "2026-03-10", "2026-03-13", true},
		{"back-to-back before", "2026-03-07", "2026-03-10", "2026-03-10", "2026-03-13", false},
		{"back-to-back after", "2026-03-13", "2026-03-16", "2026-03-10", "2026-03-13", false},
		{"disjoint", "2026-03-01", "2026-03-05", "2026-03-10", "2026-03-13", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.a), day(tc.b), day(tc.c), day(tc.d))
			assert.Equal(t, tc.expectConflict, got)
		})
	}
}
