//go:build unit

package booking_test

import (
	"math/rand"
	"testing"
	"time"

	"parkspot/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func window(t *testing.T, startHour, endHour float64) booking.TimeWindow {
	t.Helper()
	w, err := booking.NewTimeWindow(
		base.Add(time.Duration(startHour*float64(time.Hour))),
		base.Add(time.Duration(endHour*float64(time.Hour))),
	)
	require.NoError(t, err)
	return w
}

func TestNewTimeWindow(t *testing.T) {
	t.Run("start must precede end", func(t *testing.T) {
		_, err := booking.NewTimeWindow(base.Add(time.Hour), base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeWindow)
	})

	t.Run("zero-length window rejected", func(t *testing.T) {
		_, err := booking.NewTimeWindow(base, base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeWindow)
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		est := time.FixedZone("EST", -5*3600)
		w, err := booking.NewTimeWindow(base.In(est), base.Add(time.Hour).In(est))
		require.NoError(t, err)
		assert.Equal(t, time.UTC, w.Start().Location())
		assert.True(t, w.Start().Equal(base))
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    [2]float64
		b    [2]float64
		want bool
	}{
		{name: "b starts inside a", a: [2]float64{0, 4}, b: [2]float64{2, 6}, want: true},
		{name: "b ends inside a", a: [2]float64{2, 6}, b: [2]float64{0, 4}, want: true},
		{name: "b contains a", a: [2]float64{2, 4}, b: [2]float64{0, 6}, want: true},
		{name: "a contains b", a: [2]float64{0, 6}, b: [2]float64{2, 4}, want: true},
		{name: "identical", a: [2]float64{0, 4}, b: [2]float64{0, 4}, want: true},
		{name: "disjoint before", a: [2]float64{0, 2}, b: [2]float64{3, 5}, want: false},
		{name: "disjoint after", a: [2]float64{3, 5}, b: [2]float64{0, 2}, want: false},
		{name: "touching boundary is not a conflict", a: [2]float64{0, 2}, b: [2]float64{2, 4}, want: false},
		{name: "touching boundary reversed", a: [2]float64{2, 4}, b: [2]float64{0, 2}, want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := window(t, c.a[0], c.a[1])
			b := window(t, c.b[0], c.b[1])
			assert.Equal(t, c.want, a.Overlaps(b))
			assert.Equal(t, c.want, b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

// Randomized check of the interval-overlap formulation against the
// three-clause definition: starts-inside, ends-inside, or fully contains.
func TestOverlapsEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		s1, s2 := rng.Intn(100), rng.Intn(100)
		a := window(t, float64(s1), float64(s1+1+rng.Intn(50)))
		b := window(t, float64(s2), float64(s2+1+rng.Intn(50)))

		startsInside := !b.Start().After(a.Start()) && a.Start().Before(b.End())
		endsInside := b.Start().Before(a.End()) && !a.End().After(b.End())
		contains := !a.Start().After(b.Start()) && !b.End().After(a.End())
		want := startsInside || endsInside || contains

		require.Equal(t, want, a.Overlaps(b), "a=%v b=%v", a, b)
	}
}

func TestBilledHours(t *testing.T) {
	cases := []struct {
		name  string
		hours float64
		want  int64
	}{
		{name: "exact hour", hours: 1, want: 1},
		{name: "partial hour rounds up", hours: 3.5, want: 4},
		{name: "barely over rounds up", hours: 2.01, want: 3},
		{name: "full day", hours: 24, want: 24},
		{name: "over a month", hours: 721.5, want: 722},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, window(t, 0, c.hours).BilledHours())
		})
	}
}

func TestMoneyString(t *testing.T) {
	m, err := booking.NewMoney(10000)
	require.NoError(t, err)
	assert.Equal(t, "100.00", m.String())

	m, err = booking.NewMoney(2005)
	require.NoError(t, err)
	assert.Equal(t, "20.05", m.String())

	_, err = booking.NewMoney(-1)
	require.Error(t, err)
}
