package booking

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimeWindow = errors.New("start time must be before end time")

// TimeWindow is a half-open interval [start, end) in UTC. The end instant is
// excluded, so a booking ending exactly when another starts does not overlap
// it.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !start.Before(end) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{
		start: start.UTC(),
		end:   end.UTC(),
	}, nil
}

func (w TimeWindow) Start() time.Time {
	return w.start
}

func (w TimeWindow) End() time.Time {
	return w.end
}

func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps applies the classic interval test with half-open semantics.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

// BilledHours rounds the duration up to whole hours.
func (w TimeWindow) BilledHours() int64 {
	d := w.Duration()
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

func (w TimeWindow) EndedBy(now time.Time) bool {
	return !now.Before(w.end)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// String formats the amount with two decimal places. Rounding to two
// decimals happens only here, at presentation; internally the amount is
// exact integer cents.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
