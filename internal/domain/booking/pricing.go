package booking

import "parkspot/internal/domain/space"

const (
	hoursPerDay   = 24
	hoursPerMonth = 720 // 30-day month
)

type PriceCalculator interface {
	Calculate(rates space.RateCard, window TimeWindow) Money
}

// TieredPriceCalculator bills a window by greedily consuming the largest
// configured unit first: whole months (720h), then whole days (24h), then
// hours. Partial hours always round up. The greedy split is a
// cost-optimization heuristic, not a guarantee of the cheapest possible
// decomposition: a rate card whose daily rate undercuts the amortized
// monthly rate can price a long stay higher than an alternative split
// would. That behavior is intentional.
type TieredPriceCalculator struct{}

func NewTieredPriceCalculator() *TieredPriceCalculator {
	return &TieredPriceCalculator{}
}

func (c *TieredPriceCalculator) Calculate(rates space.RateCard, window TimeWindow) Money {
	remaining := window.BilledHours()
	var totalCents int64

	if monthly := rates.MonthlyCents(); monthly != nil && remaining >= hoursPerMonth {
		months := remaining / hoursPerMonth
		totalCents += months * *monthly
		remaining -= months * hoursPerMonth
	}

	if daily := rates.DailyCents(); daily != nil && remaining >= hoursPerDay {
		days := remaining / hoursPerDay
		totalCents += days * *daily
		remaining -= days * hoursPerDay
	}

	totalCents += remaining * rates.HourlyCents()

	// Non-negative by construction: rates and hours are validated >= 0.
	price, _ := NewMoney(totalCents)
	return price
}
