package space

import "errors"

var ErrNegativeRate = errors.New("rates cannot be negative")

// RateCard holds a space's pricing tiers in integer cents. The hourly rate
// is mandatory; daily and monthly tiers are optional.
type RateCard struct {
	hourlyCents  int64
	dailyCents   *int64
	monthlyCents *int64
}

func NewRateCard(hourlyCents int64, dailyCents, monthlyCents *int64) (RateCard, error) {
	if hourlyCents < 0 {
		return RateCard{}, ErrNegativeRate
	}
	if dailyCents != nil && *dailyCents < 0 {
		return RateCard{}, ErrNegativeRate
	}
	if monthlyCents != nil && *monthlyCents < 0 {
		return RateCard{}, ErrNegativeRate
	}
	return RateCard{
		hourlyCents:  hourlyCents,
		dailyCents:   copyInt64Ptr(dailyCents),
		monthlyCents: copyInt64Ptr(monthlyCents),
	}, nil
}

func (r RateCard) HourlyCents() int64 {
	return r.hourlyCents
}

func (r RateCard) DailyCents() *int64 {
	return copyInt64Ptr(r.dailyCents)
}

func (r RateCard) MonthlyCents() *int64 {
	return copyInt64Ptr(r.monthlyCents)
}

func (r RateCard) HasDailyRate() bool {
	return r.dailyCents != nil
}

func (r RateCard) HasMonthlyRate() bool {
	return r.monthlyCents != nil
}

func copyInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
