package bank

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Investment is a timed allocation of credits attached to an account. The
// principal is deducted from the balance when the investment starts and
// returned together with the earned interest when it stops.
type Investment struct {
	ID        string  `json:"id"`
	Principle float64 `json:"principle"`
	Rate      float64 `json:"rate"`
	// Compounding selects the interest formula: a finite positive value uses
	// periodic compounding, zero uses continuous compounding.
	Compounding float64 `json:"compounding"`
	// Started is the creation time in epoch milliseconds.
	Started int64 `json:"started"`
}

// NewInvestment creates an investment started now.
func NewInvestment(principal, rate, compounding float64) *Investment {
	return &Investment{
		ID:          uuid.NewString(),
		Principle:   principal,
		Rate:        rate,
		Compounding: compounding,
		Started:     time.Now().UnixMilli(),
	}
}

// CompoundInterest is principal * ((1 + rate/compounding)^(compounding*t) - 1).
func CompoundInterest(principal, rate, compounding, t float64) float64 {
	return principal * (math.Pow(1+rate/compounding, compounding*t) - 1)
}

// ContinuousInterest is principal * (e^(rate*t) - 1).
func ContinuousInterest(principal, rate, t float64) float64 {
	return principal * (math.Exp(rate*t) - 1)
}

// Elapsed returns how long the investment has been running at now.
func (inv *Investment) Elapsed(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(inv.Started))
}

// Interest computes the accrued interest at now, with elapsed time scaled
// to units of timeScale (e.g. one day).
func (inv *Investment) Interest(now time.Time, timeScale time.Duration) float64 {
	t := float64(inv.Elapsed(now)) / float64(timeScale)
	if t < 0 {
		t = 0
	}
	if inv.Compounding > 0 {
		return CompoundInterest(inv.Principle, inv.Rate, inv.Compounding, t)
	}
	return ContinuousInterest(inv.Principle, inv.Rate, t)
}
