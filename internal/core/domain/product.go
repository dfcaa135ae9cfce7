package domain

import "github.com/shopspring/decimal"

// LoanProduct defines a lending product and the band amounts must fall within.
type LoanProduct struct {
	ProductID           string          `json:"productID"` // Primary Key (e.g., UUID)
	Name                string          `json:"name"`
	MinLimit            decimal.Decimal `json:"minLimit"`
	MaxLimit            decimal.Decimal `json:"maxLimit"`
	DefaultInterestRate decimal.Decimal `json:"defaultInterestRate"` // flat rate, percent
	DefaultTenureWeeks  int             `json:"defaultTenureWeeks"`
	Active              bool            `json:"active"`
	AuditFields
}

// AmountWithinLimits reports whether the amount lies inside [MinLimit, MaxLimit].
func (p *LoanProduct) AmountWithinLimits(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(p.MinLimit) && amount.LessThanOrEqual(p.MaxLimit)
}

// ProcessingFeeForTenure returns the processing fee tier for a tenure in weeks.
func ProcessingFeeForTenure(tenureWeeks int) decimal.Decimal {
	switch {
	case tenureWeeks <= 0:
		return decimal.Zero
	case tenureWeeks <= 12:
		return decimal.NewFromInt(1000)
	case tenureWeeks <= 24:
		return decimal.NewFromInt(1500)
	case tenureWeeks <= 52:
		return decimal.NewFromInt(2000)
	default:
		return decimal.NewFromInt(2500)
	}
}

// WeeklyRental computes the flat weekly rental for a principal, flat interest
// rate (percent over the whole term) and tenure. Rounded up to whole rupees.
func WeeklyRental(principal, interestRate decimal.Decimal, tenureWeeks int) decimal.Decimal {
	if tenureWeeks <= 0 {
		return decimal.Zero
	}
	interest := principal.Mul(interestRate).Div(decimal.NewFromInt(100))
	total := principal.Add(interest)
	return total.Div(decimal.NewFromInt(int64(tenureWeeks))).Ceil()
}
