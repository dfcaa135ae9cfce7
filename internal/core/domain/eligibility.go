package domain

import "github.com/shopspring/decimal"

// ReloanThresholdPercent is the repayment progress a customer must reach on an
// active loan before a new loan of the same product may be opened.
const ReloanThresholdPercent = 70

// ReloanEligibility is the computed gate for taking a new loan of a product
// the customer already holds active. Consumed read-only by the wizard.
type ReloanEligibility struct {
	IsEligible bool            `json:"isEligible"`
	Progress   decimal.Decimal `json:"progress"` // percent of committed weeks paid
	PaidWeeks  int             `json:"paidWeeks"`
	TotalWeeks int             `json:"totalWeeks"`
	Balance    decimal.Decimal `json:"balance"` // outstanding, deducted from a reloan payout
}

// ComputeReloanEligibility derives the eligibility record from a repayment
// summary of the active loan.
func ComputeReloanEligibility(paidWeeks, totalWeeks int, balance decimal.Decimal) ReloanEligibility {
	progress := decimal.Zero
	if totalWeeks > 0 {
		progress = decimal.NewFromInt(int64(paidWeeks)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(totalWeeks))).
			Round(2)
	}
	return ReloanEligibility{
		IsEligible: progress.GreaterThanOrEqual(decimal.NewFromInt(ReloanThresholdPercent)),
		Progress:   progress,
		PaidWeeks:  paidWeeks,
		TotalWeeks: totalWeeks,
		Balance:    balance,
	}
}
