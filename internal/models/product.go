package models

import "github.com/shopspring/decimal"

// LoanProduct is the database row for a lending product.
type LoanProduct struct {
	ProductID           string          `db:"product_id"`
	Name                string          `db:"name"`
	MinLimit            decimal.Decimal `db:"min_limit"`
	MaxLimit            decimal.Decimal `db:"max_limit"`
	DefaultInterestRate decimal.Decimal `db:"default_interest_rate"`
	DefaultTenureWeeks  int             `db:"default_tenure_weeks"`
	IsActive            bool            `db:"is_active"`
	AuditFields
}
