package models

import "github.com/shopspring/decimal"

// Loan is the database row for a canonical loan application record.
type Loan struct {
	LoanID     string `db:"loan_id"`
	ProductID  string `db:"product_id"`
	CenterID   string `db:"center_id"`
	GroupID    string `db:"group_id"`
	CustomerID string `db:"customer_id"`

	RequestedAmount decimal.Decimal `db:"requested_amount"`
	ApprovedAmount  decimal.Decimal `db:"approved_amount"`
	InterestRate    decimal.Decimal `db:"interest_rate"`
	TenureWeeks     int             `db:"tenure_weeks"`
	Rental          decimal.Decimal `db:"rental"`

	ProcessingFee         decimal.Decimal `db:"processing_fee"`
	DocumentationFee      decimal.Decimal `db:"documentation_fee"`
	ReloanDeductionAmount decimal.Decimal `db:"reloan_deduction_amount"`

	GuardianName         string `db:"guardian_name"`
	GuardianNIC          string `db:"guardian_nic"`
	GuardianRelationship string `db:"guardian_relationship"`
	GuardianAddress      string `db:"guardian_address"`
	GuardianPhone        string `db:"guardian_phone"`

	Guarantor1Name string `db:"guarantor1_name"`
	Guarantor1NIC  string `db:"guarantor1_nic"`
	Guarantor2Name string `db:"guarantor2_name"`
	Guarantor2NIC  string `db:"guarantor2_nic"`
	Witness1       string `db:"witness1"`
	Witness2       string `db:"witness2"`

	BankName      string `db:"bank_name"`
	BankBranch    string `db:"bank_branch"`
	AccountNumber string `db:"account_number"`

	Remarks  string `db:"remarks"`
	LoanStep string `db:"loan_step"`
	Status   string `db:"status"`

	PaidWeeks  int             `db:"paid_weeks"`
	TotalWeeks int             `db:"total_weeks"`
	Balance    decimal.Decimal `db:"balance"`

	AuditFields
}
