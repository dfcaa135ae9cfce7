package domain

import "github.com/shopspring/decimal"

// LoanStep labels which pass through the workflow produced the record.
const (
	LoanStepNew         = "New Loan Application"
	LoanStepResubmitted = "Resubmitted Loan Application"
)

// LoanStatus indicates where a canonical loan record sits in its lifecycle.
type LoanStatus string

const (
	LoanPendingApproval LoanStatus = "PENDING_APPROVAL"
	LoanSentBack        LoanStatus = "SENT_BACK" // editable by the originator
	LoanApproved        LoanStatus = "APPROVED"
	LoanDisbursed       LoanStatus = "DISBURSED"
	LoanActive          LoanStatus = "ACTIVE"
	LoanClosed          LoanStatus = "CLOSED"
)

// Loan is the canonical, backend-owned application record created on submit.
type Loan struct {
	LoanID     string `json:"loanID"` // Primary Key (e.g., UUID)
	ProductID  string `json:"productID"`
	CenterID   string `json:"centerID"`
	GroupID    string `json:"groupID"`
	CustomerID string `json:"customerID"`

	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	ApprovedAmount  decimal.Decimal `json:"approvedAmount"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	TenureWeeks     int             `json:"tenureWeeks"`
	Rental          decimal.Decimal `json:"rental"`

	ProcessingFee         decimal.Decimal `json:"processingFee"`
	DocumentationFee      decimal.Decimal `json:"documentationFee"`
	ReloanDeductionAmount decimal.Decimal `json:"reloanDeductionAmount"`

	GuardianName         string `json:"guardianName"`
	GuardianNIC          string `json:"guardianNIC"`
	GuardianRelationship string `json:"guardianRelationship"`
	GuardianAddress      string `json:"guardianAddress"`
	GuardianPhone        string `json:"guardianPhone"`

	Guarantor1Name string `json:"guarantor1Name"`
	Guarantor1NIC  string `json:"guarantor1NIC"`
	Guarantor2Name string `json:"guarantor2Name"`
	Guarantor2NIC  string `json:"guarantor2NIC"`
	Witness1       string `json:"witness1"`
	Witness2       string `json:"witness2"`

	BankName      string `json:"bankName"`
	BankBranch    string `json:"bankBranch"`
	AccountNumber string `json:"accountNumber"`

	Remarks  string     `json:"remarks"`
	LoanStep string     `json:"loanStep"` // LoanStepNew or LoanStepResubmitted
	Status   LoanStatus `json:"status"`

	// Repayment summary, maintained by the collection side. Feeds reloan
	// eligibility for the origination side.
	PaidWeeks  int             `json:"paidWeeks"`
	TotalWeeks int             `json:"totalWeeks"`
	Balance    decimal.Decimal `json:"balance"`

	AuditFields
}

// IsActive reports whether the loan counts toward the duplicate-product block.
func (l *Loan) IsActive() bool {
	switch l.Status {
	case LoanApproved, LoanDisbursed, LoanActive, LoanPendingApproval:
		return true
	}
	return false
}
