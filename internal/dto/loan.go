package dto

import (
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/araliya-mfi/loan_origination_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateLoanPayload is the canonical loan create/update contract assembled
// from a completed draft. It is a distinct type from the draft, connected by
// the explicit, total mapping below.
type CreateLoanPayload struct {
	ProductID  string `json:"product_id"`
	CenterID   string `json:"center_id"`
	GroupID    string `json:"group_id"`
	CustomerID string `json:"customer_id"`

	RequestedAmount decimal.Decimal `json:"requested_amount"`
	ApprovedAmount  decimal.Decimal `json:"approved_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TenureWeeks     int             `json:"tenure_weeks"`
	Rental          decimal.Decimal `json:"rental"`

	ProcessingFee         decimal.Decimal `json:"processing_fee"`
	DocumentationFee      decimal.Decimal `json:"documentation_fee"`
	ReloanDeductionAmount decimal.Decimal `json:"reloan_deduction_amount"`

	GuardianName         string `json:"guardian_name"`
	GuardianNIC          string `json:"guardian_nic"`
	GuardianRelationship string `json:"guardian_relationship"`
	GuardianAddress      string `json:"guardian_address"`
	GuardianPhone        string `json:"guardian_phone"`

	Guarantor1Name string `json:"guarantor1_name"`
	Guarantor1NIC  string `json:"guarantor1_nic"`
	Guarantor2Name string `json:"guarantor2_name"`
	Guarantor2NIC  string `json:"guarantor2_nic"`
	Witness1       string `json:"witness1"`
	Witness2       string `json:"witness2"`

	BankName      string `json:"bank_name"`
	BankBranch    string `json:"bank_branch"`
	AccountNumber string `json:"account_number"`

	Remarks string `json:"remarks"`

	// LoanStep labels the workflow pass: "New Loan Application" or
	// "Resubmitted Loan Application".
	LoanStep string `json:"loan_step"`

	// EditID carries the loan being updated in edit mode; empty on create.
	EditID string `json:"edit_id,omitempty"`
}

// BuildLoanPayload maps a completed draft to the canonical payload. Total by
// construction: every payload field is written from the draft or the
// arguments, so a draft-shape change surfaces here at compile time.
func BuildLoanPayload(d *domain.LoanApplicationDraft, loanStep, editID string) CreateLoanPayload {
	return CreateLoanPayload{
		ProductID:  d.ProductID,
		CenterID:   d.CenterID,
		GroupID:    d.GroupID,
		CustomerID: d.CustomerID,

		RequestedAmount: d.RequestedAmount,
		ApprovedAmount:  d.ApprovedAmount,
		InterestRate:    d.InterestRate,
		TenureWeeks:     d.TenureWeeks,
		Rental:          d.Rental,

		ProcessingFee:         d.ProcessingFee,
		DocumentationFee:      d.DocumentationFee,
		ReloanDeductionAmount: d.ReloanDeductionAmount,

		GuardianName:         d.GuardianName,
		GuardianNIC:          d.GuardianNIC,
		GuardianRelationship: d.GuardianRelationship,
		GuardianAddress:      d.GuardianAddress,
		GuardianPhone:        d.GuardianPhone,

		Guarantor1Name: d.Guarantor1.Name,
		Guarantor1NIC:  d.Guarantor1.NIC,
		Guarantor2Name: d.Guarantor2.Name,
		Guarantor2NIC:  d.Guarantor2.NIC,
		Witness1:       d.Witness1,
		Witness2:       d.Witness2,

		BankName:      d.BankName,
		BankBranch:    d.BankBranch,
		AccountNumber: d.AccountNumber,

		Remarks:  d.Remarks,
		LoanStep: loanStep,
		EditID:   editID,
	}
}

// LoanResponse defines data returned for a canonical loan record.
type LoanResponse struct {
	LoanID     string `json:"loanID"`
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
	NetPayout             decimal.Decimal `json:"netPayout"`
	// NetPayoutDisplay is the rounded, statement-style rendering of NetPayout.
	NetPayoutDisplay string `json:"netPayoutDisplay"`

	Witness1 string `json:"witness1"`
	Witness2 string `json:"witness2"`

	LoanStep string `json:"loanStep"`
	Status   string `json:"status"`
}

// ToLoanResponse converts a domain.Loan to DTO.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	netPayout := l.ApprovedAmount.
		Sub(l.ProcessingFee).
		Sub(l.DocumentationFee).
		Sub(l.ReloanDeductionAmount)
	return LoanResponse{
		LoanID:     l.LoanID,
		ProductID:  l.ProductID,
		CenterID:   l.CenterID,
		GroupID:    l.GroupID,
		CustomerID: l.CustomerID,

		RequestedAmount: l.RequestedAmount,
		ApprovedAmount:  l.ApprovedAmount,
		InterestRate:    l.InterestRate,
		TenureWeeks:     l.TenureWeeks,
		Rental:          l.Rental,

		ProcessingFee:         l.ProcessingFee,
		DocumentationFee:      l.DocumentationFee,
		ReloanDeductionAmount: l.ReloanDeductionAmount,
		NetPayout:             netPayout,
		NetPayoutDisplay:      utils.FormatRupees(netPayout),

		Witness1: l.Witness1,
		Witness2: l.Witness2,

		LoanStep: l.LoanStep,
		Status:   string(l.Status),
	}
}

// ListLoansResponse wraps a list of loans.
type ListLoansResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// ToListLoansResponse converts a slice of domain.Loan to DTO.
func ToListLoansResponse(ls []domain.Loan) ListLoansResponse {
	list := make([]LoanResponse, len(ls))
	for i := range ls {
		list[i] = ToLoanResponse(&ls[i])
	}
	return ListLoansResponse{Loans: list}
}
