package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WizardStep identifies one of the ordered application wizard stages.
type WizardStep int

const (
	StepCustomerSelection WizardStep = 1
	StepLoanDetails       WizardStep = 2
	StepDocuments         WizardStep = 3
	StepReviewSubmit      WizardStep = 4
)

// String returns the stage name used in messages.
func (s WizardStep) String() string {
	switch s {
	case StepCustomerSelection:
		return "Customer Selection"
	case StepLoanDetails:
		return "Loan Details"
	case StepDocuments:
		return "Documents"
	case StepReviewSubmit:
		return "Review & Submit"
	}
	return "Unknown"
}

// GuarantorInfo is a derived name+NIC pair. Guarantors are never hand-entered;
// they come from group membership.
type GuarantorInfo struct {
	Name string `json:"name"`
	NIC  string `json:"nic"`
}

// IsSet reports whether both fields are populated.
func (g GuarantorInfo) IsSet() bool {
	return g.Name != "" && g.NIC != ""
}

// LoanApplicationDraft is the mutable working set for the application wizard.
// Mutations replace the whole draft atomically; no field is updated in place
// on a stored snapshot.
type LoanApplicationDraft struct {
	// Identity
	CenterID   string `json:"centerID"`
	GroupID    string `json:"groupID"`
	CustomerID string `json:"customerID"`
	NIC        string `json:"nic"`

	// Financial terms
	ProductID       string          `json:"productID"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	ApprovedAmount  decimal.Decimal `json:"approvedAmount"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	TenureWeeks     int             `json:"tenureWeeks"`
	Rental          decimal.Decimal `json:"rental"` // computed, never hand-entered

	// Joint borrower (guardian)
	GuardianName         string `json:"guardianName"`
	GuardianNIC          string `json:"guardianNIC"`
	GuardianRelationship string `json:"guardianRelationship"`
	GuardianAddress      string `json:"guardianAddress"`
	GuardianPhone        string `json:"guardianPhone"`

	// Derived relationship fields
	Guarantor1 GuarantorInfo `json:"guarantor1"`
	Guarantor2 GuarantorInfo `json:"guarantor2"`
	Witness1   string        `json:"witness1"` // staff ID, always the creator
	Witness2   string        `json:"witness2"` // staff ID, must differ from Witness1

	// Fees
	ProcessingFee         decimal.Decimal `json:"processingFee"` // derived from tenure tier
	DocumentationFee      decimal.Decimal `json:"documentationFee"`
	ReloanDeductionAmount decimal.Decimal `json:"reloanDeductionAmount"`

	// Bank details
	BankName      string `json:"bankName"`
	BankBranch    string `json:"bankBranch"`
	AccountNumber string `json:"accountNumber"`

	// Documents
	Attachments  map[DocumentType]DocumentAttachment `json:"attachments"`
	ExistingDocs []DocumentRef                       `json:"existingDocs"`

	Remarks string `json:"remarks"`
}

// HasDocument reports whether the draft satisfies the given document type via
// a new attachment or an existing reference.
func (d *LoanApplicationDraft) HasDocument(t DocumentType) bool {
	if _, ok := d.Attachments[t]; ok {
		return true
	}
	for _, ref := range d.ExistingDocs {
		if ref.Type == t {
			return true
		}
	}
	return false
}

// RecomputeDerivedFees refreshes the processing fee and rental from the
// current terms. Called on every terms mutation so the stored draft stays
// internally consistent.
func (d *LoanApplicationDraft) RecomputeDerivedFees() {
	d.ProcessingFee = ProcessingFeeForTenure(d.TenureWeeks)
	d.Rental = WeeklyRental(d.ApprovedAmount, d.InterestRate, d.TenureWeeks)
}

// NetPayout is the amount disbursed after fees and any reloan deduction.
func (d *LoanApplicationDraft) NetPayout() decimal.Decimal {
	return d.ApprovedAmount.
		Sub(d.ProcessingFee).
		Sub(d.DocumentationFee).
		Sub(d.ReloanDeductionAmount)
}

// SavedDraft is a named, resumable snapshot of an in-progress application,
// stored outside the canonical loan records. Not a system of record.
type SavedDraft struct {
	DraftID     string               `json:"draftID"` // locally generated (UUID)
	Name        string               `json:"name"`
	SavedAt     time.Time            `json:"savedAt"`
	CurrentStep WizardStep           `json:"currentStep"`
	Snapshot    LoanApplicationDraft `json:"snapshot"`
}
