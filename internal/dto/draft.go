package dto

import (
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DraftPayload is the wire shape of the editable draft fields. Derived fields
// (guarantors, witness 1, rental, processing fee, reloan deduction) are not
// settable here; the wizard computes them. Keeping the wire shape separate
// from domain.LoanApplicationDraft means backend payload changes cannot
// silently corrupt draft invariants.
type DraftPayload struct {
	CenterID   string `json:"centerID"`
	GroupID    string `json:"groupID"`
	CustomerID string `json:"customerID"`
	NIC        string `json:"nic"`

	ProductID       string          `json:"productID"`
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	ApprovedAmount  decimal.Decimal `json:"approvedAmount"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	TenureWeeks     int             `json:"tenureWeeks"`

	GuardianName         string `json:"guardianName"`
	GuardianNIC          string `json:"guardianNIC"`
	GuardianRelationship string `json:"guardianRelationship"`
	GuardianAddress      string `json:"guardianAddress"`
	GuardianPhone        string `json:"guardianPhone"`

	Witness2 string `json:"witness2"`

	DocumentationFee decimal.Decimal `json:"documentationFee"`

	BankName      string `json:"bankName"`
	BankBranch    string `json:"bankBranch"`
	AccountNumber string `json:"accountNumber"`

	ExistingDocs []DocumentRefPayload `json:"existingDocs"`

	Remarks string `json:"remarks"`
}

// DocumentRefPayload references an already persisted document.
type DocumentRefPayload struct {
	DocumentID string `json:"documentID"`
	Type       string `json:"type"`
	Inherited  bool   `json:"inherited"`
}

// ApplyToDraft writes the editable payload fields onto a fresh copy of the
// given draft, leaving derived fields for the wizard to recompute. The whole
// draft object is replaced atomically by the caller.
func (p DraftPayload) ApplyToDraft(base domain.LoanApplicationDraft) domain.LoanApplicationDraft {
	d := base
	d.CenterID = p.CenterID
	d.GroupID = p.GroupID
	d.CustomerID = p.CustomerID
	d.NIC = p.NIC

	d.ProductID = p.ProductID
	d.RequestedAmount = p.RequestedAmount
	d.ApprovedAmount = p.ApprovedAmount
	d.InterestRate = p.InterestRate
	d.TenureWeeks = p.TenureWeeks

	d.GuardianName = p.GuardianName
	d.GuardianNIC = p.GuardianNIC
	d.GuardianRelationship = p.GuardianRelationship
	d.GuardianAddress = p.GuardianAddress
	d.GuardianPhone = p.GuardianPhone

	d.Witness2 = p.Witness2
	d.DocumentationFee = p.DocumentationFee

	d.BankName = p.BankName
	d.BankBranch = p.BankBranch
	d.AccountNumber = p.AccountNumber

	d.ExistingDocs = make([]domain.DocumentRef, len(p.ExistingDocs))
	for i, ref := range p.ExistingDocs {
		d.ExistingDocs[i] = domain.DocumentRef{
			DocumentID: ref.DocumentID,
			Type:       domain.DocumentType(ref.Type),
			Inherited:  ref.Inherited,
		}
	}

	d.Remarks = p.Remarks
	return d
}

// SaveDraftRequest asks the draft store to snapshot the current session.
type SaveDraftRequest struct {
	Name string `json:"name"`
}

// DraftSummaryResponse lists a saved draft without its full snapshot.
type DraftSummaryResponse struct {
	DraftID     string    `json:"draftID"`
	Name        string    `json:"name"`
	SavedAt     time.Time `json:"savedAt"`
	CurrentStep int       `json:"currentStep"`
}

// SavedDraftResponse returns a saved draft with its snapshot.
type SavedDraftResponse struct {
	DraftID     string                      `json:"draftID"`
	Name        string                      `json:"name"`
	SavedAt     time.Time                   `json:"savedAt"`
	CurrentStep int                         `json:"currentStep"`
	Snapshot    domain.LoanApplicationDraft `json:"snapshot"`
}

// ToDraftSummaryResponse converts a domain.SavedDraft to its list projection.
func ToDraftSummaryResponse(d *domain.SavedDraft) DraftSummaryResponse {
	return DraftSummaryResponse{
		DraftID:     d.DraftID,
		Name:        d.Name,
		SavedAt:     d.SavedAt,
		CurrentStep: int(d.CurrentStep),
	}
}

// ToSavedDraftResponse converts a domain.SavedDraft to DTO.
func ToSavedDraftResponse(d *domain.SavedDraft) SavedDraftResponse {
	return SavedDraftResponse{
		DraftID:     d.DraftID,
		Name:        d.Name,
		SavedAt:     d.SavedAt,
		CurrentStep: int(d.CurrentStep),
		Snapshot:    d.Snapshot,
	}
}

// ListDraftsResponse wraps a user's saved drafts.
type ListDraftsResponse struct {
	Drafts []DraftSummaryResponse `json:"drafts"`
}

// ToListDraftsResponse converts saved drafts to their list projections.
func ToListDraftsResponse(ds []domain.SavedDraft) ListDraftsResponse {
	list := make([]DraftSummaryResponse, len(ds))
	for i := range ds {
		list[i] = ToDraftSummaryResponse(&ds[i])
	}
	return ListDraftsResponse{Drafts: list}
}
