package dto

import (
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// StartWizardRequest opens a new wizard session.
type StartWizardRequest struct {
	// FromDraftID resumes a saved draft.
	FromDraftID string `json:"fromDraftID"`
	// EditLoanID opens a sent-back loan for correction (edit mode).
	EditLoanID string `json:"editLoanID"`
}

// GoToStepRequest jumps to a wizard step.
type GoToStepRequest struct {
	Step int `json:"step" binding:"required,min=1,max=4"`
}

// WizardStateResponse is the full state of a wizard session after any
// operation. StepError is populated when the last operation was blocked by a
// validation gate; the session stays on CurrentStep in that case.
type WizardStateResponse struct {
	SessionID    string                      `json:"sessionID"`
	CurrentStep  int                         `json:"currentStep"`
	StepName     string                      `json:"stepName"`
	Draft        domain.LoanApplicationDraft `json:"draft"`
	Dirty        bool                        `json:"dirty"`
	IsProcessing bool                        `json:"isProcessing"`
	EditMode     bool                        `json:"editMode"`
	EditLoanID   string                      `json:"editLoanID,omitempty"`
	FromDraftID  string                      `json:"fromDraftID,omitempty"`

	// Locked marks the terms fields read-only because the selected product is
	// blocked by reloan ineligibility.
	Locked bool `json:"locked"`

	// Reloan carries the current reloan check for the selected product, when
	// the customer already holds one.
	Reloan *domain.ReloanEligibility `json:"reloan,omitempty"`

	StepError *domain.StepError `json:"stepError,omitempty"`
}

// DocumentUploadError reports one failed document upload during submit, so
// the caller knows exactly which uploads to retry.
type DocumentUploadError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SubmitResultResponse reports the outcome of a wizard submit.
type SubmitResultResponse struct {
	// LoanID of the created or updated record; empty when validation blocked
	// the submit.
	LoanID  string `json:"loanID,omitempty"`
	Created bool   `json:"created"`

	// StepError is set when re-validation halted the submit; the wizard moves
	// to the failing step.
	StepError *domain.StepError `json:"stepError,omitempty"`

	// DocumentErrors lists per-document upload failures. The loan itself was
	// persisted; only these uploads need retrying.
	DocumentErrors []DocumentUploadError `json:"documentErrors,omitempty"`

	// PromptDeleteDraft is true when the session was started from a saved
	// draft that can now be offered for deletion.
	PromptDeleteDraft bool   `json:"promptDeleteDraft"`
	DraftID           string `json:"draftID,omitempty"`
}
