package services

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
)

// WizardSvcFacade drives the four-stage application wizard. Sessions are
// single-writer and owned by the creating user; every mutation replaces the
// session's draft atomically. Validation failures come back as data on the
// returned state, never as an error return.
type WizardSvcFacade interface {
	// StartSession opens a wizard session: blank, resumed from a saved draft,
	// or in edit mode for a sent-back loan.
	StartSession(ctx context.Context, userID string, req dto.StartWizardRequest) (*dto.WizardStateResponse, error)

	// GetSession returns the current state of a session.
	GetSession(ctx context.Context, userID, sessionID string) (*dto.WizardStateResponse, error)

	// UpdateDraft replaces the session draft with the submitted payload,
	// recomputes derived fields and marks the session dirty.
	UpdateDraft(ctx context.Context, userID, sessionID string, req dto.DraftPayload) (*dto.WizardStateResponse, error)

	// AttachDocument stages a document binary on the session for upload at
	// submit time. Enforces the size cap and allowed content types.
	AttachDocument(ctx context.Context, userID, sessionID string, docType domain.DocumentType, fileName, contentType string, content []byte) (*dto.WizardStateResponse, error)

	// Next validates the current stage and advances on success.
	Next(ctx context.Context, userID, sessionID string) (*dto.WizardStateResponse, error)

	// Previous moves back one stage unconditionally.
	Previous(ctx context.Context, userID, sessionID string) (*dto.WizardStateResponse, error)

	// GoTo jumps to a stage. Backward jumps are unconditional; forward jumps
	// re-validate every intervening stage and halt at the first failure.
	GoTo(ctx context.Context, userID, sessionID string, step domain.WizardStep) (*dto.WizardStateResponse, error)

	// SaveAsDraft snapshots the session into the draft store and clears the
	// dirty flag. Explicit user action only.
	SaveAsDraft(ctx context.Context, userID, sessionID, name string) (*domain.SavedDraft, error)

	// Submit re-validates all gated stages, creates or updates the canonical
	// loan, uploads staged documents individually and reports per-document
	// failures so only those uploads need retrying.
	Submit(ctx context.Context, userID, sessionID string) (*dto.SubmitResultResponse, error)

	// RetryDocumentUploads retries only the staged documents that failed in a
	// previous submit, without recreating the loan.
	RetryDocumentUploads(ctx context.Context, userID, sessionID string) (*dto.SubmitResultResponse, error)

	// CloseSession discards a session. Callers must honour the dirty flag and
	// confirm with the user before discarding unsaved work.
	CloseSession(ctx context.Context, userID, sessionID string) error
}
