package services

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// DraftSvcFacade manages named, resumable application drafts. Drafts are
// stored per user, outside the canonical loan records, and are saved only on
// an explicit user action. The store is not a system of record.
type DraftSvcFacade interface {
	// ListDrafts returns the user's saved drafts, newest first.
	ListDrafts(ctx context.Context, userID string) ([]domain.SavedDraft, error)

	// SaveDraft stores a snapshot. An empty draftID creates a new draft with
	// a generated id; a known draftID overwrites that draft. Saving the same
	// content twice under the same id leaves the store unchanged in effect.
	SaveDraft(ctx context.Context, userID, draftID, name string, snapshot domain.LoanApplicationDraft, step domain.WizardStep) (*domain.SavedDraft, error)

	// GetDraft loads one saved draft with its wizard position.
	GetDraft(ctx context.Context, userID, draftID string) (*domain.SavedDraft, error)

	// DeleteDraft removes a draft. Immediate and irreversible; callers must
	// confirm with the user first.
	DeleteDraft(ctx context.Context, userID, draftID string) error
}
