package repositories

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// DraftRepositoryFacade is the keyed draft store. Drafts live outside the
// canonical records (Redis), namespaced per user, and are lossy by contract:
// a cleared store loses unsaved drafts. Saves happen only on an explicit user
// action, never automatically.
type DraftRepositoryFacade interface {
	// ListDrafts retrieves all saved drafts of a user, newest first.
	ListDrafts(ctx context.Context, userID string) ([]domain.SavedDraft, error)

	// SaveDraft stores or overwrites a draft snapshot for a user.
	SaveDraft(ctx context.Context, userID string, draft domain.SavedDraft) error

	// FindDraftByID retrieves one saved draft of a user.
	FindDraftByID(ctx context.Context, userID, draftID string) (*domain.SavedDraft, error)

	// DeleteDraft removes a saved draft. Immediate and irreversible.
	DeleteDraft(ctx context.Context, userID, draftID string) error
}
