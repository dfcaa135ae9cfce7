package services

import (
	"context"
	"fmt"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// draftService manages the named, resumable drafts. Everything is keyed per
// user; one user can never see or touch another user's drafts.
type draftService struct {
	BaseService
	draftRepo portsrepo.DraftRepositoryFacade
	now       func() time.Time
}

var _ portssvc.DraftSvcFacade = (*draftService)(nil)

func NewDraftService(draftRepo portsrepo.DraftRepositoryFacade) *draftService {
	return &draftService{draftRepo: draftRepo, now: time.Now}
}

func (s *draftService) ListDrafts(ctx context.Context, userID string) ([]domain.SavedDraft, error) {
	drafts, err := s.draftRepo.ListDrafts(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list drafts", "userID", userID)
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

func (s *draftService) SaveDraft(ctx context.Context, userID, draftID, name string, snapshot domain.LoanApplicationDraft, step domain.WizardStep) (*domain.SavedDraft, error) {
	if name == "" {
		name = fmt.Sprintf("Draft %s", s.now().Format("2006-01-02 15:04"))
	}
	if draftID == "" {
		draftID = uuid.NewString()
	} else {
		// Overwrites must target a draft the user actually owns.
		if _, err := s.draftRepo.FindDraftByID(ctx, userID, draftID); err != nil {
			if apperrors.IsNotFound(err) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("draft %s not found", draftID))
			}
			s.LogError(ctx, err, "failed to load draft for overwrite", "draftID", draftID)
			return nil, fmt.Errorf("failed to load draft for overwrite: %w", err)
		}
	}

	draft := domain.SavedDraft{
		DraftID:     draftID,
		Name:        name,
		SavedAt:     s.now(),
		CurrentStep: step,
		Snapshot:    snapshot,
	}
	if err := s.draftRepo.SaveDraft(ctx, userID, draft); err != nil {
		s.LogError(ctx, err, "failed to save draft", "userID", userID, "draftID", draftID)
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	s.LogInfo(ctx, "draft saved", "userID", userID, "draftID", draftID, "step", int(step))
	return &draft, nil
}

func (s *draftService) GetDraft(ctx context.Context, userID, draftID string) (*domain.SavedDraft, error) {
	draft, err := s.draftRepo.FindDraftByID(ctx, userID, draftID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("draft %s not found", draftID))
		}
		s.LogError(ctx, err, "failed to load draft", "draftID", draftID)
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return draft, nil
}

func (s *draftService) DeleteDraft(ctx context.Context, userID, draftID string) error {
	if err := s.draftRepo.DeleteDraft(ctx, userID, draftID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("draft %s not found", draftID))
		}
		s.LogError(ctx, err, "failed to delete draft", "draftID", draftID)
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	s.LogInfo(ctx, "draft deleted", "userID", userID, "draftID", draftID)
	return nil
}
