package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// approvalService runs the two-tier approval workflow. Every decision is
// written with a status predicate so two reviewers racing on the same pending
// stage resolve to exactly one winner; the loser gets a stale-state conflict
// and must reload.
type approvalService struct {
	BaseService
	approvalRepo portsrepo.ApprovalRepositoryFacade
	loanRepo     portsrepo.LoanRepositoryFacade
	now          func() time.Time
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

func NewApprovalService(
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	loanRepo portsrepo.LoanRepositoryFacade,
	capabilities portssvc.CapabilityChecker,
) *approvalService {
	return &approvalService{
		BaseService:  BaseService{Capabilities: capabilities},
		approvalRepo: approvalRepo,
		loanRepo:     loanRepo,
		now:          time.Now,
	}
}

// SubmitForApproval opens the approval pass for a submitted loan. A first
// submission creates a fresh item; a resubmission resets the existing item
// for a new pass through both stages.
func (s *approvalService) SubmitForApproval(ctx context.Context, loan *domain.Loan, submittedAt time.Time) (*domain.LoanApprovalItem, error) {
	existing, err := s.approvalRepo.FindApprovalByLoanID(ctx, loan.LoanID)
	if err != nil && !apperrors.IsNotFound(err) {
		s.LogError(ctx, err, "failed to look up approval item", "loanID", loan.LoanID)
		return nil, fmt.Errorf("failed to look up approval item: %w", err)
	}

	if existing != nil {
		priorStatus := existing.Status
		existing.ResetForResubmission(loan.ApprovedAmount, submittedAt)
		existing.Touch(loan.LastUpdatedBy, submittedAt)
		if err := s.approvalRepo.UpdateApproval(ctx, *existing, priorStatus); err != nil {
			if apperrors.IsConflict(err) {
				return nil, apperrors.NewStaleStateError("the approval item changed while resubmitting; reload and try again")
			}
			s.LogError(ctx, err, "failed to reset approval item", "loanID", loan.LoanID)
			return nil, fmt.Errorf("failed to reset approval item: %w", err)
		}
		s.LogInfo(ctx, "approval pass reopened", "loanID", loan.LoanID, "pass", existing.Pass)
		return existing, nil
	}

	item := domain.NewApprovalItem(uuid.NewString(), loan.LoanID, loan.ApprovedAmount, submittedAt)
	item.AuditFields = domain.NewAuditFields(loan.CreatedBy, submittedAt)
	if err := s.approvalRepo.SaveApproval(ctx, item); err != nil {
		s.LogError(ctx, err, "failed to save approval item", "loanID", loan.LoanID)
		return nil, fmt.Errorf("failed to save approval item: %w", err)
	}
	s.LogInfo(ctx, "approval pass opened", "loanID", loan.LoanID, "secondStage", item.Second != nil)
	return &item, nil
}

func (s *approvalService) GetByLoanID(ctx context.Context, loanID string) (*domain.LoanApprovalItem, error) {
	item, err := s.approvalRepo.FindApprovalByLoanID(ctx, loanID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("no approval item for loan %s", loanID))
		}
		s.LogError(ctx, err, "failed to find approval item", "loanID", loanID)
		return nil, fmt.Errorf("failed to find approval item: %w", err)
	}
	return item, nil
}

func (s *approvalService) ListPending(ctx context.Context, limit, offset int) ([]domain.LoanApprovalItem, error) {
	if limit <= 0 {
		limit = 20
	}
	items, err := s.approvalRepo.ListPendingApprovals(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list pending approvals")
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return items, nil
}

func (s *approvalService) DecideFirst(ctx context.Context, actorID, loanID string, action domain.DecisionAction, reason string) (*domain.LoanApprovalItem, error) {
	return s.decide(ctx, actorID, loanID, action, reason, domain.CapabilityFirstApproval, func(item *domain.LoanApprovalItem, now time.Time) error {
		return item.ApplyFirst(action, actorID, reason, now)
	})
}

func (s *approvalService) DecideSecond(ctx context.Context, actorID, loanID string, action domain.DecisionAction, reason string) (*domain.LoanApprovalItem, error) {
	return s.decide(ctx, actorID, loanID, action, reason, domain.CapabilityFinalApproval, func(item *domain.LoanApprovalItem, now time.Time) error {
		return item.ApplySecond(action, actorID, reason, now)
	})
}

func (s *approvalService) decide(ctx context.Context, actorID, loanID string, action domain.DecisionAction, reason, capability string, apply func(*domain.LoanApprovalItem, time.Time) error) (*domain.LoanApprovalItem, error) {
	allowed, err := s.RequireCapability(ctx, actorID, capability)
	if err != nil {
		return nil, fmt.Errorf("failed to check approval capability: %w", err)
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("you are not allowed to decide this approval stage")
	}

	item, err := s.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	priorStatus := item.Status
	now := s.now()
	if err := apply(item, now); err != nil {
		switch {
		case errors.Is(err, domain.ErrStageDecided):
			return nil, apperrors.NewStaleStateError("this stage has already been decided")
		case errors.Is(err, domain.ErrStageNotApplicable),
			errors.Is(err, domain.ErrFirstStagePending),
			errors.Is(err, domain.ErrReasonRequired),
			errors.Is(err, domain.ErrUnknownAction):
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
		return nil, err
	}
	item.Touch(actorID, now)

	if err := s.approvalRepo.UpdateApproval(ctx, *item, priorStatus); err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.NewStaleStateError("another reviewer decided this application first; reload to see the outcome")
		}
		s.LogError(ctx, err, "failed to persist approval decision", "loanID", loanID)
		return nil, fmt.Errorf("failed to persist approval decision: %w", err)
	}

	// Keep the canonical loan in step with the approval outcome.
	switch item.Status {
	case domain.StatusApproved:
		err = s.loanRepo.UpdateLoanStatus(ctx, loanID, domain.LoanApproved, actorID)
	case domain.StatusSentBack:
		err = s.loanRepo.UpdateLoanStatus(ctx, loanID, domain.LoanSentBack, actorID)
	}
	if err != nil {
		s.LogError(ctx, err, "failed to sync loan status with approval outcome", "loanID", loanID, "approvalStatus", item.Status)
		return nil, fmt.Errorf("failed to sync loan status: %w", err)
	}

	s.LogInfo(ctx, "approval decision recorded", "loanID", loanID, "action", action, "status", item.Status, "actorID", actorID)
	return item, nil
}
