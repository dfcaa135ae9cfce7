package services

import (
	"context"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// ApprovalSvcFacade runs the two-tier approval lifecycle. Stage decisions are
// capability-gated and terminal; a sent-back application re-enters the wizard
// in edit mode and resubmission starts a fresh pass through both stages.
type ApprovalSvcFacade interface {
	// SubmitForApproval opens the approval pass for a newly submitted loan,
	// or resets the existing item for a resubmitted one.
	SubmitForApproval(ctx context.Context, loan *domain.Loan, submittedAt time.Time) (*domain.LoanApprovalItem, error)

	// GetByLoanID returns the approval projection for a loan.
	GetByLoanID(ctx context.Context, loanID string) (*domain.LoanApprovalItem, error)

	// ListPending returns items awaiting a stage decision.
	ListPending(ctx context.Context, limit, offset int) ([]domain.LoanApprovalItem, error)

	// DecideFirst applies a first-stage decision. Requires the manager-tier,
	// non-final capability.
	DecideFirst(ctx context.Context, actorID, loanID string, action domain.DecisionAction, reason string) (*domain.LoanApprovalItem, error)

	// DecideSecond applies a second-stage decision. Requires the
	// final-approval capability.
	DecideSecond(ctx context.Context, actorID, loanID string, action domain.DecisionAction, reason string) (*domain.LoanApprovalItem, error)
}
