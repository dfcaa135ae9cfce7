package repositories

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// ApprovalReader defines read operations for approval items
type ApprovalReader interface {
	// FindApprovalByLoanID retrieves the approval item for a loan.
	FindApprovalByLoanID(ctx context.Context, loanID string) (*domain.LoanApprovalItem, error)

	// ListPendingApprovals retrieves items awaiting either stage decision.
	ListPendingApprovals(ctx context.Context, limit, offset int) ([]domain.LoanApprovalItem, error)
}

// ApprovalWriter defines write operations for approval items
type ApprovalWriter interface {
	// SaveApproval persists a fresh approval item.
	SaveApproval(ctx context.Context, item domain.LoanApprovalItem) error

	// UpdateApproval replaces the item's stage states, guarded by the overall
	// status the caller last observed. Returns apperrors.ErrConflict when the
	// stored status no longer matches, i.e. another reviewer got there first.
	UpdateApproval(ctx context.Context, item domain.LoanApprovalItem, expectedStatus domain.ApprovalStatus) error
}

// ApprovalRepositoryFacade combines all approval-related repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}
