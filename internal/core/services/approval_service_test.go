package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/araliya-mfi/loan_origination_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock ApprovalRepository (based on ApprovalRepositoryFacade usage) ---
type MockApprovalRepository struct {
	FindApprovalByLoanIDFn func(ctx context.Context, loanID string) (*domain.LoanApprovalItem, error)
	ListPendingApprovalsFn func(ctx context.Context, limit, offset int) ([]domain.LoanApprovalItem, error)
	SaveApprovalFn         func(ctx context.Context, item domain.LoanApprovalItem) error
	UpdateApprovalFn       func(ctx context.Context, item domain.LoanApprovalItem, expectedStatus domain.ApprovalStatus) error
}

func (m *MockApprovalRepository) FindApprovalByLoanID(ctx context.Context, loanID string) (*domain.LoanApprovalItem, error) {
	return m.FindApprovalByLoanIDFn(ctx, loanID)
}

func (m *MockApprovalRepository) ListPendingApprovals(ctx context.Context, limit, offset int) ([]domain.LoanApprovalItem, error) {
	return m.ListPendingApprovalsFn(ctx, limit, offset)
}

func (m *MockApprovalRepository) SaveApproval(ctx context.Context, item domain.LoanApprovalItem) error {
	return m.SaveApprovalFn(ctx, item)
}

func (m *MockApprovalRepository) UpdateApproval(ctx context.Context, item domain.LoanApprovalItem, expectedStatus domain.ApprovalStatus) error {
	return m.UpdateApprovalFn(ctx, item, expectedStatus)
}

// --- Mock LoanRepository (write side used by the approval flow) ---
type MockLoanRepository struct {
	FindLoanByIDFn              func(ctx context.Context, loanID string) (*domain.Loan, error)
	ListActiveLoansByCustomerFn func(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListLoansByStatusFn         func(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]domain.Loan, error)
	SaveLoanFn                  func(ctx context.Context, loan domain.Loan) error
	UpdateLoanFn                func(ctx context.Context, loan domain.Loan) error
	UpdateLoanStatusFn          func(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string) error
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return m.FindLoanByIDFn(ctx, loanID)
}

func (m *MockLoanRepository) ListActiveLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	return m.ListActiveLoansByCustomerFn(ctx, customerID)
}

func (m *MockLoanRepository) ListLoansByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]domain.Loan, error) {
	return m.ListLoansByStatusFn(ctx, status, limit, offset)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	return m.SaveLoanFn(ctx, loan)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	return m.UpdateLoanFn(ctx, loan)
}

func (m *MockLoanRepository) UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string) error {
	if m.UpdateLoanStatusFn != nil {
		return m.UpdateLoanStatusFn(ctx, loanID, status, updatedBy)
	}
	return nil
}

// --- Mock CapabilityChecker ---
type MockCapabilityChecker struct {
	Grants map[string][]string // userID -> capabilities
}

func (m *MockCapabilityChecker) HasPermission(_ context.Context, userID, capability string) (bool, error) {
	for _, c := range m.Grants[userID] {
		if c == capability {
			return true, nil
		}
	}
	return false, nil
}

func managerAndAdmin() *MockCapabilityChecker {
	return &MockCapabilityChecker{Grants: map[string][]string{
		"mgr-1": {domain.CapabilityCreateLoan, domain.CapabilityFirstApproval},
		"adm-1": {domain.CapabilityCreateLoan, domain.CapabilityFirstApproval, domain.CapabilityFinalApproval},
		"ofc-1": {domain.CapabilityCreateLoan},
	}}
}

func pendingItem(loanID string, amount int64) *domain.LoanApprovalItem {
	item := domain.NewApprovalItem("ap-1", loanID, decimal.NewFromInt(amount), time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return &item
}

func TestApprovalService_DecideFirst(t *testing.T) {
	ctx := context.Background()

	t.Run("manager approves a small loan and the loan record follows", func(t *testing.T) {
		var savedItem *domain.LoanApprovalItem
		var savedPredicate domain.ApprovalStatus
		var loanStatus domain.LoanStatus

		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return pendingItem(loanID, 50000), nil
			},
			UpdateApprovalFn: func(_ context.Context, item domain.LoanApprovalItem, expected domain.ApprovalStatus) error {
				savedItem, savedPredicate = &item, expected
				return nil
			},
		}
		loanRepo := &MockLoanRepository{
			UpdateLoanStatusFn: func(_ context.Context, _ string, status domain.LoanStatus, _ string) error {
				loanStatus = status
				return nil
			},
		}

		svc := services.NewApprovalService(approvalRepo, loanRepo, managerAndAdmin())
		item, err := svc.DecideFirst(ctx, "mgr-1", "loan-1", domain.ActionApprove, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, item.Status)
		assert.Equal(t, domain.StatusPendingFirst, savedPredicate)
		assert.Equal(t, domain.StatusApproved, savedItem.Status)
		assert.Equal(t, domain.LoanApproved, loanStatus)
	})

	t.Run("field officer is refused", func(t *testing.T) {
		svc := services.NewApprovalService(&MockApprovalRepository{}, &MockLoanRepository{}, managerAndAdmin())
		_, err := svc.DecideFirst(ctx, "ofc-1", "loan-1", domain.ActionApprove, "")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("losing the race surfaces a stale-state conflict", func(t *testing.T) {
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return pendingItem(loanID, 50000), nil
			},
			UpdateApprovalFn: func(_ context.Context, _ domain.LoanApprovalItem, _ domain.ApprovalStatus) error {
				return apperrors.NewStaleStateError("status predicate did not match")
			},
		}
		svc := services.NewApprovalService(approvalRepo, &MockLoanRepository{}, managerAndAdmin())
		_, err := svc.DecideFirst(ctx, "mgr-1", "loan-1", domain.ActionApprove, "")
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("sendback without a reason is a validation failure", func(t *testing.T) {
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return pendingItem(loanID, 50000), nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, &MockLoanRepository{}, managerAndAdmin())
		_, err := svc.DecideFirst(ctx, "mgr-1", "loan-1", domain.ActionSendBack, "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("sendback moves the loan to SENT_BACK", func(t *testing.T) {
		var loanStatus domain.LoanStatus
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return pendingItem(loanID, 50000), nil
			},
			UpdateApprovalFn: func(_ context.Context, _ domain.LoanApprovalItem, _ domain.ApprovalStatus) error {
				return nil
			},
		}
		loanRepo := &MockLoanRepository{
			UpdateLoanStatusFn: func(_ context.Context, _ string, status domain.LoanStatus, _ string) error {
				loanStatus = status
				return nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, loanRepo, managerAndAdmin())
		item, err := svc.DecideFirst(ctx, "mgr-1", "loan-1", domain.ActionSendBack, "NIC copies illegible")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSentBack, item.Status)
		assert.Equal(t, domain.LoanSentBack, loanStatus)
		assert.Equal(t, "NIC copies illegible", item.RejectionReason())
	})
}

func TestApprovalService_DecideSecond(t *testing.T) {
	ctx := context.Background()

	firstApproved := func(loanID string) *domain.LoanApprovalItem {
		item := pendingItem(loanID, 250000)
		_ = item.ApplyFirst(domain.ActionApprove, "mgr-1", "", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
		return item
	}

	t.Run("manager lacks the final capability", func(t *testing.T) {
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return firstApproved(loanID), nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, &MockLoanRepository{}, managerAndAdmin())
		_, err := svc.DecideSecond(ctx, "mgr-1", "loan-1", domain.ActionApprove, "")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("administrator completes the final approval", func(t *testing.T) {
		var loanStatus domain.LoanStatus
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return firstApproved(loanID), nil
			},
			UpdateApprovalFn: func(_ context.Context, _ domain.LoanApprovalItem, _ domain.ApprovalStatus) error {
				return nil
			},
		}
		loanRepo := &MockLoanRepository{
			UpdateLoanStatusFn: func(_ context.Context, _ string, status domain.LoanStatus, _ string) error {
				loanStatus = status
				return nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, loanRepo, managerAndAdmin())
		item, err := svc.DecideSecond(ctx, "adm-1", "loan-1", domain.ActionApprove, "")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, item.Status)
		assert.Equal(t, domain.LoanApproved, loanStatus)
	})

	t.Run("second stage on a small loan is not applicable", func(t *testing.T) {
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, loanID string) (*domain.LoanApprovalItem, error) {
				return pendingItem(loanID, 50000), nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, &MockLoanRepository{}, managerAndAdmin())
		_, err := svc.DecideSecond(ctx, "adm-1", "loan-1", domain.ActionApprove, "")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestApprovalService_SubmitForApproval(t *testing.T) {
	ctx := context.Background()
	submittedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("first submission opens a fresh item", func(t *testing.T) {
		var saved *domain.LoanApprovalItem
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, _ string) (*domain.LoanApprovalItem, error) {
				return nil, apperrors.NewNotFoundError("no approval item")
			},
			SaveApprovalFn: func(_ context.Context, item domain.LoanApprovalItem) error {
				saved = &item
				return nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, &MockLoanRepository{}, managerAndAdmin())

		loan := &domain.Loan{LoanID: "loan-1", ApprovedAmount: decimal.NewFromInt(250000)}
		item, err := svc.SubmitForApproval(ctx, loan, submittedAt)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Pass)
		require.NotNil(t, saved)
		assert.NotNil(t, saved.Second)
	})

	t.Run("resubmission resets the existing item", func(t *testing.T) {
		sentBack := pendingItem("loan-1", 250000)
		_ = sentBack.ApplyFirst(domain.ActionSendBack, "mgr-1", "fix witness", submittedAt)

		var updated *domain.LoanApprovalItem
		approvalRepo := &MockApprovalRepository{
			FindApprovalByLoanIDFn: func(_ context.Context, _ string) (*domain.LoanApprovalItem, error) {
				return sentBack, nil
			},
			UpdateApprovalFn: func(_ context.Context, item domain.LoanApprovalItem, expected domain.ApprovalStatus) error {
				assert.Equal(t, domain.StatusSentBack, expected)
				updated = &item
				return nil
			},
		}
		svc := services.NewApprovalService(approvalRepo, &MockLoanRepository{}, managerAndAdmin())

		loan := &domain.Loan{LoanID: "loan-1", ApprovedAmount: decimal.NewFromInt(180000)}
		item, err := svc.SubmitForApproval(ctx, loan, submittedAt.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, item.Pass)
		assert.Equal(t, domain.StatusPendingFirst, item.Status)
		require.NotNil(t, updated)
		assert.Nil(t, updated.Second, "amount dropped below the threshold")
	})
}
