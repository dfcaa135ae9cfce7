package repositories

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// LoanReader defines read operations for canonical loan records
type LoanReader interface {
	// FindLoanByID retrieves a specific loan by its ID.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListActiveLoansByCustomer retrieves the customer's loans that count
	// toward the duplicate-product block.
	ListActiveLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)

	// ListLoansByStatus retrieves a paginated list of loans in a given status.
	ListLoansByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]domain.Loan, error)
}

// LoanWriter defines write operations for canonical loan records
type LoanWriter interface {
	// SaveLoan persists a newly created loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoan replaces an existing loan's application fields.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoanStatus moves a loan between lifecycle statuses.
	UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
