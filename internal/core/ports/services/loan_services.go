package services

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
)

// LoanSvcFacade owns the canonical loan records created on wizard submit.
type LoanSvcFacade interface {
	// CreateLoan persists a new application record from the assembled payload.
	CreateLoan(ctx context.Context, creatorUserID string, payload dto.CreateLoanPayload) (*domain.Loan, error)

	// UpdateLoan replaces the application fields of an editable (sent-back)
	// loan, identified by payload.EditID.
	UpdateLoan(ctx context.Context, updaterUserID string, payload dto.CreateLoanPayload) (*domain.Loan, error)

	GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	ListActiveLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	ListLoansByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]domain.Loan, error)
}

// DocumentSvcFacade owns per-document uploads bound to a loan.
type DocumentSvcFacade interface {
	// Upload stores one document binary for a loan. Enforces the size cap and
	// allowed content types before anything is written.
	Upload(ctx context.Context, uploaderUserID, loanID, customerID string, docType domain.DocumentType, fileName, contentType string, content []byte) (*domain.LoanDocument, error)

	ListByLoan(ctx context.Context, loanID string) ([]domain.LoanDocument, error)
	// ListProfileDocuments returns customer-profile documents a new
	// application can inherit.
	ListProfileDocuments(ctx context.Context, customerID string) ([]domain.LoanDocument, error)
	Download(ctx context.Context, documentID string) (*domain.LoanDocument, []byte, error)
}
