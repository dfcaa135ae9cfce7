package repositories

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// DocumentReader defines read operations for loan documents
type DocumentReader interface {
	// FindDocumentByID retrieves document metadata by ID.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.LoanDocument, error)

	// FetchDocumentContent retrieves the stored binary for a document.
	FetchDocumentContent(ctx context.Context, documentID string) ([]byte, error)

	// ListDocumentsByLoan retrieves all documents bound to a loan.
	ListDocumentsByLoan(ctx context.Context, loanID string) ([]domain.LoanDocument, error)

	// ListProfileDocuments retrieves the customer-profile documents that can
	// be inherited into a new application.
	ListProfileDocuments(ctx context.Context, customerID string) ([]domain.LoanDocument, error)
}

// DocumentWriter defines write operations for loan documents
type DocumentWriter interface {
	// SaveDocument persists document metadata together with its binary.
	SaveDocument(ctx context.Context, doc domain.LoanDocument, content []byte) error

	// DeleteDocument removes a document and its binary.
	DeleteDocument(ctx context.Context, documentID string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
