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

// documentService stores loan documents. Each upload is an independent unit of
// work so one failure never voids the others.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	now          func() time.Time
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade) *documentService {
	return &documentService{documentRepo: documentRepo, now: time.Now}
}

func (s *documentService) Upload(ctx context.Context, uploaderUserID, loanID, customerID string, docType domain.DocumentType, fileName, contentType string, content []byte) (*domain.LoanDocument, error) {
	if _, ok := domain.DocumentDisplayName[docType]; !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown document type '%s'", docType))
	}
	if len(content) == 0 {
		return nil, apperrors.NewValidationFailedError("document content is empty")
	}
	if len(content) > domain.MaxDocumentSizeBytes {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("%s exceeds the %d MB size limit", domain.DocumentDisplayName[docType], domain.MaxDocumentSizeBytes/(1024*1024)))
	}
	if !domain.AllowedDocumentContentTypes[contentType] {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("content type '%s' is not accepted; use JPEG, PNG or PDF", contentType))
	}

	doc := domain.LoanDocument{
		DocumentID:  uuid.NewString(),
		LoanID:      loanID,
		CustomerID:  customerID,
		Type:        docType,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
		AuditFields: domain.NewAuditFields(uploaderUserID, s.now()),
	}
	if err := s.documentRepo.SaveDocument(ctx, doc, content); err != nil {
		s.LogError(ctx, err, "failed to save document", "loanID", loanID, "type", docType)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	s.LogInfo(ctx, "document uploaded", "documentID", doc.DocumentID, "loanID", loanID, "type", docType, "sizeBytes", doc.SizeBytes)
	return &doc, nil
}

func (s *documentService) ListByLoan(ctx context.Context, loanID string) ([]domain.LoanDocument, error) {
	docs, err := s.documentRepo.ListDocumentsByLoan(ctx, loanID)
	if err != nil {
		s.LogError(ctx, err, "failed to list loan documents", "loanID", loanID)
		return nil, fmt.Errorf("failed to list loan documents: %w", err)
	}
	return docs, nil
}

func (s *documentService) ListProfileDocuments(ctx context.Context, customerID string) ([]domain.LoanDocument, error) {
	docs, err := s.documentRepo.ListProfileDocuments(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list profile documents", "customerID", customerID)
		return nil, fmt.Errorf("failed to list profile documents: %w", err)
	}
	return docs, nil
}

func (s *documentService) Download(ctx context.Context, documentID string) (*domain.LoanDocument, []byte, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
		}
		s.LogError(ctx, err, "failed to find document", "documentID", documentID)
		return nil, nil, fmt.Errorf("failed to find document: %w", err)
	}
	content, err := s.documentRepo.FetchDocumentContent(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch document content", "documentID", documentID)
		return nil, nil, fmt.Errorf("failed to fetch document content: %w", err)
	}
	return doc, content, nil
}
