package dto

import (
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// DocumentResponse defines metadata returned for a stored document.
type DocumentResponse struct {
	DocumentID  string `json:"documentID"`
	LoanID      string `json:"loanID,omitempty"`
	CustomerID  string `json:"customerID"`
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	Inherited   bool   `json:"inherited"`
}

// ToDocumentResponse converts a domain.LoanDocument to DTO.
func ToDocumentResponse(d *domain.LoanDocument) DocumentResponse {
	return DocumentResponse{
		DocumentID:  d.DocumentID,
		LoanID:      d.LoanID,
		CustomerID:  d.CustomerID,
		Type:        string(d.Type),
		DisplayName: domain.DocumentDisplayName[d.Type],
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		Inherited:   d.Inherited,
	}
}

// ListDocumentsResponse wraps document metadata for a loan or customer.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToListDocumentsResponse converts a slice of domain.LoanDocument to DTO.
func ToListDocumentsResponse(ds []domain.LoanDocument) ListDocumentsResponse {
	list := make([]DocumentResponse, len(ds))
	for i := range ds {
		list[i] = ToDocumentResponse(&ds[i])
	}
	return ListDocumentsResponse{Documents: list}
}
