package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	"github.com/araliya-mfi/loan_origination_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)
var _ portsrepo.TransactionManager = (*PgxDocumentRepository)(nil)

func toModelDocument(d domain.LoanDocument) models.LoanDocument {
	return models.LoanDocument{
		DocumentID:  d.DocumentID,
		LoanID:      d.LoanID,
		CustomerID:  d.CustomerID,
		DocType:     string(d.Type),
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		Inherited:   d.Inherited,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainDocument(m models.LoanDocument) domain.LoanDocument {
	return domain.LoanDocument{
		DocumentID:  m.DocumentID,
		LoanID:      m.LoanID,
		CustomerID:  m.CustomerID,
		Type:        domain.DocumentType(m.DocType),
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		Inherited:   m.Inherited,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const documentColumns = `document_id, loan_id, customer_id, doc_type, file_name,
	content_type, size_bytes, inherited, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.LoanDocument, error) {
	var m models.LoanDocument
	err := row.Scan(
		&m.DocumentID, &m.LoanID, &m.CustomerID, &m.DocType, &m.FileName,
		&m.ContentType, &m.SizeBytes, &m.Inherited,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.LoanDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM loan_documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	d := toDomainDocument(m)
	return &d, nil
}

func (r *PgxDocumentRepository) FetchDocumentContent(ctx context.Context, documentID string) ([]byte, error) {
	query := `SELECT content FROM loan_document_contents WHERE document_id = $1;`
	var content []byte
	if err := r.Pool.QueryRow(ctx, query, documentID).Scan(&content); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch content for document %s: %w", documentID, err)
	}
	return content, nil
}

func (r *PgxDocumentRepository) ListDocumentsByLoan(ctx context.Context, loanID string) ([]domain.LoanDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM loan_documents WHERE loan_id = $1 ORDER BY doc_type;`
	return r.queryDocuments(ctx, query, loanID)
}

func (r *PgxDocumentRepository) ListProfileDocuments(ctx context.Context, customerID string) ([]domain.LoanDocument, error) {
	// The latest upload of each type wins; older rows stay for audit.
	query := `
        SELECT DISTINCT ON (doc_type) ` + documentColumns + `
        FROM loan_documents
        WHERE customer_id = $1
        ORDER BY doc_type, created_at DESC;
    `
	return r.queryDocuments(ctx, query, customerID)
}

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, arg any) ([]domain.LoanDocument, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := []domain.LoanDocument{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, toDomainDocument(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", rows.Err())
	}
	return docs, nil
}

// SaveDocument writes metadata and binary in one transaction so a listing can
// never see a document whose content is missing.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.LoanDocument, content []byte) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := toModelDocument(doc)
	metaQuery := `
        INSERT INTO loan_documents (` + documentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, metaQuery,
		m.DocumentID, m.LoanID, m.CustomerID, m.DocType, m.FileName,
		m.ContentType, m.SizeBytes, m.Inherited,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("document already exists: %w", apperrors.ErrDuplicate)
			case "23503":
				return fmt.Errorf("document references a missing loan or customer: %w", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save document metadata: %w", err)
	}

	contentQuery := `INSERT INTO loan_document_contents (document_id, content) VALUES ($1, $2);`
	if _, err := tx.Exec(ctx, contentQuery, m.DocumentID, content); err != nil {
		return fmt.Errorf("failed to save document content: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	// content row goes with it via ON DELETE CASCADE
	query := `DELETE FROM loan_documents WHERE document_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
