package pgsql

import (
	"context"
	"database/sql"
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

type PgxApprovalRepository struct {
	db *pgxpool.Pool
}

func newPgxApprovalRepository(db *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{db: db}
}

var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

func toModelApproval(d domain.LoanApprovalItem) models.LoanApproval {
	m := models.LoanApproval{
		ApprovalID:  d.ApprovalID,
		LoanID:      d.LoanID,
		LoanAmount:  d.LoanAmount,
		Status:      string(d.Status),
		FirstState:  string(d.First.State),
		SubmittedAt: d.SubmittedAt,
		Pass:        d.Pass,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.First.ActorID != "" {
		m.FirstActorID = sql.NullString{String: d.First.ActorID, Valid: true}
	}
	if d.First.DecidedAt != nil {
		m.FirstDecidedAt = sql.NullTime{Time: *d.First.DecidedAt, Valid: true}
	}
	if d.First.Reason != "" {
		m.FirstReason = sql.NullString{String: d.First.Reason, Valid: true}
	}
	if d.Second != nil {
		m.SecondApplicable = true
		m.SecondState = sql.NullString{String: string(d.Second.State), Valid: true}
		if d.Second.ActorID != "" {
			m.SecondActorID = sql.NullString{String: d.Second.ActorID, Valid: true}
		}
		if d.Second.DecidedAt != nil {
			m.SecondDecidedAt = sql.NullTime{Time: *d.Second.DecidedAt, Valid: true}
		}
		if d.Second.Reason != "" {
			m.SecondReason = sql.NullString{String: d.Second.Reason, Valid: true}
		}
	}
	return m
}

func toDomainApproval(m models.LoanApproval) domain.LoanApprovalItem {
	d := domain.LoanApprovalItem{
		ApprovalID: m.ApprovalID,
		LoanID:     m.LoanID,
		LoanAmount: m.LoanAmount,
		Status:     domain.ApprovalStatus(m.Status),
		First: domain.StageDecision{
			State:   domain.StageState(m.FirstState),
			ActorID: m.FirstActorID.String,
			Reason:  m.FirstReason.String,
		},
		SubmittedAt: m.SubmittedAt,
		Pass:        m.Pass,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.FirstDecidedAt.Valid {
		t := m.FirstDecidedAt.Time
		d.First.DecidedAt = &t
	}
	if m.SecondApplicable {
		second := domain.StageDecision{
			State:   domain.StageState(m.SecondState.String),
			ActorID: m.SecondActorID.String,
			Reason:  m.SecondReason.String,
		}
		if m.SecondDecidedAt.Valid {
			t := m.SecondDecidedAt.Time
			second.DecidedAt = &t
		}
		d.Second = &second
	}
	return d
}

const approvalColumns = `approval_id, loan_id, loan_amount, status,
	first_state, first_actor_id, first_decided_at, first_reason,
	second_applicable, second_state, second_actor_id, second_decided_at, second_reason,
	submitted_at, pass, created_at, created_by, last_updated_at, last_updated_by`

func scanApproval(row pgx.Row) (models.LoanApproval, error) {
	var m models.LoanApproval
	err := row.Scan(
		&m.ApprovalID, &m.LoanID, &m.LoanAmount, &m.Status,
		&m.FirstState, &m.FirstActorID, &m.FirstDecidedAt, &m.FirstReason,
		&m.SecondApplicable, &m.SecondState, &m.SecondActorID, &m.SecondDecidedAt, &m.SecondReason,
		&m.SubmittedAt, &m.Pass,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxApprovalRepository) FindApprovalByLoanID(ctx context.Context, loanID string) (*domain.LoanApprovalItem, error) {
	query := `SELECT ` + approvalColumns + ` FROM loan_approvals WHERE loan_id = $1;`
	m, err := scanApproval(r.db.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approval for loan %s: %w", loanID, err)
	}
	d := toDomainApproval(m)
	return &d, nil
}

func (r *PgxApprovalRepository) ListPendingApprovals(ctx context.Context, limit, offset int) ([]domain.LoanApprovalItem, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + approvalColumns + `
        FROM loan_approvals
        WHERE status IN ($1, $2)
        ORDER BY submitted_at
        LIMIT $3 OFFSET $4;
    `
	rows, err := r.db.Query(ctx, query,
		string(domain.StatusPendingFirst), string(domain.StatusPendingSecond), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending approvals: %w", err)
	}
	defer rows.Close()

	items := []domain.LoanApprovalItem{}
	for rows.Next() {
		m, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval row: %w", err)
		}
		items = append(items, toDomainApproval(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating approval rows: %w", rows.Err())
	}
	return items, nil
}

func (r *PgxApprovalRepository) SaveApproval(ctx context.Context, item domain.LoanApprovalItem) error {
	m := toModelApproval(item)
	query := `
        INSERT INTO loan_approvals (` + approvalColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
                $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err := r.db.Exec(ctx, query,
		m.ApprovalID, m.LoanID, m.LoanAmount, m.Status,
		m.FirstState, m.FirstActorID, m.FirstDecidedAt, m.FirstReason,
		m.SecondApplicable, m.SecondState, m.SecondActorID, m.SecondDecidedAt, m.SecondReason,
		m.SubmittedAt, m.Pass,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on loan_id
			return fmt.Errorf("approval item already exists for loan: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save approval item: %w", err)
	}
	return nil
}

// UpdateApproval writes the full stage state, guarded by the status the
// caller last observed. A zero row count means another actor moved the item
// first; the caller gets ErrConflict, never a silent overwrite.
func (r *PgxApprovalRepository) UpdateApproval(ctx context.Context, item domain.LoanApprovalItem, expectedStatus domain.ApprovalStatus) error {
	m := toModelApproval(item)
	query := `
        UPDATE loan_approvals SET
            loan_amount = $1, status = $2,
            first_state = $3, first_actor_id = $4, first_decided_at = $5, first_reason = $6,
            second_applicable = $7, second_state = $8, second_actor_id = $9,
            second_decided_at = $10, second_reason = $11,
            submitted_at = $12, pass = $13,
            last_updated_at = $14, last_updated_by = $15
        WHERE approval_id = $16 AND status = $17;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.LoanAmount, m.Status,
		m.FirstState, m.FirstActorID, m.FirstDecidedAt, m.FirstReason,
		m.SecondApplicable, m.SecondState, m.SecondActorID, m.SecondDecidedAt, m.SecondReason,
		m.SubmittedAt, m.Pass,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.ApprovalID, string(expectedStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update approval item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("approval status moved past %s: %w", expectedStatus, apperrors.ErrConflict)
	}
	return nil
}
