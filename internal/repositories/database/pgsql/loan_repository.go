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

type PgxLoanRepository struct {
	db *pgxpool.Pool
}

func newPgxLoanRepository(db *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{db: db}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func toModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:     d.LoanID,
		ProductID:  d.ProductID,
		CenterID:   d.CenterID,
		GroupID:    d.GroupID,
		CustomerID: d.CustomerID,

		RequestedAmount: d.RequestedAmount,
		ApprovedAmount:  d.ApprovedAmount,
		InterestRate:    d.InterestRate,
		TenureWeeks:     d.TenureWeeks,
		Rental:          d.Rental,

		ProcessingFee:         d.ProcessingFee,
		DocumentationFee:      d.DocumentationFee,
		ReloanDeductionAmount: d.ReloanDeductionAmount,

		GuardianName:         d.GuardianName,
		GuardianNIC:          d.GuardianNIC,
		GuardianRelationship: d.GuardianRelationship,
		GuardianAddress:      d.GuardianAddress,
		GuardianPhone:        d.GuardianPhone,

		Guarantor1Name: d.Guarantor1Name,
		Guarantor1NIC:  d.Guarantor1NIC,
		Guarantor2Name: d.Guarantor2Name,
		Guarantor2NIC:  d.Guarantor2NIC,
		Witness1:       d.Witness1,
		Witness2:       d.Witness2,

		BankName:      d.BankName,
		BankBranch:    d.BankBranch,
		AccountNumber: d.AccountNumber,

		Remarks:  d.Remarks,
		LoanStep: d.LoanStep,
		Status:   string(d.Status),

		PaidWeeks:  d.PaidWeeks,
		TotalWeeks: d.TotalWeeks,
		Balance:    d.Balance,

		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:     m.LoanID,
		ProductID:  m.ProductID,
		CenterID:   m.CenterID,
		GroupID:    m.GroupID,
		CustomerID: m.CustomerID,

		RequestedAmount: m.RequestedAmount,
		ApprovedAmount:  m.ApprovedAmount,
		InterestRate:    m.InterestRate,
		TenureWeeks:     m.TenureWeeks,
		Rental:          m.Rental,

		ProcessingFee:         m.ProcessingFee,
		DocumentationFee:      m.DocumentationFee,
		ReloanDeductionAmount: m.ReloanDeductionAmount,

		GuardianName:         m.GuardianName,
		GuardianNIC:          m.GuardianNIC,
		GuardianRelationship: m.GuardianRelationship,
		GuardianAddress:      m.GuardianAddress,
		GuardianPhone:        m.GuardianPhone,

		Guarantor1Name: m.Guarantor1Name,
		Guarantor1NIC:  m.Guarantor1NIC,
		Guarantor2Name: m.Guarantor2Name,
		Guarantor2NIC:  m.Guarantor2NIC,
		Witness1:       m.Witness1,
		Witness2:       m.Witness2,

		BankName:      m.BankName,
		BankBranch:    m.BankBranch,
		AccountNumber: m.AccountNumber,

		Remarks:  m.Remarks,
		LoanStep: m.LoanStep,
		Status:   domain.LoanStatus(m.Status),

		PaidWeeks:  m.PaidWeeks,
		TotalWeeks: m.TotalWeeks,
		Balance:    m.Balance,

		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const loanColumns = `loan_id, product_id, center_id, group_id, customer_id,
	requested_amount, approved_amount, interest_rate, tenure_weeks, rental,
	processing_fee, documentation_fee, reloan_deduction_amount,
	guardian_name, guardian_nic, guardian_relationship, guardian_address, guardian_phone,
	guarantor1_name, guarantor1_nic, guarantor2_name, guarantor2_nic, witness1, witness2,
	bank_name, bank_branch, account_number,
	remarks, loan_step, status, paid_weeks, total_weeks, balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID, &m.ProductID, &m.CenterID, &m.GroupID, &m.CustomerID,
		&m.RequestedAmount, &m.ApprovedAmount, &m.InterestRate, &m.TenureWeeks, &m.Rental,
		&m.ProcessingFee, &m.DocumentationFee, &m.ReloanDeductionAmount,
		&m.GuardianName, &m.GuardianNIC, &m.GuardianRelationship, &m.GuardianAddress, &m.GuardianPhone,
		&m.Guarantor1Name, &m.Guarantor1NIC, &m.Guarantor2Name, &m.Guarantor2NIC, &m.Witness1, &m.Witness2,
		&m.BankName, &m.BankBranch, &m.AccountNumber,
		&m.Remarks, &m.LoanStep, &m.Status, &m.PaidWeeks, &m.TotalWeeks, &m.Balance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`
	m, err := scanLoan(r.db.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	d := toDomainLoan(m)
	return &d, nil
}

func (r *PgxLoanRepository) ListActiveLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `
        SELECT ` + loanColumns + `
        FROM loans
        WHERE customer_id = $1
          AND status IN ('PENDING_APPROVAL', 'APPROVED', 'DISBURSED', 'ACTIVE')
        ORDER BY created_at DESC;
    `
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, toDomainLoan(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", rows.Err())
	}
	return loans, nil
}

func (r *PgxLoanRepository) ListLoansByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]domain.Loan, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
        SELECT ` + loanColumns + `
        FROM loans
        WHERE status = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3;
    `
	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans by status: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, toDomainLoan(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", rows.Err())
	}
	return loans, nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)
	query := `
        INSERT INTO loans (` + loanColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
                $11, $12, $13, $14, $15, $16, $17, $18,
                $19, $20, $21, $22, $23, $24, $25, $26, $27,
                $28, $29, $30, $31, $32, $33, $34, $35, $36, $37);
    `
	_, err := r.db.Exec(ctx, query,
		m.LoanID, m.ProductID, m.CenterID, m.GroupID, m.CustomerID,
		m.RequestedAmount, m.ApprovedAmount, m.InterestRate, m.TenureWeeks, m.Rental,
		m.ProcessingFee, m.DocumentationFee, m.ReloanDeductionAmount,
		m.GuardianName, m.GuardianNIC, m.GuardianRelationship, m.GuardianAddress, m.GuardianPhone,
		m.Guarantor1Name, m.Guarantor1NIC, m.Guarantor2Name, m.Guarantor2NIC, m.Witness1, m.Witness2,
		m.BankName, m.BankBranch, m.AccountNumber,
		m.Remarks, m.LoanStep, m.Status, m.PaidWeeks, m.TotalWeeks, m.Balance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("loan already exists: %w", apperrors.ErrDuplicate)
			case "23503": // foreign_key_violation
				return fmt.Errorf("loan references a missing record: %w", apperrors.ErrValidation)
			}
		}
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)
	query := `
        UPDATE loans SET
            product_id = $2, center_id = $3, group_id = $4, customer_id = $5,
            requested_amount = $6, approved_amount = $7, interest_rate = $8,
            tenure_weeks = $9, rental = $10,
            processing_fee = $11, documentation_fee = $12, reloan_deduction_amount = $13,
            guardian_name = $14, guardian_nic = $15, guardian_relationship = $16,
            guardian_address = $17, guardian_phone = $18,
            guarantor1_name = $19, guarantor1_nic = $20,
            guarantor2_name = $21, guarantor2_nic = $22,
            witness1 = $23, witness2 = $24,
            bank_name = $25, bank_branch = $26, account_number = $27,
            remarks = $28, loan_step = $29, status = $30,
            total_weeks = $31, last_updated_at = $32, last_updated_by = $33
        WHERE loan_id = $1;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.LoanID,
		m.ProductID, m.CenterID, m.GroupID, m.CustomerID,
		m.RequestedAmount, m.ApprovedAmount, m.InterestRate, m.TenureWeeks, m.Rental,
		m.ProcessingFee, m.DocumentationFee, m.ReloanDeductionAmount,
		m.GuardianName, m.GuardianNIC, m.GuardianRelationship, m.GuardianAddress, m.GuardianPhone,
		m.Guarantor1Name, m.Guarantor1NIC, m.Guarantor2Name, m.Guarantor2NIC,
		m.Witness1, m.Witness2,
		m.BankName, m.BankBranch, m.AccountNumber,
		m.Remarks, m.LoanStep, m.Status,
		m.TotalWeeks, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoanStatus(ctx context.Context, loanID string, status domain.LoanStatus, updatedBy string) error {
	query := `
        UPDATE loans
        SET status = $1, last_updated_at = now(), last_updated_by = $2
        WHERE loan_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), updatedBy, loanID)
	if err != nil {
		return fmt.Errorf("failed to update loan status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("loan not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
