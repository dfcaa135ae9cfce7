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

type PgxProductRepository struct {
	db *pgxpool.Pool
}

func newPgxProductRepository(db *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func toDomainProduct(m models.LoanProduct) domain.LoanProduct {
	return domain.LoanProduct{
		ProductID:           m.ProductID,
		Name:                m.Name,
		MinLimit:            m.MinLimit,
		MaxLimit:            m.MaxLimit,
		DefaultInterestRate: m.DefaultInterestRate,
		DefaultTenureWeeks:  m.DefaultTenureWeeks,
		Active:              m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const productColumns = `product_id, name, min_limit, max_limit, default_interest_rate,
	default_tenure_weeks, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.LoanProduct, error) {
	var m models.LoanProduct
	err := row.Scan(
		&m.ProductID, &m.Name, &m.MinLimit, &m.MaxLimit, &m.DefaultInterestRate,
		&m.DefaultTenureWeeks, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	query := `SELECT ` + productColumns + ` FROM loan_products WHERE product_id = $1;`
	m, err := scanProduct(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	d := toDomainProduct(m)
	return &d, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context) ([]domain.LoanProduct, error) {
	query := `SELECT ` + productColumns + ` FROM loan_products WHERE is_active ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.LoanProduct{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, toDomainProduct(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.LoanProduct) error {
	query := `
        INSERT INTO loan_products (product_id, name, min_limit, max_limit,
            default_interest_rate, default_tenure_weeks, is_active,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		product.ProductID, product.Name, product.MinLimit, product.MaxLimit,
		product.DefaultInterestRate, product.DefaultTenureWeeks, product.Active,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("product name already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.LoanProduct) error {
	query := `
        UPDATE loan_products
        SET name = $1, min_limit = $2, max_limit = $3, default_interest_rate = $4,
            default_tenure_weeks = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
        WHERE product_id = $9;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		product.Name, product.MinLimit, product.MaxLimit, product.DefaultInterestRate,
		product.DefaultTenureWeeks, product.Active, product.LastUpdatedAt, product.LastUpdatedBy,
		product.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
