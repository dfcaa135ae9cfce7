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
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCustomerRepository reads the customer/center/group registry. Origination
// never writes these tables; onboarding owns them.
type PgxCustomerRepository struct {
	db *pgxpool.Pool
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{db: db}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		NIC:        m.NIC,
		FullName:   m.FullName,
		Gender:     m.Gender,
		Phone:      m.Phone,
		Address:    m.Address,
		CenterID:   m.CenterID,
		GroupID:    m.GroupID,
		Active:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const customerColumns = `customer_id, nic, full_name, gender, phone, address,
	center_id, group_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID, &m.NIC, &m.FullName, &m.Gender, &m.Phone, &m.Address,
		&m.CenterID, &m.GroupID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	d := toDomainCustomer(m)
	return &d, nil
}

func (r *PgxCustomerRepository) FindCustomersByIDs(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error) {
	if len(customerIDs) == 0 {
		return map[string]domain.Customer{}, nil
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, customerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Customer, len(customerIDs))
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		out[m.CustomerID] = toDomainCustomer(m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return out, nil
}

func (r *PgxCustomerRepository) ListCustomersByGroup(ctx context.Context, groupID string) ([]domain.Customer, error) {
	query := `
        SELECT ` + customerColumns + `
        FROM customers c
        JOIN group_members gm ON gm.customer_id = c.customer_id
        WHERE gm.group_id = $1 AND gm.is_active
        ORDER BY gm.position;
    `
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, toDomainCustomer(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

func (r *PgxCustomerRepository) FindCenterByID(ctx context.Context, centerID string) (*domain.Center, error) {
	query := `
        SELECT center_id, name, branch_id, is_active,
               created_at, created_by, last_updated_at, last_updated_by
        FROM centers WHERE center_id = $1;
    `
	var m models.Center
	err := r.db.QueryRow(ctx, query, centerID).Scan(
		&m.CenterID, &m.Name, &m.BranchID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find center %s: %w", centerID, err)
	}
	return &domain.Center{
		CenterID: m.CenterID, Name: m.Name, BranchID: m.BranchID, Active: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt, CreatedBy: m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt, LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

func (r *PgxCustomerRepository) ListCenters(ctx context.Context, branchID string) ([]domain.Center, error) {
	query := `
        SELECT center_id, name, branch_id, is_active,
               created_at, created_by, last_updated_at, last_updated_by
        FROM centers
        WHERE branch_id = $1 AND is_active
        ORDER BY name;
    `
	rows, err := r.db.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query centers: %w", err)
	}
	defer rows.Close()

	centers := []domain.Center{}
	for rows.Next() {
		var m models.Center
		if err := rows.Scan(
			&m.CenterID, &m.Name, &m.BranchID, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan center row: %w", err)
		}
		centers = append(centers, domain.Center{
			CenterID: m.CenterID, Name: m.Name, BranchID: m.BranchID, Active: m.IsActive,
			AuditFields: domain.AuditFields{
				CreatedAt: m.CreatedAt, CreatedBy: m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt, LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating center rows: %w", rows.Err())
	}
	return centers, nil
}

func (r *PgxCustomerRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
        SELECT group_id, center_id, name, is_active,
               created_at, created_by, last_updated_at, last_updated_by
        FROM groups WHERE group_id = $1;
    `
	var m models.Group
	err := r.db.QueryRow(ctx, query, groupID).Scan(
		&m.GroupID, &m.CenterID, &m.Name, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	return &domain.Group{
		GroupID: m.GroupID, CenterID: m.CenterID, Name: m.Name, Active: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt, CreatedBy: m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt, LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

func (r *PgxCustomerRepository) ListGroupsByCenter(ctx context.Context, centerID string) ([]domain.Group, error) {
	query := `
        SELECT group_id, center_id, name, is_active,
               created_at, created_by, last_updated_at, last_updated_by
        FROM groups
        WHERE center_id = $1 AND is_active
        ORDER BY name;
    `
	rows, err := r.db.Query(ctx, query, centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var m models.Group
		if err := rows.Scan(
			&m.GroupID, &m.CenterID, &m.Name, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, domain.Group{
			GroupID: m.GroupID, CenterID: m.CenterID, Name: m.Name, Active: m.IsActive,
			AuditFields: domain.AuditFields{
				CreatedAt: m.CreatedAt, CreatedBy: m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt, LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", rows.Err())
	}
	return groups, nil
}

func (r *PgxCustomerRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	query := `
        SELECT group_id, customer_id, position, is_active
        FROM group_members
        WHERE group_id = $1
        ORDER BY position;
    `
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	members := []domain.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.GroupID, &m.CustomerID, &m.Position, &m.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan group member row: %w", err)
		}
		members = append(members, domain.GroupMember{
			GroupID:    m.GroupID,
			CustomerID: m.CustomerID,
			Position:   m.Position,
			Active:     m.IsActive,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating group member rows: %w", rows.Err())
	}
	return members, nil
}
