package repositories

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// CustomerReader defines read operations for the customer registry
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomersByIDs retrieves a batch of customers keyed by ID.
	FindCustomersByIDs(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error)

	// ListCustomersByGroup retrieves the customers of a group.
	ListCustomersByGroup(ctx context.Context, groupID string) ([]domain.Customer, error)
}

// CenterReader defines read operations for centers and groups
type CenterReader interface {
	// FindCenterByID retrieves a center by ID.
	FindCenterByID(ctx context.Context, centerID string) (*domain.Center, error)

	// ListCenters retrieves the centers of a branch.
	ListCenters(ctx context.Context, branchID string) ([]domain.Center, error)

	// FindGroupByID retrieves a group by ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByCenter retrieves the groups of a center.
	ListGroupsByCenter(ctx context.Context, centerID string) ([]domain.Group, error)

	// ListGroupMembers retrieves a group's members in membership order.
	ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error)
}

// CustomerRepositoryFacade combines registry read interfaces. Registration
// itself is owned by the onboarding side; origination only reads.
type CustomerRepositoryFacade interface {
	CustomerReader
	CenterReader
}
