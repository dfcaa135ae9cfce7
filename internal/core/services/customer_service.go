package services

import (
	"context"
	"fmt"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
)

// customerService is the read side of the customer/center/group registry the
// wizard selects from. Registration is owned by the onboarding system.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) *customerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer %s not found", customerID))
		}
		s.LogError(ctx, err, "failed to find customer", "customerID", customerID)
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) ListCenters(ctx context.Context, branchID string) ([]domain.Center, error) {
	centers, err := s.customerRepo.ListCenters(ctx, branchID)
	if err != nil {
		s.LogError(ctx, err, "failed to list centers", "branchID", branchID)
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}
	return centers, nil
}

func (s *customerService) ListGroupsByCenter(ctx context.Context, centerID string) ([]domain.Group, error) {
	groups, err := s.customerRepo.ListGroupsByCenter(ctx, centerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list groups", "centerID", centerID)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// ListGroupCustomers resolves the group members to customer records, keeping
// membership order. Inactive members are skipped.
func (s *customerService) ListGroupCustomers(ctx context.Context, groupID string) ([]domain.Customer, error) {
	members, err := s.customerRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "failed to list group members", "groupID", groupID)
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.Active {
			ids = append(ids, m.CustomerID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	byID, err := s.customerRepo.FindCustomersByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve group customers", "groupID", groupID)
		return nil, fmt.Errorf("failed to resolve group customers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			customers = append(customers, c)
		}
	}
	return customers, nil
}
