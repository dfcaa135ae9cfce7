package services

import (
	"context"
	"fmt"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
)

// eligibilityService computes the reloan gate and the derived relationship
// fields. It is recomputed whenever the product or customer selection changes;
// stale values are never trusted across a selection change.
type eligibilityService struct {
	BaseService
	loanRepo     portsrepo.LoanRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
}

var _ portssvc.EligibilitySvcFacade = (*eligibilityService)(nil)

func NewEligibilityService(
	loanRepo portsrepo.LoanRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
) *eligibilityService {
	return &eligibilityService{
		loanRepo:     loanRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// EvaluateReloan checks whether the customer already holds an active loan of
// the product and, if so, how far its repayment has progressed. When several
// active loans of the product exist the least-progressed one gates.
func (s *eligibilityService) EvaluateReloan(ctx context.Context, customerID, productID string) (*portssvc.ReloanCheck, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "failed to load product for reloan check", "productID", productID)
		return nil, fmt.Errorf("failed to load product for reloan check: %w", err)
	}

	loans, err := s.loanRepo.ListActiveLoansByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list active loans for reloan check", "customerID", customerID)
		return nil, fmt.Errorf("failed to list active loans for reloan check: %w", err)
	}

	check := &portssvc.ReloanCheck{ProductName: product.Name}
	for i := range loans {
		loan := &loans[i]
		if loan.ProductID != productID || !loan.IsActive() {
			continue
		}
		rel := domain.ComputeReloanEligibility(loan.PaidWeeks, loan.TotalWeeks, loan.Balance)
		if !check.AlreadyTaken || rel.Progress.LessThan(check.Eligibility.Progress) {
			check.AlreadyTaken = true
			check.Eligibility = &rel
		}
	}
	return check, nil
}

// DeriveGuarantors picks the first two other active members of the group, in
// membership order. Missing guarantors stay zero-valued; the loan details gate
// reports the group-size problem with its own message.
func (s *eligibilityService) DeriveGuarantors(ctx context.Context, groupID, applicantCustomerID string) (domain.GuarantorInfo, domain.GuarantorInfo, error) {
	var g1, g2 domain.GuarantorInfo

	members, err := s.customerRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "failed to list group members for guarantors", "groupID", groupID)
		return g1, g2, fmt.Errorf("failed to list group members for guarantors: %w", err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.Active && m.CustomerID != applicantCustomerID {
			ids = append(ids, m.CustomerID)
		}
	}
	if len(ids) == 0 {
		return g1, g2, nil
	}

	byID, err := s.customerRepo.FindCustomersByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "failed to resolve guarantor customers", "groupID", groupID)
		return g1, g2, fmt.Errorf("failed to resolve guarantor customers: %w", err)
	}

	assigned := 0
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || !c.Active {
			continue
		}
		info := domain.GuarantorInfo{Name: c.FullName, NIC: c.NIC}
		switch assigned {
		case 0:
			g1 = info
		case 1:
			g2 = info
			return g1, g2, nil
		}
		assigned++
	}
	return g1, g2, nil
}
