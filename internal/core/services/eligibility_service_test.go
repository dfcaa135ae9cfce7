package services_test

import (
	"context"
	"testing"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock ProductRepository (read side used by eligibility) ---
type MockProductRepository struct {
	FindProductByIDFn func(ctx context.Context, productID string) (*domain.LoanProduct, error)
	ListProductsFn    func(ctx context.Context) ([]domain.LoanProduct, error)
	SaveProductFn     func(ctx context.Context, product domain.LoanProduct) error
	UpdateProductFn   func(ctx context.Context, product domain.LoanProduct) error
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	return m.FindProductByIDFn(ctx, productID)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.LoanProduct, error) {
	return m.ListProductsFn(ctx)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.LoanProduct) error {
	return m.SaveProductFn(ctx, product)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.LoanProduct) error {
	return m.UpdateProductFn(ctx, product)
}

// --- Mock CustomerRepository (registry reads) ---
type MockCustomerRepository struct {
	FindCustomerByIDFn     func(ctx context.Context, customerID string) (*domain.Customer, error)
	FindCustomersByIDsFn   func(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error)
	ListCustomersByGroupFn func(ctx context.Context, groupID string) ([]domain.Customer, error)
	FindCenterByIDFn       func(ctx context.Context, centerID string) (*domain.Center, error)
	ListCentersFn          func(ctx context.Context, branchID string) ([]domain.Center, error)
	FindGroupByIDFn        func(ctx context.Context, groupID string) (*domain.Group, error)
	ListGroupsByCenterFn   func(ctx context.Context, centerID string) ([]domain.Group, error)
	ListGroupMembersFn     func(ctx context.Context, groupID string) ([]domain.GroupMember, error)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return m.FindCustomerByIDFn(ctx, customerID)
}

func (m *MockCustomerRepository) FindCustomersByIDs(ctx context.Context, customerIDs []string) (map[string]domain.Customer, error) {
	return m.FindCustomersByIDsFn(ctx, customerIDs)
}

func (m *MockCustomerRepository) ListCustomersByGroup(ctx context.Context, groupID string) ([]domain.Customer, error) {
	return m.ListCustomersByGroupFn(ctx, groupID)
}

func (m *MockCustomerRepository) FindCenterByID(ctx context.Context, centerID string) (*domain.Center, error) {
	return m.FindCenterByIDFn(ctx, centerID)
}

func (m *MockCustomerRepository) ListCenters(ctx context.Context, branchID string) ([]domain.Center, error) {
	return m.ListCentersFn(ctx, branchID)
}

func (m *MockCustomerRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	return m.FindGroupByIDFn(ctx, groupID)
}

func (m *MockCustomerRepository) ListGroupsByCenter(ctx context.Context, centerID string) ([]domain.Group, error) {
	return m.ListGroupsByCenterFn(ctx, centerID)
}

func (m *MockCustomerRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.GroupMember, error) {
	return m.ListGroupMembersFn(ctx, groupID)
}

func activeLoan(loanID, productID string, paid, total int, balance string) domain.Loan {
	return domain.Loan{
		LoanID:     loanID,
		ProductID:  productID,
		CustomerID: "cust-1",
		Status:     domain.LoanActive,
		PaidWeeks:  paid,
		TotalWeeks: total,
		Balance:    decimal.RequireFromString(balance),
	}
}

func reloanFixture(loans []domain.Loan) portssvc.EligibilitySvcFacade {
	productRepo := &MockProductRepository{
		FindProductByIDFn: func(_ context.Context, productID string) (*domain.LoanProduct, error) {
			return &domain.LoanProduct{ProductID: productID, Name: "Weekly Micro Loan"}, nil
		},
	}
	loanRepo := &MockLoanRepository{
		ListActiveLoansByCustomerFn: func(_ context.Context, _ string) ([]domain.Loan, error) {
			return loans, nil
		},
	}
	return services.NewEligibilityService(loanRepo, productRepo, &MockCustomerRepository{})
}

func TestEligibilityService_EvaluateReloan(t *testing.T) {
	ctx := context.Background()

	t.Run("no active loan of the product means no reloan gate", func(t *testing.T) {
		svc := reloanFixture([]domain.Loan{activeLoan("ln-1", "prod-other", 10, 50, "40000")})

		check, err := svc.EvaluateReloan(ctx, "cust-1", "prod-1")
		require.NoError(t, err)
		assert.False(t, check.AlreadyTaken)
		assert.Nil(t, check.Eligibility)
		assert.Equal(t, "Weekly Micro Loan", check.ProductName)
	})

	t.Run("active loan past the threshold is eligible with progress and balance", func(t *testing.T) {
		svc := reloanFixture([]domain.Loan{activeLoan("ln-1", "prod-1", 40, 50, "15000")})

		check, err := svc.EvaluateReloan(ctx, "cust-1", "prod-1")
		require.NoError(t, err)
		require.True(t, check.AlreadyTaken)
		require.NotNil(t, check.Eligibility)
		assert.True(t, check.Eligibility.IsEligible)
		assert.True(t, check.Eligibility.Progress.Equal(decimal.NewFromInt(80)))
		assert.True(t, check.Eligibility.Balance.Equal(decimal.NewFromInt(15000)))
	})

	t.Run("active loan below the threshold blocks", func(t *testing.T) {
		svc := reloanFixture([]domain.Loan{activeLoan("ln-1", "prod-1", 10, 50, "60000")})

		check, err := svc.EvaluateReloan(ctx, "cust-1", "prod-1")
		require.NoError(t, err)
		require.True(t, check.AlreadyTaken)
		assert.False(t, check.Eligibility.IsEligible)
		assert.True(t, check.Eligibility.Progress.Equal(decimal.NewFromInt(20)))
	})

	t.Run("the least-progressed active loan of the product gates", func(t *testing.T) {
		svc := reloanFixture([]domain.Loan{
			activeLoan("ln-1", "prod-1", 45, 50, "5000"),
			activeLoan("ln-2", "prod-1", 5, 50, "70000"),
		})

		check, err := svc.EvaluateReloan(ctx, "cust-1", "prod-1")
		require.NoError(t, err)
		require.True(t, check.AlreadyTaken)
		assert.False(t, check.Eligibility.IsEligible)
		assert.Equal(t, 5, check.Eligibility.PaidWeeks)
	})
}

func TestEligibilityService_DeriveGuarantors(t *testing.T) {
	ctx := context.Background()

	members := []domain.GroupMember{
		{GroupID: "grp-1", CustomerID: "cust-1", Position: 1, Active: true},
		{GroupID: "grp-1", CustomerID: "cust-2", Position: 2, Active: true},
		{GroupID: "grp-1", CustomerID: "cust-3", Position: 3, Active: false},
		{GroupID: "grp-1", CustomerID: "cust-4", Position: 4, Active: true},
	}
	registry := map[string]domain.Customer{
		"cust-2": {CustomerID: "cust-2", FullName: "W. A. Kumari", NIC: "857061733V", Active: true},
		"cust-4": {CustomerID: "cust-4", FullName: "R. M. Silva", NIC: "199225400641", Active: true},
	}

	customerRepo := &MockCustomerRepository{
		ListGroupMembersFn: func(_ context.Context, _ string) ([]domain.GroupMember, error) {
			return members, nil
		},
		FindCustomersByIDsFn: func(_ context.Context, ids []string) (map[string]domain.Customer, error) {
			out := make(map[string]domain.Customer)
			for _, id := range ids {
				if c, ok := registry[id]; ok {
					out[id] = c
				}
			}
			return out, nil
		},
	}
	svc := services.NewEligibilityService(&MockLoanRepository{}, &MockProductRepository{}, customerRepo)

	t.Run("first two other active members become guarantors in order", func(t *testing.T) {
		g1, g2, err := svc.DeriveGuarantors(ctx, "grp-1", "cust-1")
		require.NoError(t, err)
		assert.Equal(t, domain.GuarantorInfo{Name: "W. A. Kumari", NIC: "857061733V"}, g1)
		assert.Equal(t, domain.GuarantorInfo{Name: "R. M. Silva", NIC: "199225400641"}, g2)
	})

	t.Run("too-small group leaves guarantors empty without error", func(t *testing.T) {
		small := &MockCustomerRepository{
			ListGroupMembersFn: func(_ context.Context, _ string) ([]domain.GroupMember, error) {
				return members[:1], nil
			},
		}
		svc := services.NewEligibilityService(&MockLoanRepository{}, &MockProductRepository{}, small)

		g1, g2, err := svc.DeriveGuarantors(ctx, "grp-1", "cust-1")
		require.NoError(t, err)
		assert.False(t, g1.IsSet())
		assert.False(t, g2.IsSet())
	})
}
