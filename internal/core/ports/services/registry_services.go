package services

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
)

// ProductSvcFacade exposes the loan product catalogue.
type ProductSvcFacade interface {
	GetProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error)
	ListProducts(ctx context.Context) ([]domain.LoanProduct, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.LoanProduct, error)
}

// CustomerSvcFacade exposes the customer/center/group registry read side the
// wizard selects from.
type CustomerSvcFacade interface {
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCenters(ctx context.Context, branchID string) ([]domain.Center, error)
	ListGroupsByCenter(ctx context.Context, centerID string) ([]domain.Group, error)
	// ListGroupCustomers returns the group's customers in membership order.
	ListGroupCustomers(ctx context.Context, groupID string) ([]domain.Customer, error)
}
