package repositories

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// ProductReader defines read operations for loan products
type ProductReader interface {
	// FindProductByID retrieves a product by ID.
	FindProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error)

	// ListProducts retrieves all active products.
	ListProducts(ctx context.Context) ([]domain.LoanProduct, error)
}

// ProductWriter defines write operations for loan products
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.LoanProduct) error

	// UpdateProduct updates an existing product.
	UpdateProduct(ctx context.Context, product domain.LoanProduct) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
