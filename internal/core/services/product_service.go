package services

import (
	"context"
	"fmt"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/google/uuid"
)

// productService exposes the loan product catalogue.
type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func NewProductService(productRepo portsrepo.ProductRepositoryFacade) *productService {
	return &productService{productRepo: productRepo}
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
		}
		s.LogError(ctx, err, "failed to find product", "productID", productID)
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.LoanProduct, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.LoanProduct, error) {
	if req.MaxLimit.LessThan(req.MinLimit) {
		return nil, apperrors.NewValidationFailedError("maxLimit cannot be below minLimit")
	}
	if req.MinLimit.IsNegative() {
		return nil, apperrors.NewValidationFailedError("minLimit cannot be negative")
	}

	now := time.Now()
	product := domain.LoanProduct{
		ProductID:           uuid.NewString(),
		Name:                req.Name,
		MinLimit:            req.MinLimit,
		MaxLimit:            req.MaxLimit,
		DefaultInterestRate: req.DefaultInterestRate,
		DefaultTenureWeeks:  req.DefaultTenureWeeks,
		Active:              true,
		AuditFields:         domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "failed to save product", "name", req.Name)
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	s.LogInfo(ctx, "loan product created", "productID", product.ProductID, "name", product.Name)
	return &product, nil
}
