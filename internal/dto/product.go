package dto

import (
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines data for creating a loan product.
type CreateProductRequest struct {
	Name                string          `json:"name" binding:"required"`
	MinLimit            decimal.Decimal `json:"minLimit" binding:"required"`
	MaxLimit            decimal.Decimal `json:"maxLimit" binding:"required"`
	DefaultInterestRate decimal.Decimal `json:"defaultInterestRate"`
	DefaultTenureWeeks  int             `json:"defaultTenureWeeks" binding:"required,gt=0"`
}

// ProductResponse defines data returned for a loan product.
type ProductResponse struct {
	ProductID           string          `json:"productID"`
	Name                string          `json:"name"`
	MinLimit            decimal.Decimal `json:"minLimit"`
	MaxLimit            decimal.Decimal `json:"maxLimit"`
	DefaultInterestRate decimal.Decimal `json:"defaultInterestRate"`
	DefaultTenureWeeks  int             `json:"defaultTenureWeeks"`
	Active              bool            `json:"active"`
}

// ToProductResponse converts a domain.LoanProduct to DTO.
func ToProductResponse(p *domain.LoanProduct) ProductResponse {
	return ProductResponse{
		ProductID:           p.ProductID,
		Name:                p.Name,
		MinLimit:            p.MinLimit,
		MaxLimit:            p.MaxLimit,
		DefaultInterestRate: p.DefaultInterestRate,
		DefaultTenureWeeks:  p.DefaultTenureWeeks,
		Active:              p.Active,
	}
}

// ListProductsResponse wraps a list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToListProductsResponse converts a slice of domain.LoanProduct to DTO.
func ToListProductsResponse(ps []domain.LoanProduct) ListProductsResponse {
	list := make([]ProductResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProductResponse(&p)
	}
	return ListProductsResponse{Products: list}
}
