package services

import (
	"context"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
)

// ReloanCheck is the outcome of evaluating a customer/product pair.
type ReloanCheck struct {
	// AlreadyTaken is true when the customer holds an active loan of the product.
	AlreadyTaken bool
	// Eligibility is set only when AlreadyTaken is true.
	Eligibility *domain.ReloanEligibility
	// ProductName is carried so blocking messages can name the product.
	ProductName string
}

// EligibilitySvcFacade computes reloan gating and the derived relationship
// fields (guarantors from group membership, witness rules).
type EligibilitySvcFacade interface {
	// EvaluateReloan recomputes the reloan check for a customer/product pair.
	EvaluateReloan(ctx context.Context, customerID, productID string) (*ReloanCheck, error)

	// DeriveGuarantors assigns the first two other active members of the
	// group, in membership order, as guarantors 1 and 2. Fields stay empty
	// when the group is too small; step validation reports that case.
	DeriveGuarantors(ctx context.Context, groupID, applicantCustomerID string) (g1, g2 domain.GuarantorInfo, err error)
}
