package services

import (
	"fmt"
	"strings"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/utils"
	"github.com/shopspring/decimal"
)

// StepContext carries the reference data the step gates need. The gate
// functions are pure and total: they never touch a repository, never panic,
// and report the first violated rule in a fixed priority order.
type StepContext struct {
	// Customer is the selected customer record, nil when not yet loaded.
	Customer *domain.Customer
	// Product is the selected product, nil when not yet loaded.
	Product *domain.LoanProduct
	// Reloan is the check for the selected customer/product pair.
	Reloan *portssvc.ReloanCheck
	// EditMode disables the duplicate-active-loan block so a sent-back
	// application can be legitimately resubmitted.
	EditMode bool
}

// ValidateStep gates a single wizard step against the draft. A nil return
// means the step passes.
func ValidateStep(step domain.WizardStep, draft *domain.LoanApplicationDraft, sctx StepContext) *domain.StepError {
	switch step {
	case domain.StepCustomerSelection:
		return validateCustomerSelection(draft, sctx)
	case domain.StepLoanDetails:
		return validateLoanDetails(draft, sctx)
	case domain.StepDocuments:
		return validateDocuments(draft)
	}
	// Review & Submit carries no gate of its own; the gated steps are
	// re-validated from scratch on submit.
	return nil
}

// FirstFailingStep replays the jump protocol: every step up to but not
// including target is validated in order, and the first failure is returned.
// Backward jumps never reach this path.
func FirstFailingStep(target domain.WizardStep, draft *domain.LoanApplicationDraft, sctx StepContext) *domain.StepError {
	for step := domain.StepCustomerSelection; step < target; step++ {
		if stepErr := ValidateStep(step, draft, sctx); stepErr != nil {
			return stepErr
		}
	}
	return nil
}

func validateCustomerSelection(draft *domain.LoanApplicationDraft, sctx StepContext) *domain.StepError {
	step := domain.StepCustomerSelection
	if draft.CenterID == "" {
		return domain.NewStepError(step, "centerID", "Please select a center")
	}
	if draft.GroupID == "" {
		return domain.NewStepError(step, "groupID", "Please select a group")
	}
	if draft.CustomerID == "" {
		return domain.NewStepError(step, "customerID", "Please select a customer")
	}
	if sctx.Customer == nil {
		return domain.NewStepError(step, "customerID", "Selected customer record could not be loaded")
	}

	if draft.GuardianNIC == "" {
		return domain.NewStepError(step, "guardianNIC", "Joint borrower NIC is required")
	}
	gender, err := utils.GenderFromNIC(draft.GuardianNIC)
	if err != nil {
		return domain.NewStepError(step, "guardianNIC", "Joint borrower NIC is not a valid NIC number")
	}
	if gender != utils.GenderMale {
		return domain.NewStepError(step, "guardianNIC", "Joint borrower must be male")
	}
	if draft.GuardianName == "" {
		return domain.NewStepError(step, "guardianName", "Joint borrower name is required")
	}
	if draft.GuardianRelationship == "" {
		return domain.NewStepError(step, "guardianRelationship", "Joint borrower relationship is required")
	}
	if draft.GuardianAddress == "" {
		return domain.NewStepError(step, "guardianAddress", "Joint borrower address is required")
	}
	if !isExactDigits(draft.GuardianPhone, 10) {
		return domain.NewStepError(step, "guardianPhone", "Joint borrower phone number must be exactly 10 digits")
	}

	if draft.Witness1 == "" {
		return domain.NewStepError(step, "witness1", "Witness 01 is required")
	}
	if draft.Witness2 == "" {
		return domain.NewStepError(step, "witness2", "Witness 02 is required")
	}
	if draft.Witness2 == draft.Witness1 {
		return domain.NewStepError(step, "witness2", "Witness 02 must be different from Witness 01")
	}
	return nil
}

func validateLoanDetails(draft *domain.LoanApplicationDraft, sctx StepContext) *domain.StepError {
	step := domain.StepLoanDetails
	if draft.ProductID == "" {
		return domain.NewStepError(step, "productID", "Please select a loan product")
	}
	if sctx.Product == nil {
		return domain.NewStepError(step, "productID", "Selected product could not be loaded")
	}
	product := sctx.Product

	if !product.AmountWithinLimits(draft.RequestedAmount) {
		return domain.NewStepError(step, "requestedAmount",
			fmt.Sprintf("Requested amount must be between %s and %s for %s",
				product.MinLimit.String(), product.MaxLimit.String(), product.Name))
	}
	if !product.AmountWithinLimits(draft.ApprovedAmount) {
		return domain.NewStepError(step, "approvedAmount",
			fmt.Sprintf("Approved amount must be between %s and %s for %s",
				product.MinLimit.String(), product.MaxLimit.String(), product.Name))
	}
	if draft.ApprovedAmount.GreaterThan(draft.RequestedAmount) {
		return domain.NewStepError(step, "approvedAmount", "Approved amount cannot exceed the requested amount")
	}
	if draft.DocumentationFee.GreaterThan(draft.ApprovedAmount) {
		return domain.NewStepError(step, "documentationFee", "Documentation fee cannot exceed the approved amount")
	}
	if draft.InterestRate.LessThan(decimal.Zero) {
		return domain.NewStepError(step, "interestRate", "Interest rate cannot be negative")
	}
	if draft.TenureWeeks <= 0 {
		return domain.NewStepError(step, "tenureWeeks", "Tenure must be at least one week")
	}

	// Reloan gate: a customer holding an active loan of the same product may
	// only proceed once repayment progress reaches the threshold. Edit mode
	// skips the block so the loan under correction can be resubmitted.
	if sctx.Reloan != nil && sctx.Reloan.AlreadyTaken && !sctx.EditMode {
		rel := sctx.Reloan.Eligibility
		if rel == nil || !rel.IsEligible {
			stepErr := &domain.StepError{
				Step:  step,
				Field: "productID",
				Message: fmt.Sprintf(
					"A new %s loan needs at least %d%% repayment progress on the existing %s loan",
					sctx.Reloan.ProductName, domain.ReloanThresholdPercent, sctx.Reloan.ProductName),
				Eligibility: rel,
			}
			return stepErr
		}
	}

	// Guarantors are derived from group membership, never hand-typed. A miss
	// here is a group-size problem, not a user input error.
	if !draft.Guarantor1.IsSet() {
		return domain.NewStepError(step, "guarantor1",
			"Guarantor 01 is missing: the selected group has no other active members")
	}
	if !draft.Guarantor2.IsSet() {
		return domain.NewStepError(step, "guarantor2",
			"Guarantor 02 is missing: the selected group needs at least three active members")
	}

	if draft.BankName == "" {
		return domain.NewStepError(step, "bankName", "Bank name is required")
	}
	if draft.BankBranch == "" {
		return domain.NewStepError(step, "bankBranch", "Bank branch is required")
	}
	if draft.AccountNumber == "" {
		return domain.NewStepError(step, "accountNumber", "Bank account number is required")
	}
	if !isDigitsMinLen(draft.AccountNumber, 6) {
		return domain.NewStepError(step, "accountNumber", "Bank account number must be numeric and at least 6 digits")
	}
	return nil
}

func validateDocuments(draft *domain.LoanApplicationDraft) *domain.StepError {
	var missing []string
	for _, t := range domain.RequiredDocumentTypes {
		if !draft.HasDocument(t) {
			missing = append(missing, domain.DocumentDisplayName[t])
		}
	}
	if len(missing) > 0 {
		return domain.NewStepError(domain.StepDocuments, "documents",
			"Missing required documents: "+strings.Join(missing, ", "))
	}
	return nil
}

func isExactDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isDigitsMinLen(s string, minLen int) bool {
	if len(s) < minLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
