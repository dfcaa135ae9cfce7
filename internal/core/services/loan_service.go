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

// loanService owns the canonical loan records. Records are created or updated
// only through wizard submit; approval transitions go through the approval
// service.
type loanService struct {
	BaseService
	loanRepo portsrepo.LoanRepositoryFacade
	now      func() time.Time
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, capabilities portssvc.CapabilityChecker) *loanService {
	return &loanService{
		BaseService: BaseService{Capabilities: capabilities},
		loanRepo:    loanRepo,
		now:         time.Now,
	}
}

func (s *loanService) CreateLoan(ctx context.Context, creatorUserID string, payload dto.CreateLoanPayload) (*domain.Loan, error) {
	allowed, err := s.RequireCapability(ctx, creatorUserID, domain.CapabilityCreateLoan)
	if err != nil {
		return nil, fmt.Errorf("failed to check create capability: %w", err)
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("you are not allowed to create loan applications")
	}

	now := s.now()
	loan := payloadToLoan(payload)
	loan.LoanID = uuid.NewString()
	loan.Status = domain.LoanPendingApproval
	loan.TotalWeeks = payload.TenureWeeks
	loan.AuditFields = domain.NewAuditFields(creatorUserID, now)

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "failed to save loan", "customerID", payload.CustomerID)
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}
	s.LogInfo(ctx, "loan application created", "loanID", loan.LoanID, "customerID", loan.CustomerID, "amount", loan.ApprovedAmount.String())
	return &loan, nil
}

// UpdateLoan replaces the application fields of a sent-back loan. Only the
// original creator may edit, and only while the loan sits in SENT_BACK.
func (s *loanService) UpdateLoan(ctx context.Context, updaterUserID string, payload dto.CreateLoanPayload) (*domain.Loan, error) {
	existing, err := s.GetLoanByID(ctx, payload.EditID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.LoanSentBack {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("loan %s is not editable in status %s", existing.LoanID, existing.Status))
	}
	if existing.CreatedBy != updaterUserID {
		return nil, apperrors.NewForbiddenError("only the original creator may edit a sent-back application")
	}

	loan := payloadToLoan(payload)
	loan.LoanID = existing.LoanID
	loan.Status = domain.LoanPendingApproval
	loan.LoanStep = domain.LoanStepResubmitted
	loan.TotalWeeks = payload.TenureWeeks
	loan.PaidWeeks = existing.PaidWeeks
	loan.Balance = existing.Balance
	loan.AuditFields = existing.AuditFields
	loan.Touch(updaterUserID, s.now())

	if err := s.loanRepo.UpdateLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "failed to update loan", "loanID", loan.LoanID)
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}
	s.LogInfo(ctx, "loan application resubmitted", "loanID", loan.LoanID, "customerID", loan.CustomerID)
	return &loan, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("loan %s not found", loanID))
		}
		s.LogError(ctx, err, "failed to find loan", "loanID", loanID)
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	return loan, nil
}

func (s *loanService) ListActiveLoansByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListActiveLoansByCustomer(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "failed to list active loans", "customerID", customerID)
		return nil, fmt.Errorf("failed to list active loans: %w", err)
	}
	return loans, nil
}

func (s *loanService) ListLoansByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]domain.Loan, error) {
	if limit <= 0 {
		limit = 20
	}
	loans, err := s.loanRepo.ListLoansByStatus(ctx, status, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list loans by status", "status", status)
		return nil, fmt.Errorf("failed to list loans by status: %w", err)
	}
	return loans, nil
}

// payloadToLoan maps the wire payload to a domain record. Identity, status and
// audit fields are set by the callers.
func payloadToLoan(p dto.CreateLoanPayload) domain.Loan {
	return domain.Loan{
		ProductID:  p.ProductID,
		CenterID:   p.CenterID,
		GroupID:    p.GroupID,
		CustomerID: p.CustomerID,

		RequestedAmount: p.RequestedAmount,
		ApprovedAmount:  p.ApprovedAmount,
		InterestRate:    p.InterestRate,
		TenureWeeks:     p.TenureWeeks,
		Rental:          p.Rental,

		ProcessingFee:         p.ProcessingFee,
		DocumentationFee:      p.DocumentationFee,
		ReloanDeductionAmount: p.ReloanDeductionAmount,

		GuardianName:         p.GuardianName,
		GuardianNIC:          p.GuardianNIC,
		GuardianRelationship: p.GuardianRelationship,
		GuardianAddress:      p.GuardianAddress,
		GuardianPhone:        p.GuardianPhone,

		Guarantor1Name: p.Guarantor1Name,
		Guarantor1NIC:  p.Guarantor1NIC,
		Guarantor2Name: p.Guarantor2Name,
		Guarantor2NIC:  p.Guarantor2NIC,
		Witness1:       p.Witness1,
		Witness2:       p.Witness2,

		BankName:      p.BankName,
		BankBranch:    p.BankBranch,
		AccountNumber: p.AccountNumber,

		Remarks:  p.Remarks,
		LoanStep: p.LoanStep,
	}
}
