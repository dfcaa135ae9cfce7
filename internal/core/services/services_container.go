package services

import (
	portsrepo "github.com/araliya-mfi/loan_origination_app/internal/core/ports/repositories"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and
// collaborators. The user service doubles as the capability checker for the
// capability-gated services.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	productSvc := NewProductService(repos.ProductRepo)
	customerSvc := NewCustomerService(repos.CustomerRepo)
	draftSvc := NewDraftService(repos.DraftRepo)
	eligibilitySvc := NewEligibilityService(repos.LoanRepo, repos.ProductRepo, repos.CustomerRepo)
	loanSvc := NewLoanService(repos.LoanRepo, userSvc)
	documentSvc := NewDocumentService(repos.DocumentRepo)
	approvalSvc := NewApprovalService(repos.ApprovalRepo, repos.LoanRepo, userSvc)
	wizardSvc := NewWizardService(draftSvc, eligibilitySvc, customerSvc, productSvc, loanSvc, documentSvc, approvalSvc)

	return &portssvc.ServiceContainer{
		User:        userSvc,
		Product:     productSvc,
		Customer:    customerSvc,
		Draft:       draftSvc,
		Eligibility: eligibilitySvc,
		Wizard:      wizardSvc,
		Approval:    approvalSvc,
		Loan:        loanSvc,
		Document:    documentSvc,

		TokenService:       NewTokenService(cfg, userSvc),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}
