package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User        UserSvcFacade
	Product     ProductSvcFacade
	Customer    CustomerSvcFacade
	Draft       DraftSvcFacade
	Eligibility EligibilitySvcFacade
	Wizard      WizardSvcFacade
	Approval    ApprovalSvcFacade
	Loan        LoanSvcFacade
	Document    DocumentSvcFacade

	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
