package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/core/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Facade fakes for the wizard's collaborators ---

type fakeDraftSvc struct {
	saved map[string]domain.SavedDraft
}

func newFakeDraftSvc() *fakeDraftSvc {
	return &fakeDraftSvc{saved: make(map[string]domain.SavedDraft)}
}

func (f *fakeDraftSvc) ListDrafts(_ context.Context, _ string) ([]domain.SavedDraft, error) {
	out := make([]domain.SavedDraft, 0, len(f.saved))
	for _, d := range f.saved {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDraftSvc) SaveDraft(_ context.Context, _ string, draftID, name string, snapshot domain.LoanApplicationDraft, step domain.WizardStep) (*domain.SavedDraft, error) {
	if draftID == "" {
		draftID = "draft-1"
	}
	d := domain.SavedDraft{DraftID: draftID, Name: name, SavedAt: time.Now(), CurrentStep: step, Snapshot: snapshot}
	f.saved[draftID] = d
	return &d, nil
}

func (f *fakeDraftSvc) GetDraft(_ context.Context, _ string, draftID string) (*domain.SavedDraft, error) {
	d, ok := f.saved[draftID]
	if !ok {
		return nil, apperrors.NewNotFoundError("draft not found")
	}
	return &d, nil
}

func (f *fakeDraftSvc) DeleteDraft(_ context.Context, _ string, draftID string) error {
	delete(f.saved, draftID)
	return nil
}

type fakeEligibilitySvc struct {
	reloan *portssvc.ReloanCheck
	g1, g2 domain.GuarantorInfo
}

func (f *fakeEligibilitySvc) EvaluateReloan(_ context.Context, _, _ string) (*portssvc.ReloanCheck, error) {
	if f.reloan != nil {
		return f.reloan, nil
	}
	return &portssvc.ReloanCheck{ProductName: "Abhilasha"}, nil
}

func (f *fakeEligibilitySvc) DeriveGuarantors(_ context.Context, _, _ string) (domain.GuarantorInfo, domain.GuarantorInfo, error) {
	return f.g1, f.g2, nil
}

type fakeCustomerSvc struct{}

func (fakeCustomerSvc) GetCustomerByID(_ context.Context, customerID string) (*domain.Customer, error) {
	return &domain.Customer{CustomerID: customerID, FullName: "W. Jayawardena", Active: true}, nil
}
func (fakeCustomerSvc) ListCenters(_ context.Context, _ string) ([]domain.Center, error) {
	return nil, nil
}
func (fakeCustomerSvc) ListGroupsByCenter(_ context.Context, _ string) ([]domain.Group, error) {
	return nil, nil
}
func (fakeCustomerSvc) ListGroupCustomers(_ context.Context, _ string) ([]domain.Customer, error) {
	return nil, nil
}

type fakeProductSvc struct{}

func (fakeProductSvc) GetProductByID(_ context.Context, productID string) (*domain.LoanProduct, error) {
	return &domain.LoanProduct{
		ProductID:           productID,
		Name:                "Abhilasha",
		MinLimit:            decimal.NewFromInt(25000),
		MaxLimit:            decimal.NewFromInt(300000),
		DefaultInterestRate: decimal.NewFromInt(24),
		DefaultTenureWeeks:  52,
		Active:              true,
	}, nil
}
func (fakeProductSvc) ListProducts(_ context.Context) ([]domain.LoanProduct, error) { return nil, nil }
func (fakeProductSvc) CreateProduct(_ context.Context, _ dto.CreateProductRequest, _ string) (*domain.LoanProduct, error) {
	return nil, nil
}

type fakeLoanSvc struct {
	created []dto.CreateLoanPayload
	updated []dto.CreateLoanPayload
	loans   map[string]*domain.Loan
}

func newFakeLoanSvc() *fakeLoanSvc {
	return &fakeLoanSvc{loans: make(map[string]*domain.Loan)}
}

func (f *fakeLoanSvc) CreateLoan(_ context.Context, creatorUserID string, payload dto.CreateLoanPayload) (*domain.Loan, error) {
	f.created = append(f.created, payload)
	loan := &domain.Loan{
		LoanID:         "loan-1",
		CustomerID:     payload.CustomerID,
		ApprovedAmount: payload.ApprovedAmount,
		LoanStep:       payload.LoanStep,
		Status:         domain.LoanPendingApproval,
	}
	loan.CreatedBy = creatorUserID
	f.loans[loan.LoanID] = loan
	return loan, nil
}

func (f *fakeLoanSvc) UpdateLoan(_ context.Context, updaterUserID string, payload dto.CreateLoanPayload) (*domain.Loan, error) {
	f.updated = append(f.updated, payload)
	loan := f.loans[payload.EditID]
	loan.LoanStep = payload.LoanStep
	loan.Status = domain.LoanPendingApproval
	loan.LastUpdatedBy = updaterUserID
	return loan, nil
}

func (f *fakeLoanSvc) GetLoanByID(_ context.Context, loanID string) (*domain.Loan, error) {
	loan, ok := f.loans[loanID]
	if !ok {
		return nil, apperrors.NewNotFoundError("loan not found")
	}
	return loan, nil
}

func (f *fakeLoanSvc) ListActiveLoansByCustomer(_ context.Context, _ string) ([]domain.Loan, error) {
	return nil, nil
}

func (f *fakeLoanSvc) ListLoansByStatus(_ context.Context, _ domain.LoanStatus, _, _ int) ([]domain.Loan, error) {
	return nil, nil
}

type fakeDocumentSvc struct {
	uploads   []domain.DocumentType
	failTypes map[domain.DocumentType]bool
	docs      map[string][]domain.LoanDocument // by loanID
}

func newFakeDocumentSvc() *fakeDocumentSvc {
	return &fakeDocumentSvc{failTypes: make(map[domain.DocumentType]bool), docs: make(map[string][]domain.LoanDocument)}
}

func (f *fakeDocumentSvc) Upload(_ context.Context, _, loanID, customerID string, docType domain.DocumentType, fileName, contentType string, content []byte) (*domain.LoanDocument, error) {
	if f.failTypes[docType] {
		return nil, apperrors.NewAppError(500, "storage unavailable", nil)
	}
	f.uploads = append(f.uploads, docType)
	doc := domain.LoanDocument{DocumentID: "doc-" + string(docType), LoanID: loanID, CustomerID: customerID, Type: docType, FileName: fileName, ContentType: contentType, SizeBytes: int64(len(content))}
	f.docs[loanID] = append(f.docs[loanID], doc)
	return &doc, nil
}

func (f *fakeDocumentSvc) ListByLoan(_ context.Context, loanID string) ([]domain.LoanDocument, error) {
	return f.docs[loanID], nil
}

func (f *fakeDocumentSvc) ListProfileDocuments(_ context.Context, _ string) ([]domain.LoanDocument, error) {
	return nil, nil
}

func (f *fakeDocumentSvc) Download(_ context.Context, _ string) (*domain.LoanDocument, []byte, error) {
	return nil, nil, apperrors.NewNotFoundError("not found")
}

type fakeApprovalSvc struct {
	submitted []string
}

func (f *fakeApprovalSvc) SubmitForApproval(_ context.Context, loan *domain.Loan, submittedAt time.Time) (*domain.LoanApprovalItem, error) {
	f.submitted = append(f.submitted, loan.LoanID)
	item := domain.NewApprovalItem("ap-1", loan.LoanID, loan.ApprovedAmount, submittedAt)
	return &item, nil
}

func (f *fakeApprovalSvc) GetByLoanID(_ context.Context, _ string) (*domain.LoanApprovalItem, error) {
	return nil, apperrors.NewNotFoundError("not found")
}

func (f *fakeApprovalSvc) ListPending(_ context.Context, _, _ int) ([]domain.LoanApprovalItem, error) {
	return nil, nil
}

func (f *fakeApprovalSvc) DecideFirst(_ context.Context, _, _ string, _ domain.DecisionAction, _ string) (*domain.LoanApprovalItem, error) {
	return nil, nil
}

func (f *fakeApprovalSvc) DecideSecond(_ context.Context, _, _ string, _ domain.DecisionAction, _ string) (*domain.LoanApprovalItem, error) {
	return nil, nil
}

type wizardFixture struct {
	svc    portssvc.WizardSvcFacade
	drafts *fakeDraftSvc
	loans  *fakeLoanSvc
	docs   *fakeDocumentSvc
	appr   *fakeApprovalSvc
	elig   *fakeEligibilitySvc
}

func newWizardFixture() *wizardFixture {
	f := &wizardFixture{
		drafts: newFakeDraftSvc(),
		loans:  newFakeLoanSvc(),
		docs:   newFakeDocumentSvc(),
		appr:   &fakeApprovalSvc{},
		elig: &fakeEligibilitySvc{
			g1: domain.GuarantorInfo{Name: "S. Silva", NIC: "905671234V"},
			g2: domain.GuarantorInfo{Name: "N. Fernando", NIC: "915681234V"},
		},
	}
	f.svc = services.NewWizardService(f.drafts, f.elig, fakeCustomerSvc{}, fakeProductSvc{}, f.loans, f.docs, f.appr)
	return f
}

func fillStep1(t *testing.T, f *wizardFixture, userID, sessionID string) *dto.WizardStateResponse {
	t.Helper()
	state, err := f.svc.UpdateDraft(context.Background(), userID, sessionID, dto.DraftPayload{
		CenterID:             "cen-1",
		GroupID:              "grp-1",
		CustomerID:           "cus-1",
		NIC:                  "887341234V",
		GuardianName:         "K. Perera",
		GuardianNIC:          "882341234V",
		GuardianRelationship: "Husband",
		GuardianAddress:      "12 Temple Road, Galle",
		GuardianPhone:        "0771234567",
		Witness2:             "staff-2",
	})
	require.NoError(t, err)
	return state
}

func step2Payload() dto.DraftPayload {
	return dto.DraftPayload{
		CenterID:             "cen-1",
		GroupID:              "grp-1",
		CustomerID:           "cus-1",
		NIC:                  "887341234V",
		GuardianName:         "K. Perera",
		GuardianNIC:          "882341234V",
		GuardianRelationship: "Husband",
		GuardianAddress:      "12 Temple Road, Galle",
		GuardianPhone:        "0771234567",
		Witness2:             "staff-2",
		ProductID:            "prod-1",
		RequestedAmount:      decimal.NewFromInt(100000),
		ApprovedAmount:       decimal.NewFromInt(100000),
		InterestRate:         decimal.NewFromInt(24),
		TenureWeeks:          52,
		DocumentationFee:     decimal.NewFromInt(500),
		BankName:             "Peoples Bank",
		BankBranch:           "Galle",
		AccountNumber:        "123456789",
	}
}

func fillThroughStep2(t *testing.T, f *wizardFixture, userID, sessionID string) *dto.WizardStateResponse {
	t.Helper()
	state, err := f.svc.UpdateDraft(context.Background(), userID, sessionID, step2Payload())
	require.NoError(t, err)
	return state
}

func attachAllDocuments(t *testing.T, f *wizardFixture, userID, sessionID string) {
	t.Helper()
	for _, docType := range domain.RequiredDocumentTypes {
		_, err := f.svc.AttachDocument(context.Background(), userID, sessionID, docType, string(docType)+".jpg", "image/jpeg", []byte("binary"))
		require.NoError(t, err)
	}
}

func TestWizardService_StartSession(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()

	state, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStep)
	assert.Equal(t, "Customer Selection", state.StepName)
	assert.Equal(t, "staff-1", state.Draft.Witness1, "witness 1 is always the creator")
	assert.False(t, state.Dirty)

	t.Run("another user cannot touch the session", func(t *testing.T) {
		_, err := f.svc.GetSession(ctx, "staff-9", state.SessionID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("draft and edit are mutually exclusive", func(t *testing.T) {
		_, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{FromDraftID: "d", EditLoanID: "l"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestWizardService_UpdateDraftDerivations(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()
	start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
	require.NoError(t, err)

	state := fillThroughStep2(t, f, "staff-1", start.SessionID)
	assert.True(t, state.Dirty)
	assert.Equal(t, "S. Silva", state.Draft.Guarantor1.Name)
	assert.Equal(t, "N. Fernando", state.Draft.Guarantor2.Name)
	assert.True(t, state.Draft.ProcessingFee.Equal(decimal.NewFromInt(2000)), "52 weeks lands in the 2000 tier")
	// 124000 / 52 rounded up
	assert.True(t, state.Draft.Rental.Equal(decimal.NewFromInt(2385)), "got %s", state.Draft.Rental)
}

func TestWizardService_Navigation(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()
	start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
	require.NoError(t, err)
	sessionID := start.SessionID

	t.Run("next is blocked until the stage passes", func(t *testing.T) {
		state, err := f.svc.Next(ctx, "staff-1", sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, state.CurrentStep)
		require.NotNil(t, state.StepError)
		assert.Equal(t, "centerID", state.StepError.Field)
	})

	t.Run("next advances once the stage passes", func(t *testing.T) {
		fillStep1(t, f, "staff-1", sessionID)
		state, err := f.svc.Next(ctx, "staff-1", sessionID)
		require.NoError(t, err)
		assert.Equal(t, 2, state.CurrentStep)
		assert.Nil(t, state.StepError)
	})

	t.Run("previous always goes back", func(t *testing.T) {
		state, err := f.svc.Previous(ctx, "staff-1", sessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, state.CurrentStep)
	})

	t.Run("forward jump halts at the first failing stage", func(t *testing.T) {
		state, err := f.svc.GoTo(ctx, "staff-1", sessionID, domain.StepReviewSubmit)
		require.NoError(t, err)
		require.NotNil(t, state.StepError)
		assert.Equal(t, domain.StepLoanDetails, state.StepError.Step)
		assert.Equal(t, 2, state.CurrentStep, "the wizard lands on the failing stage")
	})

	t.Run("forward jump succeeds on a complete draft", func(t *testing.T) {
		fillThroughStep2(t, f, "staff-1", sessionID)
		attachAllDocuments(t, f, "staff-1", sessionID)
		state, err := f.svc.GoTo(ctx, "staff-1", sessionID, domain.StepReviewSubmit)
		require.NoError(t, err)
		assert.Equal(t, 4, state.CurrentStep)
		assert.Nil(t, state.StepError)
	})
}

func TestWizardService_ReloanLock(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()
	blocked := domain.ComputeReloanEligibility(10, 52, decimal.NewFromInt(80000))
	f.elig.reloan = &portssvc.ReloanCheck{AlreadyTaken: true, Eligibility: &blocked, ProductName: "Abhilasha"}

	start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
	require.NoError(t, err)
	state := fillThroughStep2(t, f, "staff-1", start.SessionID)

	assert.True(t, state.Locked, "ineligible reloan locks the terms")
	require.NotNil(t, state.Reloan)
	assert.False(t, state.Reloan.IsEligible)

	state, err = f.svc.GoTo(ctx, "staff-1", start.SessionID, domain.StepDocuments)
	require.NoError(t, err)
	require.NotNil(t, state.StepError)
	assert.Contains(t, state.StepError.Message, "70%")

	t.Run("locked terms reject amount changes", func(t *testing.T) {
		p := step2Payload()
		p.RequestedAmount = decimal.NewFromInt(150000)
		p.ApprovedAmount = decimal.NewFromInt(150000)
		_, err := f.svc.UpdateDraft(ctx, "staff-1", start.SessionID, p)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("switching product clears the way", func(t *testing.T) {
		p := step2Payload()
		p.ProductID = "prod-2"
		_, err := f.svc.UpdateDraft(ctx, "staff-1", start.SessionID, p)
		require.NoError(t, err)
	})
}

func TestWizardService_EligibleReloanDeduction(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()
	eligible := domain.ComputeReloanEligibility(40, 52, decimal.NewFromInt(23000))
	f.elig.reloan = &portssvc.ReloanCheck{AlreadyTaken: true, Eligibility: &eligible, ProductName: "Abhilasha"}

	start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
	require.NoError(t, err)
	state := fillThroughStep2(t, f, "staff-1", start.SessionID)

	assert.False(t, state.Locked)
	assert.True(t, state.Draft.ReloanDeductionAmount.Equal(decimal.NewFromInt(23000)),
		"outstanding balance is deducted from the payout")
}

func TestWizardService_SaveAsDraftAndResume(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()
	start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
	require.NoError(t, err)
	fillStep1(t, f, "staff-1", start.SessionID)

	saved, err := f.svc.SaveAsDraft(ctx, "staff-1", start.SessionID, "Jayawardena application")
	require.NoError(t, err)
	assert.Equal(t, "Jayawardena application", saved.Name)

	state, err := f.svc.GetSession(ctx, "staff-1", start.SessionID)
	require.NoError(t, err)
	assert.False(t, state.Dirty, "saving clears the dirty flag")

	resumed, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{FromDraftID: saved.DraftID})
	require.NoError(t, err)
	assert.Equal(t, "cus-1", resumed.Draft.CustomerID)
	assert.Equal(t, saved.DraftID, resumed.FromDraftID)
}

func TestWizardService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("incomplete draft is blocked and the wizard moves to the failure", func(t *testing.T) {
		f := newWizardFixture()
		start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
		require.NoError(t, err)
		fillStep1(t, f, "staff-1", start.SessionID)

		result, err := f.svc.Submit(ctx, "staff-1", start.SessionID)
		require.NoError(t, err)
		require.NotNil(t, result.StepError)
		assert.Equal(t, domain.StepLoanDetails, result.StepError.Step)
		assert.Empty(t, result.LoanID)
		assert.Empty(t, f.loans.created)
	})

	t.Run("complete draft creates the loan, opens approval and uploads documents", func(t *testing.T) {
		f := newWizardFixture()
		start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
		require.NoError(t, err)
		fillThroughStep2(t, f, "staff-1", start.SessionID)
		attachAllDocuments(t, f, "staff-1", start.SessionID)

		result, err := f.svc.Submit(ctx, "staff-1", start.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "loan-1", result.LoanID)
		assert.True(t, result.Created)
		assert.Empty(t, result.DocumentErrors)
		assert.False(t, result.PromptDeleteDraft)

		require.Len(t, f.loans.created, 1)
		assert.Equal(t, domain.LoanStepNew, f.loans.created[0].LoanStep)
		assert.Equal(t, []string{"loan-1"}, f.appr.submitted)
		assert.Len(t, f.docs.uploads, len(domain.RequiredDocumentTypes))
	})

	t.Run("a repeat submit does not create a second loan", func(t *testing.T) {
		f := newWizardFixture()
		start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
		require.NoError(t, err)
		fillThroughStep2(t, f, "staff-1", start.SessionID)
		attachAllDocuments(t, f, "staff-1", start.SessionID)

		_, err = f.svc.Submit(ctx, "staff-1", start.SessionID)
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, "staff-1", start.SessionID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Len(t, f.loans.created, 1)
		assert.Equal(t, []string{"loan-1"}, f.appr.submitted, "approval is opened once")
	})

	t.Run("a failed upload is reported and retried alone", func(t *testing.T) {
		f := newWizardFixture()
		f.docs.failTypes[domain.DocumentBankPassbook] = true

		start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
		require.NoError(t, err)
		fillThroughStep2(t, f, "staff-1", start.SessionID)
		attachAllDocuments(t, f, "staff-1", start.SessionID)

		result, err := f.svc.Submit(ctx, "staff-1", start.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "loan-1", result.LoanID, "the loan is persisted despite the upload failure")
		require.Len(t, result.DocumentErrors, 1)
		assert.Equal(t, string(domain.DocumentBankPassbook), result.DocumentErrors[0].Type)
		uploadsAfterSubmit := len(f.docs.uploads)

		f.docs.failTypes[domain.DocumentBankPassbook] = false
		retry, err := f.svc.RetryDocumentUploads(ctx, "staff-1", start.SessionID)
		require.NoError(t, err)
		assert.Empty(t, retry.DocumentErrors)
		assert.Equal(t, uploadsAfterSubmit+1, len(f.docs.uploads), "only the failed document is re-uploaded")
	})

	t.Run("submitting a session started from a draft offers draft deletion", func(t *testing.T) {
		f := newWizardFixture()
		start, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{})
		require.NoError(t, err)
		fillThroughStep2(t, f, "staff-1", start.SessionID)
		saved, err := f.svc.SaveAsDraft(ctx, "staff-1", start.SessionID, "wip")
		require.NoError(t, err)

		resumed, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{FromDraftID: saved.DraftID})
		require.NoError(t, err)
		attachAllDocuments(t, f, "staff-1", resumed.SessionID)

		result, err := f.svc.Submit(ctx, "staff-1", resumed.SessionID)
		require.NoError(t, err)
		assert.True(t, result.PromptDeleteDraft)
		assert.Equal(t, saved.DraftID, result.DraftID)
	})
}

func TestWizardService_EditMode(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture()

	sentBack := &domain.Loan{
		LoanID:          "loan-7",
		ProductID:       "prod-1",
		CenterID:        "cen-1",
		GroupID:         "grp-1",
		CustomerID:      "cus-1",
		RequestedAmount: decimal.NewFromInt(100000),
		ApprovedAmount:  decimal.NewFromInt(100000),
		InterestRate:    decimal.NewFromInt(24),
		TenureWeeks:     52,
		Status:          domain.LoanSentBack,
		Witness1:        "staff-1",
		Witness2:        "staff-2",
		BankName:        "Peoples Bank",
		BankBranch:      "Galle",
		AccountNumber:   "123456789",
	}
	sentBack.CreatedBy = "staff-1"
	f.loans.loans["loan-7"] = sentBack
	for _, docType := range domain.RequiredDocumentTypes {
		f.docs.docs["loan-7"] = append(f.docs.docs["loan-7"], domain.LoanDocument{
			DocumentID: "doc-" + string(docType), LoanID: "loan-7", Type: docType,
		})
	}

	t.Run("only the creator may edit", func(t *testing.T) {
		_, err := f.svc.StartSession(ctx, "staff-9", dto.StartWizardRequest{EditLoanID: "loan-7"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("edit session resubmits instead of creating", func(t *testing.T) {
		state, err := f.svc.StartSession(ctx, "staff-1", dto.StartWizardRequest{EditLoanID: "loan-7"})
		require.NoError(t, err)
		assert.True(t, state.EditMode)
		assert.Equal(t, "loan-7", state.EditLoanID)
		assert.Len(t, state.Draft.ExistingDocs, len(domain.RequiredDocumentTypes),
			"persisted documents carry over")

		fillThroughStep2(t, f, "staff-1", state.SessionID)
		attachAllDocuments(t, f, "staff-1", state.SessionID)

		result, err := f.svc.Submit(ctx, "staff-1", state.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "loan-7", result.LoanID)
		assert.False(t, result.Created)
		require.Len(t, f.loans.updated, 1)
		assert.Equal(t, domain.LoanStepResubmitted, f.loans.updated[0].LoanStep)
		assert.Equal(t, "loan-7", f.loans.updated[0].EditID)
		assert.Empty(t, f.loans.created)
	})
}
