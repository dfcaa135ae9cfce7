package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// wizardSession is the live state of one in-progress application. Sessions
// are single-writer: every operation takes the session lock, and submit flips
// isProcessing so concurrent mutations are rejected instead of interleaved.
type wizardSession struct {
	mu sync.Mutex

	sessionID string
	userID    string

	draft        domain.LoanApplicationDraft
	currentStep  domain.WizardStep
	dirty        bool
	isProcessing bool

	editMode   bool
	editLoanID string

	fromDraftID string
	savedAsID   string // draft id this session was last saved under

	reloan *portssvc.ReloanCheck

	// staged holds attached document binaries until submit. failed remembers
	// which staged uploads did not go through, for targeted retry.
	staged map[domain.DocumentType]stagedDocument
	failed map[domain.DocumentType]string

	submittedLoanID string
}

type stagedDocument struct {
	fileName    string
	contentType string
	content     []byte
}

// wizardService drives the four-stage application flow. It owns no storage of
// its own beyond the session map; drafts, loans, documents and approvals all
// go through their services.
type wizardService struct {
	BaseService

	mu       sync.RWMutex
	sessions map[string]*wizardSession

	draftSvc       portssvc.DraftSvcFacade
	eligibilitySvc portssvc.EligibilitySvcFacade
	customerSvc    portssvc.CustomerSvcFacade
	productSvc     portssvc.ProductSvcFacade
	loanSvc        portssvc.LoanSvcFacade
	documentSvc    portssvc.DocumentSvcFacade
	approvalSvc    portssvc.ApprovalSvcFacade

	now func() time.Time
}

var _ portssvc.WizardSvcFacade = (*wizardService)(nil)

func NewWizardService(
	draftSvc portssvc.DraftSvcFacade,
	eligibilitySvc portssvc.EligibilitySvcFacade,
	customerSvc portssvc.CustomerSvcFacade,
	productSvc portssvc.ProductSvcFacade,
	loanSvc portssvc.LoanSvcFacade,
	documentSvc portssvc.DocumentSvcFacade,
	approvalSvc portssvc.ApprovalSvcFacade,
) *wizardService {
	return &wizardService{
		sessions:       make(map[string]*wizardSession),
		draftSvc:       draftSvc,
		eligibilitySvc: eligibilitySvc,
		customerSvc:    customerSvc,
		productSvc:     productSvc,
		loanSvc:        loanSvc,
		documentSvc:    documentSvc,
		approvalSvc:    approvalSvc,
		now:            time.Now,
	}
}

func (s *wizardService) StartSession(ctx context.Context, userID string, req dto.StartWizardRequest) (*dto.WizardStateResponse, error) {
	if req.FromDraftID != "" && req.EditLoanID != "" {
		return nil, apperrors.NewValidationFailedError("a session resumes a draft or edits a loan, not both")
	}

	sess := &wizardSession{
		sessionID:   uuid.NewString(),
		userID:      userID,
		currentStep: domain.StepCustomerSelection,
		staged:      make(map[domain.DocumentType]stagedDocument),
		failed:      make(map[domain.DocumentType]string),
	}
	sess.draft.Witness1 = userID

	switch {
	case req.FromDraftID != "":
		saved, err := s.draftSvc.GetDraft(ctx, userID, req.FromDraftID)
		if err != nil {
			return nil, err
		}
		sess.draft = saved.Snapshot
		sess.draft.Witness1 = userID
		sess.currentStep = saved.CurrentStep
		sess.fromDraftID = saved.DraftID
		sess.savedAsID = saved.DraftID

	case req.EditLoanID != "":
		loan, err := s.loanSvc.GetLoanByID(ctx, req.EditLoanID)
		if err != nil {
			return nil, err
		}
		if loan.Status != domain.LoanSentBack {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("loan %s is not editable in status %s", loan.LoanID, loan.Status))
		}
		if loan.CreatedBy != userID {
			return nil, apperrors.NewForbiddenError("only the original creator may edit a sent-back application")
		}
		sess.draft = loanToDraft(loan)
		sess.editMode = true
		sess.editLoanID = loan.LoanID

		// Carry the loan's persisted documents, so the documents gate passes
		// without re-uploading unchanged files.
		docs, err := s.documentSvc.ListByLoan(ctx, loan.LoanID)
		if err != nil {
			return nil, err
		}
		for _, d := range docs {
			sess.draft.ExistingDocs = append(sess.draft.ExistingDocs, domain.DocumentRef{
				DocumentID: d.DocumentID,
				Type:       d.Type,
				Inherited:  d.Inherited,
			})
		}
	}

	if err := s.refreshDerived(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.sessionID] = sess
	s.mu.Unlock()

	s.LogInfo(ctx, "wizard session started", "sessionID", sess.sessionID, "userID", userID, "editMode", sess.editMode, "fromDraftID", sess.fromDraftID)
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) GetSession(ctx context.Context, userID, sessionID string) (*dto.WizardStateResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) UpdateDraft(ctx context.Context, userID, sessionID string, req dto.DraftPayload) (*dto.WizardStateResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isProcessing {
		return nil, apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}

	prev := sess.draft
	next := req.ApplyToDraft(sess.draft)
	next.Witness1 = sess.userID

	// An ineligible reloan locks the terms fields server side. Product and
	// customer stay editable so the officer can clear the block.
	if termsLocked(sess) && next.ProductID == prev.ProductID && next.CustomerID == prev.CustomerID && termsChanged(&prev, &next) {
		return nil, apperrors.NewValidationFailedError("loan terms are locked while the reloan check is ineligible; pick a different product or customer")
	}

	// Product defaults flow in once, when the product is first selected.
	if next.ProductID != prev.ProductID && next.ProductID != "" {
		if product, perr := s.productSvc.GetProductByID(ctx, next.ProductID); perr == nil {
			if next.InterestRate.IsZero() {
				next.InterestRate = product.DefaultInterestRate
			}
			if next.TenureWeeks == 0 {
				next.TenureWeeks = product.DefaultTenureWeeks
			}
		}
	}

	sess.draft = next
	if err := s.refreshDerived(ctx, sess); err != nil {
		return nil, err
	}
	sess.dirty = true
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) AttachDocument(ctx context.Context, userID, sessionID string, docType domain.DocumentType, fileName, contentType string, content []byte) (*dto.WizardStateResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isProcessing {
		return nil, apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}

	if _, ok := domain.DocumentDisplayName[docType]; !ok {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown document type '%s'", docType))
	}
	if len(content) > domain.MaxDocumentSizeBytes {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("%s exceeds the %d MB size limit", domain.DocumentDisplayName[docType], domain.MaxDocumentSizeBytes/(1024*1024)))
	}
	if !domain.AllowedDocumentContentTypes[contentType] {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("content type '%s' is not accepted; use JPEG, PNG or PDF", contentType))
	}

	sess.staged[docType] = stagedDocument{fileName: fileName, contentType: contentType, content: content}
	delete(sess.failed, docType)
	if sess.draft.Attachments == nil {
		sess.draft.Attachments = make(map[domain.DocumentType]domain.DocumentAttachment)
	}
	sess.draft.Attachments[docType] = domain.DocumentAttachment{
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   int64(len(content)),
	}
	sess.dirty = true
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) Next(ctx context.Context, userID, sessionID string) (*dto.WizardStateResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isProcessing {
		return nil, apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}
	if sess.currentStep >= domain.StepReviewSubmit {
		return s.stateOf(sess, nil), nil
	}

	sctx, err := s.stepContext(ctx, sess)
	if err != nil {
		return nil, err
	}
	if stepErr := ValidateStep(sess.currentStep, &sess.draft, sctx); stepErr != nil {
		return s.stateOf(sess, stepErr), nil
	}
	sess.currentStep++
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) Previous(ctx context.Context, userID, sessionID string) (*dto.WizardStateResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isProcessing {
		return nil, apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}
	if sess.currentStep > domain.StepCustomerSelection {
		sess.currentStep--
	}
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) GoTo(ctx context.Context, userID, sessionID string, step domain.WizardStep) (*dto.WizardStateResponse, error) {
	if step < domain.StepCustomerSelection || step > domain.StepReviewSubmit {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown wizard step %d", step))
	}
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isProcessing {
		return nil, apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}

	// Backward jumps are always allowed; forward jumps re-validate every
	// intervening stage and halt on the first failure.
	if step > sess.currentStep {
		sctx, err := s.stepContext(ctx, sess)
		if err != nil {
			return nil, err
		}
		if stepErr := FirstFailingStep(step, &sess.draft, sctx); stepErr != nil {
			sess.currentStep = stepErr.Step
			return s.stateOf(sess, stepErr), nil
		}
	}
	sess.currentStep = step
	return s.stateOf(sess, nil), nil
}

func (s *wizardService) SaveAsDraft(ctx context.Context, userID, sessionID, name string) (*domain.SavedDraft, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.isProcessing {
		return nil, apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}

	saved, err := s.draftSvc.SaveDraft(ctx, userID, sess.savedAsID, name, sess.draft, sess.currentStep)
	if err != nil {
		return nil, err
	}
	sess.savedAsID = saved.DraftID
	sess.dirty = false
	return saved, nil
}

// Submit re-validates every gated stage, persists the canonical loan, opens
// the approval pass and then uploads the staged documents one by one. The
// loan write and the uploads are deliberately separate units of work: a
// single bad file must not void an otherwise valid application.
func (s *wizardService) Submit(ctx context.Context, userID, sessionID string) (*dto.SubmitResultResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.isProcessing {
		sess.mu.Unlock()
		return nil, apperrors.NewStaleStateError("a submit is already in progress for this session")
	}
	if sess.submittedLoanID != "" && !sess.editMode {
		sess.mu.Unlock()
		return nil, apperrors.NewStaleStateError("this session already submitted a loan; retry the failed document uploads instead")
	}
	sess.isProcessing = true
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.isProcessing = false
		sess.mu.Unlock()
	}()

	sctx, err := s.stepContext(ctx, sess)
	if err != nil {
		return nil, err
	}
	if stepErr := FirstFailingStep(domain.StepReviewSubmit, &sess.draft, sctx); stepErr != nil {
		sess.mu.Lock()
		sess.currentStep = stepErr.Step
		sess.mu.Unlock()
		return &dto.SubmitResultResponse{StepError: stepErr}, nil
	}

	loanStep := domain.LoanStepNew
	if sess.editMode {
		loanStep = domain.LoanStepResubmitted
	}
	payload := dto.BuildLoanPayload(&sess.draft, loanStep, sess.editLoanID)

	var loan *domain.Loan
	if sess.editMode {
		loan, err = s.loanSvc.UpdateLoan(ctx, userID, payload)
	} else {
		loan, err = s.loanSvc.CreateLoan(ctx, userID, payload)
	}
	if err != nil {
		return nil, err
	}
	sess.submittedLoanID = loan.LoanID

	if _, err := s.approvalSvc.SubmitForApproval(ctx, loan, s.now()); err != nil {
		return nil, err
	}

	docErrors := s.uploadStaged(ctx, sess, loan)

	sess.mu.Lock()
	sess.dirty = false
	promptDelete := sess.fromDraftID != ""
	draftID := sess.fromDraftID
	sess.mu.Unlock()

	s.LogInfo(ctx, "wizard submit completed", "sessionID", sessionID, "loanID", loan.LoanID, "created", !sess.editMode, "documentFailures", len(docErrors))
	return &dto.SubmitResultResponse{
		LoanID:            loan.LoanID,
		Created:           !sess.editMode,
		DocumentErrors:    docErrors,
		PromptDeleteDraft: promptDelete,
		DraftID:           draftID,
	}, nil
}

// RetryDocumentUploads retries only the uploads that failed during submit.
// The loan record is left untouched.
func (s *wizardService) RetryDocumentUploads(ctx context.Context, userID, sessionID string) (*dto.SubmitResultResponse, error) {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.isProcessing {
		sess.mu.Unlock()
		return nil, apperrors.NewStaleStateError("a submit is already in progress for this session")
	}
	if sess.submittedLoanID == "" {
		sess.mu.Unlock()
		return nil, apperrors.NewValidationFailedError("nothing to retry; the application has not been submitted")
	}
	sess.isProcessing = true
	loanID := sess.submittedLoanID
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.isProcessing = false
		sess.mu.Unlock()
	}()

	loan, err := s.loanSvc.GetLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	docErrors := s.uploadStaged(ctx, sess, loan)
	return &dto.SubmitResultResponse{
		LoanID:         loanID,
		DocumentErrors: docErrors,
	}, nil
}

func (s *wizardService) CloseSession(ctx context.Context, userID, sessionID string) error {
	sess, err := s.session(userID, sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	if sess.isProcessing {
		sess.mu.Unlock()
		return apperrors.NewStaleStateError("the session is submitting; wait for it to finish")
	}
	sess.mu.Unlock()

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	s.LogInfo(ctx, "wizard session closed", "sessionID", sessionID, "userID", userID)
	return nil
}

// uploadStaged pushes pending staged documents for the loan, one at a time.
// Successes are dropped from the staging area; failures are kept with their
// message so a retry touches only what failed.
func (s *wizardService) uploadStaged(ctx context.Context, sess *wizardSession, loan *domain.Loan) []dto.DocumentUploadError {
	sess.mu.Lock()
	pending := make(map[domain.DocumentType]stagedDocument, len(sess.staged))
	for t, doc := range sess.staged {
		pending[t] = doc
	}
	sess.mu.Unlock()

	var failures []dto.DocumentUploadError
	for _, t := range domain.RequiredDocumentTypes {
		doc, ok := pending[t]
		if !ok {
			continue
		}
		_, err := s.documentSvc.Upload(ctx, sess.userID, loan.LoanID, loan.CustomerID, t, doc.fileName, doc.contentType, doc.content)
		sess.mu.Lock()
		if err != nil {
			sess.failed[t] = err.Error()
			failures = append(failures, dto.DocumentUploadError{Type: string(t), Message: err.Error()})
		} else {
			delete(sess.staged, t)
			delete(sess.failed, t)
		}
		sess.mu.Unlock()
	}
	return failures
}

// refreshDerived recomputes everything the user never types: guarantors from
// group membership, the reloan check and deduction, and the fee fields.
func (s *wizardService) refreshDerived(ctx context.Context, sess *wizardSession) error {
	d := &sess.draft

	if d.GroupID != "" && d.CustomerID != "" {
		g1, g2, err := s.eligibilitySvc.DeriveGuarantors(ctx, d.GroupID, d.CustomerID)
		if err != nil {
			return err
		}
		d.Guarantor1, d.Guarantor2 = g1, g2
	} else {
		d.Guarantor1, d.Guarantor2 = domain.GuarantorInfo{}, domain.GuarantorInfo{}
	}

	sess.reloan = nil
	d.ReloanDeductionAmount = decimal.Zero
	if d.CustomerID != "" && d.ProductID != "" {
		check, err := s.eligibilitySvc.EvaluateReloan(ctx, d.CustomerID, d.ProductID)
		if err != nil {
			return err
		}
		sess.reloan = check
		if check.AlreadyTaken && check.Eligibility != nil && check.Eligibility.IsEligible {
			// An eligible reloan settles the outstanding balance out of the
			// new payout.
			d.ReloanDeductionAmount = check.Eligibility.Balance
		}
	}

	d.RecomputeDerivedFees()
	return nil
}

func (s *wizardService) stepContext(ctx context.Context, sess *wizardSession) (StepContext, error) {
	sctx := StepContext{EditMode: sess.editMode, Reloan: sess.reloan}
	d := &sess.draft

	if d.CustomerID != "" {
		customer, err := s.customerSvc.GetCustomerByID(ctx, d.CustomerID)
		if err != nil && !apperrors.IsNotFound(err) {
			return sctx, err
		}
		sctx.Customer = customer
	}
	if d.ProductID != "" {
		product, err := s.productSvc.GetProductByID(ctx, d.ProductID)
		if err != nil && !apperrors.IsNotFound(err) {
			return sctx, err
		}
		sctx.Product = product
	}
	return sctx, nil
}

func (s *wizardService) session(userID, sessionID string) (*wizardSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("wizard session %s not found", sessionID))
	}
	if sess.userID != userID {
		// Session ownership is absolute; do not leak existence to others.
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("wizard session %s not found", sessionID))
	}
	return sess, nil
}

// stateOf builds the response snapshot. Callers hold the session lock, except
// right after StartSession where the session is not yet published.
func (s *wizardService) stateOf(sess *wizardSession, stepErr *domain.StepError) *dto.WizardStateResponse {
	state := &dto.WizardStateResponse{
		SessionID:    sess.sessionID,
		CurrentStep:  int(sess.currentStep),
		StepName:     sess.currentStep.String(),
		Draft:        sess.draft,
		Dirty:        sess.dirty,
		IsProcessing: sess.isProcessing,
		EditMode:     sess.editMode,
		EditLoanID:   sess.editLoanID,
		FromDraftID:  sess.fromDraftID,
		StepError:    stepErr,
	}
	if sess.reloan != nil && sess.reloan.AlreadyTaken {
		state.Reloan = sess.reloan.Eligibility
		state.Locked = termsLocked(sess)
	}
	return state
}

// termsLocked reports whether the current reloan check blocks edits to the
// loan terms. Callers hold the session lock.
func termsLocked(sess *wizardSession) bool {
	return !sess.editMode && sess.reloan != nil && sess.reloan.AlreadyTaken &&
		sess.reloan.Eligibility != nil && !sess.reloan.Eligibility.IsEligible
}

// termsChanged reports whether the payload moves any loan terms field away
// from what the draft already holds.
func termsChanged(prev, next *domain.LoanApplicationDraft) bool {
	return !next.RequestedAmount.Equal(prev.RequestedAmount) ||
		!next.ApprovedAmount.Equal(prev.ApprovedAmount) ||
		!next.InterestRate.Equal(prev.InterestRate) ||
		next.TenureWeeks != prev.TenureWeeks ||
		!next.DocumentationFee.Equal(prev.DocumentationFee)
}

// loanToDraft rebuilds the editable draft from a persisted loan for edit mode.
func loanToDraft(l *domain.Loan) domain.LoanApplicationDraft {
	return domain.LoanApplicationDraft{
		CenterID:   l.CenterID,
		GroupID:    l.GroupID,
		CustomerID: l.CustomerID,

		ProductID:       l.ProductID,
		RequestedAmount: l.RequestedAmount,
		ApprovedAmount:  l.ApprovedAmount,
		InterestRate:    l.InterestRate,
		TenureWeeks:     l.TenureWeeks,
		Rental:          l.Rental,

		GuardianName:         l.GuardianName,
		GuardianNIC:          l.GuardianNIC,
		GuardianRelationship: l.GuardianRelationship,
		GuardianAddress:      l.GuardianAddress,
		GuardianPhone:        l.GuardianPhone,

		Guarantor1: domain.GuarantorInfo{Name: l.Guarantor1Name, NIC: l.Guarantor1NIC},
		Guarantor2: domain.GuarantorInfo{Name: l.Guarantor2Name, NIC: l.Guarantor2NIC},
		Witness1:   l.Witness1,
		Witness2:   l.Witness2,

		ProcessingFee:         l.ProcessingFee,
		DocumentationFee:      l.DocumentationFee,
		ReloanDeductionAmount: l.ReloanDeductionAmount,

		BankName:      l.BankName,
		BankBranch:    l.BankBranch,
		AccountNumber: l.AccountNumber,

		Remarks: l.Remarks,
	}
}
