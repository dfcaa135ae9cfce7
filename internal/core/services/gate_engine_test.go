package services

import (
	"testing"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *domain.LoanProduct {
	return &domain.LoanProduct{
		ProductID:           "prod-1",
		Name:                "Abhilasha",
		MinLimit:            dec("25000"),
		MaxLimit:            dec("300000"),
		DefaultInterestRate: dec("24"),
		DefaultTenureWeeks:  52,
		Active:              true,
	}
}

func reloanProgress(paidWeeks, totalWeeks int, balance string) *domain.ReloanEligibility {
	rel := domain.ComputeReloanEligibility(paidWeeks, totalWeeks, dec(balance))
	return &rel
}

func validStep1Draft() *domain.LoanApplicationDraft {
	return &domain.LoanApplicationDraft{
		CenterID:             "cen-1",
		GroupID:              "grp-1",
		CustomerID:           "cus-1",
		NIC:                  "887341234V",
		GuardianName:         "K. Perera",
		GuardianNIC:          "882341234V", // day 234, male
		GuardianRelationship: "Husband",
		GuardianAddress:      "12 Temple Road, Galle",
		GuardianPhone:        "0771234567",
		Witness1:             "staff-1",
		Witness2:             "staff-2",
	}
}

func validStep2Draft() *domain.LoanApplicationDraft {
	d := validStep1Draft()
	d.ProductID = "prod-1"
	d.RequestedAmount = dec("100000")
	d.ApprovedAmount = dec("100000")
	d.InterestRate = dec("24")
	d.TenureWeeks = 52
	d.DocumentationFee = dec("500")
	d.Guarantor1 = domain.GuarantorInfo{Name: "S. Silva", NIC: "905671234V"}
	d.Guarantor2 = domain.GuarantorInfo{Name: "N. Fernando", NIC: "915681234V"}
	d.BankName = "Peoples Bank"
	d.BankBranch = "Galle"
	d.AccountNumber = "123456789"
	d.RecomputeDerivedFees()
	return d
}

func fullDraft() *domain.LoanApplicationDraft {
	d := validStep2Draft()
	d.Attachments = map[domain.DocumentType]domain.DocumentAttachment{}
	for _, t := range domain.RequiredDocumentTypes {
		d.Attachments[t] = domain.DocumentAttachment{
			FileName: string(t) + ".jpg", ContentType: "image/jpeg", SizeBytes: 1024,
		}
	}
	return d
}

func stepCtx() StepContext {
	return StepContext{
		Customer: &domain.Customer{CustomerID: "cus-1"},
		Product:  testProduct(),
	}
}

func TestValidateStep_CustomerSelection(t *testing.T) {
	t.Run("complete step passes", func(t *testing.T) {
		assert.Nil(t, ValidateStep(domain.StepCustomerSelection, validStep1Draft(), stepCtx()))
	})

	t.Run("missing selections fail in priority order", func(t *testing.T) {
		d := validStep1Draft()
		d.CenterID, d.GroupID, d.CustomerID = "", "", ""
		stepErr := ValidateStep(domain.StepCustomerSelection, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "centerID", stepErr.Field)

		d.CenterID = "cen-1"
		stepErr = ValidateStep(domain.StepCustomerSelection, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "groupID", stepErr.Field)

		d.GroupID = "grp-1"
		stepErr = ValidateStep(domain.StepCustomerSelection, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "customerID", stepErr.Field)
	})

	t.Run("missing customer record fails", func(t *testing.T) {
		sctx := stepCtx()
		sctx.Customer = nil
		stepErr := ValidateStep(domain.StepCustomerSelection, validStep1Draft(), sctx)
		require.NotNil(t, stepErr)
		assert.Equal(t, "customerID", stepErr.Field)
	})

	t.Run("female joint borrower NIC fails", func(t *testing.T) {
		d := validStep1Draft()
		d.GuardianNIC = "887341234V" // day 734, female
		stepErr := ValidateStep(domain.StepCustomerSelection, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "guardianNIC", stepErr.Field)
		assert.Contains(t, stepErr.Message, "male")
	})

	t.Run("malformed joint borrower NIC fails", func(t *testing.T) {
		d := validStep1Draft()
		d.GuardianNIC = "12345"
		stepErr := ValidateStep(domain.StepCustomerSelection, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "guardianNIC", stepErr.Field)
	})

	t.Run("phone must be exactly 10 digits", func(t *testing.T) {
		for _, phone := range []string{"", "07712345", "07712345678", "077123456a"} {
			d := validStep1Draft()
			d.GuardianPhone = phone
			stepErr := ValidateStep(domain.StepCustomerSelection, d, stepCtx())
			require.NotNil(t, stepErr, "phone %q should fail", phone)
			assert.Equal(t, "guardianPhone", stepErr.Field)
		}
	})

	t.Run("witnesses must be distinct", func(t *testing.T) {
		d := validStep1Draft()
		d.Witness2 = d.Witness1
		stepErr := ValidateStep(domain.StepCustomerSelection, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "witness2", stepErr.Field)
	})
}

func TestValidateStep_LoanDetails(t *testing.T) {
	t.Run("complete step passes", func(t *testing.T) {
		assert.Nil(t, ValidateStep(domain.StepLoanDetails, validStep2Draft(), stepCtx()))
	})

	t.Run("requested amount outside product band fails", func(t *testing.T) {
		for _, amount := range []string{"24999", "300001"} {
			d := validStep2Draft()
			d.RequestedAmount = dec(amount)
			d.ApprovedAmount = dec(amount)
			stepErr := ValidateStep(domain.StepLoanDetails, d, stepCtx())
			require.NotNil(t, stepErr, "amount %s should fail", amount)
			assert.Equal(t, "requestedAmount", stepErr.Field)
			assert.Contains(t, stepErr.Message, "Abhilasha")
		}
	})

	t.Run("band boundaries pass", func(t *testing.T) {
		for _, amount := range []string{"25000", "300000"} {
			d := validStep2Draft()
			d.RequestedAmount = dec(amount)
			d.ApprovedAmount = dec(amount)
			d.RecomputeDerivedFees()
			assert.Nil(t, ValidateStep(domain.StepLoanDetails, d, stepCtx()), "amount %s should pass", amount)
		}
	})

	t.Run("approved cannot exceed requested", func(t *testing.T) {
		d := validStep2Draft()
		d.ApprovedAmount = dec("150000")
		d.RequestedAmount = dec("100000")
		stepErr := ValidateStep(domain.StepLoanDetails, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "approvedAmount", stepErr.Field)
	})

	t.Run("documentation fee capped by approved amount", func(t *testing.T) {
		d := validStep2Draft()
		d.DocumentationFee = d.ApprovedAmount.Add(dec("1"))
		stepErr := ValidateStep(domain.StepLoanDetails, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "documentationFee", stepErr.Field)
	})

	t.Run("ineligible reloan blocks with progress details", func(t *testing.T) {
		sctx := stepCtx()
		sctx.Reloan = &portssvc.ReloanCheck{
			AlreadyTaken: true,
			Eligibility:  reloanProgress(20, 52, "61538.40"),
			ProductName:  "Abhilasha",
		}
		stepErr := ValidateStep(domain.StepLoanDetails, validStep2Draft(), sctx)
		require.NotNil(t, stepErr)
		assert.Contains(t, stepErr.Message, "Abhilasha")
		assert.Contains(t, stepErr.Message, "70%")
		require.NotNil(t, stepErr.Eligibility)
		assert.False(t, stepErr.Eligibility.IsEligible)
	})

	t.Run("eligible reloan passes", func(t *testing.T) {
		sctx := stepCtx()
		sctx.Reloan = &portssvc.ReloanCheck{
			AlreadyTaken: true,
			Eligibility:  reloanProgress(40, 52, "23076.90"),
			ProductName:  "Abhilasha",
		}
		assert.Nil(t, ValidateStep(domain.StepLoanDetails, validStep2Draft(), sctx))
	})

	t.Run("edit mode skips the reloan block", func(t *testing.T) {
		sctx := stepCtx()
		sctx.EditMode = true
		sctx.Reloan = &portssvc.ReloanCheck{
			AlreadyTaken: true,
			Eligibility:  reloanProgress(5, 52, "90000"),
			ProductName:  "Abhilasha",
		}
		assert.Nil(t, ValidateStep(domain.StepLoanDetails, validStep2Draft(), sctx))
	})

	t.Run("missing second guarantor names the gap", func(t *testing.T) {
		d := validStep2Draft()
		d.Guarantor2 = domain.GuarantorInfo{}
		stepErr := ValidateStep(domain.StepLoanDetails, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "guarantor2", stepErr.Field)
		assert.Contains(t, stepErr.Message, "Guarantor 02 is missing")
	})

	t.Run("non numeric account number fails", func(t *testing.T) {
		d := validStep2Draft()
		d.AccountNumber = "12-34-56"
		stepErr := ValidateStep(domain.StepLoanDetails, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, "accountNumber", stepErr.Field)
	})
}

func TestValidateStep_Documents(t *testing.T) {
	t.Run("all required documents pass", func(t *testing.T) {
		assert.Nil(t, ValidateStep(domain.StepDocuments, fullDraft(), stepCtx()))
	})

	t.Run("missing documents listed by display name", func(t *testing.T) {
		d := fullDraft()
		delete(d.Attachments, domain.DocumentNICBack)
		delete(d.Attachments, domain.DocumentBankPassbook)
		stepErr := ValidateStep(domain.StepDocuments, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, domain.StepDocuments, stepErr.Step)
		assert.Contains(t, stepErr.Message, "NIC Back")
		assert.Contains(t, stepErr.Message, "Bank Passbook")
		assert.NotContains(t, stepErr.Message, "NIC Front")
	})

	t.Run("existing document reference satisfies the requirement", func(t *testing.T) {
		d := fullDraft()
		delete(d.Attachments, domain.DocumentNICFront)
		d.ExistingDocs = []domain.DocumentRef{
			{DocumentID: "doc-1", Type: domain.DocumentNICFront, Inherited: true},
		}
		assert.Nil(t, ValidateStep(domain.StepDocuments, d, stepCtx()))
	})
}

func TestValidateStep_ReviewSubmitHasNoGate(t *testing.T) {
	assert.Nil(t, ValidateStep(domain.StepReviewSubmit, &domain.LoanApplicationDraft{}, StepContext{}))
}

func TestFirstFailingStep(t *testing.T) {
	t.Run("jump to documents blocked by earlier loan details failure", func(t *testing.T) {
		d := validStep2Draft()
		d.BankName = ""
		stepErr := FirstFailingStep(domain.StepDocuments, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, domain.StepLoanDetails, stepErr.Step)
		assert.Equal(t, "bankName", stepErr.Field)
	})

	t.Run("earliest failure wins over later ones", func(t *testing.T) {
		d := validStep2Draft()
		d.Witness2 = d.Witness1
		d.BankName = ""
		stepErr := FirstFailingStep(domain.StepReviewSubmit, d, stepCtx())
		require.NotNil(t, stepErr)
		assert.Equal(t, domain.StepCustomerSelection, stepErr.Step)
	})

	t.Run("clean draft allows the jump", func(t *testing.T) {
		assert.Nil(t, FirstFailingStep(domain.StepReviewSubmit, fullDraft(), stepCtx()))
	})
}
