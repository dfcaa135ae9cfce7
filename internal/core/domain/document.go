package domain

// DocumentType names a kind of supporting document attached to a loan.
type DocumentType string

const (
	DocumentNICFront        DocumentType = "nic_front"
	DocumentNICBack         DocumentType = "nic_back"
	DocumentApplicationForm DocumentType = "application_form"
	DocumentResidenceProof  DocumentType = "residence_proof"
	DocumentBankPassbook    DocumentType = "bank_passbook"
)

// RequiredDocumentTypes is the fixed set every application must carry before
// the documents step passes. Order matters for error messages.
var RequiredDocumentTypes = []DocumentType{
	DocumentNICFront,
	DocumentNICBack,
	DocumentApplicationForm,
	DocumentResidenceProof,
	DocumentBankPassbook,
}

// DocumentDisplayName maps document types to the names used in messages.
var DocumentDisplayName = map[DocumentType]string{
	DocumentNICFront:        "NIC Front",
	DocumentNICBack:         "NIC Back",
	DocumentApplicationForm: "Application Form",
	DocumentResidenceProof:  "Residence Proof",
	DocumentBankPassbook:    "Bank Passbook",
}

// MaxDocumentSizeBytes is the client-side upload cap (5 MB), enforced before
// the upload is attempted.
const MaxDocumentSizeBytes = 5 * 1024 * 1024

// AllowedDocumentContentTypes lists the accepted upload content types.
var AllowedDocumentContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// LoanDocument is a persisted document bound to a loan (or inherited from the
// customer profile).
type LoanDocument struct {
	DocumentID  string       `json:"documentID"` // Primary Key (e.g., UUID)
	LoanID      string       `json:"loanID"`
	CustomerID  string       `json:"customerID"`
	Type        DocumentType `json:"type"`
	FileName    string       `json:"fileName"`
	ContentType string       `json:"contentType"`
	SizeBytes   int64        `json:"sizeBytes"`
	Inherited   bool         `json:"inherited"` // carried over from the customer profile
	AuditFields
}

// DocumentRef is the draft-side reference to an already persisted document.
type DocumentRef struct {
	DocumentID string       `json:"documentID"`
	Type       DocumentType `json:"type"`
	Inherited  bool         `json:"inherited"`
}

// DocumentAttachment is a newly attached (not yet uploaded) file in a draft.
type DocumentAttachment struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}
