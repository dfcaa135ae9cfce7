package models

// LoanDocument is the database row for a loan document's metadata. The binary
// itself lives in a separate content table so listings stay cheap.
type LoanDocument struct {
	DocumentID  string `db:"document_id"`
	LoanID      string `db:"loan_id"`
	CustomerID  string `db:"customer_id"`
	DocType     string `db:"doc_type"`
	FileName    string `db:"file_name"`
	ContentType string `db:"content_type"`
	SizeBytes   int64  `db:"size_bytes"`
	Inherited   bool   `db:"inherited"`
	AuditFields
}
