package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LoanApproval is the database row for an approval item. The two stages are
// flattened into prefixed columns; second_applicable distinguishes "no second
// stage" from "second stage pending".
type LoanApproval struct {
	ApprovalID string          `db:"approval_id"`
	LoanID     string          `db:"loan_id"`
	LoanAmount decimal.Decimal `db:"loan_amount"`
	Status     string          `db:"status"`

	FirstState     string         `db:"first_state"`
	FirstActorID   sql.NullString `db:"first_actor_id"`
	FirstDecidedAt sql.NullTime   `db:"first_decided_at"`
	FirstReason    sql.NullString `db:"first_reason"`

	SecondApplicable bool           `db:"second_applicable"`
	SecondState      sql.NullString `db:"second_state"`
	SecondActorID    sql.NullString `db:"second_actor_id"`
	SecondDecidedAt  sql.NullTime   `db:"second_decided_at"`
	SecondReason     sql.NullString `db:"second_reason"`

	SubmittedAt time.Time `db:"submitted_at"`
	Pass        int       `db:"pass"`
	AuditFields
}
