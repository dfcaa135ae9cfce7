package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// SecondApprovalThresholdAmount is the loan amount at or above which a second,
// final approval stage applies.
var SecondApprovalThresholdAmount = decimal.NewFromInt(200000)

// ApprovalOverdueAfter is how long an item may sit in a pending stage before
// the advisory overdue flag is raised. Display-only; no effect on transitions.
const ApprovalOverdueAfter = time.Hour

// ApprovalStatus is the overall status of an approval item.
type ApprovalStatus string

const (
	StatusPendingFirst  ApprovalStatus = "Pending 1st"
	StatusPendingSecond ApprovalStatus = "Pending 2nd"
	StatusApproved      ApprovalStatus = "Approved"
	StatusSentBack      ApprovalStatus = "Sent Back"
)

// StageState is the sub-state of a single approval stage.
type StageState string

const (
	StagePending  StageState = "Pending"
	StageApproved StageState = "Approved"
	StageSentBack StageState = "Sent Back"
)

// DecisionAction is a reviewer's verdict on a pending stage.
type DecisionAction string

const (
	ActionApprove  DecisionAction = "approve"
	ActionSendBack DecisionAction = "sendback"
)

// Stage transition errors.
var (
	ErrStageDecided       = errors.New("stage already decided")
	ErrStageNotApplicable = errors.New("second approval not applicable for this amount")
	ErrFirstStagePending  = errors.New("first approval still pending")
	ErrReasonRequired     = errors.New("a reason is required to send an application back")
	ErrUnknownAction      = errors.New("unknown decision action")
)

// StageDecision records the outcome (or pending state) of one approval stage.
type StageDecision struct {
	State     StageState `json:"state"`
	ActorID   string     `json:"actorID,omitempty"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	Reason    string     `json:"reason,omitempty"` // non-empty only for Sent Back
}

// LoanApprovalItem is the approval-facing projection of a submitted loan.
// Second is nil exactly when the amount is below the threshold.
type LoanApprovalItem struct {
	ApprovalID  string          `json:"approvalID"` // Primary Key (e.g., UUID)
	LoanID      string          `json:"loanID"`
	LoanAmount  decimal.Decimal `json:"loanAmount"`
	Status      ApprovalStatus  `json:"status"`
	First       StageDecision   `json:"firstApproval"`
	Second      *StageDecision  `json:"secondApproval,omitempty"`
	SubmittedAt time.Time       `json:"submittedAt"`
	Pass        int             `json:"pass"` // resubmission pass number, starts at 1
	AuditFields
}

// NewApprovalItem starts a fresh approval pass for a submitted loan.
func NewApprovalItem(approvalID, loanID string, amount decimal.Decimal, submittedAt time.Time) LoanApprovalItem {
	item := LoanApprovalItem{
		ApprovalID:  approvalID,
		LoanID:      loanID,
		LoanAmount:  amount,
		Status:      StatusPendingFirst,
		First:       StageDecision{State: StagePending},
		SubmittedAt: submittedAt,
		Pass:        1,
	}
	if amount.GreaterThanOrEqual(SecondApprovalThresholdAmount) {
		item.Second = &StageDecision{State: StagePending}
	}
	return item
}

// ApplyFirst decides the first approval stage. Approved and Sent Back are
// terminal for the stage; a decided stage cannot be re-opened.
func (a *LoanApprovalItem) ApplyFirst(action DecisionAction, actorID, reason string, now time.Time) error {
	if a.First.State != StagePending {
		return ErrStageDecided
	}
	switch action {
	case ActionApprove:
		a.First = StageDecision{State: StageApproved, ActorID: actorID, DecidedAt: &now}
		if a.Second != nil {
			a.Status = StatusPendingSecond
		} else {
			a.Status = StatusApproved
		}
	case ActionSendBack:
		if reason == "" {
			return ErrReasonRequired
		}
		a.First = StageDecision{State: StageSentBack, ActorID: actorID, DecidedAt: &now, Reason: reason}
		a.Status = StatusSentBack
	default:
		return ErrUnknownAction
	}
	return nil
}

// ApplySecond decides the second approval stage. Requires a first-stage
// approval and an applicable (non-nil) second stage.
func (a *LoanApprovalItem) ApplySecond(action DecisionAction, actorID, reason string, now time.Time) error {
	if a.Second == nil {
		return ErrStageNotApplicable
	}
	if a.First.State != StageApproved {
		return ErrFirstStagePending
	}
	if a.Second.State != StagePending {
		return ErrStageDecided
	}
	switch action {
	case ActionApprove:
		a.Second = &StageDecision{State: StageApproved, ActorID: actorID, DecidedAt: &now}
		a.Status = StatusApproved
	case ActionSendBack:
		if reason == "" {
			return ErrReasonRequired
		}
		a.Second = &StageDecision{State: StageSentBack, ActorID: actorID, DecidedAt: &now, Reason: reason}
		a.Status = StatusSentBack
	default:
		return ErrUnknownAction
	}
	return nil
}

// RejectionReason returns the sendback reason of whichever stage sent the
// application back, or "".
func (a *LoanApprovalItem) RejectionReason() string {
	if a.First.State == StageSentBack {
		return a.First.Reason
	}
	if a.Second != nil && a.Second.State == StageSentBack {
		return a.Second.Reason
	}
	return ""
}

// ResetForResubmission starts a new pass through both stages after the
// originator edits a sent-back application. Decided stages are never
// re-opened; the item gets a fresh pending pass instead.
func (a *LoanApprovalItem) ResetForResubmission(amount decimal.Decimal, resubmittedAt time.Time) {
	a.LoanAmount = amount
	a.Status = StatusPendingFirst
	a.First = StageDecision{State: StagePending}
	a.Second = nil
	if amount.GreaterThanOrEqual(SecondApprovalThresholdAmount) {
		a.Second = &StageDecision{State: StagePending}
	}
	a.SubmittedAt = resubmittedAt
	a.Pass++
}

// Overdue reports whether the item has sat in its current pending stage for
// longer than ApprovalOverdueAfter. Advisory only.
func (a *LoanApprovalItem) Overdue(now time.Time) bool {
	switch a.Status {
	case StatusPendingFirst:
		return now.Sub(a.SubmittedAt) > ApprovalOverdueAfter
	case StatusPendingSecond:
		if a.First.DecidedAt != nil {
			return now.Sub(*a.First.DecidedAt) > ApprovalOverdueAfter
		}
	}
	return false
}
