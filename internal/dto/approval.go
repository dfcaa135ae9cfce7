package dto

import (
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DecisionRequest carries a reviewer's verdict on a pending approval stage.
type DecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve sendback"`
	Reason string `json:"reason"`
}

// StageDecisionResponse is one stage's state in an approval projection.
type StageDecisionResponse struct {
	State     string     `json:"state"`
	ActorID   string     `json:"actorID,omitempty"`
	DecidedAt *time.Time `json:"decidedAt,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// ApprovalItemResponse is the approval-facing projection of a submitted loan.
type ApprovalItemResponse struct {
	ApprovalID      string                 `json:"approvalID"`
	LoanID          string                 `json:"loanID"`
	LoanAmount      decimal.Decimal        `json:"loanAmount"`
	Status          string                 `json:"status"`
	FirstApproval   StageDecisionResponse  `json:"firstApproval"`
	SecondApproval  *StageDecisionResponse `json:"secondApproval"` // null below the amount threshold
	SubmittedAt     time.Time              `json:"submittedAt"`
	Pass            int                    `json:"pass"`
	RejectionReason string                 `json:"rejectionReason,omitempty"`
	// Overdue is advisory only: the item has sat in its pending stage for
	// over an hour.
	Overdue bool `json:"overdue"`
}

// ToApprovalItemResponse converts a domain item to DTO, computing the
// advisory overdue flag against now.
func ToApprovalItemResponse(item *domain.LoanApprovalItem, now time.Time) ApprovalItemResponse {
	resp := ApprovalItemResponse{
		ApprovalID: item.ApprovalID,
		LoanID:     item.LoanID,
		LoanAmount: item.LoanAmount,
		Status:     string(item.Status),
		FirstApproval: StageDecisionResponse{
			State:     string(item.First.State),
			ActorID:   item.First.ActorID,
			DecidedAt: item.First.DecidedAt,
			Reason:    item.First.Reason,
		},
		SubmittedAt:     item.SubmittedAt,
		Pass:            item.Pass,
		RejectionReason: item.RejectionReason(),
		Overdue:         item.Overdue(now),
	}
	if item.Second != nil {
		resp.SecondApproval = &StageDecisionResponse{
			State:     string(item.Second.State),
			ActorID:   item.Second.ActorID,
			DecidedAt: item.Second.DecidedAt,
			Reason:    item.Second.Reason,
		}
	}
	return resp
}

// ListApprovalsResponse wraps pending approval projections.
type ListApprovalsResponse struct {
	Approvals []ApprovalItemResponse `json:"approvals"`
}

// ToListApprovalsResponse converts domain items to DTOs.
func ToListApprovalsResponse(items []domain.LoanApprovalItem, now time.Time) ListApprovalsResponse {
	list := make([]ApprovalItemResponse, len(items))
	for i := range items {
		list[i] = ToApprovalItemResponse(&items[i], now)
	}
	return ListApprovalsResponse{Approvals: list}
}
