package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/araliya-mfi/loan_origination_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// approvalHandler exposes the two-tier approval workflow.
type approvalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

func registerApprovalRoutes(rg *gin.RouterGroup, approvalService portssvc.ApprovalSvcFacade) {
	h := &approvalHandler{approvalService: approvalService}

	approvals := rg.Group("/approvals")
	{
		approvals.GET("", h.listPending)
		approvals.GET("/loan/:loanID", h.getByLoan)
		approvals.POST("/loan/:loanID/first", h.decideFirst)
		approvals.POST("/loan/:loanID/second", h.decideSecond)
	}
}

// listPending godoc
// @Summary List applications awaiting a stage decision
// @Tags approvals
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListApprovalsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals [get]
func (h *approvalHandler) listPending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.approvalService.ListPending(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list pending approvals")
		return
	}

	c.JSON(http.StatusOK, dto.ToListApprovalsResponse(items, time.Now()))
}

// getByLoan godoc
// @Summary Get the approval projection for a loan
// @Tags approvals
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.ApprovalItemResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals/loan/{loanID} [get]
func (h *approvalHandler) getByLoan(c *gin.Context) {
	item, err := h.approvalService.GetByLoanID(c.Request.Context(), c.Param("loanID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve approval")
		return
	}

	c.JSON(http.StatusOK, dto.ToApprovalItemResponse(item, time.Now()))
}

// decideFirst godoc
// @Summary Record a first-stage decision
// @Description Approve or send back at the first stage. Requires the first-approval capability; sendback requires a reason.
// @Tags approvals
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param decision body dto.DecisionRequest true "Verdict"
// @Success 200 {object} dto.ApprovalItemResponse
// @Failure 400 {object} ErrorResponse "Missing sendback reason or stage already decided"
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Another reviewer decided first"
// @Security BearerAuth
// @Router /approvals/loan/{loanID}/first [post]
func (h *approvalHandler) decideFirst(c *gin.Context) {
	h.decide(c, "first", h.approvalService.DecideFirst)
}

// decideSecond godoc
// @Summary Record a second-stage decision
// @Description Approve or send back at the final stage. Requires the final-approval capability. Only applicable at or above the amount threshold.
// @Tags approvals
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param decision body dto.DecisionRequest true "Verdict"
// @Success 200 {object} dto.ApprovalItemResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /approvals/loan/{loanID}/second [post]
func (h *approvalHandler) decideSecond(c *gin.Context) {
	h.decide(c, "second", h.approvalService.DecideSecond)
}

type decideFn func(ctx context.Context, actorID, loanID string, action domain.DecisionAction, reason string) (*domain.LoanApprovalItem, error)

func (h *approvalHandler) decide(c *gin.Context, stage string, fn decideFn) {
	actorID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	item, err := fn(c.Request.Context(), actorID, c.Param("loanID"), domain.DecisionAction(req.Action), req.Reason)
	if err != nil {
		respondError(c, err, "Failed to record decision")
		return
	}

	middleware.CountApprovalDecision(stage, req.Action)
	c.JSON(http.StatusOK, dto.ToApprovalItemResponse(item, time.Now()))
}
