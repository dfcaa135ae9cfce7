package handlers

import (
	"net/http"
	"strconv"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// loanHandler exposes the canonical loan records. Loans are created and
// updated through the wizard's submit, so this handler is read-only.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := &loanHandler{loanService: loanService}

	loans := rg.Group("/loans")
	{
		loans.GET("/:id", h.getLoan)
		loans.GET("", h.listLoans)
	}
	rg.GET("/customers/:id/loans", h.listCustomerLoans)
}

// getLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loan, err := h.loanService.GetLoanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans by status
// @Tags loans
// @Produce json
// @Param status query string true "Loan status"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status query parameter is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	loans, err := h.loanService.ListLoansByStatus(c.Request.Context(), domain.LoanStatus(status), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans))
}

// listCustomerLoans godoc
// @Summary List a customer's active loans
// @Tags loans
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.ListLoansResponse
// @Security BearerAuth
// @Router /customers/{id}/loans [get]
func (h *loanHandler) listCustomerLoans(c *gin.Context) {
	loans, err := h.loanService.ListActiveLoansByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list customer loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoansResponse(loans))
}
