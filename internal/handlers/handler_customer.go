package handlers

import (
	"net/http"

	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// customerHandler exposes the center/group/customer registry the wizard
// selects from.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := &customerHandler{customerService: customerService}

	rg.GET("/centers", h.listCenters)
	rg.GET("/centers/:id/groups", h.listGroups)
	rg.GET("/groups/:id/customers", h.listGroupCustomers)
	rg.GET("/customers/:id", h.getCustomer)
}

// listCenters godoc
// @Summary List centers of a branch
// @Tags customers
// @Produce json
// @Param branchID query string false "Branch ID filter"
// @Success 200 {array} dto.CenterResponse
// @Security BearerAuth
// @Router /centers [get]
func (h *customerHandler) listCenters(c *gin.Context) {
	centers, err := h.customerService.ListCenters(c.Request.Context(), c.Query("branchID"))
	if err != nil {
		respondError(c, err, "Failed to list centers")
		return
	}
	c.JSON(http.StatusOK, dto.ToCenterResponses(centers))
}

// listGroups godoc
// @Summary List groups of a center
// @Tags customers
// @Produce json
// @Param id path string true "Center ID"
// @Success 200 {array} dto.GroupResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /centers/{id}/groups [get]
func (h *customerHandler) listGroups(c *gin.Context) {
	groups, err := h.customerService.ListGroupsByCenter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list groups")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponses(groups))
}

// listGroupCustomers godoc
// @Summary List customers of a group in membership order
// @Tags customers
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /groups/{id}/customers [get]
func (h *customerHandler) listGroupCustomers(c *gin.Context) {
	customers, err := h.customerService.ListGroupCustomers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list group customers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCustomersResponse(customers))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
