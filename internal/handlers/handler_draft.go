package handlers

import (
	"net/http"

	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// draftHandler exposes the saved-draft store. New snapshots are written
// through the wizard's save-draft operation, not here.
type draftHandler struct {
	draftService portssvc.DraftSvcFacade
}

func registerDraftRoutes(rg *gin.RouterGroup, draftService portssvc.DraftSvcFacade) {
	h := &draftHandler{draftService: draftService}

	drafts := rg.Group("/drafts")
	{
		drafts.GET("", h.listDrafts)
		drafts.GET("/:id", h.getDraft)
		drafts.DELETE("/:id", h.deleteDraft)
	}
}

// listDrafts godoc
// @Summary List the caller's saved drafts, newest first
// @Tags drafts
// @Produce json
// @Success 200 {object} dto.ListDraftsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts [get]
func (h *draftHandler) listDrafts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	drafts, err := h.draftService.ListDrafts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list drafts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDraftsResponse(drafts))
}

// getDraft godoc
// @Summary Get a saved draft with its snapshot
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} dto.SavedDraftResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts/{id} [get]
func (h *draftHandler) getDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	draft, err := h.draftService.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve draft")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavedDraftResponse(draft))
}

// deleteDraft godoc
// @Summary Delete a saved draft
// @Description Immediate and irreversible. Clients must confirm with the user first.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /drafts/{id} [delete]
func (h *draftHandler) deleteDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.draftService.DeleteDraft(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete draft")
		return
	}

	c.Status(http.StatusNoContent)
}
