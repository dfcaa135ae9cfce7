package handlers

import (
	"io"
	"net/http"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/araliya-mfi/loan_origination_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// wizardHandler drives the four-stage application wizard over HTTP. Every
// mutation returns the full session state so the client never has to merge.
type wizardHandler struct {
	wizardService portssvc.WizardSvcFacade
}

func registerWizardRoutes(rg *gin.RouterGroup, wizardService portssvc.WizardSvcFacade) {
	h := &wizardHandler{wizardService: wizardService}

	wizard := rg.Group("/wizard")
	{
		wizard.POST("/sessions", h.startSession)
		wizard.GET("/sessions/:id", h.getSession)
		wizard.PUT("/sessions/:id/draft", h.updateDraft)
		wizard.POST("/sessions/:id/documents", h.attachDocument)
		wizard.POST("/sessions/:id/next", h.next)
		wizard.POST("/sessions/:id/previous", h.previous)
		wizard.POST("/sessions/:id/goto", h.goToStep)
		wizard.POST("/sessions/:id/save-draft", h.saveAsDraft)
		wizard.POST("/sessions/:id/submit", h.submit)
		wizard.POST("/sessions/:id/retry-uploads", h.retryUploads)
		wizard.DELETE("/sessions/:id", h.closeSession)
	}
}

// startSession godoc
// @Summary Start a wizard session
// @Description Opens a session: blank, resumed from a saved draft, or in edit mode for a sent-back loan.
// @Tags wizard
// @Accept json
// @Produce json
// @Param session body dto.StartWizardRequest true "Session options"
// @Success 201 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not the creator of the sent-back loan"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions [post]
func (h *wizardHandler) startSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.wizardService.StartSession(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to start wizard session")
		return
	}

	c.JSON(http.StatusCreated, state)
}

// getSession godoc
// @Summary Get the current state of a wizard session
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions/{id} [get]
func (h *wizardHandler) getSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	state, err := h.wizardService.GetSession(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get wizard session")
		return
	}

	c.JSON(http.StatusOK, state)
}

// updateDraft godoc
// @Summary Replace the session draft
// @Description Replaces the editable draft fields atomically and recomputes derived fields (guarantors, fees, rental, reloan deduction).
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param draft body dto.DraftPayload true "Draft fields"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Session is processing a submit"
// @Security BearerAuth
// @Router /wizard/sessions/{id}/draft [put]
func (h *wizardHandler) updateDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.DraftPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.wizardService.UpdateDraft(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update draft")
		return
	}

	c.JSON(http.StatusOK, state)
}

// attachDocument godoc
// @Summary Attach a document to the session
// @Description Stages a document binary (multipart field "file", form field "type") for upload at submit time. 5MB cap; JPEG, PNG or PDF only.
// @Tags wizard
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param type formData string true "Document type"
// @Param file formData file true "Document file"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse "Missing file, oversize or disallowed content type"
// @Security BearerAuth
// @Router /wizard/sessions/{id}/documents [post]
func (h *wizardHandler) attachDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docType := c.PostForm("type")
	if docType == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document type is required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document file is required"})
		return
	}
	if fileHeader.Size > domain.MaxDocumentSizeBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document exceeds the 5MB size limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}

	state, err := h.wizardService.AttachDocument(
		c.Request.Context(), userID, c.Param("id"),
		domain.DocumentType(docType),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		content,
	)
	if err != nil {
		respondError(c, err, "Failed to attach document")
		return
	}

	c.JSON(http.StatusOK, state)
}

// next godoc
// @Summary Advance to the next wizard step
// @Description Validates the current step first. On failure the state carries the step error and the session stays put.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions/{id}/next [post]
func (h *wizardHandler) next(c *gin.Context) {
	h.navigate(c, func(userID, sessionID string) (*dto.WizardStateResponse, error) {
		return h.wizardService.Next(c.Request.Context(), userID, sessionID)
	})
}

// previous godoc
// @Summary Move back one wizard step
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions/{id}/previous [post]
func (h *wizardHandler) previous(c *gin.Context) {
	h.navigate(c, func(userID, sessionID string) (*dto.WizardStateResponse, error) {
		return h.wizardService.Previous(c.Request.Context(), userID, sessionID)
	})
}

// goToStep godoc
// @Summary Jump to a wizard step
// @Description Backward jumps are unconditional; forward jumps re-validate every intervening step and halt at the first failure.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param step body dto.GoToStepRequest true "Target step"
// @Success 200 {object} dto.WizardStateResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions/{id}/goto [post]
func (h *wizardHandler) goToStep(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.GoToStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	state, err := h.wizardService.GoTo(c.Request.Context(), userID, c.Param("id"), domain.WizardStep(req.Step))
	if err != nil {
		respondError(c, err, "Failed to move wizard step")
		return
	}

	c.JSON(http.StatusOK, state)
}

// saveAsDraft godoc
// @Summary Save the session as a named draft
// @Description Snapshots the session into the draft store. Explicit user action only; clears the dirty flag.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param draft body dto.SaveDraftRequest true "Draft name (optional)"
// @Success 200 {object} dto.SavedDraftResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions/{id}/save-draft [post]
func (h *wizardHandler) saveAsDraft(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	draft, err := h.wizardService.SaveAsDraft(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err, "Failed to save draft")
		return
	}

	c.JSON(http.StatusOK, dto.ToSavedDraftResponse(draft))
}

// submit godoc
// @Summary Submit the application
// @Description Re-validates all gated steps, creates or updates the canonical loan, opens the approval pass and uploads staged documents individually.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SubmitResultResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "A submit is already in progress"
// @Security BearerAuth
// @Router /wizard/sessions/{id}/submit [post]
func (h *wizardHandler) submit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.wizardService.Submit(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		middleware.CountLoanSubmission("error")
		respondError(c, err, "Failed to submit application")
		return
	}

	switch {
	case result.StepError != nil:
		middleware.CountLoanSubmission("blocked")
	case len(result.DocumentErrors) > 0:
		middleware.CountLoanSubmission("partial")
	default:
		middleware.CountLoanSubmission("success")
	}

	c.JSON(http.StatusOK, result)
}

// retryUploads godoc
// @Summary Retry failed document uploads
// @Description Re-uploads only the staged documents that failed in a previous submit, without recreating the loan.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SubmitResultResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Nothing was submitted yet"
// @Security BearerAuth
// @Router /wizard/sessions/{id}/retry-uploads [post]
func (h *wizardHandler) retryUploads(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	result, err := h.wizardService.RetryDocumentUploads(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retry document uploads")
		return
	}

	c.JSON(http.StatusOK, result)
}

// closeSession godoc
// @Summary Discard a wizard session
// @Description Discards the session. Clients must honour the dirty flag and confirm with the user before calling this.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /wizard/sessions/{id} [delete]
func (h *wizardHandler) closeSession(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.wizardService.CloseSession(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to close wizard session")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *wizardHandler) navigate(c *gin.Context, move func(userID, sessionID string) (*dto.WizardStateResponse, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	state, err := move(userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to move wizard step")
		return
	}

	c.JSON(http.StatusOK, state)
}
