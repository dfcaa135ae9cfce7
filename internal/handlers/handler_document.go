package handlers

import (
	"io"
	"net/http"

	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	portssvc "github.com/araliya-mfi/loan_origination_app/internal/core/ports/services"
	"github.com/araliya-mfi/loan_origination_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// documentHandler serves stored loan documents and direct uploads outside
// the wizard flow (e.g. replacing a single document on a sent-back loan).
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := &documentHandler{documentService: documentService}

	rg.GET("/loans/:id/documents", h.listLoanDocuments)
	rg.POST("/loans/:id/documents", h.uploadDocument)
	rg.GET("/customers/:id/documents", h.listProfileDocuments)
	rg.GET("/documents/:id/content", h.downloadDocument)
}

// listLoanDocuments godoc
// @Summary List documents bound to a loan
// @Tags documents
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.ListDocumentsResponse
// @Security BearerAuth
// @Router /loans/{id}/documents [get]
func (h *documentHandler) listLoanDocuments(c *gin.Context) {
	docs, err := h.documentService.ListByLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}

// listProfileDocuments godoc
// @Summary List a customer's inheritable profile documents
// @Tags documents
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.ListDocumentsResponse
// @Security BearerAuth
// @Router /customers/{id}/documents [get]
func (h *documentHandler) listProfileDocuments(c *gin.Context) {
	docs, err := h.documentService.ListProfileDocuments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list profile documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(docs))
}

// uploadDocument godoc
// @Summary Upload a document for a loan
// @Description Stores one document (multipart field "file", form fields "type" and "customerID"). 5MB cap; JPEG, PNG or PDF only.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Loan ID"
// @Param type formData string true "Document type"
// @Param customerID formData string true "Customer ID"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/documents [post]
func (h *documentHandler) uploadDocument(c *gin.Context) {
	uploaderID, ok := requireUserID(c)
	if !ok {
		return
	}

	docType := c.PostForm("type")
	customerID := c.PostForm("customerID")
	if docType == "" || customerID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "type and customerID are required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Document file is required"})
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

	doc, err := h.documentService.Upload(
		c.Request.Context(), uploaderID, c.Param("id"), customerID,
		domain.DocumentType(docType),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		content,
	)
	if err != nil {
		respondError(c, err, "Failed to upload document")
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// downloadDocument godoc
// @Summary Download a document binary
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /documents/{id}/content [get]
func (h *documentHandler) downloadDocument(c *gin.Context) {
	doc, content, err := h.documentService.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to download document")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, content)
}
