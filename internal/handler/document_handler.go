package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"edulink/internal/csvexport"
	"edulink/internal/domain"
	"edulink/internal/service"
)

// DocumentHandler handles the intervenant document vault endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/intervenants/me/documents
// @Summary Upload a vault document
// @Description Upload one file (PDF, JPG, PNG) for a document type. Only DIPLOME accepts several files; other types must be deleted before a new upload.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param type formData string true "Document type, e.g. CV, DIPLOME, RIB"
// @Param file formData file true "File to upload"
// @Success 201 {object} Response{data=domain.Document} "Document stored"
// @Failure 400 {object} ErrorResponseBody "Missing file, unknown type or unsupported format"
// @Failure 409 {object} ErrorResponseBody "A document of this type already exists"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /intervenants/me/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	docType := domain.DocumentType(c.PostForm("type"))
	if docType == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_TYPE", "le champ type est obligatoire")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "le champ file est obligatoire")
		return
	}
	defer func() { _ = file.Close() }()

	doc, err := h.documentService.Upload(c.Request.Context(), actor, service.UploadDocumentInput{
		Type:   docType,
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// MyVault handles GET /api/v1/intervenants/me/documents
// @Summary My document vault
// @Description Requirement catalog with the uploaded documents of each slot and the completion percentage.
// @Tags documents
// @Produce json
// @Success 200 {object} Response{data=domain.Vault} "Vault"
// @Security BearerAuth
// @Router /intervenants/me/documents [get]
func (h *DocumentHandler) MyVault(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	vault, err := h.documentService.GetVault(c.Request.Context(), actor, actor.ProfileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vault)
}

// Vault handles GET /api/v1/admin/intervenants/:id/documents
func (h *DocumentHandler) Vault(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vault, err := h.documentService.GetVault(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vault)
}

// Download handles GET /api/v1/documents/:id/download
// @Summary Get a download URL
// @Description Returns a short-lived presigned URL. Écoles may only download non-sensitive documents of approved intervenants.
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response{data=DownloadURLResponse} "Presigned URL"
// @Failure 403 {object} ErrorResponseBody "Sensitive document"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{URL: url})
}

// Preview handles GET /api/v1/documents/:id/preview and streams the file inline.
func (h *DocumentHandler) Preview(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	preview, err := h.documentService.Preview(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	orig := preview.Document.OriginalName
	name := csvexport.SanitizeFilename(strings.TrimSuffix(orig, filepath.Ext(orig))) + "." + string(preview.Document.FileType)
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, name))
	c.Data(http.StatusOK, preview.Document.ContentType, preview.Data)
}

// Delete handles DELETE /api/v1/intervenants/me/documents/:id
// @Summary Delete a vault document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} Response "Document deleted"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /intervenants/me/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document supprimé"})
}
