package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edulink/internal/csvexport"
	"edulink/internal/domain"
	"edulink/internal/service"
)

// FactureHandler handles invoicing endpoints.
type FactureHandler struct {
	factureService service.FactureService
}

// NewFactureHandler creates a new FactureHandler.
func NewFactureHandler(factureService service.FactureService) *FactureHandler {
	return &FactureHandler{factureService: factureService}
}

func factureFilter(c *gin.Context) (domain.FactureFilter, bool) {
	year, ok := parseYear(c)
	if !ok {
		return domain.FactureFilter{}, false
	}
	filter := domain.FactureFilter{
		Status: domain.FactureStatus(c.Query("status")),
		Type:   domain.FactureType(c.Query("type")),
		Year:   year,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "statut inconnu")
		return filter, false
	}
	switch filter.Type {
	case "", domain.FactureTypeEcole, domain.FactureTypeIntervenant:
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_TYPE", "type de facture inconnu")
		return filter, false
	}
	return filter, true
}

// Create handles POST /api/v1/factures
// @Summary Create a draft invoice
// @Description Totals are computed server-side and the numero is allocated from a sequence. Intervenants may only issue invoices of type intervenant in their own name.
// @Tags factures
// @Accept json
// @Produce json
// @Param request body service.FactureInput true "Invoice"
// @Success 201 {object} Response{data=domain.Facture} "Draft invoice"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Security BearerAuth
// @Router /factures [post]
func (h *FactureHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.FactureInput
	if !bindJSON(c, &input) {
		return
	}

	facture, err := h.factureService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, facture)
}

// List handles GET /api/v1/factures
// @Summary List invoices
// @Description Scoped to the caller: écoles see invoices addressed to them, intervenants their own. Totals cover the whole filter.
// @Tags factures
// @Produce json
// @Param status query string false "brouillon, envoyee, payee, annulee or en_retard"
// @Param type query string false "ecole or intervenant"
// @Param year query int false "Emission year"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=service.FactureList,meta=PagMeta} "Invoices and totals"
// @Security BearerAuth
// @Router /factures [get]
func (h *FactureHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	filter, ok := factureFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	list, total, err := h.factureService.List(c.Request.Context(), actor, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/factures/:id
func (h *FactureHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	facture, err := h.factureService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, facture)
}

// Update handles PUT /api/v1/factures/:id
func (h *FactureHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.FactureInput
	if !bindJSON(c, &input) {
		return
	}

	facture, err := h.factureService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, facture)
}

// Delete handles DELETE /api/v1/factures/:id
func (h *FactureHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.factureService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "facture supprimée"})
}

// Send handles POST /api/v1/factures/:id/envoyer
// @Summary Send an invoice to the école
// @Tags factures
// @Produce json
// @Param id path string true "Facture ID"
// @Success 200 {object} Response{data=domain.Facture} "Sent invoice"
// @Failure 409 {object} ErrorResponseBody "Invalid transition"
// @Security BearerAuth
// @Router /factures/{id}/envoyer [post]
func (h *FactureHandler) Send(c *gin.Context) {
	h.transition(c, h.factureService.Send)
}

// Cancel handles POST /api/v1/factures/:id/annuler
func (h *FactureHandler) Cancel(c *gin.Context) {
	h.transition(c, h.factureService.Cancel)
}

// GeneratePDF handles POST /api/v1/factures/:id/generer-pdf
// @Summary Render and store the invoice PDF
// @Description Overwrites any previous rendering and records its storage path.
// @Tags factures
// @Produce json
// @Param id path string true "Facture ID"
// @Success 200 {object} Response{data=domain.Facture} "Invoice with pdf_path"
// @Failure 500 {object} ErrorResponseBody "Rendering or upload failed"
// @Security BearerAuth
// @Router /factures/{id}/generer-pdf [post]
func (h *FactureHandler) GeneratePDF(c *gin.Context) {
	h.transition(c, h.factureService.GeneratePDF)
}

type factureAction func(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Facture, error)

func (h *FactureHandler) transition(c *gin.Context, action factureAction) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	facture, err := action(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, facture)
}

// MarkPaid handles POST /api/v1/factures/:id/marquer-payee
// @Summary Record the payment of an invoice
// @Tags factures
// @Accept json
// @Produce json
// @Param id path string true "Facture ID"
// @Param request body service.MarkPaidInput true "Payment"
// @Success 200 {object} Response{data=domain.Facture} "Paid invoice"
// @Failure 400 {object} ErrorResponseBody "Unknown payment method"
// @Failure 409 {object} ErrorResponseBody "Invalid transition"
// @Security BearerAuth
// @Router /factures/{id}/marquer-payee [post]
func (h *FactureHandler) MarkPaid(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.MarkPaidInput
	if !bindJSON(c, &input) {
		return
	}

	facture, err := h.factureService.MarkPaid(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, facture)
}

// DownloadPDF handles GET /api/v1/factures/:id/telecharger-pdf
// @Summary Download the invoice PDF
// @Tags factures
// @Produce application/pdf
// @Param id path string true "Facture ID"
// @Success 200 {file} file "PDF"
// @Failure 404 {object} ErrorResponseBody "PDF not generated yet"
// @Security BearerAuth
// @Router /factures/{id}/telecharger-pdf [get]
func (h *FactureHandler) DownloadPDF(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := h.factureService.DownloadPDF(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, "application/pdf", file.Data)
}

// ExportCSV handles GET /api/v1/admin/factures/export.csv
// @Summary Export invoices as CSV
// @Description Semicolon-separated, UTF-8 with BOM, amounts with a decimal comma.
// @Tags admin
// @Produce text/csv
// @Param status query string false "Status"
// @Param type query string false "ecole or intervenant"
// @Param year query int false "Emission year"
// @Success 200 {file} file "CSV file"
// @Security BearerAuth
// @Router /admin/factures/export.csv [get]
func (h *FactureHandler) ExportCSV(c *gin.Context) {
	filter, ok := factureFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.factureService.ExportCSV(c.Request.Context(), filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	base := "factures"
	if filter.Year != 0 {
		base = fmt.Sprintf("factures_%d", filter.Year)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(base, "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
