package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edulink/internal/csvexport"
	"edulink/internal/domain"
	"edulink/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DeclarationHandler handles the revenue declaration ledger endpoints.
type DeclarationHandler struct {
	declarationService service.DeclarationService
}

// NewDeclarationHandler creates a new DeclarationHandler.
func NewDeclarationHandler(declarationService service.DeclarationService) *DeclarationHandler {
	return &DeclarationHandler{declarationService: declarationService}
}

func declarationFilter(c *gin.Context) (domain.DeclarationFilter, bool) {
	year, ok := parseYear(c)
	if !ok {
		return domain.DeclarationFilter{}, false
	}
	status := domain.DeclarationStatus(c.Query("status"))
	switch status {
	case "", domain.DeclarationBrouillon, domain.DeclarationTransmise, domain.DeclarationValidee:
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "statut inconnu")
		return domain.DeclarationFilter{}, false
	}
	return domain.DeclarationFilter{Year: year, Status: status}, true
}

// Create handles POST /api/v1/declarations
// @Summary Declare a month of revenue
// @Description Cotisations and contribution formation are computed server-side. One declaration per periode.
// @Tags declarations
// @Accept json
// @Produce json
// @Param request body service.CreateDeclarationInput true "Declaration"
// @Success 201 {object} Response{data=domain.DeclarationView} "Draft declaration"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Periode already declared"
// @Security BearerAuth
// @Router /declarations [post]
func (h *DeclarationHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.CreateDeclarationInput
	if !bindJSON(c, &input) {
		return
	}

	view, err := h.declarationService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// List handles GET /api/v1/declarations and GET /api/v1/admin/declarations
// @Summary List declarations with the yearly summary
// @Tags declarations
// @Produce json
// @Param year query int false "Year"
// @Param status query string false "brouillon, transmise or validee"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=service.DeclarationList,meta=PagMeta} "Declarations and summary"
// @Security BearerAuth
// @Router /declarations [get]
func (h *DeclarationHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	filter, ok := declarationFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	list, total, err := h.declarationService.List(c.Request.Context(), actor, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/declarations/:id
func (h *DeclarationHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.declarationService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Update handles PUT /api/v1/declarations/:id
func (h *DeclarationHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.DeclarationAmounts
	if !bindJSON(c, &input) {
		return
	}

	view, err := h.declarationService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/declarations/:id
func (h *DeclarationHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.declarationService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "déclaration supprimée"})
}

// Transmit handles POST /api/v1/declarations/:id/transmettre
// @Summary Transmit a draft declaration
// @Tags declarations
// @Produce json
// @Param id path string true "Declaration ID"
// @Success 200 {object} Response{data=domain.DeclarationView} "Transmitted declaration"
// @Failure 409 {object} ErrorResponseBody "Invalid transition"
// @Security BearerAuth
// @Router /declarations/{id}/transmettre [post]
func (h *DeclarationHandler) Transmit(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.declarationService.Transmit(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Validate handles POST /api/v1/declarations/:id/valider
func (h *DeclarationHandler) Validate(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.declarationService.Validate(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Estimate handles GET /api/v1/declarations/estimate?chiffre_affaires=
// @Summary Estimate social contributions
// @Description Pure projection at the flat 22 % rate; nothing is stored.
// @Tags declarations
// @Produce json
// @Param chiffre_affaires query int true "Revenue in cents"
// @Success 200 {object} Response{data=domain.Estimate} "Estimate"
// @Failure 400 {object} ErrorResponseBody "Invalid amount"
// @Security BearerAuth
// @Router /declarations/estimate [get]
func (h *DeclarationHandler) Estimate(c *gin.Context) {
	ca, err := strconv.ParseInt(c.Query("chiffre_affaires"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_AMOUNT", "chiffre_affaires doit être un montant en centimes")
		return
	}

	estimate, err := h.declarationService.Estimate(ca)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, estimate)
}

// Export handles GET /api/v1/admin/declarations/export.xlsx
// @Summary Export declarations as a spreadsheet
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Year"
// @Param status query string false "brouillon, transmise or validee"
// @Success 200 {file} file "XLSX workbook"
// @Security BearerAuth
// @Router /admin/declarations/export.xlsx [get]
func (h *DeclarationHandler) Export(c *gin.Context) {
	filter, ok := declarationFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.declarationService.Export(c.Request.Context(), filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	base := "declarations"
	if filter.Year != 0 {
		base = fmt.Sprintf("declarations_%d", filter.Year)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvexport.BuildFilename(base, "xlsx")))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
