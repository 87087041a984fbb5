package handler

import (
	"github.com/gin-gonic/gin"

	"edulink/internal/service"
)

// EcoleHandler handles école profile endpoints.
type EcoleHandler struct {
	ecoleService service.EcoleService
}

// NewEcoleHandler creates a new EcoleHandler.
func NewEcoleHandler(ecoleService service.EcoleService) *EcoleHandler {
	return &EcoleHandler{ecoleService: ecoleService}
}

// GetMine handles GET /api/v1/ecoles/me
func (h *EcoleHandler) GetMine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	ecole, err := h.ecoleService.GetMine(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ecole)
}

// UpdateMine handles PUT /api/v1/ecoles/me
// @Summary Update my école profile
// @Tags ecoles
// @Accept json
// @Produce json
// @Param request body service.UpdateEcoleInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Ecole} "Updated profile"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /ecoles/me [put]
func (h *EcoleHandler) UpdateMine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.UpdateEcoleInput
	if !bindJSON(c, &input) {
		return
	}

	ecole, err := h.ecoleService.UpdateMine(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ecole)
}

// List handles GET /api/v1/ecoles
func (h *EcoleHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	ecoles, total, err := h.ecoleService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, ecoles, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/ecoles/:id
func (h *EcoleHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ecole, err := h.ecoleService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ecole)
}
