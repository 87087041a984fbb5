package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// IntervenantHandler handles the intervenant directory and vetting endpoints.
type IntervenantHandler struct {
	intervenantService service.IntervenantService
}

// NewIntervenantHandler creates a new IntervenantHandler.
func NewIntervenantHandler(intervenantService service.IntervenantService) *IntervenantHandler {
	return &IntervenantHandler{intervenantService: intervenantService}
}

// List handles GET /api/v1/intervenants and GET /api/v1/admin/intervenants
// @Summary Search intervenants
// @Description Écoles only see approved profiles; admins may filter by status.
// @Tags intervenants
// @Produce json
// @Param q query string false "Search in name and bio"
// @Param expertise query string false "Expertise"
// @Param mode query string false "presentiel, hybride or distanciel"
// @Param language query string false "Language"
// @Param status query string false "pending, approved or rejected (admin)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Intervenant,meta=PagMeta} "Intervenants"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Security BearerAuth
// @Router /intervenants [get]
func (h *IntervenantHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	filter := domain.IntervenantFilter{
		Status:    domain.ModerationStatus(c.Query("status")),
		Query:     c.Query("q"),
		Expertise: c.Query("expertise"),
		Mode:      domain.AvailabilityMode(c.Query("mode")),
		Language:  c.Query("language"),
	}
	if filter.Status != "" && !domain.ValidModerationStatuses[filter.Status] {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "statut inconnu")
		return
	}
	if filter.Mode != "" && !domain.ValidAvailabilityModes[filter.Mode] {
		HandleError(c, domain.ErrInvalidAvailabilityMode)
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.intervenantService.List(c.Request.Context(), actor, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/intervenants/:id
// @Summary Get an intervenant profile
// @Description Écoles see approved profiles with non-sensitive documents only.
// @Tags intervenants
// @Produce json
// @Param id path string true "Intervenant ID"
// @Success 200 {object} Response{data=domain.Intervenant} "Profile"
// @Failure 404 {object} ErrorResponseBody "Not found"
// @Security BearerAuth
// @Router /intervenants/{id} [get]
func (h *IntervenantHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	intervenant, err := h.intervenantService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, intervenant)
}

// GetMine handles GET /api/v1/intervenants/me
func (h *IntervenantHandler) GetMine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	intervenant, err := h.intervenantService.GetMine(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, intervenant)
}

// UpdateMine handles PUT /api/v1/intervenants/me
// @Summary Update my intervenant profile
// @Description Moderation status and rejection reason are never writable here.
// @Tags intervenants
// @Accept json
// @Produce json
// @Param request body service.UpdateIntervenantInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Intervenant} "Updated profile"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /intervenants/me [put]
func (h *IntervenantHandler) UpdateMine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.UpdateIntervenantInput
	if !bindJSON(c, &input) {
		return
	}

	intervenant, err := h.intervenantService.UpdateMine(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, intervenant)
}

// Approve handles POST /api/v1/admin/intervenants/:id/approve
// @Summary Approve an intervenant
// @Tags admin
// @Produce json
// @Param id path string true "Intervenant ID"
// @Success 200 {object} Response{data=domain.Intervenant} "Approved profile"
// @Failure 409 {object} ErrorResponseBody "Invalid transition"
// @Security BearerAuth
// @Router /admin/intervenants/{id}/approve [post]
func (h *IntervenantHandler) Approve(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	intervenant, err := h.intervenantService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, intervenant)
}

// Reject handles POST /api/v1/admin/intervenants/:id/reject
// @Summary Reject an intervenant
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Intervenant ID"
// @Param request body service.RejectInput true "Rejection reason"
// @Success 200 {object} Response{data=domain.Intervenant} "Rejected profile"
// @Failure 400 {object} ErrorResponseBody "Reason required"
// @Failure 409 {object} ErrorResponseBody "Invalid transition"
// @Security BearerAuth
// @Router /admin/intervenants/{id}/reject [post]
func (h *IntervenantHandler) Reject(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.RejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleError(c, domain.ErrRejectionReasonRequired)
		return
	}

	intervenant, err := h.intervenantService.Reject(c.Request.Context(), actor, id, input.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, intervenant)
}

// Stats handles GET /api/v1/admin/intervenants/stats
func (h *IntervenantHandler) Stats(c *gin.Context) {
	stats, err := h.intervenantService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
