package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// MissionHandler handles the mission board endpoints.
type MissionHandler struct {
	missionService service.MissionService
}

// NewMissionHandler creates a new MissionHandler.
func NewMissionHandler(missionService service.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

func missionStatus(c *gin.Context) (domain.MissionStatus, bool) {
	status := domain.MissionStatus(c.Query("status"))
	switch status {
	case "", domain.MissionActive, domain.MissionCompleted:
		return status, true
	}
	RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "statut inconnu")
	return "", false
}

// Create handles POST /api/v1/missions
// @Summary Post a mission
// @Tags missions
// @Accept json
// @Produce json
// @Param request body service.MissionInput true "Mission"
// @Success 201 {object} Response{data=domain.Mission} "Mission created (ACTIVE)"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Écoles only"
// @Security BearerAuth
// @Router /missions [post]
func (h *MissionHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.MissionInput
	if !bindJSON(c, &input) {
		return
	}

	mission, err := h.missionService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, mission)
}

// List handles GET /api/v1/missions
// @Summary Mission board
// @Description Intervenants see ACTIVE missions only; admins see every mission.
// @Tags missions
// @Produce json
// @Param status query string false "ACTIVE or COMPLETED (admin)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Mission,meta=PagMeta} "Missions"
// @Security BearerAuth
// @Router /missions [get]
func (h *MissionHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	status, ok := missionStatus(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.missionService.List(c.Request.Context(), actor, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Mine handles GET /api/v1/ecoles/me/missions
func (h *MissionHandler) Mine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	status, ok := missionStatus(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.missionService.ListMine(c.Request.Context(), actor, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Assigned handles GET /api/v1/intervenants/me/missions
func (h *MissionHandler) Assigned(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.missionService.ListAssigned(c.Request.Context(), actor, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/missions/:id
func (h *MissionHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	mission, err := h.missionService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, mission)
}

// Update handles PUT /api/v1/missions/:id
func (h *MissionHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.MissionInput
	if !bindJSON(c, &input) {
		return
	}

	mission, err := h.missionService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, mission)
}

// ToggleStatus handles POST /api/v1/missions/:id/toggle-status
// @Summary Complete or reactivate a mission
// @Tags missions
// @Produce json
// @Param id path string true "Mission ID"
// @Success 200 {object} Response{data=domain.Mission} "Mission with its new status"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Security BearerAuth
// @Router /missions/{id}/toggle-status [post]
func (h *MissionHandler) ToggleStatus(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	mission, err := h.missionService.ToggleStatus(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, mission)
}

// Assign handles PUT /api/v1/missions/:id/intervenant
// @Summary Assign or clear the intervenant of a mission
// @Tags missions
// @Accept json
// @Produce json
// @Param id path string true "Mission ID"
// @Param request body service.AssignInput true "Intervenant ID or null"
// @Success 200 {object} Response{data=domain.Mission} "Mission"
// @Failure 422 {object} ErrorResponseBody "Intervenant not approved"
// @Security BearerAuth
// @Router /missions/{id}/intervenant [put]
func (h *MissionHandler) Assign(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.AssignInput
	if !bindJSON(c, &input) {
		return
	}

	mission, err := h.missionService.Assign(c.Request.Context(), actor, id, input.IntervenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, mission)
}

// Delete handles DELETE /api/v1/missions/:id
func (h *MissionHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.missionService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "mission supprimée"})
}
