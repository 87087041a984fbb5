package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// CollaborationHandler handles the collaboration ledger endpoints.
type CollaborationHandler struct {
	collaborationService service.CollaborationService
}

// NewCollaborationHandler creates a new CollaborationHandler.
func NewCollaborationHandler(collaborationService service.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{collaborationService: collaborationService}
}

// Create handles POST /api/v1/collaborations
// @Summary Propose a collaboration
// @Description An école passes intervenant_id, an intervenant passes ecole_id. Both validation flags start false and the other party is notified.
// @Tags collaborations
// @Accept json
// @Produce json
// @Param request body service.CreateCollaborationInput true "Collaboration"
// @Success 201 {object} Response{data=domain.CollaborationView} "Draft collaboration"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 422 {object} ErrorResponseBody "Intervenant not approved"
// @Security BearerAuth
// @Router /collaborations [post]
func (h *CollaborationHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.CreateCollaborationInput
	if !bindJSON(c, &input) {
		return
	}

	view, err := h.collaborationService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// List handles GET /api/v1/collaborations
// @Summary My collaborations
// @Description Collaborations of the caller with counts per status.
// @Tags collaborations
// @Produce json
// @Param status query string false "brouillon, en_cours, terminee or annulee"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=service.CollaborationList,meta=PagMeta} "Collaborations and stats"
// @Security BearerAuth
// @Router /collaborations [get]
func (h *CollaborationHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	status := domain.CollaborationStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "statut inconnu")
		return
	}
	offset, limit := parsePagination(c)

	list, total, err := h.collaborationService.List(c.Request.Context(), actor, status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, list, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/collaborations/:id
func (h *CollaborationHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.collaborationService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Update handles PUT /api/v1/collaborations/:id
// @Summary Edit a draft collaboration
// @Description Only drafts are editable; any edit resets both validation flags.
// @Tags collaborations
// @Accept json
// @Produce json
// @Param id path string true "Collaboration ID"
// @Param request body service.CollaborationTerms true "Terms"
// @Success 200 {object} Response{data=domain.CollaborationView} "Collaboration"
// @Failure 409 {object} ErrorResponseBody "Not editable"
// @Security BearerAuth
// @Router /collaborations/{id} [put]
func (h *CollaborationHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.CollaborationTerms
	if !bindJSON(c, &input) {
		return
	}

	view, err := h.collaborationService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Validate handles POST /api/v1/collaborations/:id/valider
// @Summary Validate the terms as the calling party
// @Tags collaborations
// @Produce json
// @Param id path string true "Collaboration ID"
// @Success 200 {object} Response{data=domain.CollaborationView} "Collaboration"
// @Failure 409 {object} ErrorResponseBody "Not a draft or already validated"
// @Security BearerAuth
// @Router /collaborations/{id}/valider [post]
func (h *CollaborationHandler) Validate(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.collaborationService.Validate(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// ChangeStatus handles POST /api/v1/collaborations/:id/status
// @Summary Move a collaboration through its lifecycle
// @Description brouillon to en_cours requires both validations; terminee and annulee are final.
// @Tags collaborations
// @Accept json
// @Produce json
// @Param id path string true "Collaboration ID"
// @Param request body service.StatusInput true "Target status"
// @Success 200 {object} Response{data=domain.CollaborationView} "Collaboration"
// @Failure 409 {object} ErrorResponseBody "Invalid transition or validations incomplete"
// @Security BearerAuth
// @Router /collaborations/{id}/status [post]
func (h *CollaborationHandler) ChangeStatus(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.StatusInput
	if !bindJSON(c, &input) {
		return
	}
	to := domain.CollaborationStatus(input.Status)
	if !to.Valid() {
		HandleError(c, domain.ErrInvalidTransition)
		return
	}

	view, err := h.collaborationService.ChangeStatus(c.Request.Context(), actor, id, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/collaborations/:id
func (h *CollaborationHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.collaborationService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "collaboration supprimée"})
}
