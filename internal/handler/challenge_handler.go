package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edulink/internal/domain"
	"edulink/internal/service"
)

// ChallengeHandler handles the challenge catalog and its moderation.
type ChallengeHandler struct {
	challengeService service.ChallengeService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(challengeService service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// Create handles POST /api/v1/challenges
// @Summary Propose a challenge
// @Description New challenges start pending moderation.
// @Tags challenges
// @Accept json
// @Produce json
// @Param request body service.ChallengeInput true "Challenge"
// @Success 201 {object} Response{data=domain.Challenge} "Challenge created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Intervenants only"
// @Security BearerAuth
// @Router /challenges [post]
func (h *ChallengeHandler) Create(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	var input service.ChallengeInput
	if !bindJSON(c, &input) {
		return
	}

	challenge, err := h.challengeService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, challenge)
}

// Catalog handles GET /api/v1/challenges
// @Summary Browse approved challenges
// @Tags challenges
// @Produce json
// @Param thematique query string false "Thematique"
// @Param q query string false "Search in title and description"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Challenge,meta=PagMeta} "Approved challenges"
// @Security BearerAuth
// @Router /challenges [get]
func (h *ChallengeHandler) Catalog(c *gin.Context) {
	filter, ok := challengeFilter(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.challengeService.ListCatalog(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Mine handles GET /api/v1/intervenants/me/challenges
func (h *ChallengeHandler) Mine(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.challengeService.ListMine(c.Request.Context(), actor, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/challenges/:id
func (h *ChallengeHandler) Get(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	challenge, err := h.challengeService.Get(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, challenge)
}

// Update handles PUT /api/v1/challenges/:id
// @Summary Edit my challenge
// @Description Editing sends the challenge back to pending moderation.
// @Tags challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body service.ChallengeInput true "Challenge"
// @Success 200 {object} Response{data=domain.Challenge} "Updated challenge"
// @Failure 403 {object} ErrorResponseBody "Not the owner"
// @Security BearerAuth
// @Router /challenges/{id} [put]
func (h *ChallengeHandler) Update(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.ChallengeInput
	if !bindJSON(c, &input) {
		return
	}

	challenge, err := h.challengeService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, challenge)
}

// Delete handles DELETE /api/v1/challenges/:id
func (h *ChallengeHandler) Delete(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.challengeService.Delete(c.Request.Context(), actor, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "challenge supprimé"})
}

// ModerationQueue handles GET /api/v1/admin/challenges
func (h *ChallengeHandler) ModerationQueue(c *gin.Context) {
	filter, ok := challengeFilter(c)
	if !ok {
		return
	}
	filter.Status = domain.ModerationStatus(c.Query("status"))
	if filter.Status != "" && !domain.ValidModerationStatuses[filter.Status] {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "statut inconnu")
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.challengeService.ListForModeration(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Stats handles GET /api/v1/admin/challenges/stats
func (h *ChallengeHandler) Stats(c *gin.Context) {
	stats, err := h.challengeService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// Approve handles POST /api/v1/admin/challenges/:id/approve
// @Summary Approve a pending challenge
// @Description Returns the challenge and the moderation counters recomputed from the database.
// @Tags admin
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} Response{data=service.ModerationResult} "Challenge and stats"
// @Failure 409 {object} ErrorResponseBody "Challenge is not pending"
// @Security BearerAuth
// @Router /admin/challenges/{id}/approve [post]
func (h *ChallengeHandler) Approve(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.challengeService.Approve(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Reject handles POST /api/v1/admin/challenges/:id/reject
// @Summary Reject a pending challenge
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body service.RejectInput true "Rejection reason"
// @Success 200 {object} Response{data=service.ModerationResult} "Challenge and stats"
// @Failure 400 {object} ErrorResponseBody "Reason required"
// @Failure 409 {object} ErrorResponseBody "Challenge is not pending"
// @Security BearerAuth
// @Router /admin/challenges/{id}/reject [post]
func (h *ChallengeHandler) Reject(c *gin.Context) {
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

	result, err := h.challengeService.Reject(c.Request.Context(), actor, id, input.Reason)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

func challengeFilter(c *gin.Context) (domain.ChallengeFilter, bool) {
	filter := domain.ChallengeFilter{
		Thematique: domain.Thematique(c.Query("thematique")),
		Query:      c.Query("q"),
	}
	if filter.Thematique != "" && !domain.ValidThematique(filter.Thematique) {
		HandleError(c, domain.ErrInvalidThematique)
		return filter, false
	}
	return filter, true
}
