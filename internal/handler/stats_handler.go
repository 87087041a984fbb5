package handler

import (
	"github.com/gin-gonic/gin"

	"edulink/internal/service"
)

// StatsHandler handles dashboard and reference data endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Get dashboard statistics
// @Description Role-scoped counters: platform-wide for admins, own missions, collaborations, favorites and invoices for écoles, vault completion, challenges, collaborations and the year's declarations for intervenants.
// @Tags stats
// @Produce json
// @Success 200 {object} Response{data=domain.Stats} "Aggregate statistics"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// Reference handles GET /api/v1/reference
// @Summary Reference data
// @Description Thematiques, document requirements, status labels, colors and icons, language levels, availability and payment modes.
// @Tags stats
// @Produce json
// @Success 200 {object} Response{data=domain.Reference} "Reference data"
// @Router /reference [get]
func (h *StatsHandler) Reference(c *gin.Context) {
	RespondOK(c, h.statsService.Reference())
}
