package handler

import (
	"github.com/gin-gonic/gin"

	"edulink/internal/service"
)

// FavoriteHandler handles the favorites and private notes of an école.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List handles GET /api/v1/favorites
// @Summary My favorite intervenants
// @Tags favorites
// @Produce json
// @Success 200 {object} Response{data=[]domain.Favorite} "Favorites with notes"
// @Failure 403 {object} ErrorResponseBody "Écoles only"
// @Security BearerAuth
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, favorites)
}

// Toggle handles POST /api/v1/favorites/:intervenantId/toggle
// @Summary Add or remove a favorite
// @Description Removes the favorite when present, adds it otherwise. Two toggles leave it unset.
// @Tags favorites
// @Produce json
// @Param intervenantId path string true "Intervenant ID"
// @Success 200 {object} Response{data=domain.FavoriteState} "New state"
// @Failure 404 {object} ErrorResponseBody "Intervenant not found"
// @Security BearerAuth
// @Router /favorites/{intervenantId}/toggle [post]
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "intervenantId")
	if !ok {
		return
	}

	state, err := h.favoriteService.Toggle(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}

// SetNote handles PUT /api/v1/favorites/:intervenantId/note
func (h *FavoriteHandler) SetNote(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "intervenantId")
	if !ok {
		return
	}

	var input service.NoteInput
	if !bindJSON(c, &input) {
		return
	}

	state, err := h.favoriteService.SetNote(c.Request.Context(), actor, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}

// State handles GET /api/v1/favorites/:intervenantId
func (h *FavoriteHandler) State(c *gin.Context) {
	actor, ok := extractActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "intervenantId")
	if !ok {
		return
	}

	state, err := h.favoriteService.State(c.Request.Context(), actor, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, state)
}
