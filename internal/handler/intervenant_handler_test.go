package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/handler"
	"edulink/mocks"
)

func TestIntervenantHandler_List_Filters(t *testing.T) {
	mockSvc := new(mocks.MockIntervenantService)
	h := handler.NewIntervenantHandler(mockSvc)
	actor := ecoleActor()

	mockSvc.On("List", mock.Anything, actor, domain.IntervenantFilter{
		Query:     "data",
		Expertise: "IA",
		Mode:      domain.ModeHybride,
		Language:  "anglais",
	}, 40, 10).Return([]domain.Intervenant{}, 0, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/intervenants?q=data&expertise=IA&mode=hybride&language=anglais&offset=40&limit=10", nil)
	setActorContext(c, actor)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestIntervenantHandler_List_BadFilters(t *testing.T) {
	tests := []struct {
		query string
		code  string
	}{
		{"status=banned", "INVALID_STATUS"},
		{"mode=teletravail", "INVALID_AVAILABILITY_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mockSvc := new(mocks.MockIntervenantService)
			h := handler.NewIntervenantHandler(mockSvc)

			c, w := newJSONContext(http.MethodGet, "/api/v1/intervenants?"+tt.query, nil)
			setActorContext(c, adminActor())

			h.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decodeResponse(t, w).Error.Code)
			mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestIntervenantHandler_Reject_ReasonRequired(t *testing.T) {
	mockSvc := new(mocks.MockIntervenantService)
	h := handler.NewIntervenantHandler(mockSvc)
	id := uuid.New()

	c, w := newJSONContext(http.MethodPost, "/api/v1/admin/intervenants/"+id.String()+"/reject",
		map[string]string{"reason": "   "})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActorContext(c, adminActor())

	h.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "REJECTION_REASON_REQUIRED", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIntervenantHandler_Approve(t *testing.T) {
	mockSvc := new(mocks.MockIntervenantService)
	h := handler.NewIntervenantHandler(mockSvc)
	actor := adminActor()
	id := uuid.New()

	mockSvc.On("Approve", mock.Anything, actor, id).
		Return(&domain.Intervenant{ID: id, Status: domain.ModerationApproved}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/admin/intervenants/"+id.String()+"/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActorContext(c, actor)

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}
