package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edulink/internal/domain"
	"edulink/internal/handler"
	"edulink/mocks"
)

func TestDeclarationHandler_Create_InvalidPeriode(t *testing.T) {
	mockSvc := new(mocks.MockDeclarationService)
	h := handler.NewDeclarationHandler(mockSvc)

	c, w := newJSONContext(http.MethodPost, "/api/v1/declarations", map[string]interface{}{
		"periode":          "2024-13",
		"chiffre_affaires": 150000,
	})
	setActorContext(c, intervenantActor())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "periode doit être au format AAAA-MM", resp.Error.Fields["periode"])
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeclarationHandler_Create_Duplicate(t *testing.T) {
	mockSvc := new(mocks.MockDeclarationService)
	h := handler.NewDeclarationHandler(mockSvc)
	actor := intervenantActor()

	mockSvc.On("Create", mock.Anything, actor, mock.AnythingOfType("service.CreateDeclarationInput")).
		Return(nil, domain.ErrDuplicatePeriode)

	c, w := newJSONContext(http.MethodPost, "/api/v1/declarations", map[string]interface{}{
		"periode":          "2024-03",
		"chiffre_affaires": 150000,
	})
	setActorContext(c, actor)

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_PERIODE", decodeResponse(t, w).Error.Code)
}

func TestDeclarationHandler_List_InvalidStatus(t *testing.T) {
	h := handler.NewDeclarationHandler(new(mocks.MockDeclarationService))

	c, w := newJSONContext(http.MethodGet, "/api/v1/declarations?status=payee", nil)
	setActorContext(c, intervenantActor())

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", decodeResponse(t, w).Error.Code)
}

func TestDeclarationHandler_Estimate(t *testing.T) {
	mockSvc := new(mocks.MockDeclarationService)
	h := handler.NewDeclarationHandler(mockSvc)

	mockSvc.On("Estimate", int64(100000)).Return(domain.NewEstimate(100000), nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/declarations/estimate?chiffre_affaires=100000", nil)
	setActorContext(c, intervenantActor())

	h.Estimate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data domain.Estimate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(22000), resp.Data.CotisationsEstimees)
	assert.True(t, resp.Data.IsEstimate)
}

func TestDeclarationHandler_Estimate_InvalidAmount(t *testing.T) {
	mockSvc := new(mocks.MockDeclarationService)
	h := handler.NewDeclarationHandler(mockSvc)

	c, w := newJSONContext(http.MethodGet, "/api/v1/declarations/estimate?chiffre_affaires=douze", nil)
	setActorContext(c, intervenantActor())

	h.Estimate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AMOUNT", decodeResponse(t, w).Error.Code)
	mockSvc.AssertNotCalled(t, "Estimate", mock.Anything)
}

func TestDeclarationHandler_Export(t *testing.T) {
	mockSvc := new(mocks.MockDeclarationService)
	h := handler.NewDeclarationHandler(mockSvc)

	mockSvc.On("Export", mock.Anything, domain.DeclarationFilter{Year: 2024}, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "PK")
		}).Return(nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/admin/declarations/export.xlsx?year=2024", nil)
	setActorContext(c, adminActor())

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="declarations_2024_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.xlsx"`), disposition)
}

func TestDeclarationHandler_Export_Failure(t *testing.T) {
	mockSvc := new(mocks.MockDeclarationService)
	h := handler.NewDeclarationHandler(mockSvc)

	mockSvc.On("Export", mock.Anything, domain.DeclarationFilter{}, mock.Anything).
		Return(assert.AnError)

	c, w := newJSONContext(http.MethodGet, "/api/v1/admin/declarations/export.xlsx", nil)
	setActorContext(c, adminActor())

	h.Export(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", decodeResponse(t, w).Error.Code)
}
