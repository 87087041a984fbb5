package handler_test

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"edulink/internal/domain"
	"edulink/internal/handler"
	"edulink/internal/service"
	"edulink/mocks"
)

func TestFactureHandler_Create_Validation(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)

	c, w := newJSONContext(http.MethodPost, "/api/v1/factures", map[string]interface{}{
		"type":     "avoir",
		"ecole_id": uuid.New().String(),
		"lignes":   []map[string]interface{}{{"description": "", "quantite": 0, "prix_unitaire": 1000}},
	})
	setActorContext(c, intervenantActor())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Fields, "type")
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFactureHandler_Create_Forbidden(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)
	actor := intervenantActor()

	mockSvc.On("Create", mock.Anything, actor, mock.AnythingOfType("service.FactureInput")).
		Return(nil, domain.ErrForbidden)

	c, w := newJSONContext(http.MethodPost, "/api/v1/factures", map[string]interface{}{
		"type":     "ecole",
		"ecole_id": uuid.New().String(),
		"lignes":   []map[string]interface{}{{"description": "Atelier", "quantite": 1, "prix_unitaire": 90000}},
	})
	setActorContext(c, actor)

	h.Create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFactureHandler_List_InvalidType(t *testing.T) {
	h := handler.NewFactureHandler(new(mocks.MockFactureService))

	c, w := newJSONContext(http.MethodGet, "/api/v1/factures?type=avoir", nil)
	setActorContext(c, adminActor())

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TYPE", decodeResponse(t, w).Error.Code)
}

func TestFactureHandler_List_InvalidYear(t *testing.T) {
	h := handler.NewFactureHandler(new(mocks.MockFactureService))

	c, w := newJSONContext(http.MethodGet, "/api/v1/factures?year=24", nil)
	setActorContext(c, adminActor())

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_YEAR", decodeResponse(t, w).Error.Code)
}

func TestFactureHandler_Send(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)
	actor := adminActor()
	id := uuid.New()

	mockSvc.On("Send", mock.Anything, actor, id).
		Return(&domain.Facture{ID: id, Status: domain.FactureEnvoyee}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/factures/"+id.String()+"/envoyer", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActorContext(c, actor)

	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFactureHandler_MarkPaid_AlreadyPaid(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)
	actor := adminActor()
	id := uuid.New()

	mockSvc.On("MarkPaid", mock.Anything, actor, id, mock.MatchedBy(func(in service.MarkPaidInput) bool {
		return in.ModePaiement == domain.PaiementVirement && in.DatePaiement.Equal(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	})).Return(nil, domain.ErrInvalidTransition)

	c, w := newJSONContext(http.MethodPost, "/api/v1/factures/"+id.String()+"/marquer-payee", map[string]string{
		"mode_paiement": "virement",
		"date_paiement": "2024-04-02",
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActorContext(c, actor)

	h.MarkPaid(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", decodeResponse(t, w).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestFactureHandler_DownloadPDF_NotGenerated(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)
	actor := ecoleActor()
	id := uuid.New()

	mockSvc.On("DownloadPDF", mock.Anything, actor, id).Return(nil, domain.ErrPDFNotGenerated)

	c, w := newJSONContext(http.MethodGet, "/api/v1/factures/"+id.String()+"/telecharger-pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActorContext(c, actor)

	h.DownloadPDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PDF_NOT_GENERATED", decodeResponse(t, w).Error.Code)
}

func TestFactureHandler_DownloadPDF(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)
	actor := ecoleActor()
	id := uuid.New()

	mockSvc.On("DownloadPDF", mock.Anything, actor, id).
		Return(&service.PDFFile{Filename: "FAC-2024-00001.pdf", Data: []byte("%PDF-1.7")}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/factures/"+id.String()+"/telecharger-pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	setActorContext(c, actor)

	h.DownloadPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="FAC-2024-00001.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.7", w.Body.String())
}

func TestFactureHandler_ExportCSV(t *testing.T) {
	mockSvc := new(mocks.MockFactureService)
	h := handler.NewFactureHandler(mockSvc)

	mockSvc.On("ExportCSV", mock.Anything, domain.FactureFilter{Year: 2024, Status: domain.FacturePayee}, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "\ufeffNuméro;Type\nFAC-2024-00001;ecole\n")
		}).Return(nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/admin/factures/export.csv?year=2024&status=payee", nil)
	setActorContext(c, adminActor())

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="factures_2024_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.csv"`), disposition)
	assert.True(t, strings.HasPrefix(w.Body.String(), "\ufeff"))
	mockSvc.AssertExpectations(t)
}
