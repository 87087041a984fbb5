package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"edulink/internal/domain"
	"edulink/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrProfileNotFound, http.StatusNotFound, "PROFILE_NOT_FOUND"},
		{domain.ErrInsufficientRole, http.StatusForbidden, "INSUFFICIENT_ROLE"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrDocumentTypeAlreadyExists, http.StatusConflict, "DOCUMENT_TYPE_ALREADY_PRESENT"},
		{domain.ErrIntervenantNotApproved, http.StatusUnprocessableEntity, "INTERVENANT_NOT_APPROVED"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrRejectionReasonRequired, http.StatusBadRequest, "REJECTION_REASON_REQUIRED"},
		{domain.ErrDatesRequired, http.StatusBadRequest, "DATES_REQUIRED"},
		{domain.ErrNotEditable, http.StatusConflict, "NOT_EDITABLE"},
		{domain.ErrAlreadyValidated, http.StatusConflict, "ALREADY_VALIDATED"},
		{domain.ErrValidationsIncomplete, http.StatusConflict, "VALIDATIONS_INCOMPLETE"},
		{domain.ErrNotCreator, http.StatusForbidden, "NOT_CREATOR"},
		{domain.ErrDuplicatePeriode, http.StatusConflict, "DUPLICATE_PERIODE"},
		{domain.ErrInvalidModePaiement, http.StatusBadRequest, "INVALID_MODE_PAIEMENT"},
		{domain.ErrFactureTypeLocked, http.StatusBadRequest, "FACTURE_TYPE_LOCKED"},
		{domain.ErrFactureHasNoLines, http.StatusBadRequest, "FACTURE_WITHOUT_LINES"},
		{domain.ErrPDFNotGenerated, http.StatusNotFound, "PDF_NOT_GENERATED"},
		{domain.ErrPDFGenerationFailed, http.StatusInternalServerError, "PDF_GENERATION_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("collaborationRepo.Update: %w", domain.ErrNotEditable)

	status, code, _ := handler.MapDomainError(err)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NOT_EDITABLE", code)
}
