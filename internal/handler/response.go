package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edulink/internal/domain"
	"edulink/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Fields is set for request
// validation failures, keyed by JSON field name.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes, error codes and
// the French message shown to the user.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "ressource introuvable"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "PROFILE_NOT_FOUND", "profil introuvable"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "authentification requise"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "action non autorisée"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "INSUFFICIENT_ROLE", "votre rôle ne permet pas cette action"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "email ou mot de passe incorrect"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "ce compte est désactivé"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "un compte existe déjà avec cet email"
	case errors.Is(err, domain.ErrPasswordResetTokenInvalid):
		return http.StatusUnauthorized, "INVALID_RESET_TOKEN", "le lien de réinitialisation est invalide ou a déjà été utilisé"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, "PASSWORD_MISMATCH", "les mots de passe ne correspondent pas"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "format de fichier non supporté ; formats acceptés : pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "le fichier dépasse la taille maximale autorisée"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "l'envoi du fichier a échoué"
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "type de document inconnu"
	case errors.Is(err, domain.ErrDocumentTypeAlreadyExists):
		return http.StatusConflict, "DOCUMENT_TYPE_ALREADY_PRESENT", "un document de ce type existe déjà ; supprimez-le avant d'en envoyer un nouveau"
	case errors.Is(err, domain.ErrIntervenantNotApproved):
		return http.StatusUnprocessableEntity, "INTERVENANT_NOT_APPROVED", "cet intervenant n'est pas encore validé"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "ce changement de statut n'est pas autorisé"
	case errors.Is(err, domain.ErrRejectionReasonRequired):
		return http.StatusBadRequest, "REJECTION_REASON_REQUIRED", "un motif de refus est obligatoire"
	case errors.Is(err, domain.ErrInvalidThematique):
		return http.StatusBadRequest, "INVALID_THEMATIQUE", "thématique inconnue"
	case errors.Is(err, domain.ErrInvalidLanguageLevel):
		return http.StatusBadRequest, "INVALID_LANGUAGE_LEVEL", "niveau de langue inconnu"
	case errors.Is(err, domain.ErrInvalidAvailabilityMode):
		return http.StatusBadRequest, "INVALID_AVAILABILITY_MODE", "mode de disponibilité inconnu"
	case errors.Is(err, domain.ErrDatesRequired):
		return http.StatusBadRequest, "DATES_REQUIRED", "les dates de début et de fin sont obligatoires"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest, "INVALID_DATE_RANGE", "la date de fin précède la date de début"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "un montant ne peut pas être négatif"
	case errors.Is(err, domain.ErrNotEditable):
		return http.StatusConflict, "NOT_EDITABLE", "cet élément ne peut plus être modifié"
	case errors.Is(err, domain.ErrAlreadyValidated):
		return http.StatusConflict, "ALREADY_VALIDATED", "vous avez déjà validé"
	case errors.Is(err, domain.ErrValidationsIncomplete):
		return http.StatusConflict, "VALIDATIONS_INCOMPLETE", "les deux parties doivent valider avant de démarrer"
	case errors.Is(err, domain.ErrNotCreator):
		return http.StatusForbidden, "NOT_CREATOR", "seule la partie à l'origine de la collaboration peut la supprimer"
	case errors.Is(err, domain.ErrInvalidPeriode):
		return http.StatusBadRequest, "INVALID_PERIODE", "la période doit être au format AAAA-MM"
	case errors.Is(err, domain.ErrDuplicatePeriode):
		return http.StatusConflict, "DUPLICATE_PERIODE", "une déclaration existe déjà pour cette période"
	case errors.Is(err, domain.ErrInvalidModePaiement):
		return http.StatusBadRequest, "INVALID_MODE_PAIEMENT", "mode de paiement inconnu"
	case errors.Is(err, domain.ErrFactureTypeLocked):
		return http.StatusBadRequest, "FACTURE_TYPE_LOCKED", "le type d'une facture ne peut pas être modifié"
	case errors.Is(err, domain.ErrFactureHasNoLines):
		return http.StatusBadRequest, "FACTURE_WITHOUT_LINES", "une facture doit contenir au moins une ligne"
	case errors.Is(err, domain.ErrPDFNotGenerated):
		return http.StatusNotFound, "PDF_NOT_GENERATED", "le PDF de cette facture n'a pas encore été généré"
	case errors.Is(err, domain.ErrPDFGenerationFailed):
		return http.StatusInternalServerError, "PDF_GENERATION_FAILED", "la génération du PDF a échoué"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "une erreur interne est survenue"
	}
}

// extractActor reads the caller identity from the request context.
// Returns false if auth context is missing (error response already written).
func extractActor(c *gin.Context) (domain.Actor, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "contexte utilisateur manquant")
		return domain.Actor{}, false
	}
	return actor, true
}

// parseIDParam parses a UUID path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "identifiant invalide")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseYear reads an optional year query parameter; 0 means unset.
func parseYear(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		RespondError(c, http.StatusBadRequest, "INVALID_YEAR", "année invalide")
		return 0, false
	}
	return year, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
		middleware.ReportError(c, err)
	}
	RespondError(c, status, code, msg)
}
