package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or already used")
	ErrPasswordMismatch          = errors.New("password confirmation does not match")

	ErrProfileNotFound        = errors.New("profile not found")
	ErrIntervenantNotApproved = errors.New("intervenant is not approved")

	ErrInvalidTransition         = errors.New("status transition not allowed")
	ErrRejectionReasonRequired   = errors.New("rejection reason is required")
	ErrInvalidThematique         = errors.New("unknown thematique")
	ErrInvalidLanguageLevel      = errors.New("unknown language level")
	ErrInvalidAvailabilityMode   = errors.New("unknown availability mode")
	ErrInvalidDateRange          = errors.New("end date is before start date")
	ErrDatesRequired             = errors.New("start and end dates are required")
	ErrInvalidAmount             = errors.New("amount must not be negative")
	ErrInvalidDocumentType       = errors.New("unknown document type")
	ErrDocumentTypeAlreadyExists = errors.New("a document of this type already exists")

	ErrNotEditable           = errors.New("resource can no longer be modified")
	ErrAlreadyValidated      = errors.New("already validated by this party")
	ErrValidationsIncomplete = errors.New("both parties must validate first")
	ErrNotCreator            = errors.New("only the creating party may delete")

	ErrInvalidPeriode      = errors.New("periode must be formatted YYYY-MM")
	ErrDuplicatePeriode    = errors.New("a declaration already exists for this periode")
	ErrInvalidModePaiement = errors.New("unknown payment method")
	ErrFactureTypeLocked   = errors.New("facture type cannot change after creation")
	ErrFactureHasNoLines   = errors.New("facture must contain at least one line")
	ErrPDFNotGenerated     = errors.New("facture PDF has not been generated yet")
	ErrPDFGenerationFailed = errors.New("facture PDF generation failed")
)
