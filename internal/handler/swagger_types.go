package handler

import (
	"time"

	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"direction@esc-lyon.fr"`
	Password string `json:"password" binding:"required" example:"motdepasse123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email                string `json:"email" binding:"required" example:"lea.martin@exemple.fr"`
	Password             string `json:"password" binding:"required" example:"motdepasse123"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required" example:"motdepasse123"`
	FullName             string `json:"full_name" binding:"required" example:"Léa Martin"`
	Role                 string `json:"role" binding:"required" example:"INTERVENANT"`
	EcoleName            string `json:"ecole_name" example:"ESC Lyon"`
	FirstName            string `json:"first_name" example:"Léa"`
	LastName             string `json:"last_name" example:"Martin"`
}

// UpdateUserRequest represents the admin user update request body.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" example:"Léa Martin"`
	IsActive *bool   `json:"is_active" example:"false"`
}

// CreateCollaborationRequest represents the collaboration proposal request body.
type CreateCollaborationRequest struct {
	IntervenantID *uuid.UUID `json:"intervenant_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	EcoleID       *uuid.UUID `json:"ecole_id"`
	Titre         string     `json:"titre" binding:"required" example:"Atelier IA générative"`
	Description   string     `json:"description" example:"Deux demi-journées avec les M1"`
	DateDebut     string     `json:"date_debut" example:"2025-03-10"`
	DateFin       string     `json:"date_fin" example:"2025-03-11"`
	MontantHT     int64      `json:"montant_ht" example:"90000"`
	Notes         string     `json:"notes"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"document supprimé"`
}

// DownloadURLResponse carries a presigned document URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://edulink-documents.s3.eu-west-3.amazonaws.com/intervenants/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
