package port

import (
	"context"

	"github.com/google/uuid"

	"edulink/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	// CreateEcoleAccount inserts the user and its école profile in one transaction.
	CreateEcoleAccount(ctx context.Context, user *domain.User, ecole *domain.Ecole) error
	// CreateIntervenantAccount inserts the user and its intervenant profile in one transaction.
	CreateIntervenantAccount(ctx context.Context, user *domain.User, intervenant *domain.Intervenant) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, role domain.UserRole, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error
}

// EcoleRepository defines the contract for école profile persistence.
type EcoleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ecole, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Ecole, error)
	List(ctx context.Context, offset, limit int) ([]domain.Ecole, int, error)
	Update(ctx context.Context, ecole *domain.Ecole) error
}

// IntervenantRepository defines the contract for intervenant profile persistence.
type IntervenantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Intervenant, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Intervenant, error)
	List(ctx context.Context, filter domain.IntervenantFilter, offset, limit int) ([]domain.Intervenant, int, error)
	// Update writes the owner-editable fields; status and rejection reason are untouched.
	Update(ctx context.Context, intervenant *domain.Intervenant) error
	// Moderate moves the profile from -> to. Returns ErrInvalidTransition when the
	// current status is no longer from.
	Moderate(ctx context.Context, id uuid.UUID, from, to domain.ModerationStatus, reason *string) error
	CountByStatus(ctx context.Context) (*domain.ModerationStats, error)
}

// DocumentRepository defines the contract for vault document metadata.
type DocumentRepository interface {
	// Create returns ErrDocumentTypeAlreadyExists when a single-instance slot is already filled.
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByIntervenant(ctx context.Context, intervenantID uuid.UUID) ([]domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
