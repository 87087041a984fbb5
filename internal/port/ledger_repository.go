package port

import (
	"context"

	"github.com/google/uuid"

	"edulink/internal/domain"
)

// DeclarationRepository defines the contract for revenue declaration persistence.
type DeclarationRepository interface {
	// Create returns ErrDuplicatePeriode when the intervenant already declared that month.
	Create(ctx context.Context, decl *domain.Declaration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error)
	List(ctx context.Context, filter domain.DeclarationFilter, offset, limit int) ([]domain.Declaration, int, error)
	ListForExport(ctx context.Context, filter domain.DeclarationFilter) ([]domain.Declaration, error)
	// Update and Delete only affect brouillon rows and return ErrNotEditable otherwise.
	Update(ctx context.Context, decl *domain.Declaration) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.DeclarationStatus, to domain.DeclarationStatus) error
	Summary(ctx context.Context, intervenantID *uuid.UUID, year int) (*domain.DeclarationSummary, error)
}

// FactureRepository defines the contract for invoice persistence.
type FactureRepository interface {
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, facture *domain.Facture) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facture, error)
	List(ctx context.Context, filter domain.FactureFilter, offset, limit int) ([]domain.Facture, int, error)
	ListForExport(ctx context.Context, filter domain.FactureFilter) ([]domain.Facture, error)
	// Update and Delete only affect brouillon rows and return ErrNotEditable otherwise.
	Update(ctx context.Context, facture *domain.Facture) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.FactureStatus, to domain.FactureStatus) error
	MarkPaid(ctx context.Context, id uuid.UUID, mode domain.ModePaiement, date domain.Date) error
	SetPDFPath(ctx context.Context, id uuid.UUID, path string) error
	// ListOverdue returns envoyee invoices whose due date is before today. A limit
	// of 0 returns all of them.
	ListOverdue(ctx context.Context, today domain.Date, limit int) ([]domain.Facture, error)
	Totals(ctx context.Context, filter domain.FactureFilter) (*domain.FactureTotals, error)
}
