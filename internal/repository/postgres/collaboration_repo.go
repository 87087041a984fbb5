package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"edulink/internal/domain"
	"edulink/internal/port"
)

type collaborationRepo struct {
	db *sqlx.DB
}

// NewCollaborationRepo creates a new PostgreSQL-backed CollaborationRepository.
func NewCollaborationRepo(db *sqlx.DB) port.CollaborationRepository {
	return &collaborationRepo{db: db}
}

func (r *collaborationRepo) Create(ctx context.Context, c *domain.Collaboration) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Status = domain.CollaborationBrouillon
	c.ValidatedByEcole = false
	c.ValidatedByIntervenant = false

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO collaborations (id, ecole_id, intervenant_id,
		titre, description, date_debut, date_fin, montant_ht, notes, status, validated_by_ecole,
		validated_by_intervenant, created_by, created_at, updated_at)
		VALUES (:id, :ecole_id, :intervenant_id, :titre, :description, :date_debut, :date_fin,
		:montant_ht, :notes, :status, :validated_by_ecole, :validated_by_intervenant, :created_by,
		:created_at, :updated_at)`, c)
	if err != nil {
		return fmt.Errorf("collaborationRepo.Create: %w", err)
	}
	return nil
}

func (r *collaborationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collaboration, error) {
	var c domain.Collaboration
	err := r.db.GetContext(ctx, &c, "SELECT * FROM collaborations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("collaborationRepo.GetByID: %w", err)
	}
	return &c, nil
}

func collaborationWhere(filter domain.CollaborationFilter) whereBuilder {
	var w whereBuilder
	if filter.Status != "" {
		w.add("status = $%d", filter.Status)
	}
	if filter.EcoleID != nil {
		w.add("ecole_id = $%d", *filter.EcoleID)
	}
	if filter.IntervenantID != nil {
		w.add("intervenant_id = $%d", *filter.IntervenantID)
	}
	return w
}

func (r *collaborationRepo) List(ctx context.Context, filter domain.CollaborationFilter, offset, limit int) ([]domain.Collaboration, int, error) {
	w := collaborationWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM collaborations"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("collaborationRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var list []domain.Collaboration
	err := r.db.SelectContext(ctx, &list,
		"SELECT * FROM collaborations"+w.sql()+" ORDER BY updated_at DESC"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("collaborationRepo.List: %w", err)
	}
	return list, total, nil
}

func (r *collaborationRepo) CountByStatus(ctx context.Context, filter domain.CollaborationFilter) (domain.StatusCounts, error) {
	filter.Status = ""
	counts, err := countByStatus(ctx, r.db, "collaborations", collaborationWhere(filter))
	if err != nil {
		return nil, fmt.Errorf("collaborationRepo.CountByStatus: %w", err)
	}
	return counts, nil
}

func (r *collaborationRepo) Update(ctx context.Context, c *domain.Collaboration) error {
	c.UpdatedAt = time.Now().UTC()
	c.ValidatedByEcole = false
	c.ValidatedByIntervenant = false
	result, err := r.db.NamedExecContext(ctx, `UPDATE collaborations SET titre = :titre,
		description = :description, date_debut = :date_debut, date_fin = :date_fin,
		montant_ht = :montant_ht, notes = :notes, validated_by_ecole = FALSE,
		validated_by_intervenant = FALSE, updated_at = :updated_at
		WHERE id = :id AND status = 'brouillon'`, c)
	if err != nil {
		return fmt.Errorf("collaborationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotEditable
	}
	return nil
}

func (r *collaborationRepo) SetValidated(ctx context.Context, id uuid.UUID, party domain.CollaborationParty) error {
	column := "validated_by_intervenant"
	if party == domain.PartyEcole {
		column = "validated_by_ecole"
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE collaborations SET "+column+" = TRUE, updated_at = NOW() WHERE id = $1 AND status = 'brouillon' AND "+column+" = FALSE",
		id)
	if err != nil {
		return fmt.Errorf("collaborationRepo.SetValidated: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	// Nothing matched: tell apart a non-draft from a flag already raised.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != domain.CollaborationBrouillon {
		return domain.ErrNotEditable
	}
	return domain.ErrAlreadyValidated
}

func (r *collaborationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.CollaborationStatus) error {
	query := "UPDATE collaborations SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3"
	if from == domain.CollaborationBrouillon && to == domain.CollaborationEnCours {
		query += " AND validated_by_ecole AND validated_by_intervenant"
	}
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("collaborationRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *collaborationRepo) Delete(ctx context.Context, id uuid.UUID, party domain.CollaborationParty) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM collaborations WHERE id = $1 AND status = 'brouillon' AND created_by = $2", id, party)
	if err != nil {
		return fmt.Errorf("collaborationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotEditable
	}
	return nil
}
