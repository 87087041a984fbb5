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

type ecoleRepo struct {
	db *sqlx.DB
}

// NewEcoleRepo creates a new PostgreSQL-backed EcoleRepository.
func NewEcoleRepo(db *sqlx.DB) port.EcoleRepository {
	return &ecoleRepo{db: db}
}

func (r *ecoleRepo) get(ctx context.Context, column string, id uuid.UUID) (*domain.Ecole, error) {
	var ecole domain.Ecole
	err := r.db.GetContext(ctx, &ecole, "SELECT * FROM ecoles WHERE "+column+" = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("ecoleRepo.get: %w", err)
	}
	return &ecole, nil
}

func (r *ecoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ecole, error) {
	return r.get(ctx, "id", id)
}

func (r *ecoleRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Ecole, error) {
	return r.get(ctx, "user_id", userID)
}

func (r *ecoleRepo) List(ctx context.Context, offset, limit int) ([]domain.Ecole, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ecoles"); err != nil {
		return nil, 0, fmt.Errorf("ecoleRepo.List count: %w", err)
	}
	var ecoles []domain.Ecole
	err := r.db.SelectContext(ctx, &ecoles,
		"SELECT * FROM ecoles ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ecoleRepo.List: %w", err)
	}
	return ecoles, total, nil
}

func (r *ecoleRepo) Update(ctx context.Context, ecole *domain.Ecole) error {
	ecole.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `UPDATE ecoles SET name = :name, siret = :siret,
		address = :address, postal_code = :postal_code, city = :city, phone = :phone,
		website = :website, contact_email = :contact_email, description = :description,
		updated_at = :updated_at WHERE id = :id`, ecole)
	if err != nil {
		return fmt.Errorf("ecoleRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type intervenantRepo struct {
	db *sqlx.DB
}

// NewIntervenantRepo creates a new PostgreSQL-backed IntervenantRepository.
func NewIntervenantRepo(db *sqlx.DB) port.IntervenantRepository {
	return &intervenantRepo{db: db}
}

func (r *intervenantRepo) get(ctx context.Context, column string, id uuid.UUID) (*domain.Intervenant, error) {
	var interv domain.Intervenant
	err := r.db.GetContext(ctx, &interv, "SELECT * FROM intervenants WHERE "+column+" = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("intervenantRepo.get: %w", err)
	}
	return &interv, nil
}

func (r *intervenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Intervenant, error) {
	return r.get(ctx, "id", id)
}

func (r *intervenantRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Intervenant, error) {
	return r.get(ctx, "user_id", userID)
}

func (r *intervenantRepo) List(ctx context.Context, filter domain.IntervenantFilter, offset, limit int) ([]domain.Intervenant, int, error) {
	var w whereBuilder
	if filter.Status != "" {
		w.add("status = $%d", filter.Status)
	}
	if filter.Query != "" {
		w.add("(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR bio ILIKE $%[1]d OR city ILIKE $%[1]d)",
			"%"+filter.Query+"%")
	}
	if filter.Expertise != "" {
		w.add("EXISTS (SELECT 1 FROM jsonb_array_elements_text(expertises) e WHERE e ILIKE $%d)", filter.Expertise)
	}
	if filter.Mode != "" {
		w.add("availability_modes ? $%d", string(filter.Mode))
	}
	if filter.Language != "" {
		w.add("EXISTS (SELECT 1 FROM jsonb_array_elements(languages) l WHERE l->>'language' ILIKE $%d)", filter.Language)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM intervenants"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("intervenantRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var list []domain.Intervenant
	err := r.db.SelectContext(ctx, &list,
		"SELECT * FROM intervenants"+w.sql()+" ORDER BY last_name, first_name"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("intervenantRepo.List: %w", err)
	}
	return list, total, nil
}

func (r *intervenantRepo) Update(ctx context.Context, interv *domain.Intervenant) error {
	interv.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `UPDATE intervenants SET first_name = :first_name,
		last_name = :last_name, phone = :phone, city = :city, bio = :bio, siret = :siret,
		years_experience = :years_experience, daily_rate_cents = :daily_rate_cents,
		linkedin_url = :linkedin_url, website_url = :website_url, expertises = :expertises,
		languages = :languages, availability_modes = :availability_modes, updated_at = :updated_at
		WHERE id = :id`, interv)
	if err != nil {
		return fmt.Errorf("intervenantRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *intervenantRepo) Moderate(ctx context.Context, id uuid.UUID, from, to domain.ModerationStatus, reason *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE intervenants SET status = $1, rejection_reason = $2, updated_at = NOW()
		 WHERE id = $3 AND status = $4`,
		to, reason, id, from)
	if err != nil {
		return fmt.Errorf("intervenantRepo.Moderate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

const moderationStatsColumns = `COUNT(*) AS total,
	COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending,
	COUNT(CASE WHEN status = 'approved' THEN 1 END) AS approved,
	COUNT(CASE WHEN status = 'rejected' THEN 1 END) AS rejected`

func (r *intervenantRepo) CountByStatus(ctx context.Context) (*domain.ModerationStats, error) {
	var stats domain.ModerationStats
	if err := r.db.GetContext(ctx, &stats, "SELECT "+moderationStatsColumns+" FROM intervenants"); err != nil {
		return nil, fmt.Errorf("intervenantRepo.CountByStatus: %w", err)
	}
	return &stats, nil
}
