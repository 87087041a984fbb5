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

type challengeRepo struct {
	db *sqlx.DB
}

// NewChallengeRepo creates a new PostgreSQL-backed ChallengeRepository.
func NewChallengeRepo(db *sqlx.DB) port.ChallengeRepository {
	return &challengeRepo{db: db}
}

func (r *challengeRepo) Create(ctx context.Context, c *domain.Challenge) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Status = domain.ModerationPending
	c.RejectionReason = nil

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO challenges (id, intervenant_id, title,
		short_description, description, thematique, duration, target_audience, objectives,
		deliverables, prerequisites, image_url, video_url, price_cents, status, created_at, updated_at)
		VALUES (:id, :intervenant_id, :title, :short_description, :description, :thematique, :duration,
		:target_audience, :objectives, :deliverables, :prerequisites, :image_url, :video_url,
		:price_cents, :status, :created_at, :updated_at)`, c)
	if err != nil {
		return fmt.Errorf("challengeRepo.Create: %w", err)
	}
	return nil
}

func (r *challengeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	var c domain.Challenge
	err := r.db.GetContext(ctx, &c, "SELECT * FROM challenges WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("challengeRepo.GetByID: %w", err)
	}
	return &c, nil
}

func challengeWhere(filter domain.ChallengeFilter) whereBuilder {
	var w whereBuilder
	if filter.Status != "" {
		w.add("status = $%d", filter.Status)
	}
	if filter.Thematique != "" {
		w.add("thematique = $%d", filter.Thematique)
	}
	if filter.IntervenantID != nil {
		w.add("intervenant_id = $%d", *filter.IntervenantID)
	}
	if filter.Query != "" {
		w.add("(title ILIKE $%[1]d OR short_description ILIKE $%[1]d)", "%"+filter.Query+"%")
	}
	return w
}

func (r *challengeRepo) List(ctx context.Context, filter domain.ChallengeFilter, offset, limit int) ([]domain.Challenge, int, error) {
	w := challengeWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM challenges"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("challengeRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var list []domain.Challenge
	err := r.db.SelectContext(ctx, &list,
		"SELECT * FROM challenges"+w.sql()+" ORDER BY created_at DESC"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("challengeRepo.List: %w", err)
	}
	return list, total, nil
}

func (r *challengeRepo) Update(ctx context.Context, c *domain.Challenge) error {
	c.UpdatedAt = time.Now().UTC()
	c.Status = domain.ModerationPending
	c.RejectionReason = nil
	result, err := r.db.NamedExecContext(ctx, `UPDATE challenges SET title = :title,
		short_description = :short_description, description = :description, thematique = :thematique,
		duration = :duration, target_audience = :target_audience, objectives = :objectives,
		deliverables = :deliverables, prerequisites = :prerequisites, image_url = :image_url,
		video_url = :video_url, price_cents = :price_cents, status = :status,
		rejection_reason = :rejection_reason, updated_at = :updated_at
		WHERE id = :id`, c)
	if err != nil {
		return fmt.Errorf("challengeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *challengeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM challenges WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("challengeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *challengeRepo) Moderate(ctx context.Context, id uuid.UUID, to domain.ModerationStatus, reason *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE challenges SET status = $1, rejection_reason = $2, updated_at = NOW()
		 WHERE id = $3 AND status = 'pending'`,
		to, reason, id)
	if err != nil {
		return fmt.Errorf("challengeRepo.Moderate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *challengeRepo) Stats(ctx context.Context, intervenantID *uuid.UUID) (*domain.ModerationStats, error) {
	var w whereBuilder
	if intervenantID != nil {
		w.add("intervenant_id = $%d", *intervenantID)
	}
	var stats domain.ModerationStats
	if err := r.db.GetContext(ctx, &stats,
		"SELECT "+moderationStatsColumns+" FROM challenges"+w.sql(), w.args...); err != nil {
		return nil, fmt.Errorf("challengeRepo.Stats: %w", err)
	}
	return &stats, nil
}
