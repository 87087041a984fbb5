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

type missionRepo struct {
	db *sqlx.DB
}

// NewMissionRepo creates a new PostgreSQL-backed MissionRepository.
func NewMissionRepo(db *sqlx.DB) port.MissionRepository {
	return &missionRepo{db: db}
}

func (r *missionRepo) Create(ctx context.Context, m *domain.Mission) error {
	m.ID = uuid.New()
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = domain.MissionActive
	}
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO missions (id, ecole_id, intervenant_id, title,
		description, start_date, end_date, price_cents, status, created_at, updated_at)
		VALUES (:id, :ecole_id, :intervenant_id, :title, :description, :start_date, :end_date,
		:price_cents, :status, :created_at, :updated_at)`, m)
	if err != nil {
		return fmt.Errorf("missionRepo.Create: %w", err)
	}
	return nil
}

func (r *missionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mission, error) {
	var m domain.Mission
	err := r.db.GetContext(ctx, &m, "SELECT * FROM missions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("missionRepo.GetByID: %w", err)
	}
	return &m, nil
}

func missionWhere(filter domain.MissionFilter) whereBuilder {
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

func (r *missionRepo) List(ctx context.Context, filter domain.MissionFilter, offset, limit int) ([]domain.Mission, int, error) {
	w := missionWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM missions"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("missionRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var list []domain.Mission
	err := r.db.SelectContext(ctx, &list,
		"SELECT * FROM missions"+w.sql()+" ORDER BY start_date DESC, created_at DESC"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("missionRepo.List: %w", err)
	}
	return list, total, nil
}

func (r *missionRepo) Update(ctx context.Context, m *domain.Mission) error {
	m.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `UPDATE missions SET title = :title,
		description = :description, start_date = :start_date, end_date = :end_date,
		price_cents = :price_cents, updated_at = :updated_at WHERE id = :id`, m)
	if err != nil {
		return fmt.Errorf("missionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *missionRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to domain.MissionStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE missions SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3", to, id, from)
	if err != nil {
		return fmt.Errorf("missionRepo.SetStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *missionRepo) AssignIntervenant(ctx context.Context, id uuid.UUID, intervenantID *uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE missions SET intervenant_id = $1, updated_at = NOW() WHERE id = $2", intervenantID, id)
	if err != nil {
		return fmt.Errorf("missionRepo.AssignIntervenant: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *missionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM missions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("missionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type statusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

func countByStatus(ctx context.Context, db *sqlx.DB, table string, w whereBuilder) (domain.StatusCounts, error) {
	var rows []statusCount
	err := db.SelectContext(ctx, &rows,
		"SELECT status, COUNT(*) AS count FROM "+table+w.sql()+" GROUP BY status", w.args...)
	if err != nil {
		return nil, err
	}
	counts := domain.StatusCounts{"total": 0}
	for _, r := range rows {
		counts[r.Status] = r.Count
		counts["total"] += r.Count
	}
	return counts, nil
}

func (r *missionRepo) CountByStatus(ctx context.Context, filter domain.MissionFilter) (domain.StatusCounts, error) {
	filter.Status = ""
	counts, err := countByStatus(ctx, r.db, "missions", missionWhere(filter))
	if err != nil {
		return nil, fmt.Errorf("missionRepo.CountByStatus: %w", err)
	}
	return counts, nil
}
