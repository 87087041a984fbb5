package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"edulink/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

func (r *statsRepo) CountEcoles(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM ecoles"); err != nil {
		return 0, fmt.Errorf("statsRepo.CountEcoles: %w", err)
	}
	return n, nil
}

func (r *statsRepo) CountAssignedMissions(ctx context.Context, intervenantID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM missions WHERE intervenant_id = $1 AND status = 'ACTIVE'", intervenantID)
	if err != nil {
		return 0, fmt.Errorf("statsRepo.CountAssignedMissions: %w", err)
	}
	return n, nil
}
