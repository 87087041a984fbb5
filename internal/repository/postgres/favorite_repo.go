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

type favoriteRepo struct {
	db *sqlx.DB
}

// NewFavoriteRepo creates a new PostgreSQL-backed FavoriteRepository.
func NewFavoriteRepo(db *sqlx.DB) port.FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Toggle(ctx context.Context, ecoleID, intervenantID uuid.UUID) (bool, error) {
	var favorited bool
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			"DELETE FROM favorites WHERE ecole_id = $1 AND intervenant_id = $2", ecoleID, intervenantID)
		if err != nil {
			return err
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			favorited = false
			return nil
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO favorites (id, ecole_id, intervenant_id, created_at) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (ecole_id, intervenant_id) DO NOTHING`,
			uuid.New(), ecoleID, intervenantID, time.Now().UTC())
		if err != nil {
			return err
		}
		favorited = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("favoriteRepo.Toggle: %w", err)
	}
	return favorited, nil
}

func (r *favoriteRepo) Exists(ctx context.Context, ecoleID, intervenantID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM favorites WHERE ecole_id = $1 AND intervenant_id = $2)",
		ecoleID, intervenantID)
	if err != nil {
		return false, fmt.Errorf("favoriteRepo.Exists: %w", err)
	}
	return exists, nil
}

type favoriteRow struct {
	domain.Favorite
	FirstName  string                  `db:"first_name"`
	LastName   string                  `db:"last_name"`
	City       string                  `db:"city"`
	Expertises domain.StringList       `db:"expertises"`
	Status     domain.ModerationStatus `db:"status"`
}

func (r *favoriteRepo) List(ctx context.Context, ecoleID uuid.UUID) ([]domain.Favorite, error) {
	var rows []favoriteRow
	err := r.db.SelectContext(ctx, &rows, `SELECT f.id, f.ecole_id, f.intervenant_id, f.created_at,
		COALESCE(n.note, '') AS note, i.first_name, i.last_name, i.city, i.expertises, i.status
		FROM favorites f
		INNER JOIN intervenants i ON i.id = f.intervenant_id
		LEFT JOIN favorite_notes n ON n.ecole_id = f.ecole_id AND n.intervenant_id = f.intervenant_id
		WHERE f.ecole_id = $1
		ORDER BY f.created_at DESC`, ecoleID)
	if err != nil {
		return nil, fmt.Errorf("favoriteRepo.List: %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(rows))
	for i := range rows {
		fav := rows[i].Favorite
		fav.Intervenant = &domain.IntervenantSummary{
			ID:         fav.IntervenantID,
			FirstName:  rows[i].FirstName,
			LastName:   rows[i].LastName,
			City:       rows[i].City,
			Expertises: rows[i].Expertises,
			Status:     rows[i].Status,
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

func (r *favoriteRepo) Count(ctx context.Context, ecoleID uuid.UUID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM favorites WHERE ecole_id = $1", ecoleID); err != nil {
		return 0, fmt.Errorf("favoriteRepo.Count: %w", err)
	}
	return n, nil
}

func (r *favoriteRepo) GetNote(ctx context.Context, ecoleID, intervenantID uuid.UUID) (string, error) {
	var note string
	err := r.db.GetContext(ctx, &note,
		"SELECT note FROM favorite_notes WHERE ecole_id = $1 AND intervenant_id = $2", ecoleID, intervenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("favoriteRepo.GetNote: %w", err)
	}
	return note, nil
}

func (r *favoriteRepo) UpsertNote(ctx context.Context, ecoleID, intervenantID uuid.UUID, note string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO favorite_notes (ecole_id, intervenant_id, note, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (ecole_id, intervenant_id) DO UPDATE SET note = EXCLUDED.note, updated_at = NOW()`,
		ecoleID, intervenantID, note)
	if err != nil {
		return fmt.Errorf("favoriteRepo.UpsertNote: %w", err)
	}
	return nil
}
