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

type declarationRepo struct {
	db *sqlx.DB
}

// NewDeclarationRepo creates a new PostgreSQL-backed DeclarationRepository.
func NewDeclarationRepo(db *sqlx.DB) port.DeclarationRepository {
	return &declarationRepo{db: db}
}

func (r *declarationRepo) Create(ctx context.Context, d *domain.Declaration) error {
	d.ID = uuid.New()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	d.Status = domain.DeclarationBrouillon

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO declarations (id, intervenant_id, periode,
		chiffre_affaires, nb_missions, nb_heures, frais_pro, cotisations_sociales,
		contribution_formation, notes, status, created_at, updated_at)
		VALUES (:id, :intervenant_id, :periode, :chiffre_affaires, :nb_missions, :nb_heures, :frais_pro,
		:cotisations_sociales, :contribution_formation, :notes, :status, :created_at, :updated_at)`, d)
	if err != nil {
		if uniqueViolation(err, "") {
			return domain.ErrDuplicatePeriode
		}
		return fmt.Errorf("declarationRepo.Create: %w", err)
	}
	return nil
}

func (r *declarationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Declaration, error) {
	var d domain.Declaration
	err := r.db.GetContext(ctx, &d, "SELECT * FROM declarations WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("declarationRepo.GetByID: %w", err)
	}
	return &d, nil
}

func declarationWhere(filter domain.DeclarationFilter) whereBuilder {
	var w whereBuilder
	if filter.IntervenantID != nil {
		w.add("d.intervenant_id = $%d", *filter.IntervenantID)
	}
	if filter.Year != 0 {
		w.add("d.periode LIKE $%d", fmt.Sprintf("%04d-%%", filter.Year))
	}
	if filter.Status != "" {
		w.add("d.status = $%d", filter.Status)
	}
	return w
}

const declarationSelect = `SELECT d.*, TRIM(i.first_name || ' ' || i.last_name) AS intervenant_name
	FROM declarations d INNER JOIN intervenants i ON i.id = d.intervenant_id`

func (r *declarationRepo) List(ctx context.Context, filter domain.DeclarationFilter, offset, limit int) ([]domain.Declaration, int, error) {
	w := declarationWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM declarations d"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var list []domain.Declaration
	err := r.db.SelectContext(ctx, &list, declarationSelect+w.sql()+" ORDER BY d.periode DESC"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("declarationRepo.List: %w", err)
	}
	return list, total, nil
}

func (r *declarationRepo) ListForExport(ctx context.Context, filter domain.DeclarationFilter) ([]domain.Declaration, error) {
	w := declarationWhere(filter)
	var list []domain.Declaration
	err := r.db.SelectContext(ctx, &list,
		declarationSelect+w.sql()+" ORDER BY d.periode, intervenant_name", w.args...)
	if err != nil {
		return nil, fmt.Errorf("declarationRepo.ListForExport: %w", err)
	}
	return list, nil
}

func (r *declarationRepo) Update(ctx context.Context, d *domain.Declaration) error {
	d.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `UPDATE declarations SET chiffre_affaires = :chiffre_affaires,
		nb_missions = :nb_missions, nb_heures = :nb_heures, frais_pro = :frais_pro,
		cotisations_sociales = :cotisations_sociales, contribution_formation = :contribution_formation,
		notes = :notes, updated_at = :updated_at
		WHERE id = :id AND status = 'brouillon'`, d)
	if err != nil {
		return fmt.Errorf("declarationRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotEditable
	}
	return nil
}

func (r *declarationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM declarations WHERE id = $1 AND status = 'brouillon'", id)
	if err != nil {
		return fmt.Errorf("declarationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotEditable
	}
	return nil
}

func (r *declarationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.DeclarationStatus, to domain.DeclarationStatus) error {
	query, args, err := sqlx.In(`UPDATE declarations SET status = ?,
		validated_at = CASE WHEN ?::text = 'validee' THEN NOW() ELSE validated_at END, updated_at = NOW()
		WHERE id = ? AND status IN (?)`, to, to, id, from)
	if err != nil {
		return fmt.Errorf("declarationRepo.UpdateStatus: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("declarationRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *declarationRepo) Summary(ctx context.Context, intervenantID *uuid.UUID, year int) (*domain.DeclarationSummary, error) {
	w := declarationWhere(domain.DeclarationFilter{IntervenantID: intervenantID, Year: year})
	summary := domain.DeclarationSummary{Year: year}
	err := r.db.GetContext(ctx, &summary, `SELECT `+fmt.Sprint(year)+` AS year, COUNT(*) AS count,
		COALESCE(SUM(d.chiffre_affaires), 0) AS chiffre_affaires,
		COALESCE(SUM(d.frais_pro), 0) AS frais_pro,
		COALESCE(SUM(d.cotisations_sociales), 0) AS cotisations_sociales,
		COALESCE(SUM(d.contribution_formation), 0) AS contribution_formation,
		COALESCE(SUM(d.nb_missions), 0) AS nb_missions
		FROM declarations d`+w.sql(), w.args...)
	if err != nil {
		return nil, fmt.Errorf("declarationRepo.Summary: %w", err)
	}
	return &summary, nil
}
