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

type factureRepo struct {
	db *sqlx.DB
}

// NewFactureRepo creates a new PostgreSQL-backed FactureRepository.
func NewFactureRepo(db *sqlx.DB) port.FactureRepository {
	return &factureRepo{db: db}
}

func (r *factureRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.db.GetContext(ctx, &seq, "SELECT nextval('facture_numero_seq')"); err != nil {
		return 0, fmt.Errorf("factureRepo.NextSequence: %w", err)
	}
	return seq, nil
}

func (r *factureRepo) Create(ctx context.Context, f *domain.Facture) error {
	f.ID = uuid.New()
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	f.Status = domain.FactureBrouillon

	_, err := r.db.NamedExecContext(ctx, `INSERT INTO factures (id, type, numero, ecole_id,
		intervenant_id, mission_id, montant_ht, taux_tva, tva, montant_ttc, status, date_emission,
		date_echeance, lignes, notes, created_by, created_at, updated_at)
		VALUES (:id, :type, :numero, :ecole_id, :intervenant_id, :mission_id, :montant_ht, :taux_tva,
		:tva, :montant_ttc, :status, :date_emission, :date_echeance, :lignes, :notes, :created_by,
		:created_at, :updated_at)`, f)
	if err != nil {
		return fmt.Errorf("factureRepo.Create: %w", err)
	}
	return nil
}

const factureSelect = `SELECT f.*, e.name AS ecole_name,
	COALESCE(TRIM(i.first_name || ' ' || i.last_name), '') AS intervenant_name
	FROM factures f
	INNER JOIN ecoles e ON e.id = f.ecole_id
	LEFT JOIN intervenants i ON i.id = f.intervenant_id`

func (r *factureRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facture, error) {
	var f domain.Facture
	err := r.db.GetContext(ctx, &f, factureSelect+" WHERE f.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("factureRepo.GetByID: %w", err)
	}
	return &f, nil
}

func factureWhere(filter domain.FactureFilter) whereBuilder {
	var w whereBuilder
	if filter.Status != "" {
		w.add("f.status = $%d", filter.Status)
	}
	if filter.Type != "" {
		w.add("f.type = $%d", filter.Type)
	}
	if filter.Year != 0 {
		w.add("EXTRACT(YEAR FROM f.date_emission) = $%d", filter.Year)
	}
	if filter.EcoleID != nil {
		w.add("f.ecole_id = $%d", *filter.EcoleID)
	}
	if filter.IntervenantID != nil {
		w.add("f.intervenant_id = $%d", *filter.IntervenantID)
	}
	return w
}

func (r *factureRepo) List(ctx context.Context, filter domain.FactureFilter, offset, limit int) ([]domain.Facture, int, error) {
	w := factureWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM factures f"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("factureRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var list []domain.Facture
	err := r.db.SelectContext(ctx, &list,
		factureSelect+w.sql()+" ORDER BY f.date_emission DESC, f.numero DESC"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("factureRepo.List: %w", err)
	}
	return list, total, nil
}

func (r *factureRepo) ListForExport(ctx context.Context, filter domain.FactureFilter) ([]domain.Facture, error) {
	w := factureWhere(filter)
	var list []domain.Facture
	if err := r.db.SelectContext(ctx, &list, factureSelect+w.sql()+" ORDER BY f.numero", w.args...); err != nil {
		return nil, fmt.Errorf("factureRepo.ListForExport: %w", err)
	}
	return list, nil
}

func (r *factureRepo) Update(ctx context.Context, f *domain.Facture) error {
	f.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx, `UPDATE factures SET ecole_id = :ecole_id,
		intervenant_id = :intervenant_id, mission_id = :mission_id, montant_ht = :montant_ht,
		taux_tva = :taux_tva, tva = :tva, montant_ttc = :montant_ttc, date_emission = :date_emission,
		date_echeance = :date_echeance, lignes = :lignes, notes = :notes, updated_at = :updated_at
		WHERE id = :id AND status = 'brouillon'`, f)
	if err != nil {
		return fmt.Errorf("factureRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotEditable
	}
	return nil
}

func (r *factureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM factures WHERE id = $1 AND status = 'brouillon'", id)
	if err != nil {
		return fmt.Errorf("factureRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotEditable
	}
	return nil
}

func (r *factureRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from []domain.FactureStatus, to domain.FactureStatus) error {
	query, args, err := sqlx.In(
		"UPDATE factures SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (?)", to, id, from)
	if err != nil {
		return fmt.Errorf("factureRepo.UpdateStatus: %w", err)
	}
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("factureRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *factureRepo) MarkPaid(ctx context.Context, id uuid.UUID, mode domain.ModePaiement, date domain.Date) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE factures SET status = 'payee', mode_paiement = $1, date_paiement = $2, updated_at = NOW()
		 WHERE id = $3 AND status IN ('envoyee', 'en_retard')`,
		mode, date, id)
	if err != nil {
		return fmt.Errorf("factureRepo.MarkPaid: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *factureRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE factures SET pdf_path = $1, updated_at = NOW() WHERE id = $2", path, id)
	if err != nil {
		return fmt.Errorf("factureRepo.SetPDFPath: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *factureRepo) ListOverdue(ctx context.Context, today domain.Date, limit int) ([]domain.Facture, error) {
	query := factureSelect + " WHERE f.status = 'envoyee' AND f.date_echeance < $1 ORDER BY f.date_echeance"
	args := []interface{}{today}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	var list []domain.Facture
	err := r.db.SelectContext(ctx, &list, query, args...)
	if err != nil {
		return nil, fmt.Errorf("factureRepo.ListOverdue: %w", err)
	}
	return list, nil
}

func (r *factureRepo) Totals(ctx context.Context, filter domain.FactureFilter) (*domain.FactureTotals, error) {
	w := factureWhere(filter)
	w.raw("f.status <> 'annulee'")
	var totals domain.FactureTotals
	err := r.db.GetContext(ctx, &totals, `SELECT COUNT(*) AS count,
		COALESCE(SUM(f.montant_ht), 0) AS montant_ht,
		COALESCE(SUM(f.montant_ttc), 0) AS montant_ttc,
		COALESCE(SUM(CASE WHEN f.status = 'payee' THEN f.montant_ttc END), 0) AS paid,
		COALESCE(SUM(CASE WHEN f.status IN ('envoyee', 'en_retard') THEN f.montant_ttc END), 0) AS outstanding
		FROM factures f`+w.sql(), w.args...)
	if err != nil {
		return nil, fmt.Errorf("factureRepo.Totals: %w", err)
	}
	return &totals, nil
}
