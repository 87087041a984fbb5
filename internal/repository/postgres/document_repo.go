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

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO documents (id, intervenant_id, type, file_name,
		original_name, file_type, file_size, content_type, s3_bucket, s3_key, created_at)
		VALUES (:id, :intervenant_id, :type, :file_name, :original_name, :file_type, :file_size,
		:content_type, :s3_bucket, :s3_key, :created_at)`, doc)
	if err != nil {
		if uniqueViolation(err, "uq_documents_single_slot") {
			return domain.ErrDocumentTypeAlreadyExists
		}
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByIntervenant(ctx context.Context, intervenantID uuid.UUID) ([]domain.Document, error) {
	docs := []domain.Document{}
	err := r.db.SelectContext(ctx, &docs,
		"SELECT * FROM documents WHERE intervenant_id = $1 ORDER BY created_at", intervenantID)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListByIntervenant: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
