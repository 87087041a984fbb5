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

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

const insertUserQuery = `INSERT INTO users (id, email, password_hash, full_name, role, is_active, created_at, updated_at)
	VALUES (:id, :email, :password_hash, :full_name, :role, :is_active, :created_at, :updated_at)`

func prepareUser(user *domain.User) {
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	prepareUser(user)
	if _, err := r.db.NamedExecContext(ctx, insertUserQuery, user); err != nil {
		if uniqueViolation(err, "") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) CreateEcoleAccount(ctx context.Context, user *domain.User, ecole *domain.Ecole) error {
	prepareUser(user)
	ecole.ID = uuid.New()
	ecole.UserID = user.ID
	ecole.CreatedAt = user.CreatedAt
	ecole.UpdatedAt = user.CreatedAt

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertUserQuery, user); err != nil {
			if uniqueViolation(err, "") {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("userRepo.CreateEcoleAccount user: %w", err)
		}
		_, err := tx.NamedExecContext(ctx, `INSERT INTO ecoles (id, user_id, name, siret, address, postal_code,
			city, phone, website, contact_email, description, created_at, updated_at)
			VALUES (:id, :user_id, :name, :siret, :address, :postal_code, :city, :phone, :website,
			:contact_email, :description, :created_at, :updated_at)`, ecole)
		if err != nil {
			return fmt.Errorf("userRepo.CreateEcoleAccount ecole: %w", err)
		}
		return nil
	})
}

func (r *userRepo) CreateIntervenantAccount(ctx context.Context, user *domain.User, intervenant *domain.Intervenant) error {
	prepareUser(user)
	intervenant.ID = uuid.New()
	intervenant.UserID = user.ID
	intervenant.Status = domain.ModerationPending
	intervenant.CreatedAt = user.CreatedAt
	intervenant.UpdatedAt = user.CreatedAt

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertUserQuery, user); err != nil {
			if uniqueViolation(err, "") {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("userRepo.CreateIntervenantAccount user: %w", err)
		}
		_, err := tx.NamedExecContext(ctx, `INSERT INTO intervenants (id, user_id, first_name, last_name, email,
			phone, city, bio, siret, years_experience, daily_rate_cents, linkedin_url, website_url,
			expertises, languages, availability_modes, status, created_at, updated_at)
			VALUES (:id, :user_id, :first_name, :last_name, :email, :phone, :city, :bio, :siret,
			:years_experience, :daily_rate_cents, :linkedin_url, :website_url, :expertises, :languages,
			:availability_modes, :status, :created_at, :updated_at)`, intervenant)
		if err != nil {
			return fmt.Errorf("userRepo.CreateIntervenantAccount intervenant: %w", err)
		}
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE LOWER(email) = LOWER($1)", email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, role domain.UserRole, offset, limit int) ([]domain.User, int, error) {
	var w whereBuilder
	if role != "" {
		w.add("role = $%d", role)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users"+w.sql(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List count: %w", err)
	}

	pageSQL, args := w.page(limit, offset)
	var users []domain.User
	err := r.db.SelectContext(ctx, &users,
		"SELECT * FROM users"+w.sql()+" ORDER BY created_at DESC"+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.List: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = $1, full_name = $2, is_active = $3, updated_at = $4 WHERE id = $5`,
		user.Email, user.FullName, user.IsActive, user.UpdatedAt, user.ID)
	if err != nil {
		if uniqueViolation(err, "") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, password_reset_token_id = NULL, updated_at = NOW() WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("userRepo.UpdatePassword: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_reset_token_id = $1, updated_at = NOW() WHERE id = $2`,
		tokenID, userID)
	if err != nil {
		return fmt.Errorf("userRepo.SetPasswordResetToken: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, password_reset_token_id = NULL, updated_at = NOW()
		 WHERE id = $2 AND password_reset_token_id = $3`,
		passwordHash, userID, expectedTokenID)
	if err != nil {
		return fmt.Errorf("userRepo.ResetPassword: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPasswordResetTokenInvalid
	}
	return nil
}
