package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ProfileRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewProfileRepositoryAdapter(db sqlx.ExtContext) *ProfileRepositoryAdapter {
	return &ProfileRepositoryAdapter{db: db}
}

const profileColumns = `id, email, password_hash, display_name, roles, created_at, updated_at`

func (r *ProfileRepositoryAdapter) Create(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Email, profile.PasswordHash, profile.DisplayName,
		pq.StringArray(profile.Roles.Strings()), profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return apperror.ErrEmailTaken
		}
		return apperror.Database(err, "не удалось создать профиль")
	}
	return nil
}

func (r *ProfileRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	return r.findOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *ProfileRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.findOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1)`, email)
}

func (r *ProfileRepositoryAdapter) findOne(ctx context.Context, query string, arg any) (*entity.Profile, error) {
	var row profileRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProfileNotFound
		}
		return nil, apperror.Database(err, "не удалось получить профиль")
	}
	return row.toEntity()
}

// AddRole: array_append выполняется только если роли еще нет, поэтому повтор ничего не меняет.
func (r *ProfileRepositoryAdapter) AddRole(ctx context.Context, id uuid.UUID, role valueobject.Role) error {
	query := `
		UPDATE profiles
		SET roles = array_append(roles, $2::text), updated_at = NOW()
		WHERE id = $1 AND NOT ($2::text = ANY(roles))
	`
	res, err := r.db.ExecContext(ctx, query, id, string(role))
	if err != nil {
		return apperror.Database(err, "не удалось активировать роль")
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	var exists bool
	if err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`, id); err != nil {
		return apperror.Database(err, "не удалось активировать роль")
	}
	if !exists {
		return apperror.ErrProfileNotFound
	}
	return nil
}

type profileRow struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	DisplayName  string         `db:"display_name"`
	Roles        pq.StringArray `db:"roles"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (r profileRow) toEntity() (*entity.Profile, error) {
	roles, err := valueobject.NewRoleSet(r.Roles...)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "у профиля неизвестная роль")
	}
	return &entity.Profile{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		DisplayName:  r.DisplayName,
		Roles:        roles,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}
