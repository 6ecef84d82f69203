package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type ProjectRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewProjectRepositoryAdapter(db sqlx.ExtContext) *ProjectRepositoryAdapter {
	return &ProjectRepositoryAdapter{db: db}
}

const projectColumns = `id, client_id, title, description, budget_min, budget_max, deadline, status, created_at, updated_at`

func (r *ProjectRepositoryAdapter) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.ClientID, project.Title, project.Description,
		project.Budget.Min.Decimal, project.Budget.Max.Decimal, project.Deadline,
		string(project.Status), project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return apperror.Database(err, "не удалось создать проект")
	}
	return nil
}

func (r *ProjectRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	return r.findOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
}

// FindByIDForShare блокирует строку проекта в режиме FOR SHARE: параллельные ставки не мешают
// друг другу, но ждут коммита транзакции, которая меняет статус проекта.
func (r *ProjectRepositoryAdapter) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	return r.findOne(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1 FOR SHARE`, id)
}

func (r *ProjectRepositoryAdapter) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Project, error) {
	var row projectRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Database(err, "не удалось получить проект")
	}
	return row.toEntity(), nil
}

func (r *ProjectRepositoryAdapter) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var rows []projectRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, apperror.Database(err, "не удалось получить проекты")
	}
	projects := make([]*entity.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, row.toEntity())
	}
	return projects, nil
}

// TransitionStatus - условная запись compare-and-swap по статусу проекта.
func (r *ProjectRepositoryAdapter) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.ProjectStatus) error {
	query := `UPDATE projects SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to))
	if err != nil {
		return apperror.Database(err, "не удалось обновить статус проекта")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Database(err, "не удалось обновить статус проекта")
	}
	if n == 1 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return apperror.ErrStatusConflict
}

type projectRow struct {
	ID          uuid.UUID       `db:"id"`
	ClientID    uuid.UUID       `db:"client_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	BudgetMin   decimal.Decimal `db:"budget_min"`
	BudgetMax   decimal.Decimal `db:"budget_max"`
	Deadline    time.Time       `db:"deadline"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r projectRow) toEntity() *entity.Project {
	return &entity.Project{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		Budget: valueobject.Budget{
			Min: valueobject.NewMoney(r.BudgetMin),
			Max: valueobject.NewMoney(r.BudgetMax),
		},
		Deadline:  r.Deadline,
		Status:    valueobject.ProjectStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
