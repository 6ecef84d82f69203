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
	"github.com/shopspring/decimal"
)

type OrderRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewOrderRepositoryAdapter(db sqlx.ExtContext) *OrderRepositoryAdapter {
	return &OrderRepositoryAdapter{db: db}
}

const orderColumns = `id, project_id, bid_id, client_id, freelancer_id, amount, status, created_at, updated_at`

func (r *OrderRepositoryAdapter) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.ProjectID, order.BidID, order.ClientID, order.FreelancerID,
		order.Amount.Decimal, string(order.Status), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return apperror.ErrProjectAlreadyAccepted
		}
		return apperror.Database(err, "не удалось создать заказ")
	}
	return nil
}

func (r *OrderRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var row orderRow
	if err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrOrderNotFound
		}
		return nil, apperror.Database(err, "не удалось получить заказ")
	}
	return row.toEntity(), nil
}

func (r *OrderRepositoryAdapter) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Order, error) {
	var rows []orderRow
	query := `SELECT ` + orderColumns + ` FROM orders WHERE project_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, projectID); err != nil {
		return nil, apperror.Database(err, "не удалось получить заказы")
	}
	orders := make([]*entity.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toEntity())
	}
	return orders, nil
}

// TransitionStatus меняет только статус; amount защищен триггером orders_amount_immutable.
func (r *OrderRepositoryAdapter) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.OrderStatus, at time.Time) error {
	query := `UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to), at)
	if err != nil {
		return apperror.Database(err, "не удалось обновить статус заказа")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Database(err, "не удалось обновить статус заказа")
	}
	if n == 1 {
		return nil
	}
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return apperror.ErrStatusConflict
}

type orderRow struct {
	ID           uuid.UUID       `db:"id"`
	ProjectID    uuid.UUID       `db:"project_id"`
	BidID        uuid.UUID       `db:"bid_id"`
	ClientID     uuid.UUID       `db:"client_id"`
	FreelancerID uuid.UUID       `db:"freelancer_id"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r orderRow) toEntity() *entity.Order {
	return &entity.Order{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		BidID:        r.BidID,
		ClientID:     r.ClientID,
		FreelancerID: r.FreelancerID,
		Amount:       valueobject.NewMoney(r.Amount),
		Status:       valueobject.OrderStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
