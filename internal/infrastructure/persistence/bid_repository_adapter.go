package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type BidRepositoryAdapter struct {
	db sqlx.ExtContext
}

func NewBidRepositoryAdapter(db sqlx.ExtContext) *BidRepositoryAdapter {
	return &BidRepositoryAdapter{db: db}
}

const bidColumns = `id, project_id, freelancer_id, amount, delivery_days, proposal, status, created_at, updated_at`

func (r *BidRepositoryAdapter) Create(ctx context.Context, bid *entity.Bid) error {
	query := `
		INSERT INTO bids (` + bidColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		bid.ID, bid.ProjectID, bid.FreelancerID, bid.Amount.Decimal, bid.DeliveryDays,
		bid.ProposalText, string(bid.Status), bid.CreatedAt, bid.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == "bids_active_per_freelancer_idx" {
			return apperror.ErrDuplicateBid
		}
		return apperror.Database(err, "не удалось создать ставку")
	}
	return nil
}

func (r *BidRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	var row bidRow
	if err := sqlx.GetContext(ctx, r.db, &row, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, apperror.Database(err, "не удалось получить ставку")
	}
	return row.toEntity(), nil
}

func (r *BidRepositoryAdapter) FindActive(ctx context.Context, projectID, freelancerID uuid.UUID) (*entity.Bid, error) {
	query := `
		SELECT ` + bidColumns + ` FROM bids
		WHERE project_id = $1 AND freelancer_id = $2 AND status IN ('pending', 'accepted')
	`
	var row bidRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, projectID, freelancerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, apperror.Database(err, "не удалось получить ставку")
	}
	return row.toEntity(), nil
}

func (r *BidRepositoryAdapter) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE project_id = $1 ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query, projectID)
}

func (r *BidRepositoryAdapter) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids WHERE freelancer_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, freelancerID)
}

func (r *BidRepositoryAdapter) list(ctx context.Context, query string, args ...any) ([]*entity.Bid, error) {
	var rows []bidRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, apperror.Database(err, "не удалось получить ставки")
	}
	return toBidEntities(rows), nil
}

// MarkStatus - одна условная запись pending -> status.
func (r *BidRepositoryAdapter) MarkStatus(ctx context.Context, id uuid.UUID, status valueobject.BidStatus) (bool, error) {
	query := `UPDATE bids SET status = $2, updated_at = NOW() WHERE id = $1 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, id, string(status))
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return false, apperror.ErrProjectAlreadyAccepted
		}
		return false, apperror.Database(err, "не удалось обновить статус ставки")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Database(err, "не удалось обновить статус ставки")
	}
	return n == 1, nil
}

func (r *BidRepositoryAdapter) RejectPending(ctx context.Context, projectID uuid.UUID, except *uuid.UUID) ([]*entity.Bid, error) {
	query := `
		UPDATE bids SET status = 'rejected', updated_at = NOW()
		WHERE project_id = $1 AND status = 'pending' AND ($2::uuid IS NULL OR id <> $2::uuid)
		RETURNING ` + bidColumns
	var rows []bidRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, projectID, except); err != nil {
		return nil, apperror.Database(err, "не удалось отклонить ставки")
	}
	bids := toBidEntities(rows)
	entity.SortBids(bids)
	return bids, nil
}

func (r *BidRepositoryAdapter) Stats(ctx context.Context, projectID uuid.UUID) (repository.BidStats, error) {
	query := `
		SELECT COUNT(*) AS count,
		       COALESCE(ROUND(AVG(amount), 2), 0) AS average,
		       COALESCE(MIN(amount), 0) AS min,
		       COALESCE(MAX(amount), 0) AS max
		FROM bids
		WHERE project_id = $1 AND status IN ('pending', 'accepted')
	`
	var row struct {
		Count   int             `db:"count"`
		Average decimal.Decimal `db:"average"`
		Min     decimal.Decimal `db:"min"`
		Max     decimal.Decimal `db:"max"`
	}
	if err := sqlx.GetContext(ctx, r.db, &row, query, projectID); err != nil {
		return repository.BidStats{}, apperror.Database(err, "не удалось посчитать статистику ставок")
	}
	return repository.BidStats{Count: row.Count, Average: row.Average, Min: row.Min, Max: row.Max}, nil
}

type bidRow struct {
	ID           uuid.UUID       `db:"id"`
	ProjectID    uuid.UUID       `db:"project_id"`
	FreelancerID uuid.UUID       `db:"freelancer_id"`
	Amount       decimal.Decimal `db:"amount"`
	DeliveryDays int             `db:"delivery_days"`
	Proposal     string          `db:"proposal"`
	Status       string          `db:"status"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (r bidRow) toEntity() *entity.Bid {
	return &entity.Bid{
		ID:           r.ID,
		ProjectID:    r.ProjectID,
		FreelancerID: r.FreelancerID,
		Amount:       valueobject.NewMoney(r.Amount),
		DeliveryDays: r.DeliveryDays,
		ProposalText: r.Proposal,
		Status:       valueobject.BidStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toBidEntities(rows []bidRow) []*entity.Bid {
	bids := make([]*entity.Bid, 0, len(rows))
	for _, row := range rows {
		bids = append(bids, row.toEntity())
	}
	return bids
}
