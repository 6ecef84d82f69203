package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/shopspring/decimal"
)

type BidRepository interface {
	// Create возвращает ErrDuplicateBid, если у фрилансера уже есть активная ставка по проекту.
	Create(ctx context.Context, bid *entity.Bid) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	FindActive(ctx context.Context, projectID, freelancerID uuid.UUID) (*entity.Bid, error)
	// ListByProject отдает ставки по created_at, затем по id.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Bid, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Bid, error)
	// MarkStatus переводит ставку из pending в status одной условной записью
	// и сообщает, применилось ли обновление.
	MarkStatus(ctx context.Context, id uuid.UUID, status valueobject.BidStatus) (bool, error)
	// RejectPending отклоняет все pending ставки проекта, кроме except, и возвращает их.
	RejectPending(ctx context.Context, projectID uuid.UUID, except *uuid.UUID) ([]*entity.Bid, error)
	Stats(ctx context.Context, projectID uuid.UUID) (BidStats, error)
}

// BidStats - сводка по активным (pending и accepted) ставкам проекта.
type BidStats struct {
	Count   int
	Average decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
}
