package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
)

type OrderRepository interface {
	// Create возвращает ErrProjectAlreadyAccepted, если заказ по проекту уже существует.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Order, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.OrderStatus, at time.Time) error
}
