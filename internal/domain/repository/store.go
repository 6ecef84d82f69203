package repository

import (
	"context"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
)

// Repositories - набор репозиториев, привязанных к одному соединению или транзакции.
type Repositories struct {
	Profiles ProfileRepository
	Projects ProjectRepository
	Bids     BidRepository
	Orders   OrderRepository
}

// Store - граница транзакции. Все записи внутри fn фиксируются вместе либо не фиксируются вовсе.
type Store interface {
	Repositories() Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
}

// EventPublisher доставляет доменные события во внешние сервисы.
type EventPublisher interface {
	Publish(ctx context.Context, events ...entity.Event) error
}
