package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

type GetOrderUseCase struct {
	store repository.Store
}

func NewGetOrderUseCase(store repository.Store) *GetOrderUseCase {
	return &GetOrderUseCase{store: store}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID, viewerID uuid.UUID) (*entity.Order, error) {
	order, err := uc.store.Repositories().Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(viewerID) {
		return nil, apperror.ErrNotOrderParty
	}
	return order, nil
}

// ListProjectOrdersUseCase возвращает заказы проекта, видимые участнику.
type ListProjectOrdersUseCase struct {
	store repository.Store
}

func NewListProjectOrdersUseCase(store repository.Store) *ListProjectOrdersUseCase {
	return &ListProjectOrdersUseCase{store: store}
}

func (uc *ListProjectOrdersUseCase) Execute(ctx context.Context, projectID, viewerID uuid.UUID) ([]*entity.Order, error) {
	repos := uc.store.Repositories()

	project, err := repos.Projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	orders, err := repos.Orders.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	visible := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsParty(viewerID) {
			visible = append(visible, o)
		}
	}
	return visible, nil
}
