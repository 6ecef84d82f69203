package router

import (
	"github.com/ignatzorin/freelance-bidding/internal/config"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/interface/http/handler"
	"github.com/ignatzorin/freelance-bidding/internal/service"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/acceptance"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/bid"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/identity"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/order"
	"github.com/ignatzorin/freelance-bidding/internal/usecase/project"
)

// NewHandlers собирает use case'ы поверх хранилища и публикатора событий.
func NewHandlers(cfg *config.Config, store repository.Store, publisher repository.EventPublisher, tokenManager *service.TokenManager) (Handlers, error) {
	visibility, err := bid.ParseVisibility(cfg.BidVisibility)
	if err != nil {
		return Handlers{}, err
	}

	profiles := store.Repositories().Profiles
	gate := identity.NewRoleGate(profiles)
	authService := service.NewAuthService(profiles, tokenManager)

	return Handlers{
		Auth: handler.NewAuthHandler(authService),
		Profile: handler.NewProfileHandler(
			identity.NewGetProfileUseCase(profiles),
			identity.NewActivateRoleUseCase(profiles),
			bid.NewListMyBidsUseCase(store),
		),
		Project: handler.NewProjectHandler(
			project.NewCreateProjectUseCase(store, gate, publisher),
			project.NewGetProjectUseCase(store),
			project.NewListProjectsUseCase(store),
			project.NewCancelProjectUseCase(store, publisher),
			bid.NewBidStatsUseCase(store, visibility),
			order.NewListProjectOrdersUseCase(store),
		),
		Bid: handler.NewBidHandler(
			bid.NewSubmitBidUseCase(store, gate, publisher),
			bid.NewWithdrawBidUseCase(store, publisher),
			bid.NewListBidsUseCase(store, visibility),
			bid.NewGetBidUseCase(store, visibility),
			acceptance.NewAcceptBidUseCase(store, publisher),
		),
		Order: handler.NewOrderHandler(
			order.NewGetOrderUseCase(store),
			order.NewStartOrderUseCase(store, publisher),
			order.NewCompleteOrderUseCase(store, publisher),
			order.NewCancelOrderUseCase(store, publisher),
		),
		Health: handler.NewHealthHandler(store, cfg.StorageDriver),
	}, nil
}
