package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// ListBidsUseCase отдает ставки проекта в порядке подачи с учетом политики видимости.
type ListBidsUseCase struct {
	store      repository.Store
	visibility Visibility
}

func NewListBidsUseCase(store repository.Store, visibility Visibility) *ListBidsUseCase {
	return &ListBidsUseCase{store: store, visibility: visibility}
}

func (uc *ListBidsUseCase) Execute(ctx context.Context, projectID, viewerID uuid.UUID) ([]*entity.Bid, error) {
	repos := uc.store.Repositories()

	project, err := repos.Projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	bids, err := repos.Bids.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	return uc.visibility.Filter(project, bids, viewerID), nil
}

type GetBidUseCase struct {
	store      repository.Store
	visibility Visibility
}

func NewGetBidUseCase(store repository.Store, visibility Visibility) *GetBidUseCase {
	return &GetBidUseCase{store: store, visibility: visibility}
}

// Execute возвращает ErrBidNotFound и для скрытых ставок, чтобы не раскрывать их существование.
func (uc *GetBidUseCase) Execute(ctx context.Context, bidID, viewerID uuid.UUID) (*entity.Bid, error) {
	repos := uc.store.Repositories()

	bid, err := repos.Bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	project, err := repos.Projects.FindByID(ctx, bid.ProjectID)
	if err != nil {
		return nil, err
	}
	if !uc.visibility.CanSee(project, bid, viewerID) {
		return nil, apperror.ErrBidNotFound
	}
	return bid, nil
}

type ListMyBidsUseCase struct {
	store repository.Store
}

func NewListMyBidsUseCase(store repository.Store) *ListMyBidsUseCase {
	return &ListMyBidsUseCase{store: store}
}

func (uc *ListMyBidsUseCase) Execute(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Bid, error) {
	return uc.store.Repositories().Bids.ListByFreelancer(ctx, freelancerID)
}

// BidStatsUseCase - сводка по активным ставкам: количество, средняя, минимум и максимум.
type BidStatsUseCase struct {
	store      repository.Store
	visibility Visibility
}

func NewBidStatsUseCase(store repository.Store, visibility Visibility) *BidStatsUseCase {
	return &BidStatsUseCase{store: store, visibility: visibility}
}

func (uc *BidStatsUseCase) Execute(ctx context.Context, projectID, viewerID uuid.UUID) (repository.BidStats, error) {
	repos := uc.store.Repositories()

	project, err := repos.Projects.FindByID(ctx, projectID)
	if err != nil {
		return repository.BidStats{}, err
	}
	if !uc.visibility.CanSeeSummary(project, viewerID) {
		return repository.BidStats{}, apperror.ErrNotProjectOwner
	}
	return repos.Bids.Stats(ctx, project.ID)
}
