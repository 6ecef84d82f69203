package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

type profileRepository struct {
	db access
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	var err error
	r.db.write(func(s *state) {
		for _, p := range s.profiles {
			if strings.EqualFold(p.Email, profile.Email) {
				err = apperror.ErrEmailTaken
				return
			}
		}
		stored := *profile
		stored.Roles = slices.Clone(profile.Roles)
		put(s, s.profiles, profile.ID, stored)
	})
	return err
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var out *entity.Profile
	r.db.read(func(s *state) {
		if p, ok := s.profiles[id]; ok {
			p.Roles = slices.Clone(p.Roles)
			out = &p
		}
	})
	if out == nil {
		return nil, apperror.ErrProfileNotFound
	}
	return out, nil
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var out *entity.Profile
	r.db.read(func(s *state) {
		for _, p := range s.profiles {
			if strings.EqualFold(p.Email, email) {
				p.Roles = slices.Clone(p.Roles)
				out = &p
				return
			}
		}
	})
	if out == nil {
		return nil, apperror.ErrProfileNotFound
	}
	return out, nil
}

func (r *profileRepository) AddRole(ctx context.Context, id uuid.UUID, role valueobject.Role) error {
	found := false
	r.db.write(func(s *state) {
		p, ok := s.profiles[id]
		if !ok {
			return
		}
		found = true
		if p.ActivateRole(role) {
			put(s, s.profiles, id, p)
		}
	})
	if !found {
		return apperror.ErrProfileNotFound
	}
	return nil
}

type projectRepository struct {
	db access
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	r.db.write(func(s *state) {
		put(s, s.projects, project.ID, *project)
	})
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var out *entity.Project
	r.db.read(func(s *state) {
		if p, ok := s.projects[id]; ok {
			out = &p
		}
	})
	if out == nil {
		return nil, apperror.ErrProjectNotFound
	}
	return out, nil
}

// FindByIDForShare: внутри транзакции хранилище уже сериализовано, отдельная блокировка не нужна.
func (r *projectRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	return r.FindByID(ctx, id)
}

func (r *projectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, error) {
	var out []*entity.Project
	r.db.read(func(s *state) {
		for _, p := range s.projects {
			if filter.Status != nil && p.Status != *filter.Status {
				continue
			}
			if filter.ClientID != nil && p.ClientID != *filter.ClientID {
				continue
			}
			out = append(out, &p)
		}
	})
	slices.SortFunc(out, func(a, b *entity.Project) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (r *projectRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.ProjectStatus) error {
	var err error
	r.db.write(func(s *state) {
		p, ok := s.projects[id]
		if !ok {
			err = apperror.ErrProjectNotFound
			return
		}
		if p.Status != from {
			err = apperror.ErrStatusConflict
			return
		}
		p.Status = to
		p.UpdatedAt = time.Now().UTC()
		put(s, s.projects, id, p)
	})
	return err
}

type bidRepository struct {
	db access
}

func (r *bidRepository) Create(ctx context.Context, bid *entity.Bid) error {
	var err error
	r.db.write(func(s *state) {
		for _, b := range s.bids {
			if b.ProjectID == bid.ProjectID && b.FreelancerID == bid.FreelancerID && b.Status.IsActive() {
				err = apperror.ErrDuplicateBid
				return
			}
		}
		put(s, s.bids, bid.ID, *bid)
	})
	return err
}

func (r *bidRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	var out *entity.Bid
	r.db.read(func(s *state) {
		if b, ok := s.bids[id]; ok {
			out = &b
		}
	})
	if out == nil {
		return nil, apperror.ErrBidNotFound
	}
	return out, nil
}

func (r *bidRepository) FindActive(ctx context.Context, projectID, freelancerID uuid.UUID) (*entity.Bid, error) {
	var out *entity.Bid
	r.db.read(func(s *state) {
		for _, b := range s.bids {
			if b.ProjectID == projectID && b.FreelancerID == freelancerID && b.Status.IsActive() {
				out = &b
				return
			}
		}
	})
	if out == nil {
		return nil, apperror.ErrBidNotFound
	}
	return out, nil
}

func (r *bidRepository) collect(match func(b entity.Bid) bool) []*entity.Bid {
	var out []*entity.Bid
	r.db.read(func(s *state) {
		for _, b := range s.bids {
			if match(b) {
				out = append(out, &b)
			}
		}
	})
	return out
}

func (r *bidRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Bid, error) {
	out := r.collect(func(b entity.Bid) bool { return b.ProjectID == projectID })
	entity.SortBids(out)
	return out, nil
}

func (r *bidRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]*entity.Bid, error) {
	out := r.collect(func(b entity.Bid) bool { return b.FreelancerID == freelancerID })
	entity.SortBids(out)
	slices.Reverse(out)
	return out, nil
}

func (r *bidRepository) MarkStatus(ctx context.Context, id uuid.UUID, status valueobject.BidStatus) (bool, error) {
	applied := false
	r.db.write(func(s *state) {
		b, ok := s.bids[id]
		if !ok || !b.Status.CanTransitionTo(status) {
			return
		}
		b.Status = status
		b.UpdatedAt = time.Now().UTC()
		put(s, s.bids, id, b)
		applied = true
	})
	return applied, nil
}

func (r *bidRepository) RejectPending(ctx context.Context, projectID uuid.UUID, except *uuid.UUID) ([]*entity.Bid, error) {
	var rejected []*entity.Bid
	r.db.write(func(s *state) {
		now := time.Now().UTC()
		for id, b := range s.bids {
			if b.ProjectID != projectID || !b.IsPending() || (except != nil && id == *except) {
				continue
			}
			b.Status = valueobject.BidStatusRejected
			b.UpdatedAt = now
			put(s, s.bids, id, b)
			rejected = append(rejected, &b)
		}
	})
	entity.SortBids(rejected)
	return rejected, nil
}

func (r *bidRepository) Stats(ctx context.Context, projectID uuid.UUID) (repository.BidStats, error) {
	active := r.collect(func(b entity.Bid) bool { return b.ProjectID == projectID && b.Status.IsActive() })

	var stats repository.BidStats
	if len(active) == 0 {
		return stats, nil
	}
	sum := decimal.Zero
	stats.Min = active[0].Amount.Decimal
	stats.Max = active[0].Amount.Decimal
	for _, b := range active {
		sum = sum.Add(b.Amount.Decimal)
		stats.Min = decimal.Min(stats.Min, b.Amount.Decimal)
		stats.Max = decimal.Max(stats.Max, b.Amount.Decimal)
	}
	stats.Count = len(active)
	stats.Average = sum.Div(decimal.NewFromInt(int64(len(active)))).Round(2)
	return stats, nil
}

type orderRepository struct {
	db access
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	var err error
	r.db.write(func(s *state) {
		for _, o := range s.orders {
			if o.ProjectID == order.ProjectID || o.BidID == order.BidID {
				err = apperror.ErrProjectAlreadyAccepted
				return
			}
		}
		put(s, s.orders, order.ID, *order)
	})
	return err
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var out *entity.Order
	r.db.read(func(s *state) {
		if o, ok := s.orders[id]; ok {
			out = &o
		}
	})
	if out == nil {
		return nil, apperror.ErrOrderNotFound
	}
	return out, nil
}

func (r *orderRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Order, error) {
	var out []*entity.Order
	r.db.read(func(s *state) {
		for _, o := range s.orders {
			if o.ProjectID == projectID {
				out = append(out, &o)
			}
		}
	})
	slices.SortFunc(out, func(a, b *entity.Order) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.OrderStatus, at time.Time) error {
	var err error
	r.db.write(func(s *state) {
		o, ok := s.orders[id]
		if !ok {
			err = apperror.ErrOrderNotFound
			return
		}
		if o.Status != from {
			err = apperror.ErrStatusConflict
			return
		}
		o.Status = to
		o.UpdatedAt = at.UTC()
		put(s, s.orders, id, o)
	})
	return err
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
