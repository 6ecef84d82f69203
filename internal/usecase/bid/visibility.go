package bid

import (
	"github.com/google/uuid"
	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
)

// Visibility определяет, кто видит чужие ставки проекта.
type Visibility string

const (
	// VisibilityPublic - все авторизованные участники видят все ставки проекта.
	VisibilityPublic Visibility = "public"
	// VisibilityRestricted - все ставки видит только заказчик проекта, фрилансер видит только свои.
	VisibilityRestricted Visibility = "restricted"
)

func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case VisibilityPublic, VisibilityRestricted:
		return v, nil
	case "":
		return VisibilityPublic, nil
	}
	return "", apperror.Validation("неизвестный режим видимости ставок " + s)
}

func (v Visibility) CanSee(project *entity.Project, b *entity.Bid, viewerID uuid.UUID) bool {
	if v == VisibilityPublic {
		return true
	}
	return project.IsOwnedBy(viewerID) || b.IsOwnedBy(viewerID)
}

// CanSeeSummary - доступ к агрегатам (количество, средняя ставка).
func (v Visibility) CanSeeSummary(project *entity.Project, viewerID uuid.UUID) bool {
	return v == VisibilityPublic || project.IsOwnedBy(viewerID)
}

func (v Visibility) Filter(project *entity.Project, bids []*entity.Bid, viewerID uuid.UUID) []*entity.Bid {
	if v == VisibilityPublic || project.IsOwnedBy(viewerID) {
		return bids
	}
	visible := make([]*entity.Bid, 0, len(bids))
	for _, b := range bids {
		if v.CanSee(project, b, viewerID) {
			visible = append(visible, b)
		}
	}
	return visible
}
