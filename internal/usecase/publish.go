package usecase

import (
	"context"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
)

// Publish отправляет события после коммита. Ошибка доставки только логируется:
// операция уже зафиксирована и не должна откатываться из-за брокера.
func Publish(ctx context.Context, publisher repository.EventPublisher, events ...entity.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.L().WithError(err).WithField("events", len(events)).Warn("usecase: failed to publish events")
	}
}
