package events

import (
	"context"
	"sync"
	"time"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/goroutine"
	"github.com/sirupsen/logrus"
)

// LogPublisher пишет события в лог. Используется, когда брокер не настроен.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, events ...entity.Event) error {
	for _, e := range events {
		p.log.WithFields(logrus.Fields{
			"event_id":   e.ID,
			"event_type": e.Type,
			"actor_id":   e.ActorID,
			"recipients": len(e.Recipients),
		}).Info("events: emitted")
	}
	return nil
}

const publishTimeout = 5 * time.Second

// AsyncPublisher отправляет события в фоне: ошибка брокера не влияет на уже закоммиченную операцию.
type AsyncPublisher struct {
	next  repository.EventPublisher
	group *goroutine.Group
	log   logrus.FieldLogger
}

func NewAsyncPublisher(next repository.EventPublisher, group *goroutine.Group, log logrus.FieldLogger) *AsyncPublisher {
	return &AsyncPublisher{next: next, group: group, log: log}
}

func (p *AsyncPublisher) Publish(ctx context.Context, events ...entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	detached := context.WithoutCancel(ctx)
	p.group.Go(detached, "publish-events", func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		if err := p.next.Publish(ctx, events...); err != nil {
			p.log.WithError(err).WithField("events", len(events)).Warn("events: publish failed")
		}
	})
	return nil
}

// Recorder запоминает опубликованные события. Нужен тестам.
type Recorder struct {
	mu     sync.Mutex
	events []entity.Event
}

func (r *Recorder) Publish(_ context.Context, events ...entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

func (r *Recorder) Events() []entity.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types возвращает типы событий в порядке публикации.
func (r *Recorder) Types() []entity.EventType {
	var types []entity.EventType
	for _, e := range r.Events() {
		types = append(types, e.Type)
	}
	return types
}
