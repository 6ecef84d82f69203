package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventProjectCreated     EventType = "project.created"
	EventProjectCancelled   EventType = "project.cancelled"
	EventBidSubmitted       EventType = "bid.submitted"
	EventBidWithdrawn       EventType = "bid.withdrawn"
	EventBidAccepted        EventType = "bid.accepted"
	EventBidRejected        EventType = "bid.rejected"
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// Event - доменное событие, отправляемое внешним сервисам (уведомления, платежи) после коммита.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       EventType         `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	ActorID    uuid.UUID         `json:"actor_id"`
	ProjectID  *uuid.UUID        `json:"project_id,omitempty"`
	BidID      *uuid.UUID        `json:"bid_id,omitempty"`
	OrderID    *uuid.UUID        `json:"order_id,omitempty"`
	Recipients []uuid.UUID       `json:"recipients,omitempty"`
	Payload    map[string]string `json:"payload,omitempty"`
}

func NewEvent(eventType EventType, actorID uuid.UUID) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		ActorID:    actorID,
	}
}

func (e Event) ForProject(id uuid.UUID) Event {
	e.ProjectID = &id
	return e
}

func (e Event) ForBid(id uuid.UUID) Event {
	e.BidID = &id
	return e
}

func (e Event) ForOrder(id uuid.UUID) Event {
	e.OrderID = &id
	return e
}

func (e Event) To(recipients ...uuid.UUID) Event {
	e.Recipients = append(e.Recipients, recipients...)
	return e
}

func (e Event) With(key, value string) Event {
	payload := make(map[string]string, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value
	e.Payload = payload
	return e
}
