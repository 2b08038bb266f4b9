package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const PortfolioEventTypeCreated = "portfolio.created"

type PortfolioEventPayload struct {
	EventType string    `json:"event_type"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Storage   string    `json:"storage"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPublisher announces portfolio lifecycle events.
type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error
}

type nopPublisher struct{}

// NewNopPublisher is used when no broker is configured.
func NewNopPublisher() EventPublisher { return nopPublisher{} }

func (nopPublisher) PublishPortfolioEvent(context.Context, PortfolioEventPayload) error { return nil }
