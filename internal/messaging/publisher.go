package messaging

import (
	"context"

	"github.com/leadforge/contact-cache/internal/domain"
)

// Publisher defines the interface for publishing usage events to the billing stream
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishUsage publishes a financially relevant resolution to the billing consumer.
	// Delivery is deduplicated on the event ID.
	PublishUsage(ctx context.Context, event *domain.UsageEvent) error
	// Close drains and closes the connection
	Close()
}
