package broker

import (
	"context"
	"fmt"

	"storefront/internal/models"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPaymentStatusChanged publishes PaymentStatusChanged event
func (ep *EventPublisher) PublishPaymentStatusChanged(ctx context.Context, event *models.PaymentStatusChangedEvent) error {
	key := fmt.Sprintf("intent-%s", event.PaymentIntentID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishContactReceived publishes ContactReceived event
func (ep *EventPublisher) PublishContactReceived(ctx context.Context, event *models.ContactReceivedEvent) error {
	key := fmt.Sprintf("contact-%d", event.ContactID)
	return ep.producer.PublishEvent(ctx, key, event)
}
