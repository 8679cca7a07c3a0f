package service

import (
	"context"
	"errors"

	"storefront/internal/models"
)

// ErrNotFound is returned when a lookup or targeted update matches no row.
var ErrNotFound = errors.New("not found")

// OrderStore is the slice of the database store the order flows use.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, intentID, status string) (int64, error)
	ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, error)
	CountOrders(ctx context.Context, status string) (int, error)
}

// ContactStore is the slice of the database store the contact flows use.
type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	GetContactByID(ctx context.Context, id int64) (*models.Contact, error)
	ListContacts(ctx context.Context, status string, limit, offset int) ([]models.Contact, error)
	CountContacts(ctx context.Context, status string) (int, error)
	UpdateContactStatus(ctx context.Context, id int64, status string) (int64, error)
	DeleteContact(ctx context.Context, id int64) (int64, error)
}

// EventPublisher fans out domain events. A nil publisher disables publishing.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishPaymentStatusChanged(ctx context.Context, event *models.PaymentStatusChangedEvent) error
	PublishContactReceived(ctx context.Context, event *models.ContactReceivedEvent) error
}
