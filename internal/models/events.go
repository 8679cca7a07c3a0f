package models

import "time"

// Event types
const (
	EventTypeOrderCreated         = "ORDER_CREATED"
	EventTypePaymentStatusChanged = "PAYMENT_STATUS_CHANGED"
	EventTypeContactReceived      = "CONTACT_RECEIVED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when a checkout creates a pending order
type OrderCreatedEvent struct {
	BaseEvent
	OrderID         int64      `json:"order_id"`
	PaymentIntentID string     `json:"payment_intent_id"`
	TotalAmount     float64    `json:"total_amount"`
	Items           []CartItem `json:"items"`
}

// PaymentStatusChangedEvent published when a webhook or admin call moves payment state
type PaymentStatusChangedEvent struct {
	BaseEvent
	PaymentIntentID string `json:"payment_intent_id"`
	Status          string `json:"status"`
}

// ContactReceivedEvent published when a contact submission is stored
type ContactReceivedEvent struct {
	BaseEvent
	ContactID int64  `json:"contact_id"`
	Service   string `json:"service"`
}
