package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CartItem is one line of a checkout submission.
type CartItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CartItems is stored as a JSON column on orders.
type CartItems []CartItem

// Value implements driver.Valuer for the items JSON column.
func (c CartItems) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for the items JSON column.
func (c *CartItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("unsupported source type for cart items: %T", src)
	}
}

// Order is the durable record of one checkout attempt.
type Order struct {
	ID                    int64     `db:"id" json:"id"`
	FullName              string    `db:"full_name" json:"full_name"`
	Email                 string    `db:"email" json:"email"`
	Phone                 string    `db:"phone" json:"phone"`
	CollectDate           time.Time `db:"collect_date" json:"collect_date"`
	Items                 CartItems `db:"items" json:"items"`
	TotalAmount           float64   `db:"total_amount" json:"total_amount"`
	StripePaymentIntentID string    `db:"stripe_payment_intent_id" json:"stripe_payment_intent_id,omitempty"`
	PaymentStatus         string    `db:"payment_status" json:"payment_status"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

// Contact is one inbound contact-form submission.
type Contact struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Service   string    `db:"service" json:"service"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Status    string    `db:"status" json:"status"`
}

// Payment statuses
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
)

// Contact statuses
const (
	ContactStatusPending   = "pending"
	ContactStatusContacted = "contacted"
	ContactStatusCompleted = "completed"
	ContactStatusCancelled = "cancelled"
)

// ValidPaymentStatus reports whether s is one of the enumerated payment statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// ValidContactStatus reports whether s is one of the enumerated contact statuses.
func ValidContactStatus(s string) bool {
	switch s {
	case ContactStatusPending, ContactStatusContacted, ContactStatusCompleted, ContactStatusCancelled:
		return true
	}
	return false
}

// ValidServices are the offerings the contact form accepts.
var ValidServices = []string{
	"logo-design",
	"tshirt-printing",
	"flyers",
	"branding",
	"social-media",
	"other",
}

// ValidService reports whether s is one of the enumerated services.
func ValidService(s string) bool {
	for _, v := range ValidServices {
		if s == v {
			return true
		}
	}
	return false
}
