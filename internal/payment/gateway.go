package payment

import "context"

// IntentRequest captures the information required to open a payment intent
// with the provider. Amount is in major currency units; the adapter converts
// to minor units.
type IntentRequest struct {
	Amount       float64
	ReceiptEmail string
	Description  string
	CustomerName string
	Phone        string
	CollectDate  string
	ItemCount    int
}

// Intent is the minimal provider response the checkout flow needs.
type Intent struct {
	ID           string
	ClientSecret string
}

// WebhookEvent is a provider event after signature verification.
type WebhookEvent struct {
	Type            string
	PaymentIntentID string
}

// Webhook event types the reconciler acts on.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// Gateway abstracts the operations required from the upstream payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// ErrorKind classifies gateway failures for HTTP mapping.
type ErrorKind int

const (
	// ErrKindCard is a card-decline class error; the provider message is safe
	// to surface to the customer.
	ErrKindCard ErrorKind = iota
	// ErrKindInvalidRequest is a malformed-request class error.
	ErrKindInvalidRequest
	// ErrKindSignature is a webhook signature or configuration failure.
	ErrKindSignature
	// ErrKindInternal is anything else.
	ErrKindInternal
)

// GatewayError wraps a provider failure with its classification.
type GatewayError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or ErrKindInternal for
// non-gateway errors.
func KindOf(err error) ErrorKind {
	if ge, ok := err.(*GatewayError); ok {
		return ge.Kind
	}
	return ErrKindInternal
}
