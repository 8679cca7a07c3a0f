package payment

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/webhook"

	"storefront/internal/util"
)

// Collection is in-store only, so every intent carries the same pickup address.
const (
	currency           = "zar"
	shippingCity       = "Pietermaritzburg"
	shippingPostalCode = "3201"
	shippingCountry    = "ZA"
)

// StripeGateway talks to Stripe for payment intents and webhook verification.
type StripeGateway struct {
	webhookSecret string
}

// NewStripeGateway configures the Stripe client. The webhook secret may be
// empty; verification then rejects every delivery until it is set.
func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret}
}

// CreateIntent opens a payment intent, converting the rand amount to cents.
func (g *StripeGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	start := time.Now()
	defer func() {
		util.StripeRequestLatency.Observe(time.Since(start).Seconds())
	}()

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(req.ReceiptEmail),
		Description:  stripe.String(req.Description),
		Shipping: &stripe.ShippingDetailsParams{
			Name:  stripe.String(req.CustomerName),
			Phone: stripe.String(req.Phone),
			Address: &stripe.AddressParams{
				Line1:      stripe.String("N/A"),
				City:       stripe.String(shippingCity),
				PostalCode: stripe.String(shippingPostalCode),
				Country:    stripe.String(shippingCountry),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("customer_name", req.CustomerName)
	params.AddMetadata("customer_email", req.ReceiptEmail)
	params.AddMetadata("customer_phone", req.Phone)
	params.AddMetadata("collect_date", req.CollectDate)
	params.AddMetadata("items_count", strconv.Itoa(req.ItemCount))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, classifyStripeError(err)
	}

	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

// VerifyWebhook checks the Stripe-Signature header against the signing secret
// and extracts the event type and payment intent id.
func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, &GatewayError{
			Kind:    ErrKindSignature,
			Message: "webhook secret not configured",
		}
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, &GatewayError{
			Kind:    ErrKindSignature,
			Message: fmt.Sprintf("webhook signature verification failed: %v", err),
			Err:     err,
		}
	}

	we := &WebhookEvent{Type: string(event.Type)}
	if id, ok := event.Data.Object["id"].(string); ok {
		we.PaymentIntentID = id
	}
	return we, nil
}

// classifyStripeError maps Stripe error types onto the gateway taxonomy.
func classifyStripeError(err error) error {
	if se, ok := err.(*stripe.Error); ok {
		switch se.Type {
		case stripe.ErrorTypeCard:
			return &GatewayError{Kind: ErrKindCard, Message: se.Msg, Err: err}
		case stripe.ErrorTypeInvalidRequest:
			return &GatewayError{Kind: ErrKindInvalidRequest, Message: "Invalid payment request", Err: err}
		}
	}
	return &GatewayError{Kind: ErrKindInternal, Message: "Failed to create payment intent", Err: err}
}
