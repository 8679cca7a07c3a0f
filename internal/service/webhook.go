package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/payment"
	"storefront/internal/util"
)

// WebhookReconciler applies verified provider events to the order store. It
// is the only writer of payment status driven by the provider itself.
type WebhookReconciler struct {
	store   OrderStore
	gateway payment.Gateway
	events  EventPublisher
	logger  *zap.Logger
}

// NewWebhookReconciler creates a new webhook reconciler
func NewWebhookReconciler(store OrderStore, gateway payment.Gateway, events EventPublisher) *WebhookReconciler {
	return &WebhookReconciler{
		store:   store,
		gateway: gateway,
		events:  events,
		logger:  util.GetLogger(),
	}
}

// HandleWebhook verifies the delivery and applies its effect.
//
// Signature verification is a hard precondition: an unverifiable delivery is
// rejected without touching any state. Once verified, the call never fails.
// Unknown event types and intents with no matching order are acknowledged as
// no-ops so the provider stops redelivering. Replays converge because the
// update is a single unconditional write keyed by intent id.
func (r *WebhookReconciler) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	ctx, span := util.StartSpan(ctx, "WebhookReconciler.HandleWebhook")
	defer span.End()

	event, err := r.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		util.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		r.logger.Warn("Webhook rejected", zap.Error(err))
		return err
	}

	switch event.Type {
	case payment.EventPaymentSucceeded:
		r.applyStatus(ctx, event, models.PaymentStatusCompleted)
		util.PaymentsCompletedTotal.Inc()

	case payment.EventPaymentFailed:
		r.applyStatus(ctx, event, models.PaymentStatusFailed)
		util.PaymentsFailedTotal.Inc()

	default:
		util.WebhookEventsTotal.WithLabelValues(event.Type, "ignored").Inc()
		r.logger.Info("Unhandled webhook event type", zap.String("type", event.Type))
	}

	return nil
}

// applyStatus performs the reconciling write. Zero matched rows is a silent
// no-op; a store failure is logged but still acknowledged to the provider.
func (r *WebhookReconciler) applyStatus(ctx context.Context, event *payment.WebhookEvent, status string) {
	rows, err := r.store.UpdatePaymentStatus(ctx, event.PaymentIntentID, status)
	if err != nil {
		util.WebhookEventsTotal.WithLabelValues(event.Type, "error").Inc()
		r.logger.Error("Failed to apply webhook event",
			zap.String("payment_intent_id", event.PaymentIntentID),
			zap.String("status", status),
			zap.Error(err))
		return
	}

	util.WebhookEventsTotal.WithLabelValues(event.Type, "applied").Inc()
	r.logger.Info("Webhook event applied",
		zap.String("payment_intent_id", event.PaymentIntentID),
		zap.String("status", status),
		zap.Int64("rows", rows))

	if rows > 0 && r.events != nil {
		out := &models.PaymentStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypePaymentStatusChanged,
				Timestamp: time.Now(),
			},
			PaymentIntentID: event.PaymentIntentID,
			Status:          status,
		}
		if err := r.events.PublishPaymentStatusChanged(ctx, out); err != nil {
			r.logger.Error("Failed to publish PaymentStatusChanged event", zap.Error(err))
		}
	}
}
