package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/payment"
	"storefront/internal/util"
)

// CheckoutService owns the order/payment flow: intent creation, the pending
// order row, and the read and admin endpoints over orders.
type CheckoutService struct {
	store   OrderStore
	gateway payment.Gateway
	events  EventPublisher
	logger  *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(store OrderStore, gateway payment.Gateway, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		store:   store,
		gateway: gateway,
		events:  events,
		logger:  util.GetLogger(),
	}
}

// CreatePaymentIntentResponse carries what the browser needs to confirm payment.
type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	OrderID      int64  `json:"orderId"`
}

// CreatePaymentIntent validates a checkout submission, recomputes the total
// server-side, opens a provider intent, and records the pending order.
//
// The order row is written only after the intent call succeeds. If that write
// fails the provider-side intent is left orphaned; no compensation is made.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, req *CreatePaymentIntentRequest) (*CreatePaymentIntentResponse, error) {
	ctx, span := util.StartSpan(ctx, "CheckoutService.CreatePaymentIntent")
	defer span.End()

	if verr := req.Validate(); verr != nil {
		util.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, verr
	}

	totalAmount := ComputeTotal(req.CartItems)

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:       totalAmount,
		ReceiptEmail: req.Email,
		Description:  fmt.Sprintf("Order for %s", req.FullName),
		CustomerName: req.FullName,
		Phone:        req.Phone,
		CollectDate:  req.CollectDate,
		ItemCount:    len(req.CartItems),
	})
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("gateway").Inc()
		s.logger.Error("Failed to create payment intent", zap.Error(err))
		return nil, err
	}

	collectDate, _ := time.Parse(collectDateLayout, req.CollectDate)

	order := &models.Order{
		FullName:              req.FullName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		CollectDate:           collectDate,
		Items:                 models.CartItems(req.CartItems),
		TotalAmount:           totalAmount,
		StripePaymentIntentID: intent.ID,
		PaymentStatus:         models.PaymentStatusPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		s.logger.Error("Failed to save order after intent creation",
			zap.String("payment_intent_id", intent.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("payment_intent_id", intent.ID),
		zap.Float64("total_amount", totalAmount))

	if s.events != nil {
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			OrderID:         order.ID,
			PaymentIntentID: intent.ID,
			TotalAmount:     totalAmount,
			Items:           req.CartItems,
		}
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return &CreatePaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		OrderID:      order.ID,
	}, nil
}

// ComputeTotal sums price*quantity over the cart. Client-sent totals are
// never used.
func ComputeTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// GetOrderByPaymentIntent fetches the order linked to a provider intent.
func (s *CheckoutService) GetOrderByPaymentIntent(ctx context.Context, intentID string) (*models.Order, error) {
	order, err := s.store.GetOrderByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdatePaymentStatus overwrites the payment status of the order matching the
// intent id. Any enumerated value is accepted; there is no transition guard.
func (s *CheckoutService) UpdatePaymentStatus(ctx context.Context, req *UpdatePaymentStatusRequest) error {
	if verr := req.Validate(); verr != nil {
		return verr
	}

	rows, err := s.store.UpdatePaymentStatus(ctx, req.PaymentIntentID, req.Status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Info("Payment status updated",
		zap.String("payment_intent_id", req.PaymentIntentID),
		zap.String("status", req.Status))

	if s.events != nil {
		event := &models.PaymentStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypePaymentStatusChanged,
				Timestamp: time.Now(),
			},
			PaymentIntentID: req.PaymentIntentID,
			Status:          req.Status,
		}
		if err := s.events.PublishPaymentStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish PaymentStatusChanged event", zap.Error(err))
		}
	}

	return nil
}

// OrderList is one page of orders plus pagination arithmetic.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	TotalCount int            `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// ListOrders returns orders newest first with optional status filtering.
func (s *CheckoutService) ListOrders(ctx context.Context, page, limit int, status string) (*OrderList, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	orders, err := s.store.ListOrders(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountOrders(ctx, status)
	if err != nil {
		return nil, err
	}

	return &OrderList{
		Orders:     orders,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// normalizePage applies the "?page&limit" defaults.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// totalPages is ceil(total/limit).
func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}
