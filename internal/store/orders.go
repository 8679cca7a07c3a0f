package store

import (
	"context"
	"database/sql"

	"storefront/internal/models"
)

// CreateOrder inserts a new order and fills in its id and created_at
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (full_name, email, phone, collect_date, items, total_amount, stripe_payment_intent_id, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return s.db.QueryRowxContext(ctx, query,
		order.FullName, order.Email, order.Phone, order.CollectDate,
		order.Items, order.TotalAmount, order.StripePaymentIntentID, order.PaymentStatus,
	).Scan(&order.ID, &order.CreatedAt)
}

// GetOrderByPaymentIntentID retrieves the order linked to a provider payment intent.
// Returns (nil, nil) when no order matches.
func (s *Store) GetOrderByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order,
		"SELECT * FROM orders WHERE stripe_payment_intent_id = $1", intentID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdatePaymentStatus sets payment_status on the order matching the intent id.
// Returns the number of rows updated; zero rows is not an error.
func (s *Store) UpdatePaymentStatus(ctx context.Context, intentID, status string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET payment_status = $1 WHERE stripe_payment_intent_id = $2",
		status, intentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListOrders retrieves orders newest first, optionally filtered by payment status
func (s *Store) ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	orders := []models.Order{}
	if status != "" {
		err := s.db.SelectContext(ctx, &orders,
			"SELECT * FROM orders WHERE payment_status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
			status, limit, offset)
		return orders, err
	}
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	return orders, err
}

// CountOrders counts orders, optionally filtered by payment status
func (s *Store) CountOrders(ctx context.Context, status string) (int, error) {
	var count int
	if status != "" {
		err := s.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM orders WHERE payment_status = $1", status)
		return count, err
	}
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM orders")
	return count, err
}
