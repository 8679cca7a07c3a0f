package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"storefront/internal/models"
	"storefront/internal/payment"
)

// fakeOrderStore keeps orders in memory for unit tests.
type fakeOrderStore struct {
	orders     []*models.Order
	nextID     int64
	createErr  error
	createdLog []string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{nextID: 1}
}

func (f *fakeOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = f.nextID
	f.nextID++
	f.orders = append(f.orders, order)
	f.createdLog = append(f.createdLog, order.StripePaymentIntentID)
	return nil
}

func (f *fakeOrderStore) GetOrderByPaymentIntentID(ctx context.Context, intentID string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.StripePaymentIntentID == intentID {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderStore) UpdatePaymentStatus(ctx context.Context, intentID, status string) (int64, error) {
	var rows int64
	for _, o := range f.orders {
		if o.StripePaymentIntentID == intentID {
			o.PaymentStatus = status
			rows++
		}
	}
	return rows, nil
}

func (f *fakeOrderStore) ListOrders(ctx context.Context, status string, limit, offset int) ([]models.Order, error) {
	filtered := []models.Order{}
	// newest first: fake store appends, so walk backwards
	for i := len(f.orders) - 1; i >= 0; i-- {
		o := f.orders[i]
		if status == "" || o.PaymentStatus == status {
			filtered = append(filtered, *o)
		}
	}
	if offset >= len(filtered) {
		return []models.Order{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (f *fakeOrderStore) CountOrders(ctx context.Context, status string) (int, error) {
	count := 0
	for _, o := range f.orders {
		if status == "" || o.PaymentStatus == status {
			count++
		}
	}
	return count, nil
}

// fakeGateway counts intent creations and lets tests force failures.
type fakeGateway struct {
	intents   atomic.Int64
	createErr error
	verifyErr error
	event     *payment.WebhookEvent
}

func (f *fakeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	n := f.intents.Add(1)
	return &payment.Intent{
		ID:           fmt.Sprintf("pi_test_%d", n),
		ClientSecret: fmt.Sprintf("pi_test_%d_secret", n),
	}, nil
}

func (f *fakeGateway) VerifyWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.event, nil
}

// fakeContactStore keeps contacts in memory for unit tests.
type fakeContactStore struct {
	contacts  []*models.Contact
	nextID    int64
	createErr error
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{nextID: 1}
}

func (f *fakeContactStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	if f.createErr != nil {
		return f.createErr
	}
	contact.ID = f.nextID
	f.nextID++
	f.contacts = append(f.contacts, contact)
	return nil
}

func (f *fakeContactStore) GetContactByID(ctx context.Context, id int64) (*models.Contact, error) {
	for _, ct := range f.contacts {
		if ct.ID == id {
			return ct, nil
		}
	}
	return nil, nil
}

func (f *fakeContactStore) ListContacts(ctx context.Context, status string, limit, offset int) ([]models.Contact, error) {
	filtered := []models.Contact{}
	for i := len(f.contacts) - 1; i >= 0; i-- {
		ct := f.contacts[i]
		if status == "" || ct.Status == status {
			filtered = append(filtered, *ct)
		}
	}
	if offset >= len(filtered) {
		return []models.Contact{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (f *fakeContactStore) CountContacts(ctx context.Context, status string) (int, error) {
	count := 0
	for _, ct := range f.contacts {
		if status == "" || ct.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeContactStore) UpdateContactStatus(ctx context.Context, id int64, status string) (int64, error) {
	for _, ct := range f.contacts {
		if ct.ID == id {
			ct.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeContactStore) DeleteContact(ctx context.Context, id int64) (int64, error) {
	for i, ct := range f.contacts {
		if ct.ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

var errBoom = errors.New("boom")
