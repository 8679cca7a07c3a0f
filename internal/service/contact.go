package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/models"
	"storefront/internal/util"
)

// ContactService handles contact-form intake and the admin CRUD over it.
type ContactService struct {
	store  ContactStore
	events EventPublisher
	logger *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(store ContactStore, events EventPublisher) *ContactService {
	return &ContactService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// CreateContact validates and stores a contact submission.
func (s *ContactService) CreateContact(ctx context.Context, req *ContactRequest) (*models.Contact, error) {
	if verr := req.Validate(); verr != nil {
		util.ContactsFailedTotal.WithLabelValues("validation").Inc()
		return nil, verr
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Service: req.Service,
		Message: req.Message,
		Status:  models.ContactStatusPending,
	}

	if err := s.store.CreateContact(ctx, contact); err != nil {
		util.ContactsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to save contact: %w", err)
	}

	util.ContactsCreatedTotal.Inc()
	s.logger.Info("New contact saved",
		zap.Int64("contact_id", contact.ID),
		zap.String("service", contact.Service))

	if s.events != nil {
		event := &models.ContactReceivedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeContactReceived,
				Timestamp: time.Now(),
			},
			ContactID: contact.ID,
			Service:   contact.Service,
		}
		if err := s.events.PublishContactReceived(ctx, event); err != nil {
			s.logger.Error("Failed to publish ContactReceived event", zap.Error(err))
		}
	}

	return contact, nil
}

// GetContact fetches a contact by id.
func (s *ContactService) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	contact, err := s.store.GetContactByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}
	return contact, nil
}

// ContactList is one page of contacts plus pagination arithmetic.
type ContactList struct {
	Contacts   []models.Contact `json:"contacts"`
	TotalCount int              `json:"totalCount"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// ListContacts returns contacts newest first with optional status filtering.
func (s *ContactService) ListContacts(ctx context.Context, page, limit int, status string) (*ContactList, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	contacts, err := s.store.ListContacts(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountContacts(ctx, status)
	if err != nil {
		return nil, err
	}

	return &ContactList{
		Contacts:   contacts,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateContactStatus moves a contact's moderation status.
func (s *ContactService) UpdateContactStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidContactStatus(status) {
		return &ValidationError{Fields: []FieldError{{
			Field:   "status",
			Message: validStatusMessage,
		}}}
	}

	rows, err := s.store.UpdateContactStatus(ctx, id, status)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Info("Contact status updated",
		zap.Int64("contact_id", id),
		zap.String("status", status))
	return nil
}

// DeleteContact hard-deletes a contact.
func (s *ContactService) DeleteContact(ctx context.Context, id int64) error {
	rows, err := s.store.DeleteContact(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Info("Contact deleted", zap.Int64("contact_id", id))
	return nil
}
