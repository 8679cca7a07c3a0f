package service

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContactRequest() *ContactRequest {
	return &ContactRequest{
		Name:    "Jane Customer",
		Email:   "jane@example.com",
		Service: "logo-design",
		Message: "I would like a new logo for my bakery.",
	}
}

func TestCreateContact(t *testing.T) {
	store := newFakeContactStore()
	svc := NewContactService(store, nil)

	contact, err := svc.CreateContact(context.Background(), validContactRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(1), contact.ID)
	assert.Equal(t, models.ContactStatusPending, contact.Status)
	assert.Len(t, store.contacts, 1)
}

func TestCreateContactMessageLength(t *testing.T) {
	store := newFakeContactStore()
	svc := NewContactService(store, nil)

	// nine characters after trimming: rejected, nothing stored
	req := validContactRequest()
	req.Message = " 123456789 "
	_, err := svc.CreateContact(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "message", verr.Fields[0].Field)
	assert.Empty(t, store.contacts)

	// ten characters: exactly one row
	req = validContactRequest()
	req.Message = "1234567890"
	_, err = svc.CreateContact(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, store.contacts, 1)
}

func TestCreateContactValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContactRequest)
		field  string
	}{
		{"short name", func(r *ContactRequest) { r.Name = "x" }, "name"},
		{"bad email", func(r *ContactRequest) { r.Email = "jane@com" }, "email"},
		{"email with space", func(r *ContactRequest) { r.Email = "ja ne@example.com" }, "email"},
		{"unknown service", func(r *ContactRequest) { r.Service = "web-design" }, "service"},
		{"empty service", func(r *ContactRequest) { r.Service = "" }, "service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeContactStore()
			svc := NewContactService(store, nil)

			req := validContactRequest()
			tt.mutate(req)

			_, err := svc.CreateContact(context.Background(), req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Empty(t, store.contacts)
		})
	}
}

func TestCreateContactAllServices(t *testing.T) {
	svc := NewContactService(newFakeContactStore(), nil)

	for _, name := range models.ValidServices {
		req := validContactRequest()
		req.Service = name
		_, err := svc.CreateContact(context.Background(), req)
		assert.NoError(t, err, name)
	}
}

func TestGetContact(t *testing.T) {
	store := newFakeContactStore()
	svc := NewContactService(store, nil)

	created, err := svc.CreateContact(context.Background(), validContactRequest())
	require.NoError(t, err)

	contact, err := svc.GetContact(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, contact.ID)

	_, err = svc.GetContact(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListContactsPagination(t *testing.T) {
	store := newFakeContactStore()
	svc := NewContactService(store, nil)

	for i := 0; i < 7; i++ {
		_, err := svc.CreateContact(context.Background(), validContactRequest())
		require.NoError(t, err)
	}

	list, err := svc.ListContacts(context.Background(), 1, 3, "")
	require.NoError(t, err)
	assert.Len(t, list.Contacts, 3)
	assert.Equal(t, 7, list.TotalCount)
	assert.Equal(t, 3, list.TotalPages)
}

func TestUpdateContactStatus(t *testing.T) {
	store := newFakeContactStore()
	svc := NewContactService(store, nil)

	created, err := svc.CreateContact(context.Background(), validContactRequest())
	require.NoError(t, err)

	err = svc.UpdateContactStatus(context.Background(), created.ID, models.ContactStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusContacted, store.contacts[0].Status)

	err = svc.UpdateContactStatus(context.Background(), created.ID, "archived")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, strings.HasPrefix(verr.Error(), "Invalid status"))

	err = svc.UpdateContactStatus(context.Background(), 999, models.ContactStatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContact(t *testing.T) {
	store := newFakeContactStore()
	svc := NewContactService(store, nil)

	created, err := svc.CreateContact(context.Background(), validContactRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteContact(context.Background(), created.ID))
	assert.Empty(t, store.contacts)

	// hard delete: a second attempt finds nothing
	err = svc.DeleteContact(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
