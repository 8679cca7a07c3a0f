package store

import (
	"context"
	"database/sql"

	"storefront/internal/models"
)

// CreateContact inserts a contact submission and fills in its id and created_at
func (s *Store) CreateContact(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (name, email, service, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.QueryRowxContext(ctx, query,
		contact.Name, contact.Email, contact.Service, contact.Message,
	).Scan(&contact.ID, &contact.CreatedAt)
}

// GetContactByID retrieves a contact by ID. Returns (nil, nil) when absent.
func (s *Store) GetContactByID(ctx context.Context, id int64) (*models.Contact, error) {
	var contact models.Contact
	err := s.db.GetContext(ctx, &contact, "SELECT * FROM contacts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListContacts retrieves contacts newest first, optionally filtered by status
func (s *Store) ListContacts(ctx context.Context, status string, limit, offset int) ([]models.Contact, error) {
	contacts := []models.Contact{}
	if status != "" {
		err := s.db.SelectContext(ctx, &contacts,
			"SELECT * FROM contacts WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
			status, limit, offset)
		return contacts, err
	}
	err := s.db.SelectContext(ctx, &contacts,
		"SELECT * FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	return contacts, err
}

// CountContacts counts contacts, optionally filtered by status
func (s *Store) CountContacts(ctx context.Context, status string) (int, error) {
	var count int
	if status != "" {
		err := s.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM contacts WHERE status = $1", status)
		return count, err
	}
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM contacts")
	return count, err
}

// UpdateContactStatus sets the moderation status on a contact.
// Returns the number of rows updated.
func (s *Store) UpdateContactStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE contacts SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteContact removes a contact. Returns the number of rows deleted.
func (s *Store) DeleteContact(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
