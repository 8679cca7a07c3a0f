package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"storefront/internal/models"
)

// collectDateLayout is the wire format of the shop page's date input.
const collectDateLayout = "2006-01-02"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a request before any side effect occurs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

// CreatePaymentIntentRequest is a checkout submission.
type CreatePaymentIntentRequest struct {
	FullName    string            `json:"fullName"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone"`
	CollectDate string            `json:"collectDate"`
	CartItems   []models.CartItem `json:"cartItems"`
}

// Validate applies the order intake rules. Returns nil when the submission is
// acceptable.
func (r *CreatePaymentIntentRequest) Validate() *ValidationError {
	var fields []FieldError

	if len(strings.TrimSpace(r.FullName)) < 2 {
		fields = append(fields, FieldError{
			Field:   "fullName",
			Message: "Full name is required and must be at least 2 characters",
		})
	}
	if !emailRegex.MatchString(r.Email) {
		fields = append(fields, FieldError{
			Field:   "email",
			Message: "Valid email address is required",
		})
	}
	if len(strings.TrimSpace(r.Phone)) < 10 {
		fields = append(fields, FieldError{
			Field:   "phone",
			Message: "Valid phone number is required",
		})
	}
	if _, err := time.Parse(collectDateLayout, r.CollectDate); err != nil {
		fields = append(fields, FieldError{
			Field:   "collectDate",
			Message: "Valid collection date is required",
		})
	}
	if len(r.CartItems) == 0 {
		fields = append(fields, FieldError{
			Field:   "cartItems",
			Message: "Cart items are required",
		})
	}
	for _, item := range r.CartItems {
		if item.Name == "" || item.Price <= 0 || item.Quantity <= 0 {
			fields = append(fields, FieldError{
				Field:   "cartItems",
				Message: "Invalid cart item data",
			})
			break
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Validate applies the contact intake rules.
func (r *ContactRequest) Validate() *ValidationError {
	var fields []FieldError

	if len(strings.TrimSpace(r.Name)) < 2 {
		fields = append(fields, FieldError{
			Field:   "name",
			Message: "Name is required and must be at least 2 characters",
		})
	}
	if !emailRegex.MatchString(r.Email) {
		fields = append(fields, FieldError{
			Field:   "email",
			Message: "Please provide a valid email address",
		})
	}
	if !models.ValidService(r.Service) {
		fields = append(fields, FieldError{
			Field:   "service",
			Message: "Invalid service selected",
		})
	}
	if len(strings.TrimSpace(r.Message)) < 10 {
		fields = append(fields, FieldError{
			Field:   "message",
			Message: "Message is required and must be at least 10 characters",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// UpdatePaymentStatusRequest moves an order's payment status by intent id.
type UpdatePaymentStatusRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
}

// Validate checks presence and the enumerated status values.
func (r *UpdatePaymentStatusRequest) Validate() *ValidationError {
	var fields []FieldError

	if r.PaymentIntentID == "" || r.Status == "" {
		fields = append(fields, FieldError{
			Field:   "paymentIntentId",
			Message: "Payment intent ID and status are required",
		})
	} else if !models.ValidPaymentStatus(r.Status) {
		fields = append(fields, FieldError{
			Field:   "status",
			Message: "Invalid payment status",
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// validStatusMessage lists the allowed contact statuses for error responses.
var validStatusMessage = fmt.Sprintf(
	"Invalid status. Must be one of: %s, %s, %s, %s",
	models.ContactStatusPending, models.ContactStatusContacted,
	models.ContactStatusCompleted, models.ContactStatusCancelled,
)
