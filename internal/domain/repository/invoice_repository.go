package repository

import (
	"context"
	"errors"

	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	"github.com/google/uuid"
)

// ErrDuplicateInvoice is returned by Create when the (user, invoice number)
// pair already exists. The store's unique-constraint signal is translated to
// this sentinel so callers never inspect driver error codes.
var ErrDuplicateInvoice = errors.New("invoice number already exists for this user")

// InvoiceRepository defines the interface for invoice data operations.
// Every query is scoped by the owning user; an id or invoice number that
// belongs to another user behaves exactly like one that does not exist.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// FindByNumber returns all invoices matching (user, invoice number).
	FindByNumber(ctx context.Context, userID uuid.UUID, invoiceNumber int) ([]entity.Invoice, error)
	// GetByIDForUser returns the invoice by store id, scoped to the owner.
	// Returns (nil, nil) when no matching invoice exists.
	GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error)
	// UpdateByNumber merges the patch onto the invoice matching
	// (user, invoice number). A non-matching filter is a silent no-op.
	UpdateByNumber(ctx context.Context, userID uuid.UUID, invoiceNumber int, patch map[string]interface{}) error
	// DeleteByNumber deletes the invoice matching (user, invoice number).
	// A non-matching filter is a silent no-op.
	DeleteByNumber(ctx context.Context, userID uuid.UUID, invoiceNumber int) error
}
