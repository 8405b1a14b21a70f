package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	"github.com/dealerdesk/dealerdesk-api/internal/domain/repository"
	"github.com/dealerdesk/dealerdesk-api/pkg/apperror"
	"github.com/google/uuid"
)

// InvoiceService owns the invoice CRUD rules: ownership injection, the
// per-user invoice-number uniqueness contract, and the find-or-noop
// semantics of updates and deletes.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository) *InvoiceService {
	return &InvoiceService{invoiceRepo: invoiceRepo}
}

// List returns the invoices matching (owner, invoice number). No match is an
// empty list, never an error.
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, invoiceNumber int) ([]entity.Invoice, error) {
	invoices, err := s.invoiceRepo.FindByNumber(ctx, userID, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []entity.Invoice{}
	}
	return invoices, nil
}

// Create stores a new invoice. Ownership always comes from the verified
// identity; any client-supplied owner value is overwritten.
func (s *InvoiceService) Create(ctx context.Context, userID uuid.UUID, invoice *entity.Invoice) (*entity.Invoice, error) {
	invoice.ID = uuid.Nil
	invoice.UserID = userID

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if errors.Is(err, repository.ErrDuplicateInvoice) {
			return nil, apperror.NewLegacyError(http.StatusConflict,
				apperror.OpDuplicateInvoice, "Purchase with this invoice number already exists")
		}
		return nil, err
	}
	return invoice, nil
}

// Update merges a partial-invoice patch onto the invoice matching
// (owner, invoice number). A patch naming another user's invoice number
// matches nothing and succeeds without changing anything.
func (s *InvoiceService) Update(ctx context.Context, userID uuid.UUID, invoiceNumber int, patch map[string]interface{}) error {
	return s.invoiceRepo.UpdateByNumber(ctx, userID, invoiceNumber, patch)
}

// Delete removes the invoice matching (owner, invoice number); a non-match
// is a silent no-op.
func (s *InvoiceService) Delete(ctx context.Context, userID uuid.UUID, invoiceNumber int) error {
	return s.invoiceRepo.DeleteByNumber(ctx, userID, invoiceNumber)
}
