package repository

import (
	"context"
	"errors"

	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	domainRepo "github.com/dealerdesk/dealerdesk-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := r.db.WithContext(ctx).Create(invoice).Error
	if isUniqueViolation(err) {
		return domainRepo.ErrDuplicateInvoice
	}
	return err
}

func (r *invoiceRepository) FindByNumber(ctx context.Context, userID uuid.UUID, invoiceNumber int) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND invoice_number = ?", userID, invoiceNumber).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) GetByIDForUser(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		First(&invoice, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateByNumber is a read-merge-write: the patch uses the legacy wire field
// names, so it is applied through the entity's JSON tags rather than mapped
// to columns. Last write wins under concurrent updates.
func (r *invoiceRepository) UpdateByNumber(ctx context.Context, userID uuid.UUID, invoiceNumber int, patch map[string]interface{}) error {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		First(&invoice, "user_id = ? AND invoice_number = ?", userID, invoiceNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := invoice.ApplyPatch(patch); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&invoice).Error
}

// DeleteByNumber removes matching rows outright, so the invoice number is
// immediately free for re-creation.
func (r *invoiceRepository) DeleteByNumber(ctx context.Context, userID uuid.UUID, invoiceNumber int) error {
	return r.db.WithContext(ctx).
		Delete(&entity.Invoice{}, "user_id = ? AND invoice_number = ?", userID, invoiceNumber).Error
}

// isUniqueViolation reports whether err is the store's duplicate-key signal,
// either gorm's translated sentinel or a raw Postgres 23505.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
