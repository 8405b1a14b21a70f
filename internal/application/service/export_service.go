package service

import (
	"context"
	"net/http"

	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	"github.com/dealerdesk/dealerdesk-api/internal/domain/repository"
	"github.com/dealerdesk/dealerdesk-api/pkg/apperror"
	"github.com/google/uuid"
)

// MarkupRenderer renders an invoice (with its owner's letterhead) to HTML.
type MarkupRenderer interface {
	Render(invoice *entity.Invoice, owner *entity.User) (string, error)
}

// PDFGenerator converts HTML markup to PDF bytes.
type PDFGenerator interface {
	Generate(ctx context.Context, markup string) ([]byte, error)
}

// ExportService orchestrates the invoice download path: scoped lookup,
// markup rendering, PDF generation.
type ExportService struct {
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	renderer    MarkupRenderer
	generator   PDFGenerator
}

// NewExportService creates a new export service
func NewExportService(
	invoiceRepo repository.InvoiceRepository,
	userRepo repository.UserRepository,
	renderer MarkupRenderer,
	generator PDFGenerator,
) *ExportService {
	return &ExportService{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		generator:   generator,
	}
}

// DownloadPDF loads the invoice by store id, scoped to the requesting user,
// and returns the rendered A4 PDF. An id that does not exist and an id owned
// by someone else produce the same "_id not valid" answer, so invoice ids
// cannot be probed across accounts.
func (s *ExportService) DownloadPDF(ctx context.Context, userID, invoiceID uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.GetByIDForUser(ctx, userID, invoiceID)
	if err != nil {
		return nil, apperror.NewLegacyError(http.StatusInternalServerError,
			apperror.OpUnknownError, err.Error())
	}
	if invoice == nil {
		return nil, apperror.NewLegacyError(http.StatusNotFound,
			apperror.OpID, "_id not valid")
	}

	// Letterhead is best effort: a missing profile must not block the export.
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		owner = nil
	}

	markup, err := s.renderer.Render(invoice, owner)
	if err != nil {
		return nil, apperror.NewLegacyError(http.StatusInternalServerError,
			apperror.OpUnknownError, err.Error())
	}

	doc, err := s.generator.Generate(ctx, markup)
	if err != nil {
		return nil, apperror.NewLegacyError(http.StatusInternalServerError,
			apperror.OpUnknownError, err.Error())
	}
	return doc, nil
}
