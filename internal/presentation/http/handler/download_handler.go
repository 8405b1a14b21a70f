package handler

import (
	"fmt"
	"net/http"

	"github.com/dealerdesk/dealerdesk-api/internal/application/service"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/dto/response"
	"github.com/dealerdesk/dealerdesk-api/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DownloadHandler serves the legacy PDF download surface. Authentication is
// cookie-based here (the frontend opens the download as a plain link, so it
// cannot set headers); the same verifier runs in middleware before this
// handler.
type DownloadHandler struct {
	exportService *service.ExportService
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(exportService *service.ExportService) *DownloadHandler {
	return &DownloadHandler{exportService: exportService}
}

// Application streams the invoice identified by the _id query parameter as
// an A4 PDF. Every failure keeps the JSON envelope; only the success path
// switches the body to raw PDF bytes.
func (h *DownloadHandler) Application(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.LegacyFail(c, apperror.OpNotAuthenticated, "user not authenticated")
		return
	}

	// The _id check precedes the method check, matching the legacy contract.
	rawID, ok := c.GetQuery("_id")
	if !ok {
		response.LegacyFail(c, apperror.OpID, "_id not defined")
		return
	}

	if c.Request.Method != http.MethodGet {
		response.LegacyFail(c, apperror.OpUnsupported,
			fmt.Sprintf("Method (%s) is not supported.", c.Request.Method))
		return
	}

	// A malformed identifier is a lookup-level failure, not a validation one.
	invoiceID, err := uuid.Parse(rawID)
	if err != nil {
		response.LegacyFail(c, apperror.OpUnknownError, err.Error())
		return
	}

	doc, err := h.exportService.DownloadPDF(c.Request.Context(), *userID, invoiceID)
	if err != nil {
		response.LegacyFailErr(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", doc)
}
