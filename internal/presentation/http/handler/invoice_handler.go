package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dealerdesk/dealerdesk-api/internal/application/service"
	"github.com/dealerdesk/dealerdesk-api/internal/domain/entity"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/dto/response"
	"github.com/dealerdesk/dealerdesk-api/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler serves the legacy invoice CRUD surface: one entry point
// dispatching on HTTP method, HTTP 200 on every outcome, result reported
// through the envelope's error flag. Token verification has already run in
// middleware by the time Handle is called.
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Handle dispatches a legacy invoice request by HTTP method.
func (h *InvoiceHandler) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet:
		h.get(c)
	case http.MethodPost:
		h.create(c)
	case http.MethodPut:
		h.update(c)
	case http.MethodDelete:
		h.delete(c)
	default:
		response.LegacyFail(c, apperror.OpUnsupported,
			fmt.Sprintf("Method (%s) is not supported.", c.Request.Method))
	}
}

// get returns all invoices matching the caller and the invoice-number
// header. The parse falls back to the -1 sentinel, and only the sentinel is
// rejected; 0 is a queryable invoice number here, unlike update/delete.
func (h *InvoiceHandler) get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.LegacyFail(c, apperror.OpNotAuthenticated, "user not authenticated")
		return
	}

	invoiceNumber, err := strconv.Atoi(c.GetHeader("invoice-number"))
	if err != nil {
		invoiceNumber = -1
	}
	if invoiceNumber == -1 {
		response.LegacyFail(c, apperror.OpInvoiceNumber, "invoice number not found, (set in header).")
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), *userID, invoiceNumber)
	if err != nil {
		response.LegacyFailErr(c, err)
		return
	}

	response.LegacyOK(c, invoices)
}

// create stores a new invoice from the request body's "data" field. The
// owner is always the verified identity regardless of the payload.
func (h *InvoiceHandler) create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.LegacyFail(c, apperror.OpNotAuthenticated, "user not authenticated")
		return
	}

	var body struct {
		Data *entity.Invoice `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Data == nil {
		response.LegacyFail(c, apperror.OpInvoiceData, "invoice data not given")
		return
	}

	created, err := h.invoiceService.Create(c.Request.Context(), *userID, body.Data)
	if err != nil {
		response.LegacyFailErr(c, err)
		return
	}

	response.LegacyOK(c, created)
}

// update merges a partial invoice onto (caller, invoice number). The legacy
// number check differs from get on purpose: parse failures, 0 and -1 are all
// rejected here, and a filter that matches nothing still reports success.
func (h *InvoiceHandler) update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.LegacyFail(c, apperror.OpNotAuthenticated, "user not authenticated")
		return
	}

	invoiceNumber, err := strconv.Atoi(c.GetHeader("invoice-number"))
	if err != nil || invoiceNumber == 0 || invoiceNumber == -1 {
		response.LegacyFail(c, apperror.OpInvoiceNumber, "invoice number not given")
		return
	}

	var body struct {
		UpdatedInvoice map[string]interface{} `json:"updated-invoice"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || len(body.UpdatedInvoice) == 0 {
		response.LegacyFail(c, apperror.OpUpdatedData, "updated invoice data not given")
		return
	}

	if err := h.invoiceService.Update(c.Request.Context(), *userID, invoiceNumber, body.UpdatedInvoice); err != nil {
		response.LegacyFailErr(c, err)
		return
	}

	// The update result is not echoed back.
	response.LegacyOK(c, nil)
}

// delete removes the invoice matching (caller, invoice number); a non-match
// still answers success.
func (h *InvoiceHandler) delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.LegacyFail(c, apperror.OpNotAuthenticated, "user not authenticated")
		return
	}

	invoiceNumber, err := strconv.Atoi(c.GetHeader("invoice-number"))
	if err != nil || invoiceNumber == 0 || invoiceNumber == -1 {
		response.LegacyFail(c, apperror.OpInvoiceNumber, "invoice number not given, set as header(invoice-number)")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), *userID, invoiceNumber); err != nil {
		response.LegacyFailErr(c, err)
		return
	}

	response.LegacyOK(c, "deleted")
}
