package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/jewelry/backend/internal/infrastructure/logger"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/jewelry/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// SaleDocumentHandler serves invoices, bills and exchange bills
type SaleDocumentHandler struct {
	BaseHandler
	service SaleDocumentService
	creator SaleDocumentCreator
}

// NewSaleDocumentHandler creates a new SaleDocumentHandler
func NewSaleDocumentHandler(service SaleDocumentService, creator SaleDocumentCreator) *SaleDocumentHandler {
	return &SaleDocumentHandler{service: service, creator: creator}
}

// Create godoc
// @ID           createSaleDocument
// @Summary      Create a sale document
// @Description  Creates an invoice, bill or exchange bill. Bills and exchange bills deduct stock for every
// @Description  catalogue line and append ledger entries in the same transaction. A repeated
// @Description  Idempotency-Key returns the document created by the first request.
// @Tags         sale-documents
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client key making retries safe" maxlength(100)
// @Param        request body salesapp.CreateSaleDocumentRequest true "Sale document"
// @Success      201 {object} APIResponse[salesapp.SaleDocumentResponse]
// @Success      200 {object} APIResponse[salesapp.SaleDocumentResponse] "Replay of an earlier request"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Failure      504 {object} ErrorResponse
// @Router       /sale-documents [post]
func (h *SaleDocumentHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	key := c.GetHeader(logger.IdempotencyKeyHeader)
	doc, replayed, err := h.creator.Create(c.Request.Context(), key, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if replayed {
		logger.GetGinLogger(c).Info("Replayed sale document",
			zap.String("document_number", doc.DocumentNumber),
			zap.String("idempotency_key", key),
		)
		c.Header(middleware.IdempotentReplayHeader, strconv.FormatBool(true))
		h.Success(c, doc)
		return
	}
	h.Created(c, doc)
}

// Preview godoc
// @ID           previewSaleDocument
// @Summary      Preview document totals
// @Description  Computes line totals, discount, tax and payable amount without saving or touching stock
// @Tags         sale-documents
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSaleDocumentRequest true "Unsaved sale document"
// @Success      200 {object} APIResponse[salesapp.PreviewTotalsResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /sale-documents/preview [post]
func (h *SaleDocumentHandler) Preview(c *gin.Context) {
	var req salesapp.CreateSaleDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	preview, err := h.service.PreviewTotals(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// GetByID godoc
// @ID           getSaleDocument
// @Summary      Get a sale document
// @Tags         sale-documents
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} APIResponse[salesapp.SaleDocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sale-documents/{id} [get]
func (h *SaleDocumentHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// GetByNumber godoc
// @ID           getSaleDocumentByNumber
// @Summary      Get a sale document by number
// @Tags         sale-documents
// @Produce      json
// @Param        number path string true "Document number" example(BILL-20261017-0001)
// @Success      200 {object} APIResponse[salesapp.SaleDocumentResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /sale-documents/number/{number} [get]
func (h *SaleDocumentHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	doc, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// List godoc
// @ID           listSaleDocuments
// @Summary      List sale documents
// @Tags         sale-documents
// @Produce      json
// @Param        page query int false "Page" minimum(1)
// @Param        page_size query int false "Page size" minimum(1) maximum(100)
// @Param        search query string false "Matches document number or customer name"
// @Param        variant query string false "Variant" Enums(invoice, bill, exchange_bill)
// @Param        payment_status query string false "Payment status" Enums(pending, partial, paid)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        from query string false "From date (inclusive)" format(date)
// @Param        to query string false "To date (inclusive)" format(date)
// @Param        order_by query string false "Sort field" Enums(created_at, document_number, total_amount)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} PagedResponse[salesapp.SaleDocumentListResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /sale-documents [get]
func (h *SaleDocumentHandler) List(c *gin.Context) {
	var req salesapp.ListDocumentsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdatePayment godoc
// @ID           updateSaleDocumentPayment
// @Summary      Record a payment
// @Description  Sets the amount paid and recomputes the payment status
// @Tags         sale-documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body salesapp.UpdatePaymentRequest true "Payment"
// @Success      200 {object} APIResponse[salesapp.SaleDocumentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /sale-documents/{id}/payment [put]
func (h *SaleDocumentHandler) UpdatePayment(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "document")
	if !ok {
		return
	}
	var req salesapp.UpdatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, doc)
}

// Delete godoc
// @ID           deleteSaleDocument
// @Summary      Delete a sale document
// @Description  Removes the document and its line items. A document referenced by ledger entries
// @Description  needs cascade=true, which clears the reference; stock is not restored.
// @Tags         sale-documents
// @Param        id path string true "Document ID" format(uuid)
// @Param        cascade query bool false "Detach referencing ledger entries"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /sale-documents/{id} [delete]
func (h *SaleDocumentHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "document")
	if !ok {
		return
	}
	var req dto.DeleteRequest
	if !h.BindQuery(c, &req) {
		return
	}

	if err := h.service.DeleteDocument(c.Request.Context(), id, req.Cascade); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
