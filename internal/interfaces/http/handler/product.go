package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/jewelry/backend/internal/application/catalog"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
)

// ProductHandler serves the catalogue and the per-product stock ledger
type ProductHandler struct {
	BaseHandler
	products ProductService
	ledger   StockLedgerService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products ProductService, ledger StockLedgerService) *ProductHandler {
	return &ProductHandler{products: products, ledger: ledger}
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Description  Creates a catalogue product; a positive initial_stock is recorded as the opening ledger entry
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetByCode godoc
// @ID           getProductByCode
// @Summary      Get a product by code
// @Tags         products
// @Produce      json
// @Param        code path string true "Product code"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/code/{code} [get]
func (h *ProductHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Product code is required")
		return
	}

	product, err := h.products.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search query string false "Matches code or name"
// @Param        status query string false "Status" Enums(active, inactive)
// @Param        material_type query string false "Material" Enums(gold, silver, platinum, diamond, other)
// @Param        category query string false "Category"
// @Param        low_stock query bool false "Only products at or below their minimum stock"
// @Param        page query int false "Page" minimum(1)
// @Param        page_size query int false "Page size" minimum(1) maximum(100)
// @Param        order_by query string false "Sort field" Enums(code, name, created_at, stock_quantity)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} PagedResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	page, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update godoc
// @ID           updateProduct
// @Summary      Update a product
// @Description  Updates descriptive fields; stock only changes through the ledger
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateProductRequest true "Changes"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Activate godoc
// @ID           activateProduct
// @Summary      Activate a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /products/{id}/activate [post]
func (h *ProductHandler) Activate(c *gin.Context) {
	h.changeStatus(c, h.products.Activate)
}

// Deactivate godoc
// @ID           deactivateProduct
// @Summary      Deactivate a product
// @Description  Inactive products cannot be sold
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c *gin.Context) {
	h.changeStatus(c, h.products.Deactivate)
}

func (h *ProductHandler) changeStatus(c *gin.Context, change func(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	product, err := change(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Description  A product with ledger history or sold lines needs cascade=true, which removes its ledger
// @Description  and detaches the line items from the catalogue
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Param        cascade query bool false "Remove dependent records"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}
	var req dto.DeleteRequest
	if !h.BindQuery(c, &req) {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id, req.Cascade); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustStock godoc
// @ID           adjustProductStock
// @Summary      Adjust stock
// @Description  Applies a signed manual correction and appends an adjustment ledger entry
// @Tags         stock-ledger
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body inventoryapp.AdjustStockRequest true "Adjustment"
// @Success      201 {object} APIResponse[inventoryapp.LedgerEntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /products/{id}/stock/adjustments [post]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}
	var req inventoryapp.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.ledger.Adjust(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListLedger godoc
// @ID           listProductLedger
// @Summary      List ledger entries
// @Description  Ledger entries of the product, newest first
// @Tags         stock-ledger
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        page query int false "Page" minimum(1)
// @Param        page_size query int false "Page size" minimum(1) maximum(100)
// @Success      200 {object} PagedResponse[inventoryapp.LedgerEntryResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/stock/ledger [get]
func (h *ProductHandler) ListLedger(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}
	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	page, err := h.ledger.ListEntries(c.Request.Context(), id, query.ToFilter("sequence"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// VerifyLedger godoc
// @ID           verifyProductLedger
// @Summary      Verify the ledger
// @Description  Replays the ledger and reports whether it reproduces the current stock
// @Tags         stock-ledger
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.LedgerVerificationResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id}/stock/verify [get]
func (h *ProductHandler) VerifyLedger(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "product")
	if !ok {
		return
	}

	report, err := h.ledger.VerifyLedger(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
