package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/jewelry/backend/internal/application/partner"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
)

// CustomerHandler serves the customer register
type CustomerHandler struct {
	BaseHandler
	service CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// Create godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// GetByID godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search query string false "Matches name or phone"
// @Param        page query int false "Page" minimum(1)
// @Param        page_size query int false "Page size" minimum(1) maximum(100)
// @Param        order_by query string false "Sort field" Enums(name, phone, created_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} PagedResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}

	page, err := h.service.List(c.Request.Context(), query.ToFilter("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Contact details and notes; the name cannot be changed
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body partnerapp.UpdateCustomerRequest true "Changes"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "customer")
	if !ok {
		return
	}
	var req partnerapp.UpdateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  A customer with sale documents needs cascade=true, which deletes those documents too
// @Tags         customers
// @Param        id path string true "Customer ID" format(uuid)
// @Param        cascade query bool false "Delete the customer's documents"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.ParseUUIDParam(c, "id", "customer")
	if !ok {
		return
	}
	var req dto.DeleteRequest
	if !h.BindQuery(c, &req) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, req.Cascade); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
