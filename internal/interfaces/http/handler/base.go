// Package handler holds the gin handlers of the jewelry sales API.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/logger"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/jewelry/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// APIResponse documents the envelope of a single resource, such as a sale document
// together with the ledger entries its creation wrote.
type APIResponse[T any] struct {
	Success bool `json:"success" example:"true"`
	Data    T    `json:"data"`
}

// PagedResponse documents the envelope of a list endpoint
type PagedResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    []T       `json:"data"`
	Meta    *dto.Meta `json:"meta"`
}

// ErrorResponse documents the error envelope. For INSUFFICIENT_STOCK the
// details carry product_id, available and required.
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving the status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ParseUUIDParam reads a UUID path parameter, answering 400 when it is malformed
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// BindJSON decodes and validates the body into obj. On failure it writes a
// 400 (413 for an oversized body) and returns false.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	return h.bind(c, c.ShouldBindJSON(obj), dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
}

// BindQuery decodes and validates query parameters into obj
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	return h.bind(c, c.ShouldBindQuery(obj), dto.ErrCodeBadRequest, "Invalid query parameters")
}

func (h *BaseHandler) bind(c *gin.Context, err error, code, message string) bool {
	if err == nil {
		return true
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		middleware.HandleValidationError(c, err)
		return false
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return false
	}
	h.Error(c, http.StatusBadRequest, code, message+": "+err.Error())
	return false
}

// HandleError maps err onto the error envelope. Domain errors keep their
// message, field and details; anything else is logged and answered with 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	requestID := middleware.GetRequestID(c)

	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		h.writeDomainError(c, stockErr.DomainError(), requestID)
		return
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.writeDomainError(c, domainErr, requestID)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		h.writeDomainError(c, shared.NewTransactionTimeout("request", err), requestID)
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

func (h *BaseHandler) writeDomainError(c *gin.Context, domainErr *shared.DomainError, requestID string) {
	code := dto.NormalizeErrorCode(domainErr.Code)
	resp := dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID)
	resp.Error.Field = domainErr.Field
	if len(domainErr.Details) > 0 {
		resp.Error.Details = domainErr.Details
	}
	c.JSON(dto.GetHTTPStatus(code), resp)
}
