package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/jewelry/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Meta)
}

func TestBaseHandlerSuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.SuccessWithMeta(c, []string{"item1", "item2"}, 21, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(21), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandlerCreatedAndNoContent(t *testing.T) {
	h := &BaseHandler{}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.Created(c, map[string]int{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerErrorCarriesRequestID(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.RequestIDKey, "req-123")

	h.NotFound(c, "Product not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestBaseHandlerErrorWithCode(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.ErrorWithCode(c, dto.ErrCodeRequestInProgress, "busy")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestParseUUIDParam(t *testing.T) {
	h := &BaseHandler{}
	id := uuid.New()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	got, ok := h.ParseUUIDParam(c, "id", "product")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = h.ParseUUIDParam(c, "id", "product")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid product ID format", decodeResponse(t, w).Error.Message)
}

type bindTarget struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=1"`
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantCode   string
	}{
		{"valid", `{"name":"ring","quantity":2}`, true, http.StatusOK, ""},
		{"malformed", `{"name":`, false, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
		{"failing validation", `{"quantity":0}`, false, http.StatusBadRequest, dto.ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var target bindTarget
			ok := h.BindJSON(c, &target)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "ring", target.Name)
				return
			}
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestBindJSON_BodyTooLarge(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 16)

	var target bindTarget
	assert.False(t, h.BindJSON(c, &target))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeResponse(t, w).Error.Code)
}

func TestHandleError(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantField   string
		wantDetails []string
	}{
		{
			name:       "validation error keeps its field",
			err:        shared.NewValidationError("items", "a document needs at least one line item"),
			wantStatus: http.StatusBadRequest,
			wantCode:   dto.ErrCodeValidation,
			wantField:  "items",
		},
		{
			name:        "invalid discount",
			err:         shared.NewInvalidDiscountError(fakeAmount("500"), fakeAmount("100")),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeInvalidDiscount,
			wantField:   "discount_amount",
			wantDetails: []string{"discount", "subtotal"},
		},
		{
			name:        "insufficient stock",
			err:         fmt.Errorf("deduct: %w", shared.NewInsufficientStockError(productID, 1, 3)),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    dto.ErrCodeInsufficientStock,
			wantDetails: []string{"product_id", "available", "required"},
		},
		{
			name:        "not found",
			err:         shared.NewNotFoundError("product", productID),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantDetails: []string{"resource", "id"},
		},
		{
			name:       "referential conflict",
			err:        shared.NewReferentialConflict("customer", productID, map[string]int64{"documents": 2}),
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeReferentialConflict,
		},
		{
			name:       "idempotency lock held",
			err:        shared.ErrLockNotObtained,
			wantStatus: http.StatusConflict,
			wantCode:   dto.ErrCodeRequestInProgress,
		},
		{
			name:       "persistence failure",
			err:        shared.NewPersistenceFailure("create sale document", errors.New("connection reset")),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   dto.ErrCodePersistenceFailure,
		},
		{
			name:       "deadline exceeded",
			err:        fmt.Errorf("query: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   dto.ErrCodeTransactionTimeout,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
			c.Set(middleware.RequestIDKey, "req-err")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantField, resp.Error.Field)
			assert.Equal(t, "req-err", resp.Error.RequestID)
			for _, key := range tt.wantDetails {
				assert.Contains(t, resp.Error.Details, key)
			}
			require.Len(t, c.Errors, 1)
			assert.Equal(t, tt.err, c.Errors.Last().Err)
		})
	}
}

func TestHandleError_UnknownErrorHidesMessage(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.HandleError(c, errors.New("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandleError_Nil(t *testing.T) {
	h := &BaseHandler{}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
	assert.Empty(t, c.Errors)
}

func TestDocumentedEnvelopesMatchWrittenBodies(t *testing.T) {
	h := &BaseHandler{}

	t.Run("paged list", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.SuccessWithMeta(c, []map[string]string{{"document_number": "BILL-2024-00001"}}, 1, 1, 20)

		var resp PagedResponse[map[string]string]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "BILL-2024-00001", resp.Data[0]["document_number"])
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/sale-documents", nil)
		h.HandleError(c, shared.NewInsufficientStockError(uuid.New(), 1, 3))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "available")
		assert.Contains(t, resp.Error.Details, "required")
	})
}

type fakeAmount string

func (a fakeAmount) String() string { return string(a) }
