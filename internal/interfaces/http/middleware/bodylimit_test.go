package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	newRouter := func(limit int64) *gin.Engine {
		router := gin.New()
		router.Use(BodyLimit(limit))
		router.POST("/api/v1/sale-documents", func(c *gin.Context) {
			if _, err := io.ReadAll(c.Request.Body); err != nil {
				c.String(http.StatusBadRequest, "body too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("allows a body within the limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(1024).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sale-documents", strings.NewReader(`{"variant":"bill"}`)))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a declared oversized body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sale-documents", strings.NewReader(strings.Repeat("x", 200)))
		w := httptest.NewRecorder()
		newRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeRequestTooLarge)
	})

	t.Run("caps a streamed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sale-documents", strings.NewReader(strings.Repeat("x", 100)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		newRouter(50).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-positive limit disables the check", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(0).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sale-documents", strings.NewReader(strings.Repeat("x", 4096))))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
