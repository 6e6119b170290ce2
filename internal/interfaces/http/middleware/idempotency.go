package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jewelry/backend/internal/infrastructure/logger"
	"github.com/jewelry/backend/internal/interfaces/http/dto"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 100

// IdempotentReplayHeader is set to "true" when a response replays a document
// created by an earlier request with the same key
const IdempotentReplayHeader = "Idempotent-Replayed"

// IdempotencyKey rejects requests carrying an oversized Idempotency-Key
// before they reach the handlers.
func IdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(c.GetHeader(logger.IdempotencyKeyHeader)) > MaxIdempotencyKeyLength {
			resp := dto.NewErrorResponseWithRequestID(dto.ErrCodeValidation,
				"Idempotency-Key must be at most 100 characters", GetRequestID(c))
			resp.Error.Field = logger.IdempotencyKeyHeader
			c.AbortWithStatusJSON(http.StatusBadRequest, resp)
			return
		}
		c.Next()
	}
}
