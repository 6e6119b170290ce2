package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotentCreator makes document creation safe to retry with an Idempotency-Key.
// A replayed key returns the document the first request created instead of a new one.
type IdempotentCreator struct {
	service *SaleService
	store   shared.IdempotencyStore
	locker  shared.KeyLocker
	cfg     shared.IdempotencyConfig
	logger  *zap.Logger
}

// NewIdempotentCreator creates a new IdempotentCreator. locker may be nil for single-instance deployments.
func NewIdempotentCreator(
	service *SaleService,
	store shared.IdempotencyStore,
	locker shared.KeyLocker,
	cfg shared.IdempotencyConfig,
	logger *zap.Logger,
) *IdempotentCreator {
	return &IdempotentCreator{
		service: service,
		store:   store,
		locker:  locker,
		cfg:     cfg,
		logger:  logger,
	}
}

// Create creates the document or returns the one already created for key.
// The second return value is true when the response is a replay.
func (c *IdempotentCreator) Create(ctx context.Context, key string, req CreateSaleDocumentRequest) (*SaleDocumentResponse, bool, error) {
	if key == "" {
		key = req.IdempotencyKey
	}
	if key == "" || !c.cfg.Enabled {
		resp, err := c.service.CreateSaleDocument(ctx, req)
		return resp, false, err
	}
	if req.IdempotencyKey != "" && req.IdempotencyKey != key {
		return nil, false, shared.NewValidationError("idempotency_key", "Body idempotency key does not match the Idempotency-Key header")
	}
	req.IdempotencyKey = key

	if resp, err := c.lookup(ctx, key); resp != nil || err != nil {
		return resp, resp != nil, err
	}

	if c.locker != nil {
		release, err := c.locker.Obtain(ctx, "sale-document:"+key, c.cfg.LockTTL)
		if err != nil {
			return nil, false, err
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				c.logger.Warn("failed to release idempotency lock", zap.String("key", key), zap.Error(err))
			}
		}()

		// another holder may have finished while we waited
		if resp, err := c.lookup(ctx, key); resp != nil || err != nil {
			return resp, resp != nil, err
		}
	}

	resp, err := c.service.CreateSaleDocument(ctx, req)
	if err != nil {
		return nil, false, err
	}

	if _, err := c.store.Remember(ctx, key, resp.ID.String(), c.cfg.TTL); err != nil {
		c.logger.Warn("failed to remember idempotency key",
			zap.String("key", key),
			zap.String("document_id", resp.ID.String()),
			zap.Error(err),
		)
	}
	return resp, false, nil
}

// lookup finds the document created for key, first in the store and then by column.
// A miss returns (nil, nil).
func (c *IdempotentCreator) lookup(ctx context.Context, key string) (*SaleDocumentResponse, error) {
	id, ok, err := c.store.Lookup(ctx, key)
	if err != nil {
		c.logger.Warn("idempotency store lookup failed", zap.String("key", key), zap.Error(err))
	}
	if ok {
		docID, perr := uuid.Parse(id)
		if perr == nil {
			resp, err := c.service.GetByID(ctx, docID)
			if err == nil {
				return resp, nil
			}
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
		}
	}

	resp, err := c.service.GetByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return resp, nil
}
