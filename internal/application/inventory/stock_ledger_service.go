package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockLedgerService is the single writer of product stock.
// Every change goes through a guarded update and leaves exactly one ledger entry.
type StockLedgerService struct {
	scope       TransactionScope
	productRepo catalog.ProductRepository
	ledgerRepo  inventory.StockLedgerRepository
	alerter     *LowStockAlerter
	logger      *zap.Logger
}

// NewStockLedgerService creates a new StockLedgerService
func NewStockLedgerService(
	scope TransactionScope,
	productRepo catalog.ProductRepository,
	ledgerRepo inventory.StockLedgerRepository,
	logger *zap.Logger,
) *StockLedgerService {
	return &StockLedgerService{
		scope:       scope,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		logger:      logger,
	}
}

// WithAlerter sets the low-stock alerter used after committed adjustments
func (s *StockLedgerService) WithAlerter(alerter *LowStockAlerter) *StockLedgerService {
	s.alerter = alerter
	return s
}

// Deduct takes quantity units of a product sold on a document.
// product must have been loaded with FindByIDForUpdate in the same transaction;
// its StockQuantity is updated to the post-deduction value on success.
func (s *StockLedgerService) Deduct(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	quantity int,
	reason string,
	documentID *uuid.UUID,
) (*inventory.StockLedgerEntry, error) {
	entry, err := inventory.NewSaleEntry(product.ID, product.StockQuantity, quantity, reason, documentID)
	if err != nil {
		return nil, err
	}

	ok, err := repos.ProductRepo().DeductStock(ctx, product.ID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.shortfall(ctx, repos, product.ID, quantity)
	}

	if err := s.append(ctx, repos, entry); err != nil {
		return nil, err
	}
	product.StockQuantity = entry.After
	return entry, nil
}

// AdjustInScope applies a signed manual correction inside an existing transaction
func (s *StockLedgerService) AdjustInScope(
	ctx context.Context,
	repos TransactionalRepositories,
	productID uuid.UUID,
	delta int,
	reason string,
) (*inventory.StockLedgerEntry, *catalog.Product, error) {
	product, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	entry, err := s.apply(ctx, repos, product, inventory.EntryKindAdjustment, delta, reason)
	if err != nil {
		return nil, nil, err
	}
	return entry, product, nil
}

// RecordOpeningStock writes the initial entry of a product created with stock.
// The product row must already exist in the transaction with zero stock.
func (s *StockLedgerService) RecordOpeningStock(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	quantity int,
) (*inventory.StockLedgerEntry, error) {
	if quantity == 0 {
		return nil, nil
	}
	return s.apply(ctx, repos, product, inventory.EntryKindInitial, quantity, "Opening stock")
}

// Adjust applies a signed manual correction in its own transaction
func (s *StockLedgerService) Adjust(ctx context.Context, productID uuid.UUID, req AdjustStockRequest) (*LedgerEntryResponse, error) {
	var (
		entry   *inventory.StockLedgerEntry
		product *catalog.Product
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		entry, product, err = s.AdjustInScope(ctx, repos, productID, req.Delta, req.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", productID.String()),
		zap.Int("delta", entry.Delta),
		zap.Int("after", entry.After),
		zap.Int64("sequence", entry.Sequence),
	)
	if s.alerter != nil {
		s.alerter.Check(ctx, product)
	}

	resp := ToLedgerEntryResponse(entry)
	return &resp, nil
}

// ListEntries returns a page of a product's ledger, newest first
func (s *StockLedgerService) ListEntries(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[LedgerEntryResponse], error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	entries, err := s.ledgerRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ledgerRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToLedgerEntryResponses(entries), total, filter.Page, filter.PageSize)
	return &page, nil
}

// VerifyLedger replays a product's ledger from zero and compares the result with its stock
func (s *StockLedgerService) VerifyLedger(ctx context.Context, productID uuid.UUID) (*LedgerVerificationResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledgerRepo.FindAllByProductInOrder(ctx, productID)
	if err != nil {
		return nil, err
	}

	resp := &LedgerVerificationResponse{
		ProductID:    productID,
		CurrentStock: product.StockQuantity,
		EntryCount:   len(entries),
	}

	replayed, err := inventory.Replay(0, entries)
	resp.ReplayedStock = replayed

	var mismatch *inventory.ReplayMismatch
	switch {
	case errors.As(err, &mismatch):
		resp.BrokenEntryID = &mismatch.EntryID
		resp.BrokenSequence = mismatch.Sequence
	case err != nil:
		return nil, err
	default:
		resp.Consistent = replayed == product.StockQuantity
	}

	if !resp.Consistent {
		s.logger.Warn("stock ledger inconsistent",
			zap.String("product_id", productID.String()),
			zap.Int("current_stock", resp.CurrentStock),
			zap.Int("replayed_stock", resp.ReplayedStock),
		)
	}
	return resp, nil
}

func (s *StockLedgerService) apply(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	kind inventory.EntryKind,
	delta int,
	reason string,
) (*inventory.StockLedgerEntry, error) {
	entry, err := inventory.NewStockLedgerEntry(product.ID, kind, product.StockQuantity, delta, reason, nil)
	if err != nil {
		return nil, err
	}

	ok, err := repos.ProductRepo().ApplyStockDelta(ctx, product.ID, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.shortfall(ctx, repos, product.ID, -delta)
	}

	if err := s.append(ctx, repos, entry); err != nil {
		return nil, err
	}
	product.StockQuantity = entry.After
	return entry, nil
}

func (s *StockLedgerService) append(ctx context.Context, repos TransactionalRepositories, entry *inventory.StockLedgerEntry) error {
	seq, err := repos.LedgerRepo().NextSequence(ctx, entry.ProductID)
	if err != nil {
		return err
	}
	entry.Sequence = seq
	return repos.LedgerRepo().Append(ctx, entry)
}

// shortfall builds the error for a guarded update that matched no row,
// re-reading stock so the caller sees the quantity that was actually available.
func (s *StockLedgerService) shortfall(ctx context.Context, repos TransactionalRepositories, productID uuid.UUID, required int) error {
	current, err := repos.ProductRepo().FindByID(ctx, productID)
	if err != nil {
		return err
	}
	return shared.NewInsufficientStockError(productID, current.StockQuantity, required)
}
