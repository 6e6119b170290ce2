package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// saleReason is the ledger reason written for every sale deduction
const saleReason = "Sale"

// SaleRecorder receives sale outcomes for metrics
type SaleRecorder interface {
	RecordDocumentCreated(ctx context.Context, variant string, total decimal.Decimal, duration time.Duration)
	RecordDocumentFailed(ctx context.Context, variant string, code string)
}

// SaleService orchestrates sale documents: validation, stock deduction,
// numbering and persistence in a single transaction.
type SaleService struct {
	scope        inventoryapp.TransactionScope
	ledger       *inventoryapp.StockLedgerService
	documentRepo sales.SaleDocumentRepository
	alerter      *inventoryapp.LowStockAlerter
	recorder     SaleRecorder
	logger       *zap.Logger
	now          func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(
	scope inventoryapp.TransactionScope,
	ledger *inventoryapp.StockLedgerService,
	documentRepo sales.SaleDocumentRepository,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		scope:        scope,
		ledger:       ledger,
		documentRepo: documentRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// WithAlerter sets the low-stock alerter notified after a sale commits
func (s *SaleService) WithAlerter(alerter *inventoryapp.LowStockAlerter) *SaleService {
	s.alerter = alerter
	return s
}

// WithRecorder sets the metrics recorder
func (s *SaleService) WithRecorder(recorder SaleRecorder) *SaleService {
	s.recorder = recorder
	return s
}

// saleResult collects what the transaction produced for the response
type saleResult struct {
	entries  []inventory.StockLedgerEntry
	products map[uuid.UUID]*catalog.Product
}

// CreateSaleDocument validates, numbers and persists a sale document.
// For stock-deducting variants the affected products are locked in id order,
// deducted through the ledger and the whole unit of work is committed or discarded together.
func (s *SaleService) CreateSaleDocument(ctx context.Context, req CreateSaleDocumentRequest) (*SaleDocumentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale_document", "create",
		telemetry.WithAttribute("variant", req.Variant),
		telemetry.WithAttribute("items_count", len(req.Items)),
	)
	defer span.End()
	started := s.now()

	doc, err := sales.NewSaleDocument(req.ToDraft())
	if err != nil {
		s.recordFailure(ctx, req.Variant, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &saleResult{products: make(map[uuid.UUID]*catalog.Product)}
	err = s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		result.entries = result.entries[:0]
		return s.createInScope(ctx, repos, doc, result)
	})
	if err != nil {
		s.recordFailure(ctx, req.Variant, err)
		telemetry.RecordError(span, err)
		s.logger.Warn("sale document rejected",
			zap.String("variant", req.Variant),
			zap.Error(err),
		)
		return nil, err
	}

	telemetry.SetAttributes(span,
		"document_number", doc.DocumentNumber,
		telemetry.SpanAttrAmount, doc.TotalAmount.String(),
	)
	s.logger.Info("sale document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("document_number", doc.DocumentNumber),
		zap.String("variant", doc.Variant.String()),
		zap.String("total_amount", doc.TotalAmount.String()),
		zap.Int("ledger_entries", len(result.entries)),
	)
	if s.recorder != nil {
		s.recorder.RecordDocumentCreated(ctx, doc.Variant.String(), doc.TotalAmount, s.now().Sub(started))
	}

	resp := ToSaleDocumentResponse(doc)
	resp.LedgerEntries = inventoryapp.ToLedgerEntryResponses(result.entries)
	resp.Stock = s.stockSnapshots(ctx, result.products)
	return &resp, nil
}

func (s *SaleService) createInScope(
	ctx context.Context,
	repos inventoryapp.TransactionalRepositories,
	doc *sales.SaleDocument,
	result *saleResult,
) error {
	if err := s.resolveCustomer(ctx, repos, doc); err != nil {
		return err
	}

	products, err := s.loadProducts(ctx, repos, doc)
	if err != nil {
		return err
	}
	for i, item := range doc.Items {
		if !item.IsTracked() {
			continue
		}
		product, ok := products[*item.ProductID]
		if !ok {
			return shared.NewValidationError(fmt.Sprintf("items[%d].product_id", i), fmt.Sprintf("Product %s not found", item.ProductID))
		}
		if !product.IsActive() {
			return shared.NewValidationError(fmt.Sprintf("items[%d].product_id", i), fmt.Sprintf("Product %s is inactive", product.Code))
		}
		doc.ResolveProductName(i, product.Name)
	}

	reqs := doc.StockRequirements()
	for _, r := range reqs {
		product := products[r.ProductID]
		if !product.CanFulfil(r.Quantity) {
			return shared.NewInsufficientStockError(product.ID, product.StockQuantity, r.Quantity)
		}
	}

	year := doc.CreatedAt.Year()
	seq, err := repos.SequenceRepo().Next(ctx, doc.Variant, year)
	if err != nil {
		return err
	}
	if err := doc.AssignNumber(sales.FormatDocumentNumber(doc.Variant, year, seq)); err != nil {
		return err
	}

	if err := repos.DocumentRepo().Create(ctx, doc); err != nil {
		return err
	}

	// one ledger entry per line, chained through the product's running stock
	for _, r := range reqs {
		product := products[r.ProductID]
		for _, line := range r.Lines {
			entry, err := s.ledger.Deduct(ctx, repos, product, doc.Items[line].Quantity, saleReason, &doc.ID)
			if err != nil {
				return err
			}
			result.entries = append(result.entries, *entry)
		}
		result.products[product.ID] = product
	}
	return nil
}

// resolveCustomer checks a referenced customer exists and fills empty snapshot fields
func (s *SaleService) resolveCustomer(ctx context.Context, repos inventoryapp.TransactionalRepositories, doc *sales.SaleDocument) error {
	if doc.Customer.ID == nil {
		return nil
	}
	customer, err := repos.CustomerRepo().FindByID(ctx, *doc.Customer.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewValidationError("customer_id", fmt.Sprintf("Customer %s not found", doc.Customer.ID))
		}
		return err
	}

	name, phone, address := customer.Snapshot()
	if doc.Customer.Name == "" {
		doc.Customer.Name = name
	}
	if doc.Customer.Phone == "" {
		doc.Customer.Phone = phone
	}
	if doc.Customer.Address == "" {
		doc.Customer.Address = address
	}
	return nil
}

// loadProducts fetches every referenced product. Deducting variants take row
// locks in ascending id order so concurrent sales cannot deadlock each other.
func (s *SaleService) loadProducts(ctx context.Context, repos inventoryapp.TransactionalRepositories, doc *sales.SaleDocument) (map[uuid.UUID]*catalog.Product, error) {
	ids := doc.TrackedProductIDs()
	out := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	if doc.Variant.StockEffect() == sales.StockEffectDeduct {
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		locked, err := repos.ProductRepo().FindByIDsForUpdate(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range locked {
			out[locked[i].ID] = &locked[i]
		}
		return out, nil
	}

	for _, id := range ids {
		product, err := repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out[id] = product
	}
	return out, nil
}

func (s *SaleService) stockSnapshots(ctx context.Context, products map[uuid.UUID]*catalog.Product) []StockSnapshot {
	snaps := make([]StockSnapshot, 0, len(products))
	for _, p := range products {
		low := p.IsLowStock()
		if low && s.alerter != nil {
			s.alerter.Check(ctx, p)
		}
		snaps = append(snaps, StockSnapshot{ProductID: p.ID, StockQuantity: p.StockQuantity, LowStock: low})
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].ProductID.String() < snaps[j].ProductID.String() })
	return snaps
}

func (s *SaleService) recordFailure(ctx context.Context, variant string, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordDocumentFailed(ctx, variant, ErrorCode(err))
}

// ErrorCode returns the domain code of err, or INTERNAL_ERROR
func ErrorCode(err error) string {
	var stockErr *shared.InsufficientStockError
	if errors.As(err, &stockErr) {
		return shared.ErrInsufficientStock.Code
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return "INTERNAL_ERROR"
}

// PreviewTotals computes a document's amounts without touching stock or storage
func (s *SaleService) PreviewTotals(_ context.Context, req CreateSaleDocumentRequest) (*PreviewTotalsResponse, error) {
	doc, err := sales.NewSaleDocument(req.ToDraft())
	if err != nil {
		return nil, err
	}
	return &PreviewTotalsResponse{
		Items:              toLineItemResponses(doc.Items),
		Subtotal:           doc.Subtotal,
		DiscountPercentage: doc.DiscountPercentage,
		DiscountAmount:     doc.DiscountAmount,
		TaxAmount:          doc.TaxAmount,
		TotalAmount:        doc.TotalAmount,
		PayableAmount:      doc.PayableAmount(),
		PaymentStatus:      string(doc.PaymentStatus),
		Exchange:           toExchangeResponse(doc.Exchange),
	}, nil
}

// GetByID retrieves a document with its items
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleDocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToSaleDocumentResponse(doc)
	return &resp, nil
}

// GetByNumber retrieves a document by its number
func (s *SaleService) GetByNumber(ctx context.Context, number string) (*SaleDocumentResponse, error) {
	if _, _, _, err := sales.ParseDocumentNumber(number); err != nil {
		return nil, shared.NewValidationError("document_number", err.Error())
	}
	doc, err := s.documentRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToSaleDocumentResponse(doc)
	return &resp, nil
}

// GetByIdempotencyKey retrieves the document created with key
func (s *SaleService) GetByIdempotencyKey(ctx context.Context, key string) (*SaleDocumentResponse, error) {
	doc, err := s.documentRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, err
	}
	resp := ToSaleDocumentResponse(doc)
	return &resp, nil
}

// List returns a page of documents
func (s *SaleService) List(ctx context.Context, req ListDocumentsRequest) (*shared.Paginated[SaleDocumentListResponse], error) {
	filter := req.ToFilter()
	docs, err := s.documentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.documentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToSaleDocumentListResponses(docs), total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdatePayment records a payment against a document
func (s *SaleService) UpdatePayment(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*SaleDocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version > 0 && req.Version != doc.Version {
		return nil, shared.ErrConcurrencyConflict
	}

	if err := doc.UpdatePayment(req.AmountPaid, sales.PaymentMethod(req.PaymentMethod)); err != nil {
		return nil, err
	}
	if err := s.documentRepo.UpdatePayment(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("sale document payment updated",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("amount_paid", doc.AmountPaid.String()),
		zap.String("payment_status", string(doc.PaymentStatus)),
	)
	resp := ToSaleDocumentResponse(doc)
	return &resp, nil
}

// DeleteDocument hard-deletes a document and its line items.
// A document referenced by ledger entries needs cascade, which detaches
// those entries; stock is not restored because the ledger is history.
func (s *SaleService) DeleteDocument(ctx context.Context, id uuid.UUID, cascade bool) error {
	var detached int64
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		if _, err := repos.DocumentRepo().FindByID(ctx, id); err != nil {
			return err
		}

		refs, err := repos.LedgerRepo().CountByReferenceDocument(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			if !cascade {
				return shared.NewReferentialConflict("sale document", id, map[string]int64{"ledger_entries": refs})
			}
			if detached, err = repos.LedgerRepo().ClearReferenceDocument(ctx, id); err != nil {
				return err
			}
		}
		return repos.DocumentRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("sale document deleted",
		zap.String("document_id", id.String()),
		zap.Bool("cascade", cascade),
		zap.Int64("ledger_entries_detached", detached),
	)
	return nil
}
