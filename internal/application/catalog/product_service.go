package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	scope       inventoryapp.TransactionScope
	ledger      *inventoryapp.StockLedgerService
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	scope inventoryapp.TransactionScope,
	ledger *inventoryapp.StockLedgerService,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		scope:       scope,
		ledger:      ledger,
		logger:      logger,
	}
}

// Create creates a new product. Non-zero opening stock is recorded as an
// initial ledger entry in the same transaction.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Code, req.Name, catalog.MaterialType(req.MaterialType))
	if err != nil {
		return nil, err
	}
	unitWeight := decimal.Zero
	if req.UnitWeight != nil {
		unitWeight = *req.UnitWeight
	}
	if err := product.SetDetails(req.Category, req.Purity, unitWeight); err != nil {
		return nil, err
	}
	if err := product.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, shared.NewValidationError("initial_stock", "Initial stock cannot be negative")
	}

	err = s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		exists, err := repos.ProductRepo().ExistsByCode(ctx, product.Code)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists").WithField("code")
		}
		if err := repos.ProductRepo().Create(ctx, product); err != nil {
			return err
		}
		_, err = s.ledger.RecordOpeningStock(ctx, repos, product, req.InitialStock)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code),
		zap.Int("initial_stock", product.StockQuantity),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByCode retrieves a product by code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}.Normalize()

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.MaterialType != "" {
		domainFilter.Filters["material_type"] = filter.MaterialType
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update updates descriptive fields of a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if req.Version > 0 && req.Version != product.Version {
		return nil, shared.ErrConcurrencyConflict
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	category, purity, weight := product.Category, product.Purity, product.UnitWeight
	if req.Category != nil {
		category = *req.Category
	}
	if req.Purity != nil {
		purity = *req.Purity
	}
	if req.UnitWeight != nil {
		weight = *req.UnitWeight
	}
	if err := product.SetDetails(category, purity, weight); err != nil {
		return nil, err
	}
	if req.MinStock != nil {
		if err := product.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}
	product.IncrementVersion()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Activate activates a product
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, productID, (*catalog.Product).Activate)
}

// Deactivate deactivates a product. Inactive products cannot be sold.
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, productID, (*catalog.Product).Deactivate)
}

func (s *ProductService) changeStatus(ctx context.Context, productID uuid.UUID, change func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := change(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete hard-deletes a product. A product with ledger history or sale lines
// needs cascade, which removes its ledger entries and detaches its sale lines.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID, cascade bool) error {
	var entries, lines int64
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		if _, err := repos.ProductRepo().FindByIDForUpdate(ctx, productID); err != nil {
			return err
		}

		var err error
		if entries, err = repos.LedgerRepo().CountByProduct(ctx, productID); err != nil {
			return err
		}
		if lines, err = repos.DocumentRepo().CountItemsByProduct(ctx, productID); err != nil {
			return err
		}
		if (entries > 0 || lines > 0) && !cascade {
			return shared.NewReferentialConflict("product", productID, map[string]int64{
				"ledger_entries": entries,
				"sale_lines":     lines,
			})
		}

		if entries > 0 {
			if _, err := repos.LedgerRepo().DeleteByProduct(ctx, productID); err != nil {
				return err
			}
		}
		if lines > 0 {
			if _, err := repos.DocumentRepo().DetachProduct(ctx, productID); err != nil {
				return err
			}
		}
		return repos.ProductRepo().Delete(ctx, productID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted",
		zap.String("product_id", productID.String()),
		zap.Bool("cascade", cascade),
		zap.Int64("ledger_entries_deleted", entries),
		zap.Int64("sale_lines_detached", lines),
	)
	return nil
}
