package router

import (
	"github.com/jewelry/backend/internal/interfaces/http/handler"
)

// SaleDocumentRoutes exposes invoices, bills and exchange bills
func SaleDocumentRoutes(h *handler.SaleDocumentHandler) *DomainGroup {
	g := NewDomainGroup("sale-documents", "/sale-documents")
	g.POST("", h.Create)
	g.POST("/preview", h.Preview)
	g.GET("", h.List)
	g.GET("/number/:number", h.GetByNumber)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id/payment", h.UpdatePayment)
	g.DELETE("/:id", h.Delete)
	return g
}

// ProductRoutes exposes the catalogue and the per-product stock ledger
func ProductRoutes(h *handler.ProductHandler) *DomainGroup {
	g := NewDomainGroup("products", "/products")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/code/:code", h.GetByCode)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.POST("/:id/activate", h.Activate)
	g.POST("/:id/deactivate", h.Deactivate)
	g.DELETE("/:id", h.Delete)

	stock := g.Group("stock", "/:id/stock")
	stock.POST("/adjustments", h.AdjustStock)
	stock.GET("/ledger", h.ListLedger)
	stock.GET("/verify", h.VerifyLedger)
	return g
}

// CustomerRoutes exposes customer records
func CustomerRoutes(h *handler.CustomerHandler) *DomainGroup {
	g := NewDomainGroup("customers", "/customers")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}

// SystemRoutes exposes service metadata under the API prefix
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	g := NewDomainGroup("system", "/system")
	g.GET("/info", h.GetSystemInfo)
	return g
}
