package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Barcode-stock-api/internal/application/ledger"
	"github.com/jhoicas/Barcode-stock-api/internal/application/reports"
	"github.com/jhoicas/Barcode-stock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	MovementUC  *usecase.MovementUseCase
	StockLedger *ledger.StockLedgerUseCase
	DashboardUC *reports.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categorías
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/barcode/:barcode", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Ledger de stock
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockLedger, deps.MovementUC)
	stock.Post("/set", stockHandler.SetStock)
	stock.Post("/adjust", stockHandler.AdjustStock)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/movements/:product_id", stockHandler.ListProductMovements)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)
}
