package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-backoffice/internal/application/finance"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PurchaseUC *posting.PurchaseUseCase
	SaleUC     *posting.SaleUseCase
	StockUC    *stock.UseCase
	LedgerUC   *finance.LedgerUseCase
	SummaryUC  *finance.SummaryUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validate := validator.New()
	api := app.Group("/api")

	// Compras
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, validate)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Delete("/:id", purchaseHandler.Delete)

	// Ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, validate)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	// Stock (lado de lectura + ajustes)
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, validate)
	stockGroup.Get("/", stockHandler.Overview)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/:productId", stockHandler.Balance)
	stockGroup.Get("/:productId/history", stockHandler.History)
	stockGroup.Post("/:productId/adjust", stockHandler.Adjust)

	// Finanzas (asientos manuales, vencimientos y resúmenes)
	financeGroup := api.Group("/finance")
	financeHandler := NewFinanceHandler(deps.LedgerUC, deps.SummaryUC, validate)
	financeGroup.Post("/entries", financeHandler.CreateEntry)
	financeGroup.Get("/entries", financeHandler.ListEntries)
	financeGroup.Get("/entries/upcoming", financeHandler.Upcoming)
	financeGroup.Get("/entries/:id", financeHandler.GetEntry)
	financeGroup.Put("/entries/:id", financeHandler.UpdateEntry)
	financeGroup.Delete("/entries/:id", financeHandler.DeleteEntry)
	financeGroup.Get("/summary", financeHandler.Summary)
}
