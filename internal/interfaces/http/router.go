package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/transaction"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC       *ledger.StockLedgerUseCase
	TransactionUC *transaction.TransactionUseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ReportUC      *usecase.ReportUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido; crear/editar solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole("admin"), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole("admin"), warehouseHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Stocks: ledger de existencias (protegido)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC, deps.ReportUC)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Post("/:id/put", stockHandler.Put)
	stocks.Post("/:id/take", stockHandler.Take)
	stocks.Post("/:id/move", stockHandler.MoveTo)
	stocks.Post("/:id/rollback", stockHandler.Rollback)
	stocks.Get("/:id/movements", stockHandler.ListMovements)
	stocks.Get("/:id/movements/report", stockHandler.MovementReport)

	// Transactions: máquina de estados (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Get("/:id/history", transactionHandler.ListHistory)
	transactions.Post("/:id/checkout", transactionHandler.Checkout)
	transactions.Post("/:id/sold", transactionHandler.Sold)
	transactions.Post("/:id/returned", transactionHandler.Returned)
	transactions.Post("/:id/reserved", transactionHandler.Reserved)
	transactions.Post("/:id/back-order", transactionHandler.BackOrder)
	transactions.Post("/:id/fill-back-order", transactionHandler.FillBackOrder)
	transactions.Post("/:id/ordered", transactionHandler.Ordered)
	transactions.Post("/:id/received", transactionHandler.Received)
	transactions.Post("/:id/hold", transactionHandler.Hold)
	transactions.Post("/:id/release", transactionHandler.Release)
	transactions.Post("/:id/remove", transactionHandler.Remove)
	transactions.Post("/:id/cancel", transactionHandler.Cancel)
}
