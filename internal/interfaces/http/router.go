package http

import (
	"github.com/digitalstock/digital-stock-api/internal/application/auth"
	"github.com/digitalstock/digital-stock-api/internal/application/movement"
	"github.com/digitalstock/digital-stock-api/internal/application/usecase"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	ClientUC   *usecase.PartyUseCase
	ProviderUC *usecase.PartyUseCase
	MovementUC *movement.CreateMovementUseCase
	AuditUC    *usecase.AuditUseCase
	ReportUC   *usecase.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.AuditUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.GetByCode)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Deactivate)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Deactivate)

	// Providers
	providers := protected.Group("/providers")
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providers.Post("/", providerHandler.Create)
	providers.Get("/", providerHandler.List)
	providers.Get("/:id", providerHandler.GetByID)
	providers.Put("/:id", providerHandler.Update)
	providers.Delete("/:id", providerHandler.Deactivate)

	// Purchases (entradas)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.MovementUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/count", purchaseHandler.Count)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Sales (salidas)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.MovementUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/count", saleHandler.Count)
	sales.Get("/:id", saleHandler.GetByID)

	// Dashboard y reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/dashboard", reportHandler.Dashboard)
	protected.Get("/reports/monthly", reportHandler.MonthlyTotals)

	// Administración: usuarios y bitácora (solo admin)
	admin := protected.Group("/", RequireAdmin())
	admin.Post("/users", authHandler.Register)
	admin.Get("/users", authHandler.ListUsers)
	admin.Put("/users/:id", authHandler.UpdateUser)
	admin.Delete("/users/:id", authHandler.DeactivateUser)

	auditHandler := NewAuditHandler(deps.AuditUC)
	admin.Get("/audit", auditHandler.List)
	admin.Get("/audit/actions", auditHandler.Actions)
}
