package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/medstock-api/internal/application/auth"
	"github.com/jhoicas/medstock-api/internal/application/stock"
	"github.com/jhoicas/medstock-api/internal/application/usecase"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	LocationUC     *usecase.LocationUseCase
	ProductUC      *usecase.ProductUseCase
	AvailabilityUC *stock.AvailabilityUseCase
	InventoryUC    *stock.InventoryUseCase
	TransferUC     *stock.TransferUseCase
	RequestUC      *stock.RequestUseCase
	VerificationUC *stock.VerificationUseCase
	JWTSecret      string
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
	adminOnly := RequireRole(entity.RoleAdmin)

	// Locations (protegido; escritura solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", adminOnly, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", adminOnly, locationHandler.Update)
	locations.Patch("/:id/deactivate", adminOnly, locationHandler.Deactivate)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)

	// Stock: disponibilidad e inventario (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.AvailabilityUC, deps.InventoryUC)
	stockGroup.Get("/availability", stockHandler.CheckAvailability)
	stockGroup.Get("/inventory", stockHandler.ListInventory)

	// Transferencias: ejecución, historial, verificación y rollback.
	transfers := stockGroup.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.VerificationUC, deps.InventoryUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/pending-verification", adminOnly, transferHandler.ListPending)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/slip", transferHandler.Slip)
	transfers.Post("/:id/verify", adminOnly, transferHandler.Verify)
	transfers.Delete("/:id", adminOnly, transferHandler.Delete)

	// Solicitudes de transferencia: creación y revisión.
	requests := stockGroup.Group("/transfer-requests")
	requestHandler := NewRequestHandler(deps.RequestUC)
	requests.Post("/", requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Put("/:id/review", adminOnly, requestHandler.Review)
}
