package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/obrasync/estoque-api/internal/application/auth"
	"github.com/obrasync/estoque-api/internal/application/delivery"
	"github.com/obrasync/estoque-api/internal/application/inventory"
	"github.com/obrasync/estoque-api/internal/application/usecase"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *inventory.MovementUseCase
	DeliveryUC *delivery.UseCase
	JWTSecret  string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/verify-password", authHandler.VerifyPassword)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Produtos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/valor-total", productHandler.TotalValue)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movimentações de estoque
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Patch("/:id", movementHandler.Edit)
	movements.Delete("/:id", movementHandler.Delete)

	// Entregas logísticas
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)
	deliveries.Patch("/:id", deliveryHandler.Update)
	deliveries.Put("/:id", deliveryHandler.Reassign)
	deliveries.Delete("/:id", deliveryHandler.Delete)
}
