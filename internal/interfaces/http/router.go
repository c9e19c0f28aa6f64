package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/auth"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/pending"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger         *stock.Ledger
	Reconciliation *pending.Reconciliation
	CatalogUC      *usecase.CatalogUseCase
	ActivityUC     *usecase.ActivityUseCase
	AuthUC         *auth.AuthUseCase
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

	// Catálogos (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/productos", catalogHandler.Productos)
	protected.Get("/depositos", catalogHandler.Depositos)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Reconciliation)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Post("/", stockHandler.AddNew)
	stockGroup.Get("/producto/:id/filas", stockHandler.RowsForProducto)
	stockGroup.Get("/deposito/:id/filas", stockHandler.RowsForDeposito)
	stockGroup.Post("/:recid/agregar", stockHandler.AddQty)
	stockGroup.Post("/:recid/descargar", stockHandler.Descargar)
	stockGroup.Post("/:recid/mover", stockHandler.Mover)

	// Pendientes (protegido)
	pendGroup := protected.Group("/pendientes")
	pendingHandler := NewPendingHandler(deps.Reconciliation, deps.Ledger)
	pendGroup.Get("/", pendingHandler.List)
	pendGroup.Post("/:recid/restaurar", pendingHandler.Restaurar)
	pendGroup.Post("/:recid/descartar", pendingHandler.Descartar)

	// Actividad (protegido)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/actividad", activityHandler.Recientes)

	// Recarga completa de cachés (protegido)
	protected.Post("/refresh", stockHandler.Refresh)
}
