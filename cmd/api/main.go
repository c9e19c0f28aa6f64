package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/RealMSClassic/Tactica-Sheet/internal/application/auth"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/pending"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/stock"
	"github.com/RealMSClassic/Tactica-Sheet/internal/application/usecase"
	"github.com/RealMSClassic/Tactica-Sheet/internal/domain/repository"
	infraaudit "github.com/RealMSClassic/Tactica-Sheet/internal/infrastructure/audit"
	"github.com/RealMSClassic/Tactica-Sheet/internal/infrastructure/events"
	"github.com/RealMSClassic/Tactica-Sheet/internal/infrastructure/memory"
	"github.com/RealMSClassic/Tactica-Sheet/internal/infrastructure/postgres"
	httpRouter "github.com/RealMSClassic/Tactica-Sheet/internal/interfaces/http"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/config"
	"github.com/RealMSClassic/Tactica-Sheet/pkg/logger"
)

// repos agrupa el juego completo de repositorios del almacén activo.
type repos struct {
	Stock     repository.StockRepository
	Producto  repository.ProductoRepository
	Deposito  repository.DepositoRepository
	Pendiente repository.PendienteRepository
	Usuario   repository.UsuarioRepository
	Actividad repository.ActividadRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			Stock:     postgres.NewStockRepo(pool),
			Producto:  postgres.NewProductoRepo(pool),
			Deposito:  postgres.NewDepositoRepo(pool),
			Pendiente: postgres.NewPendienteRepo(pool),
			Usuario:   postgres.NewUsuarioRepo(pool),
			Actividad: postgres.NewActividadRepo(pool),
		}
	case "memory":
		r = repos{
			Stock:     memory.NewStockRepo(),
			Producto:  memory.NewProductoRepo(),
			Deposito:  memory.NewDepositoRepo(),
			Pendiente: memory.NewPendienteRepo(),
			Usuario:   memory.NewUsuarioRepo(),
			Actividad: memory.NewActividadRepo(),
		}
	}

	bus := events.NewBus()
	bus.Subscribe(stock.TopicStockChanged, func(topic string, payload map[string]any) {
		log.Debug().Str("topic", topic).Interface("payload", payload).Msg("evento de stock")
	})

	auditLog := infraaudit.NewStoreLogger(r.Actividad, log)

	ledger := stock.NewLedger(r.Stock, r.Producto, r.Deposito, r.Pendiente, auditLog, bus, log)
	reconciliation := pending.NewReconciliation(ledger, r.Pendiente, r.Producto, r.Deposito, auditLog, bus, log)

	if err := ledger.RefreshAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("carga inicial del almacén")
	}

	catalogUC := usecase.NewCatalogUseCase(r.Producto, r.Deposito)
	activityUC := usecase.NewActivityUseCase(r.Actividad)
	authUC := auth.NewAuthUseCase(r.Usuario, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:         ledger,
		Reconciliation: reconciliation,
		CatalogUC:      catalogUC,
		ActivityUC:     activityUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
