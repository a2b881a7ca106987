package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/retail-backoffice/internal/application/finance"
	"github.com/tu-usuario/retail-backoffice/internal/application/posting"
	"github.com/tu-usuario/retail-backoffice/internal/application/stock"
	"github.com/tu-usuario/retail-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-backoffice/internal/interfaces/http"
	"github.com/tu-usuario/retail-backoffice/pkg/config"
	"github.com/tu-usuario/retail-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas fuera de transacción)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	historyRepo := postgres.NewProductHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	purchaseUC := posting.NewPurchaseUseCase(txRunner, purchaseRepo, paymentRepo, nil)
	saleUC := posting.NewSaleUseCase(txRunner, saleRepo, paymentRepo, nil)
	stockUC := stock.NewUseCase(movementRepo, productRepo, historyRepo, nil)
	ledgerUC := finance.NewLedgerUseCase(ledgerRepo, employeeRepo, nil)
	summaryUC := finance.NewSummaryUseCase(ledgerRepo)

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
		PurchaseUC: purchaseUC,
		SaleUC:     saleUC,
		StockUC:    stockUC,
		LedgerUC:   ledgerUC,
		SummaryUC:  summaryUC,
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
