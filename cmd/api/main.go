package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digitalstock/digital-stock-api/internal/application/auth"
	"github.com/digitalstock/digital-stock-api/internal/application/movement"
	"github.com/digitalstock/digital-stock-api/internal/application/usecase"
	"github.com/digitalstock/digital-stock-api/internal/infrastructure/mail"
	infrapdf "github.com/digitalstock/digital-stock-api/internal/infrastructure/pdf"
	"github.com/digitalstock/digital-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/digitalstock/digital-stock-api/internal/interfaces/http"
	"github.com/digitalstock/digital-stock-api/pkg/config"
	"github.com/digitalstock/digital-stock-api/pkg/logger"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Comprobantes por correo: deshabilitado si no hay credenciales SMTP.
	var notifier movement.Notifier = movement.NopNotifier{}
	var receiptNotifier *movement.ReceiptNotifier
	if cfg.SMTP.User != "" {
		sender := mail.NewGomailSender(cfg.SMTP, cfg.App.Env == "production")
		receiptNotifier = movement.NewReceiptNotifier(
			infrapdf.NewReceiptGenerator(), sender, log,
			time.Duration(cfg.SMTP.TimeoutS)*time.Second,
		)
		notifier = receiptNotifier
	} else {
		log.Warn().Msg("SMTP sin configurar: comprobantes por correo deshabilitados")
	}

	movementUC := movement.NewCreateMovementUseCase(
		txRunner, movementRepo, clientRepo, providerRepo, auditRepo, notifier, log,
	)
	productUC := usecase.NewProductUseCase(productRepo)
	clientUC := usecase.NewPartyUseCase(clientRepo)
	providerUC := usecase.NewPartyUseCase(providerRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo, log)
	reportUC := usecase.NewReportUseCase(reportRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Digital Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		ClientUC:   clientUC,
		ProviderUC: providerUC,
		MovementUC: movementUC,
		AuditUC:    auditUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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

	// Dejar terminar los comprobantes en vuelo antes de salir.
	if receiptNotifier != nil {
		receiptNotifier.Wait()
	}

	log.Info().Msg("aplicación detenida")
}
