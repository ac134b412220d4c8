package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/fuel-dashboard-api/internal/application/auth"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/reporting"
	"github.com/jhoicas/fuel-dashboard-api/internal/application/usecase"
	infracache "github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fuel-dashboard-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/fuel-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/fuel-dashboard-api/pkg/config"
	"github.com/jhoicas/fuel-dashboard-api/pkg/logger"
)

const version = "1.0.0"

// dashboardCache lo que main necesita de la caché: lectura/escritura e invalidación.
type dashboardCache interface {
	reporting.DashboardCache
	usecase.DashboardInvalidator
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
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
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

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	stationRepo := postgres.NewStationRepository(pool)
	fuelTypeRepo := postgres.NewFuelTypeRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché del dashboard: Redis si REDIS_ADDR está definido; si Redis no responde
	// al arrancar se sigue sin caché.
	var cache dashboardCache = infracache.NoopDashboardCache{}
	if cfg.Redis.Enabled() {
		redisCache := infracache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin caché")
			_ = redisCache.Close()
		} else {
			defer redisCache.Close()
			cache = redisCache
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.DashboardTTL()).Msg("caché de dashboard activa")
		}
	}

	docs, err := storage.NewLocalDocumentStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}

	scope := usecase.NewScopeResolver(stationRepo)
	attributor := reporting.NewCostAttributor(reportRepo)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	stationUC := usecase.NewStationUseCase(stationRepo, cache)
	fuelTypeUC := usecase.NewFuelTypeUseCase(fuelTypeRepo, cache)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, fuelTypeRepo, scope, docs, cache)
	saleUC := usecase.NewSaleUseCase(saleRepo, fuelTypeRepo, scope, attributor, cache)
	dashboardUC := reporting.NewDashboardUseCase(reportRepo, fuelTypeRepo, orgRepo,
		reporting.WithCache(cache, cfg.Redis.DashboardTTL()),
		reporting.WithPDFGenerator(infrapdf.NewMarotoPDFGenerator()),
		reporting.WithLogger(log),
	)

	maxUpload := int64(cfg.Storage.MaxUploadMB) * 1024 * 1024
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(maxUpload) + 1024*1024,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fuel Dashboard API",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"name": cfg.App.Name, "version": version, "docs": "/docs"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		StationUC:      stationUC,
		FuelTypeUC:     fuelTypeUC,
		InvoiceUC:      invoiceUC,
		SaleUC:         saleUC,
		DashboardUC:    dashboardUC,
		Scope:          scope,
		JWTSecret:      cfg.JWT.Secret,
		MaxUploadBytes: maxUpload,
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
