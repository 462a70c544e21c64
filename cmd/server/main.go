package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	catalogapp "github.com/retailorders/backend/internal/application/catalog"
	identityapp "github.com/retailorders/backend/internal/application/identity"
	importapp "github.com/retailorders/backend/internal/application/import"
	orderingapp "github.com/retailorders/backend/internal/application/ordering"
	"github.com/retailorders/backend/internal/infrastructure/auth"
	"github.com/retailorders/backend/internal/infrastructure/config"
	"github.com/retailorders/backend/internal/infrastructure/event"
	"github.com/retailorders/backend/internal/infrastructure/logger"
	"github.com/retailorders/backend/internal/infrastructure/notification"
	"github.com/retailorders/backend/internal/infrastructure/persistence"
	"github.com/retailorders/backend/internal/infrastructure/pricelist"
	"github.com/retailorders/backend/internal/interfaces/http/handler"
	"github.com/retailorders/backend/internal/interfaces/http/middleware"
	"github.com/retailorders/backend/internal/interfaces/http/router"
)

//	@title			Retail Orders API
//	@version		1.0
//	@description	Order management backend: shops publish YAML price lists, buyers assemble baskets and place orders.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting retail orders backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token revocation lives in Redis; a single-node deployment can run
	// without it on the in-memory fallback
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	tokenRepo := persistence.NewGormConfirmationTokenRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	catalogImporter := persistence.NewGormCatalogImporter(db.DB)

	// Event bus and notification handlers
	eventBus := event.NewInMemoryEventBus(log)
	sender := notification.NewSenderFromConfig(cfg.SMTP, log)
	eventBus.Subscribe(notification.NewRegistrationHandler(tokenRepo, sender, log))
	eventBus.Subscribe(notification.NewPasswordResetHandler(sender, log))
	eventBus.Subscribe(notification.NewOrderPlacedHandler(userRepo, shopRepo, sender, log))

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Price list import pipeline
	fetcher := pricelist.NewHTTPFetcher(cfg.Import)
	var archiver pricelist.Archiver
	if cfg.Import.ArchiveEnabled {
		s3Archiver, err := pricelist.NewS3Archiver(context.Background(), cfg.Import)
		if err != nil {
			log.Fatal("Failed to initialize price list archiver", zap.Error(err))
		}
		archiver = s3Archiver
	} else {
		archiver = pricelist.NewNopArchiver(log)
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, tokenRepo, jwtService, blacklist, eventBus, log)
	userService := identityapp.NewUserService(userRepo, log)
	contactService := identityapp.NewContactService(contactRepo, log)
	catalogService := catalogapp.NewCatalogService(categoryRepo, shopRepo, listingRepo, log)
	partnerService := catalogapp.NewPartnerService(shopRepo, log)
	importService := importapp.NewPriceListImportService(fetcher, catalogImporter, archiver, eventBus, log)
	basketService := orderingapp.NewBasketService(orderRepo, listingRepo, log)
	orderService := orderingapp.NewOrderService(orderRepo, contactRepo, shopRepo, eventBus, log)

	middleware.SetupValidator()

	engine := router.New(router.Dependencies{
		Config:    cfg,
		Logger:    log,
		JWT:       jwtService,
		Blacklist: blacklist,
		Handlers: router.Handlers{
			System:  handler.NewSystemHandler(version),
			Auth:    handler.NewAuthHandler(authService, jwtService),
			User:    handler.NewUserHandler(userService),
			Contact: handler.NewContactHandler(contactService),
			Catalog: handler.NewCatalogHandler(catalogService),
			Partner: handler.NewPartnerHandler(importService, partnerService, orderService),
			Basket:  handler.NewBasketHandler(basketService),
			Order:   handler.NewOrderHandler(orderService),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
