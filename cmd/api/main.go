package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/application/service"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/config"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/infrastructure/database"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/infrastructure/gateway"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/infrastructure/pricelist"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/infrastructure/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/handler"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/routes"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/email"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/logger"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/printer"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		appLogger.Warn("Failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	operatorRepo := repository.NewOperatorRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	discountRepo := repository.NewDiscountRuleRepository(db)
	expediteRepo := repository.NewExpediteRuleRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	sessionRepo := repository.NewWizardSessionRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromName:     cfg.SMTP.FromName,
		FromEmail:    cfg.SMTP.FromEmail,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		appLogger.Warn("Failed to initialize printer, falling back to null printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize the PDF renderer gateway
	receiptRenderer := gateway.NewReceiptRenderer(cfg.Receipt.RendererURL)

	// Initialize services
	authService := service.NewAuthService(operatorRepo, jwtManager)
	clientService := service.NewClientService(clientRepo)
	branchService := service.NewBranchService(branchRepo)
	catalogService := service.NewCatalogService(catalogRepo, discountRepo, expediteRepo)
	wizardService := service.NewWizardService(sessionRepo, clientRepo, branchRepo, catalogRepo, discountRepo, expediteRepo, appLogger)
	orderService := service.NewOrderService(orderRepo, sessionRepo, clientRepo, discountRepo, expediteRepo, appLogger)
	receiptService := service.NewReceiptService(orderRepo, receiptRenderer, emailService, thermalPrinter, cfg.Receipt.BusinessName, appLogger)
	photoService := service.NewPhotoService(photoRepo, cfg.Storage.Path, appLogger)
	errorCoordinator := service.NewErrorCoordinator(appLogger)

	// Price list importer
	importer := pricelist.NewImporter(catalogRepo, appLogger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Wizard:  handler.NewWizardHandler(wizardService, errorCoordinator),
		Client:  handler.NewClientHandler(clientService),
		Branch:  handler.NewBranchHandler(branchService),
		Catalog: handler.NewCatalogHandler(catalogService, importer),
		Order:   handler.NewOrderHandler(orderService, wizardService),
		Receipt: handler.NewReceiptHandler(receiptService),
		Photo:   handler.NewPhotoHandler(photoService),
	}

	// Prometheus registry with the standard process and Go collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          appLogger,
		Registry:        registry,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", zap.Error(err))
	}

	if err := receiptService.Close(); err != nil {
		appLogger.Warn("Failed to close receipt service", zap.Error(err))
	}

	appLogger.Info("Server stopped")
}
