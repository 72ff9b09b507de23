package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/mitienda/pos-api/internal/application/service"
	"github.com/mitienda/pos-api/internal/config"
	"github.com/mitienda/pos-api/internal/domain/entity"
	"github.com/mitienda/pos-api/internal/infrastructure/database"
	"github.com/mitienda/pos-api/internal/infrastructure/repository"
	"github.com/mitienda/pos-api/internal/presentation/http/handler"
	"github.com/mitienda/pos-api/internal/presentation/http/routes"
	"github.com/mitienda/pos-api/pkg/oauth"
	"github.com/mitienda/pos-api/pkg/printer"
	"github.com/mitienda/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the initial admin user
	if err := database.SeedDefaultData(db, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	pricingService := service.NewPricingService()
	productService := service.NewProductService(productRepo, pricingService)
	cartService := service.NewCartService(service.NewCartStore(), productRepo)
	saleService := service.NewSaleService(productRepo, saleRepo, cartService)
	receiptService := service.NewReceiptService(entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
		TaxID:     cfg.Store.TaxID,
	}, thermalPrinter, cfg.Printer.Width)
	exportService := service.NewExportService(productRepo, saleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Sale:     handler.NewSaleHandler(saleService),
		Receipt:  handler.NewReceiptHandler(saleService, receiptService),
		Export:   handler.NewExportHandler(exportService),
		Customer: handler.NewCustomerHandler(customerRepo),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
