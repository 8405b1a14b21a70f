package main

import (
	"log"

	"github.com/dealerdesk/dealerdesk-api/internal/application/service"
	"github.com/dealerdesk/dealerdesk-api/internal/config"
	"github.com/dealerdesk/dealerdesk-api/internal/infrastructure/database"
	"github.com/dealerdesk/dealerdesk-api/internal/infrastructure/repository"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/handler"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/routes"
	"github.com/dealerdesk/dealerdesk-api/internal/render"
	"github.com/dealerdesk/dealerdesk-api/pkg/oauth"
	"github.com/dealerdesk/dealerdesk-api/pkg/pdf"
	"github.com/dealerdesk/dealerdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
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

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize the invoice renderer and PDF pipeline
	invoiceRenderer, err := render.NewInvoiceRenderer()
	if err != nil {
		log.Fatalf("Failed to parse invoice template: %v", err)
	}
	pdfGenerator := pdf.NewGenerator(cfg.PDF.WkhtmltopdfPath)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	exportService := service.NewExportService(invoiceRepo, userRepo, invoiceRenderer, pdfGenerator)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService, googleOAuthService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Download: handler.NewDownloadHandler(exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
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
