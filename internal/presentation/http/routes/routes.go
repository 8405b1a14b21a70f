package routes

import (
	"time"

	"github.com/dealerdesk/dealerdesk-api/internal/config"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/handler"
	"github.com/dealerdesk/dealerdesk-api/internal/presentation/http/middleware"
	"github.com/dealerdesk/dealerdesk-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Invoice  *handler.InvoiceHandler
	Download *handler.DownloadHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	registerLegacyInvoiceRoutes(router, h, deps)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.BearerAuth(deps.JWTManager))

		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/profile", h.Auth.GetProfile)
		protected.PUT("/profile", h.Auth.UpdateProfile)
		protected.PUT("/profile/password", h.Auth.ChangePassword)
	}

	return router
}

// registerLegacyInvoiceRoutes wires the compatibility surface consumed by the
// deployed frontend. Every method goes through the same entry point so that
// unsupported methods get the tagged envelope rather than a router 404/405,
// and token verification runs before anything else, including on methods
// the endpoint rejects.
func registerLegacyInvoiceRoutes(router *gin.Engine, h *Handlers, deps *Deps) {
	rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// CRUD reads the token from the auth-token header.
	router.Any("/api/invoice",
		middleware.LegacyTokenAuth(deps.JWTManager, middleware.FromHeader("auth-token")),
		rateLimiter.Middleware(),
		h.Invoice.Handle,
	)

	// Download reads it from the auth-token cookie: the frontend opens the
	// PDF as a plain link and cannot set headers there.
	router.Any("/api/invoice/download/application",
		middleware.LegacyTokenAuth(deps.JWTManager, middleware.FromCookie("auth-token")),
		rateLimiter.Middleware(),
		h.Download.Application,
	)
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}
