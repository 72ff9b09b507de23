package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitienda/pos-api/internal/config"
	"github.com/mitienda/pos-api/internal/domain/entity"
	domainRepo "github.com/mitienda/pos-api/internal/domain/repository"
	"github.com/mitienda/pos-api/internal/presentation/http/handler"
	"github.com/mitienda/pos-api/internal/presentation/http/middleware"
	"github.com/mitienda/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Sale     *handler.SaleHandler
	Receipt  *handler.ReceiptHandler
	Export   *handler.ExportHandler
	Customer *handler.CustomerHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(entity.RoleAdmin)

	protected.GET("/profile", h.Auth.Me)
	protected.POST("/auth/register", adminOnly, h.Auth.Register)

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/code/:code", h.Product.GetByCode)
		products.GET("/:id", h.Product.Get)
		products.POST("", adminOnly, h.Product.Create)
		products.PUT("/:id", adminOnly, h.Product.Update)
		products.POST("/:id/restock", adminOnly, h.Product.Restock)
		products.DELETE("/:id", adminOnly, h.Product.Deactivate)
	}

	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/lines", h.Cart.Add)
		cart.PUT("/lines/:lineId", h.Cart.UpdateLine)
		cart.DELETE("/lines/:lineId", h.Cart.RemoveLine)
		cart.DELETE("", h.Cart.Clear)
	}

	sales := protected.Group("/sales")
	{
		// Commit moves stock; a duplicate POST must replay, never re-run.
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Commit)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", adminOnly, h.Sale.Cancel)
		sales.POST("/:id/return", adminOnly, h.Sale.Return)

		sales.GET("/:id/receipt", h.Receipt.GetText)
		sales.GET("/:id/receipt.pdf", h.Receipt.GetPDF)
		sales.POST("/:id/print", h.Receipt.Print)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", adminOnly, h.Customer.Delete)
	}

	exports := protected.Group("/exports", adminOnly)
	{
		exports.GET("/products", h.Export.Products)
		exports.GET("/sales", h.Export.Sales)
	}
}
