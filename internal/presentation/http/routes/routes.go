package routes

import (
	"time"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/config"
	domainRepo "github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/handler"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/presentation/http/middleware"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Wizard  *handler.WizardHandler
	Client  *handler.ClientHandler
	Branch  *handler.BranchHandler
	Catalog *handler.CatalogHandler
	Order   *handler.OrderHandler
	Receipt *handler.ReceiptHandler
	Photo   *handler.PhotoHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          *zap.Logger
	Registry        *prometheus.Registry
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	if deps.Cfg.Metrics.Enabled {
		metrics := middleware.NewHTTPMetrics(deps.Registry)
		router.Use(metrics.Middleware())
		router.GET(deps.Cfg.Metrics.Path, gin.WrapH(
			promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
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
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerWizardRoutes(protected, h, deps)
	registerClientRoutes(protected, h)
	registerBranchRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerOrderRoutes(protected, h)
	registerPhotoRoutes(protected, h)
}

func registerWizardRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	wizard := protected.Group("/wizard/sessions")
	{
		wizard.POST("", h.Wizard.StartSession)
		wizard.GET("/:id", h.Wizard.GetSession)
		wizard.POST("/:id/next", h.Wizard.NavigateForward)
		wizard.POST("/:id/back", h.Wizard.NavigateBack)
		wizard.POST("/:id/reset", h.Wizard.ResetSession)

		wizard.PUT("/:id/client", h.Wizard.SelectClient)
		wizard.PUT("/:id/branch", h.Wizard.SelectBranch)
		wizard.PUT("/:id/params", h.Wizard.SetOrderParams)
		wizard.PUT("/:id/confirmation", h.Wizard.SetConfirmation)

		// Item sub-wizard
		wizard.POST("/:id/items", h.Wizard.StartItem)
		wizard.POST("/:id/items/:index/edit", h.Wizard.StartItemEdit)
		wizard.DELETE("/:id/items/:index", h.Wizard.RemoveItem)
		wizard.PUT("/:id/items/draft/basic-info", h.Wizard.SetItemBasicInfo)
		wizard.PUT("/:id/items/draft/properties", h.Wizard.SetItemProperties)
		wizard.PUT("/:id/items/draft/defects", h.Wizard.SetItemDefects)
		wizard.PUT("/:id/items/draft/pricing", h.Wizard.SetItemPricing)
		wizard.POST("/:id/items/draft/next", h.Wizard.ItemNavigateForward)
		wizard.POST("/:id/items/draft/back", h.Wizard.ItemNavigateBack)
		wizard.POST("/:id/items/draft/complete", h.Wizard.CompleteItem)
		wizard.DELETE("/:id/items/draft", h.Wizard.CancelItem)

		// Error panel
		wizard.GET("/:id/errors", h.Wizard.ListErrors)
		wizard.DELETE("/:id/errors", h.Wizard.ClearAllErrors)
		wizard.DELETE("/:id/errors/:errorId", h.Wizard.ClearError)
		wizard.POST("/:id/errors/retry", h.Wizard.RetryLastOperation)

		// Finalization
		wizard.GET("/:id/can-finalize", h.Order.CanFinalize)
		// Finalize uses idempotency middleware to prevent duplicate orders
		wizard.POST("/:id/finalize", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.FinalizeOrder)
	}
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.SearchClients)
		clients.POST("", h.Client.CreateClient)
		clients.GET("/:id", h.Client.GetClient)
		clients.PUT("/:id", h.Client.UpdateClient)
	}
}

func registerBranchRoutes(protected *gin.RouterGroup, h *Handlers) {
	branches := protected.Group("/branches")
	{
		branches.GET("", h.Branch.ListBranches)
		branches.GET("/:id", h.Branch.GetBranch)
		branches.POST("", middleware.RequireRole("admin"), h.Branch.CreateBranch)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("/catalog")
	{
		catalog.GET("/categories", h.Catalog.ListCategories)
		catalog.GET("/categories/:code/items", h.Catalog.ListItems)
		catalog.GET("/categories/:code/modifiers", h.Catalog.ListModifiers)
		catalog.GET("/discounts", h.Catalog.ListDiscountRules)
		catalog.GET("/expedite", h.Catalog.ListExpediteRules)
		catalog.POST("/import", middleware.RequireRole("admin"), h.Catalog.ImportPriceList)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.POST("/:id/cancel", h.Order.CancelOrder)
		orders.POST("/:id/refund", middleware.RequireRole("admin"), h.Order.MarkRefunded)

		// Receipt actions are independent of one another
		orders.GET("/:id/receipt", h.Receipt.GetReceipt)
		orders.GET("/:id/receipt/pdf", h.Receipt.DownloadPDF)
		orders.POST("/:id/receipt/email", h.Receipt.EmailReceipt)
		orders.POST("/:id/receipt/print", h.Receipt.PrintReceipt)
	}
}

func registerPhotoRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/items")
	{
		items.POST("/:itemId/photos", h.Photo.UploadPhotos)
		items.GET("/:itemId/photos", h.Photo.ListPhotos)
		items.GET("/:itemId/photos/:photoId", h.Photo.DownloadPhoto)
		items.DELETE("/:itemId/photos/:photoId", h.Photo.DeletePhoto)
	}
}
