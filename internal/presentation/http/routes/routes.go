package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhvu/roomledger-api/internal/config"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	domainRepo "github.com/minhvu/roomledger-api/internal/domain/repository"
	"github.com/minhvu/roomledger-api/internal/presentation/http/handler"
	"github.com/minhvu/roomledger-api/internal/presentation/http/middleware"
	"github.com/minhvu/roomledger-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Room    *handler.RoomHandler
	Tenant  *handler.TenantHandler
	Catalog *handler.CatalogHandler
	Invoice *handler.InvoiceHandler
	Payment *handler.PaymentHandler
	Report  *handler.ReportHandler
	User    *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

var (
	staffRoles = []string{string(enum.UserRoleAdmin), string(enum.UserRoleManager)}
	adminRole  = []string{string(enum.UserRoleAdmin)}
)

// Setup creates the Gin router and registers all routes. Viewers can read
// everything; writes need the manager role and deletes or user management
// need admin.
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

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	registerRoomRoutes(protected, h)
	registerTenantRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerInvoiceRoutes(protected, h, deps)
	registerPaymentRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerRoomRoutes(protected *gin.RouterGroup, h *Handlers) {
	rooms := protected.Group("/rooms")
	{
		rooms.GET("", h.Room.List)
		rooms.GET("/statistics", h.Room.Statistics)
		rooms.GET("/:id", h.Room.Get)
		rooms.POST("", middleware.RequireRole(staffRoles...), h.Room.Create)
		rooms.PUT("/:id", middleware.RequireRole(staffRoles...), h.Room.Update)
		rooms.DELETE("/:id", middleware.RequireRole(adminRole...), h.Room.Delete)
	}
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.List)
		tenants.GET("/statistics", h.Tenant.Statistics)
		tenants.GET("/:id", h.Tenant.Get)
		tenants.POST("", middleware.RequireRole(staffRoles...), h.Tenant.Create)
		tenants.PUT("/:id", middleware.RequireRole(staffRoles...), h.Tenant.Update)
		tenants.POST("/:id/checkout", middleware.RequireRole(staffRoles...), h.Tenant.Checkout)
		tenants.DELETE("/:id", middleware.RequireRole(adminRole...), h.Tenant.Delete)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/services")
	{
		services.GET("", h.Catalog.List)
		services.GET("/:id", h.Catalog.Get)
		services.POST("", middleware.RequireRole(staffRoles...), h.Catalog.Create)
		services.PUT("/:id", middleware.RequireRole(staffRoles...), h.Catalog.Update)
		services.DELETE("/:id", middleware.RequireRole(adminRole...), h.Catalog.Delete)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/overdue", h.Invoice.ListOverdue)
		invoices.GET("/statistics", h.Invoice.Statistics)
		invoices.GET("/missing-rooms", h.Invoice.RoomsWithoutInvoice)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("", middleware.RequireRole(staffRoles...), h.Invoice.Create)
		invoices.POST("/bulk", middleware.RequireRole(staffRoles...), h.Invoice.CreateBulk)
		invoices.PUT("/:id", middleware.RequireRole(staffRoles...), h.Invoice.Update)
		invoices.DELETE("/:id", middleware.RequireRole(adminRole...), h.Invoice.Delete)

		// Payment recording replays cached responses on retried requests
		// carrying the same Idempotency-Key.
		invoices.GET("/:id/payments", h.Payment.ListByInvoice)
		invoices.POST("/:id/payments",
			middleware.RequireRole(staffRoles...),
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.Payment.Record)
	}
}

func registerPaymentRoutes(protected *gin.RouterGroup, h *Handlers) {
	payments := protected.Group("/payments")
	{
		payments.GET("/statistics", h.Payment.Statistics)
		payments.GET("/:id", h.Payment.Get)
		payments.PUT("/:id", middleware.RequireRole(staffRoles...), h.Payment.Update)
		payments.DELETE("/:id", middleware.RequireRole(adminRole...), h.Payment.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/monthly", h.Report.Monthly)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(adminRole...))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
