package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/minhvu/roomledger-api/internal/application/service"
	"github.com/minhvu/roomledger-api/internal/config"
	"github.com/minhvu/roomledger-api/internal/infrastructure/database"
	"github.com/minhvu/roomledger-api/internal/infrastructure/repository"
	"github.com/minhvu/roomledger-api/internal/presentation/http/handler"
	"github.com/minhvu/roomledger-api/internal/presentation/http/routes"
	"github.com/minhvu/roomledger-api/pkg/clock"
	"github.com/minhvu/roomledger-api/pkg/utils"
)

func main() {
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.SeedDefaultData(db, &cfg.Billing); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	clk := clock.System()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	serviceRepo := repository.NewUtilityServiceRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTransactor(db)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	roomService := service.NewRoomService(roomRepo, tenantRepo, invoiceRepo)
	tenantService := service.NewTenantService(tenantRepo, roomRepo, txManager, clk)
	catalogService := service.NewCatalogService(serviceRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, paymentRepo, roomRepo, txManager, &cfg.Billing, clk)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo, txManager, clk)
	reportService := service.NewReportService(roomRepo, tenantRepo, invoiceRepo, paymentRepo, &cfg.Billing, clk)
	userService := service.NewUserService(userRepo)

	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Room:    handler.NewRoomHandler(roomService),
		Tenant:  handler.NewTenantHandler(tenantService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Payment: handler.NewPaymentHandler(paymentService),
		Report:  handler.NewReportHandler(reportService),
		User:    handler.NewUserHandler(userService),
	}

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
