package database

import (
	"fmt"
	"log"

	"github.com/minhvu/roomledger-api/internal/config"
	"github.com/minhvu/roomledger-api/internal/domain/entity"
	"github.com/minhvu/roomledger-api/internal/domain/enum"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Needed so duplicate-key violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Room{},
		&entity.Tenant{},
		&entity.UtilityService{},
		&entity.Invoice{},
		&entity.Payment{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the utility service catalog and, when configured
// through environment variables, the initial admin account.
func SeedDefaultData(db *gorm.DB, billing *config.BillingConfig) error {
	log.Println("Seeding default data...")

	services := []entity.UtilityService{
		{Name: "Điện", Unit: "kWh", Price: billing.ElectricUnitPrice, Description: "Electricity per kWh"},
		{Name: "Nước", Unit: "m³", Price: billing.WaterUnitPrice, Description: "Water per cubic meter"},
		{Name: "Internet", Unit: "tháng", Price: 100000, Description: "Internet per month"},
		{Name: "Rác", Unit: "tháng", Price: 30000, Description: "Garbage collection per month"},
	}

	for i := range services {
		var existing entity.UtilityService
		if err := db.Where("name = ?", services[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&services[i]).Error; err != nil {
				log.Printf("Warning: failed to create utility service %s: %v", services[i].Name, err)
			}
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")
	adminUsername := viper.GetString("ADMIN_USERNAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			if adminName == "" {
				adminName = "Administrator"
			}
			if adminUsername == "" {
				adminUsername = "admin"
			}
			adminUser := entity.User{
				Username: adminUsername,
				FullName: adminName,
				Email:    adminEmail,
				Role:     enum.UserRoleAdmin,
			}
			if err := adminUser.SetPassword(adminPassword); err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else if err := db.Create(&adminUser).Error; err != nil {
				log.Printf("Warning: failed to create admin user: %v", err)
			} else {
				log.Printf("Admin user created: %s", adminEmail)
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
