package database

import (
	"fmt"
	"log"

	"github.com/fedotiuk-dm/aksi-wizard-api/internal/config"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
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
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Reference data
		&entity.Branch{},
		&entity.Operator{},
		&entity.ServiceCategory{},
		&entity.CatalogItem{},
		&entity.PriceModifier{},
		&entity.DiscountRule{},
		&entity.ExpediteRule{},

		// Clients and orders
		&entity.Client{},
		&entity.Order{},
		&entity.OrderItem{},
		&entity.ItemPhoto{},

		// Wizard state
		&entity.WizardSessionRecord{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the reference data the wizard depends on: discount
// and expedite rules, service categories with a few catalog items, price
// modifiers, a main branch and the default operator account.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	seedDiscountRules(db)
	seedExpediteRules(db)
	seedCatalog(db)
	seedBranch(db)
	seedOperator(db)

	log.Println("Default data seeding completed")
	return nil
}

func seedDiscountRules(db *gorm.DB) {
	rules := []entity.DiscountRule{
		{
			Type:       enum.DiscountEvercard,
			Name:       "Evercard",
			Percentage: 10,
			ExcludedGroups: []enum.CategoryGroup{
				enum.GroupIroning, enum.GroupLaundry, enum.GroupDyeing,
			},
			Priority: 1,
		},
		{
			Type:       enum.DiscountSocialMedia,
			Name:       "Соцмережі",
			Percentage: 5,
			ExcludedGroups: []enum.CategoryGroup{
				enum.GroupIroning, enum.GroupLaundry, enum.GroupDyeing,
			},
			Priority: 2,
		},
		{
			Type:       enum.DiscountMilitary,
			Name:       "Військовим (ЗСУ)",
			Percentage: 10,
			ExcludedGroups: []enum.CategoryGroup{
				enum.GroupIroning, enum.GroupLaundry, enum.GroupDyeing,
			},
			Priority: 3,
		},
	}

	for i := range rules {
		rules[i].Active = true
		var existing entity.DiscountRule
		if err := db.Where("type = ?", rules[i].Type).First(&existing).Error; err != nil {
			if err := db.Create(&rules[i]).Error; err != nil {
				log.Printf("Warning: failed to create discount rule %s: %v", rules[i].Type, err)
			}
		}
	}
}

func seedExpediteRules(db *gorm.DB) {
	rules := []entity.ExpediteRule{
		{Type: enum.ExpediteStandard, Name: "Звичайне виконання", Percentage: 0, Hours: 0},
		{Type: enum.ExpediteExpress48, Name: "Терміново 48 годин", Percentage: 50, Hours: 48},
		{Type: enum.ExpediteExpress24, Name: "Терміново 24 години", Percentage: 100, Hours: 24},
	}

	for i := range rules {
		rules[i].Active = true
		var existing entity.ExpediteRule
		if err := db.Where("type = ?", rules[i].Type).First(&existing).Error; err != nil {
			if err := db.Create(&rules[i]).Error; err != nil {
				log.Printf("Warning: failed to create expedite rule %s: %v", rules[i].Type, err)
			}
		}
	}
}

func seedCatalog(db *gorm.DB) {
	categories := []entity.ServiceCategory{
		{Code: "CLOTHING", Name: "Одяг", Group: enum.GroupTextile, SortOrder: 1},
		{Code: "LEATHER", Name: "Шкіряні вироби", Group: enum.GroupLeather, SortOrder: 2},
		{Code: "FUR", Name: "Хутро", Group: enum.GroupLeather, SortOrder: 3},
		{Code: "TEXTILE_HOME", Name: "Домашній текстиль", Group: enum.GroupTextile, SortOrder: 4},
		{Code: "LAUNDRY", Name: "Прання", Group: enum.GroupLaundry, SortOrder: 5},
		{Code: "IRONING", Name: "Прасування", Group: enum.GroupIroning, SortOrder: 6},
		{Code: "DYEING", Name: "Фарбування", Group: enum.GroupDyeing, SortOrder: 7},
	}

	for i := range categories {
		categories[i].Active = true
		var existing entity.ServiceCategory
		if err := db.Where("code = ?", categories[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&categories[i]).Error; err != nil {
				log.Printf("Warning: failed to create category %s: %v", categories[i].Code, err)
			}
		}
	}

	modifiers := []entity.PriceModifier{
		{Code: "CHILD_ITEM", Name: "Дитячі речі", Type: enum.ModifierPercentage, Percent: -30, Group: enum.GroupGeneral},
		{Code: "HEAVY_SOILING", Name: "Сильне забруднення", Type: enum.ModifierPercentage, Percent: 20, Group: enum.GroupGeneral},
		{Code: "MANUAL_CLEANING", Name: "Ручна чистка", Type: enum.ModifierPercentage, Percent: 30, Group: enum.GroupTextile},
		{Code: "FUR_COLLAR", Name: "Хутряний комір", Type: enum.ModifierFixed, Amount: 15000, Group: enum.GroupTextile},
		{Code: "WATER_REPELLENT", Name: "Водовідштовхувальне покриття", Type: enum.ModifierPercentage, Percent: 25, Group: enum.GroupLeather},
		{Code: "LEATHER_DYE", Name: "Підфарбування шкіри", Type: enum.ModifierFixed, Amount: 20000, Group: enum.GroupLeather},
	}

	for i := range modifiers {
		modifiers[i].Active = true
		var existing entity.PriceModifier
		if err := db.Where("code = ?", modifiers[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&modifiers[i]).Error; err != nil {
				log.Printf("Warning: failed to create modifier %s: %v", modifiers[i].Code, err)
			}
		}
	}
}

func seedBranch(db *gorm.DB) {
	var existing entity.Branch
	if err := db.Where("name = ?", "Головна філія").First(&existing).Error; err != nil {
		branch := entity.Branch{
			Name:    "Головна філія",
			Address: "вул. Центральна, 1",
			Active:  true,
		}
		if err := db.Create(&branch).Error; err != nil {
			log.Printf("Warning: failed to create default branch: %v", err)
		}
	}
}

// seedOperator creates the default operator account when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured via environment variables.
func seedOperator(db *gorm.DB) {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		return
	}

	var existing entity.Operator
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Printf("Default operator already exists: %s", adminEmail)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash operator password: %v", err)
		return
	}

	operator := entity.Operator{
		FirstName: "Адміністратор",
		LastName:  "AKSI",
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      "admin",
		Active:    true,
	}
	if err := db.Create(&operator).Error; err != nil {
		log.Printf("Warning: failed to create default operator: %v", err)
	} else {
		log.Printf("Default operator created: %s", adminEmail)
	}
}
