package storage

import (
	"os"

	"porchlite-server/models"
	"porchlite-server/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			logger.Log.Warn("Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		logger.Log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		logger.Log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.TenantUser{},
		&models.Reservation{},
		&models.ReservationCompanion{},
		&models.ReservationApproval{},
		&models.Task{},
		&models.InventoryItem{},
		&models.DefaultStaple{},
		&models.CustomStaple{},
		&models.Recommendation{},
		&models.GuestBookEntry{},
		&models.GuestBookPhoto{},
		&models.WalkthroughSection{},
		&models.WalkthroughStep{},
		&models.Notification{},
		&models.AuditLog{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	seedDefaultStaples(db)
	return db
}

// seedDefaultStaples inserts the system staple catalog on first boot.
func seedDefaultStaples(db *gorm.DB) {
	var count int64
	db.Model(&models.DefaultStaple{}).Count(&count)
	if count > 0 {
		return
	}

	staples := []models.DefaultStaple{
		{Name: "Toilet Paper", Category: "bathroom", DefaultQuantity: 12},
		{Name: "Paper Towels", Category: "kitchen", DefaultQuantity: 6},
		{Name: "Dish Soap", Category: "kitchen", DefaultQuantity: 1},
		{Name: "Dishwasher Pods", Category: "kitchen", DefaultQuantity: 20},
		{Name: "Laundry Detergent", Category: "laundry", DefaultQuantity: 1},
		{Name: "Trash Bags", Category: "kitchen", DefaultQuantity: 30},
		{Name: "Hand Soap", Category: "bathroom", DefaultQuantity: 3},
		{Name: "Coffee", Category: "pantry", DefaultQuantity: 1},
		{Name: "Salt", Category: "pantry", DefaultQuantity: 1},
		{Name: "Olive Oil", Category: "pantry", DefaultQuantity: 1},
		{Name: "All-Purpose Cleaner", Category: "cleaning", DefaultQuantity: 1},
		{Name: "Sponges", Category: "cleaning", DefaultQuantity: 4},
	}
	if err := db.Create(&staples).Error; err != nil {
		logger.Log.WithError(err).Warn("failed to seed default staples")
	}
}
