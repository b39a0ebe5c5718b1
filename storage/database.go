package storage

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/onabhani/Nozule-Suite-sub000/models"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.RatePlan{},
		&models.SeasonalRate{},
		&models.DowRule{},
		&models.OccupancyRule{},
		&models.EventOverride{},
		&models.Tax{},
		&models.Currency{},
		&models.ExchangeRateHistory{},
		&models.PromoCode{},
		&models.PromoRedemption{},
		&models.LoyaltyTier{},
		&models.LoyaltyMember{},
		&models.LoyaltyReward{},
		&models.LoyaltyTransaction{},
		&models.Folio{},
		&models.FolioLineItem{},
		&models.AuditLog{},
	)

	// Ledger rows are append-only; one partial unique index keeps a single
	// default currency even under concurrent flag swaps.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_currencies_single_default ON currencies (is_default) WHERE is_default AND deleted_at IS NULL;")
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
