package database

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"aurum/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, pass, name, port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db
	log.Println("✅ Connected to database")

	autoMigrateEnv := os.Getenv("DB_AUTO_MIGRATE")
	autoMigrate, err := strconv.ParseBool(autoMigrateEnv)
	if err != nil {
		log.Printf("⚠️  Invalid value for DB_AUTO_MIGRATE: %s\n", autoMigrateEnv)
	}

	if autoMigrate {
		log.Println("🟡 Starting auto-migration...")

		if err := DB.AutoMigrate(
			&models.User{},
			&models.Item{},
			&models.InventoryEntry{},
			&models.CaseItem{},
			&models.GameSetting{},
			&models.Contest{},
			&models.ContestTicket{},
			&models.GameSession{},
		); err != nil {
			log.Fatal("❌ Failed to auto-migrate database:", err)
		}

		log.Println("✅ Auto migration completed")
		Seed()
	}
}

// Seed inserts the default item catalog and game settings. Existing rows
// are left untouched so admin edits survive restarts.
func Seed() {
	items := []models.Item{
		{Model: gorm.Model{ID: 1}, Name: "Cigar", ImageSrc: "images/item.png", Value: 3170},
		{Model: gorm.Model{ID: 2}, Name: "Bear", ImageSrc: "images/item1.png", Value: 440},
		{Model: gorm.Model{ID: 3}, Name: "Sigmaboy", ImageSrc: "images/case.png", Value: 50},
		{Model: gorm.Model{ID: 4}, Name: "Lemon", ImageSrc: "images/slot_lemon.png", Value: 100},
		{Model: gorm.Model{ID: 5}, Name: "Cherry", ImageSrc: "images/slot_cherry.png", Value: 200},
		{Model: gorm.Model{ID: 6}, Name: "Seven", ImageSrc: "images/slot_7.png", Value: 777},
	}
	for _, item := range items {
		var existing models.Item
		if err := DB.First(&existing, item.ID).Error; err == nil {
			continue
		}
		if err := DB.Create(&item).Error; err != nil {
			log.Printf("⚠️  Failed to seed item %s: %v", item.Name, err)
		}
	}

	settings := []models.GameSetting{
		{Key: "miner_enabled", Value: "true"},
		{Key: "tower_enabled", Value: "true"},
		{Key: "slots_enabled", Value: "true"},
		{Key: "coinflip_enabled", Value: "true"},
		{Key: "rps_enabled", Value: "true"},
		{Key: "upgrade_enabled", Value: "true"},
	}
	for _, s := range settings {
		setting := s
		if err := DB.Where(models.GameSetting{Key: setting.Key}).FirstOrCreate(&setting).Error; err != nil {
			log.Printf("⚠️  Failed to seed setting %s: %v", setting.Key, err)
		}
	}

	log.Println("✅ Seed data ensured")
}
