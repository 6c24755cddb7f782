package database

import (
	"log"
	"time"

	"carrent/config"
	"carrent/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the global gorm handle.
var DB *gorm.DB

// InitDB connects to MySQL and migrates the rental engine schema.
func InitDB() {
	dsn := config.AppConfig.DatabaseDSN

	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if pingErr := sqlDB.Ping(); pingErr == nil {
					break
				}
			}
		}
		log.Println("Retrying DB connection...")
		time.Sleep(3 * time.Second)
	}
	if err != nil {
		log.Fatalf("failed to connect to MySQL: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Rental{},
		&models.RentalContract{},
		&models.Payment{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	DB = db
	log.Println("Connected to MySQL successfully!")
}
