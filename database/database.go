package database

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"seamless/models"

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

	// TranslateError maps unique-constraint violations on insert to
	// gorm.ErrDuplicatedKey, which the ledger relies on for dedup.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	DB = db

	autoMigrateEnv := os.Getenv("DB_AUTO_MIGRATE")
	autoMigrate, parseErr := strconv.ParseBool(autoMigrateEnv)
	if parseErr != nil && autoMigrateEnv != "" {
		log.Printf("invalid value for DB_AUTO_MIGRATE: %s\n", autoMigrateEnv)
	}

	if autoMigrate {
		if err := DB.AutoMigrate(
			&models.Player{},
			&models.LedgerTransaction{},
			&models.Session{},
		); err != nil {
			log.Fatal("failed to auto-migrate database:", err)
		}
	}
}
