package main

import (
	"log"
	"whatsapp-campaign/internal/config"
	"whatsapp-campaign/internal/database"
)

// Copies the send log from the local SQLite file (DB_PATH) into the
// PostgreSQL database described by the DB_* settings, then syncs the id
// sequence.
func main() {
	cfg := config.LoadConfig()

	// 1. Connect to SQLite (Source)
	source := *cfg
	source.DBDriver = "sqlite"
	sqliteDB, err := database.Open(&source)
	if err != nil {
		log.Fatalf("Failed to connect to SQLite: %v", err)
	}
	log.Printf("Connected to SQLite at %s", cfg.DBPath)

	// 2. Connect to PostgreSQL (Destination)
	cfg.DBDriver = "postgres"
	database.InitGorm(cfg)
	pgDB := database.GormDB

	log.Println("Starting data migration...")

	copied, err := database.CopyMessages(sqliteDB, pgDB)
	if err != nil {
		log.Fatalf("Error migrating messages after %d rows: %v", copied, err)
	}
	log.Printf("Successfully migrated %d messages", copied)

	if err := database.SyncSequence(pgDB, "messages"); err != nil {
		log.Fatalf("Error syncing sequence for messages: %v", err)
	}
	log.Println("Migration completed!")
}
