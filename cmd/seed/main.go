// Command seed fills the development database with fake forum data.
package main

import (
	"log"

	"threadloom/internal/config"
	"threadloom/internal/database"
	"threadloom/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.DefaultOptions()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
