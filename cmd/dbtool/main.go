package main

import (
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"bus-simulation-service/internal/adapters/results"
	"bus-simulation-service/internal/platform/db"
)

// dbtool creates the day_records schema for the optional Postgres results
// sink. Run once before enabling DATABASE_URL on the simulator.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	log.Info("Initializing results schema...")
	if err := results.InitSchema(pg); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Info("Schema ready.")
}
