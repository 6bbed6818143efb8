// Package main provides a utility to initialize the MySQL schema.
// It connects with the configured credentials and applies any pending
// migrations, then exits.
package main

import (
	"fmt"
	"os"

	"github.com/voidswithin/cipher/pkg/config"
	"github.com/voidswithin/cipher/pkg/database"
	"github.com/voidswithin/cipher/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Initializing database schema...", "InitDB")

	db, err := database.Init(cfg.MySQLDSN())
	if err != nil {
		logger.Critical(fmt.Sprintf("Error initializing database: %v", err), "InitDB")
		os.Exit(1)
	}
	defer db.Close()

	latency, err := db.Ping()
	if err != nil {
		logger.Critical(fmt.Sprintf("Database ping failed: %v", err), "InitDB")
		os.Exit(1)
	}

	logger.Success(fmt.Sprintf("Database ready (%s, ping %s)", cfg.MySQLDatabase, latency), "InitDB")
}
