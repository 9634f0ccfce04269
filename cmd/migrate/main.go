package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  "console",
		Service: "proftrack-migrate",
	})

	database, err := db.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Printf("Connected to %s database\n", cfg.Database.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	applied, err := database.Migrate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	if applied == 0 {
		fmt.Println("Database is up to date")
		return
	}
	fmt.Printf("Applied %d migration(s)\n", applied)
}
