package main

import (
	"flag"
	"log"

	"stemlearn/internal/app"
	"stemlearn/internal/config"
	"stemlearn/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "directory holding config.yaml")
	migrateOnly := flag.Bool("migrate-only", false, "run schema migrations and exit")
	reset := flag.Bool("reset", false, "destructively reset the store before opening")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly
	cfg.ResetStore = *reset

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer logger.Log.Sync()
	defer application.Close()

	if cfg.MigrateOnly {
		log.Println("Migration complete, exiting")
		return
	}

	application.Run()
}
