package main

import (
	"fmt"
	"os"
	"time"

	"agenda/internal/config"
	"agenda/internal/storage"
	"agenda/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := storage.New(kv, time.Now)
	if err := store.Migrate(); err != nil {
		fmt.Printf("failed to migrate tasks: %v\n", err)
		os.Exit(1)
	}

	if err := ui.Run(store, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
