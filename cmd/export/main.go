// cmd/export/main.go — offline catalog export.
// Connects to the database directly and writes the catalog as CSV to stdout
// or to the file given as the first argument. Intended for cron jobs and
// backups where going through the HTTP API is overkill.
package main

import (
	"context"
	"os"

	"github.com/kuxall/InventoryManagementSystem/internal/config"
	"github.com/kuxall/InventoryManagementSystem/internal/infra"
	"github.com/kuxall/InventoryManagementSystem/internal/repository"
	"github.com/kuxall/InventoryManagementSystem/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	out := os.Stdout
	if len(os.Args) > 1 {
		f, err := os.Create(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Str("path", os.Args[1]).Msg("failed to create output file")
		}
		defer f.Close()
		out = f
	}

	exporter := service.NewExportService(repository.NewItemRepository(db))
	if err := exporter.ExportCSV(context.Background(), out); err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}
}
