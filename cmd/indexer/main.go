package main

import (
	"log/slog"
	"os"

	"github.com/ochipin/notey/internal/config"
	"github.com/ochipin/notey/internal/indexer"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	records, err := indexer.Build(cfg.SourceDir, log)
	if err != nil {
		log.Error("index build failed", "source", cfg.SourceDir, "error", err)
		os.Exit(1)
	}

	if err := indexer.WriteFile(cfg.IndexOutput, records); err != nil {
		log.Error("index write failed", "output", cfg.IndexOutput, "error", err)
		os.Exit(1)
	}

	log.Info("search index written", "output", cfg.IndexOutput, "pages", len(records))
}
