package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mvidali/newsbrief/internal/ingest"
	"github.com/mvidali/newsbrief/internal/storage/factory"
	"github.com/mvidali/newsbrief/pkg/config/env"
)

func main() {
	filePath := flag.String("file", "configs/sample_content.yaml", "path to the content feed YAML")
	flag.Parse()

	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/content_import/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		os.Exit(1)
	}

	feed, err := ingest.LoadFeed(*filePath)
	if err != nil {
		slog.Error("Failed to load content feed", "file", *filePath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	stores, err := factory.NewStores(ctx, *storageCfg)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	importer := ingest.NewImporter(stores.Topics, stores.Content)
	report, err := importer.Import(ctx, feed)
	if err != nil {
		slog.Error("Content import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Content import finished",
		"imported", report.Imported,
		"skipped", report.Skipped,
		"links", report.Links,
	)
}
