package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mvidali/newsbrief/internal/storage/factory"
	"github.com/mvidali/newsbrief/internal/taxonomy"
	"github.com/mvidali/newsbrief/pkg/config/env"
)

func main() {
	filePath := flag.String("file", "configs/topics.yaml", "path to the topic taxonomy YAML")
	flag.Parse()

	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/topic_seed/.env"); err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		os.Exit(1)
	}

	topics, err := taxonomy.LoadFromFile(*filePath)
	if err != nil {
		slog.Error("Failed to load taxonomy", "file", *filePath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	stores, err := factory.NewStores(ctx, *storageCfg)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	inserted, err := stores.Topics.SeedTopics(ctx, topics)
	if err != nil {
		slog.Error("Failed to seed topics", "error", err)
		os.Exit(1)
	}

	slog.Info("Topic seeding finished",
		"total", len(topics),
		"inserted", inserted,
		"skipped", len(topics)-inserted,
	)
}
