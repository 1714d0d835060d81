// Package main Newsbrief API
// @title Newsbrief API
// @version 1.0
// @description Personalized content digest API: topic taxonomy, user preferences and digest previews
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mvidali/newsbrief/internal/digest"
	"github.com/mvidali/newsbrief/internal/router"
	"github.com/mvidali/newsbrief/internal/server"
	"github.com/mvidali/newsbrief/internal/storage/factory"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	stores, err := factory.NewStores(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	s := server.NewServer(sCfg, stores.Health)

	digestService := digest.NewService(stores.Preferences, stores.Content, cfg.DigestOptions)

	router.NewTopicRouter(s.Echo, stores.Topics).Bind()
	router.NewPreferenceRouter(s.Echo, stores.Preferences).Bind()
	router.NewDigestRouter(s.Echo, digestService).Bind()

	slog.Info("Starting digest API", "port", sCfg.Port, "storage", cfg.StorageConfig.Type)
	if err := s.Start(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
