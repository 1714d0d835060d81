package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mvidali/newsbrief/internal/digest"
	"github.com/mvidali/newsbrief/internal/storage/factory"
	"github.com/mvidali/newsbrief/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type DigestAPIConfig struct {
	DigestOptions digest.Options
	factory.StorageConfig
}

func (as *AppConfig) Load() (*DigestAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/digest_api/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &DigestAPIConfig{
		DigestOptions: digestOptionsFromEnv(),
		StorageConfig: *storageCfg,
	}, nil
}

// digestOptionsFromEnv reads the selection knobs, falling back to the
// defaults for anything unset or unparsable.
func digestOptionsFromEnv() digest.Options {
	opts := digest.DefaultOptions()

	if hours, err := strconv.Atoi(os.Getenv("WINDOW_HOURS")); err == nil && hours > 0 {
		opts.Window = time.Duration(hours) * time.Hour
	}
	if maxItems, err := strconv.Atoi(os.Getenv("MAX_ITEMS")); err == nil && maxItems > 0 {
		opts.MaxItems = maxItems
	}
	if fetchLimit, err := strconv.Atoi(os.Getenv("FETCH_LIMIT")); err == nil && fetchLimit > 0 {
		opts.FetchLimit = fetchLimit
	}
	if policy := os.Getenv("COMBINE_POLICY"); policy != "" {
		opts.Combine = digest.CombinePolicy(policy)
	}

	return opts
}
