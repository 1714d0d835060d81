package main

import (
	"fmt"
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

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type WorkerConfig struct {
	CronSchedule  string
	Timezone      string
	Workers       int
	DryRun        bool
	RunOnce       bool
	DigestOptions digest.Options
	SMTP          SMTPConfig
	factory.StorageConfig
}

func (as *AppConfig) Load() (*WorkerConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/digest_worker/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	schedule := os.Getenv("CRON_SCHEDULE")
	if schedule == "" {
		schedule = "0 7 * * *"
	}

	timezone := os.Getenv("TIMEZONE")
	if timezone == "" {
		timezone = "UTC"
	}

	workers := 4
	if n, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil && n > 0 {
		workers = n
	}

	dryRun := os.Getenv("DRY_RUN") == "true"
	runOnce := os.Getenv("RUN_ONCE") == "true"

	cfg := &WorkerConfig{
		CronSchedule:  schedule,
		Timezone:      timezone,
		Workers:       workers,
		DryRun:        dryRun,
		RunOnce:       runOnce,
		DigestOptions: digestOptionsFromEnv(),
		StorageConfig: *storageCfg,
	}

	if !dryRun {
		smtpCfg, err := loadSMTPConfig()
		if err != nil {
			return nil, err
		}
		cfg.SMTP = *smtpCfg
	}

	return cfg, nil
}

func loadSMTPConfig() (*SMTPConfig, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST is required unless DRY_RUN=true")
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		return nil, fmt.Errorf("SMTP_FROM is required unless DRY_RUN=true")
	}

	return &SMTPConfig{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     from,
	}, nil
}

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
