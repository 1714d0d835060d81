package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mvidali/newsbrief/internal/batch"
	"github.com/mvidali/newsbrief/internal/digest"
	"github.com/mvidali/newsbrief/internal/newsletter"
	"github.com/mvidali/newsbrief/internal/storage/factory"
	"github.com/robfig/cron/v3"
)

const runTimeout = 30 * time.Minute

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	stores, err := factory.NewStores(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	deliverer, err := newDeliverer(cfg)
	if err != nil {
		slog.Error("Failed to create deliverer", "error", err)
		os.Exit(1)
	}

	service := digest.NewService(stores.Preferences, stores.Content, cfg.DigestOptions)
	runner := batch.NewRunner(stores.Users, service, deliverer, cfg.Workers)

	if cfg.RunOnce {
		if err := runBatch(runner); err != nil {
			os.Exit(1)
		}
		return
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(cfg.CronSchedule, func() {
		_ = runBatch(runner)
	}); err != nil {
		slog.Error("Invalid cron schedule", "schedule", cfg.CronSchedule, "error", err)
		os.Exit(1)
	}

	slog.Info("Starting digest worker",
		"schedule", cfg.CronSchedule,
		"timezone", cfg.Timezone,
		"workers", cfg.Workers,
		"dry_run", cfg.DryRun,
	)
	c.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("Shutting down digest worker")
	<-c.Stop().Done()
}

func newDeliverer(cfg *WorkerConfig) (batch.Deliverer, error) {
	if cfg.DryRun {
		return newsletter.LogDeliverer{}, nil
	}

	renderer, err := newsletter.NewRenderer()
	if err != nil {
		return nil, err
	}
	sender := newsletter.NewSMTPSender(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	return newsletter.NewNotifier(renderer, sender), nil
}

func runBatch(runner *batch.Runner) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	report, err := runner.Run(ctx)
	if err != nil {
		slog.Error("Digest batch failed", "error", err)
		return err
	}

	for _, f := range report.Failures {
		slog.Warn("User skipped during batch", "user_id", f.UserID, "reason", f.Reason)
	}
	return nil
}
