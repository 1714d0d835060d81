package pg

import (
	"context"
	"log/slog"
)

type HealthChecker struct {
	pool *ConnectionPool
}

func NewHealthChecker(pool *ConnectionPool) *HealthChecker {
	return &HealthChecker{pool: pool}
}

func (hc *HealthChecker) Healthy(ctx context.Context) bool {
	if err := hc.pool.Ping(ctx); err != nil {
		slog.Error("Postgres health check failed", "error", err)
		return false
	}
	return true
}
