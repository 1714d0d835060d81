package factory

import (
	"context"
	"fmt"

	"github.com/mvidali/newsbrief/internal/storage"
	"github.com/mvidali/newsbrief/internal/storage/in_mem"
	"github.com/mvidali/newsbrief/internal/storage/pg"
	pkgserver "github.com/mvidali/newsbrief/pkg/server"
)

// Stores bundles the storage interfaces one backend provides.
type Stores struct {
	Preferences storage.PreferenceStore
	Content     storage.ContentStore
	Topics      storage.TopicStore
	Users       storage.UserReader
	Health      pkgserver.HealthChecker

	close func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewStores creates the storage backend for the configured type.
func NewStores(ctx context.Context, cfg StorageConfig) (*Stores, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.ConnStr})
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return &Stores{
			Preferences: pg.NewPreferenceStore(pool),
			Content:     pg.NewContentStore(pool),
			Topics:      pg.NewTopicStore(pool),
			Users:       pg.NewUserStore(pool),
			Health:      pg.NewHealthChecker(pool),
			close:       pool.Close,
		}, nil

	case storage.InMem:
		store := in_mem.NewStore()
		return &Stores{
			Preferences: store,
			Content:     store,
			Topics:      store,
			Users:       store,
			Health:      pkgserver.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
