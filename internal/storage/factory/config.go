package factory

import (
	"fmt"
	"os"

	"github.com/mvidali/newsbrief/internal/storage"
)

type StorageConfig struct {
	Type    storage.Type
	ConnStr string
}

// LoadEnv reads the storage configuration from the environment.
// STORAGE_TYPE defaults to pg; DATABASE_URL is required for pg.
func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		storageType = storage.PG
	}

	switch storageType {
	case storage.PG:
		connStr := os.Getenv("DATABASE_URL")
		if connStr == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for pg storage")
		}
		return &StorageConfig{Type: storage.PG, ConnStr: connStr}, nil

	case storage.InMem:
		return &StorageConfig{Type: storage.InMem}, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
