package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/ai-mentorship/internal/config"
)

// Keys written by a finished assessment session.
const (
	KeyAssessmentResults = "assessmentResults"
	KeyUserProfile       = "userProfile"
)

// LocalStore is the small client-side key-value store that survives between
// runs of the assessment client.
type LocalStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var ErrUnknownDriver = errors.New("unknown store driver")

// Open builds the LocalStore selected by cfg.Store.Driver. The returned
// close function releases the backing connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (LocalStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case "memory":
		return NewMemoryStore(), noop, nil
	case "sqlite", "postgres":
		db, err := config.InitStoreDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
		}
		logger.Info("local store opened", zap.String("driver", cfg.Store.Driver))
		return NewGormStore(db), sqlDB.Close, nil
	case "redis":
		store, err := NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Store.Prefix)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("local store opened", zap.String("driver", "redis"), zap.String("addr", cfg.Redis.Addr))
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
	}
}
