package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/ai-mentorship/internal/config"
	"alfredoptarigan/ai-mentorship/internal/models"
)

func exerciseStore(t *testing.T, store LocalStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, KeyAssessmentResults)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, KeyAssessmentResults, `{"a":1}`))
	v, ok, err := store.Get(ctx, KeyAssessmentResults)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, v)

	require.NoError(t, store.Set(ctx, KeyAssessmentResults, `{"a":2}`))
	v, _, err = store.Get(ctx, KeyAssessmentResults)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, v)

	require.NoError(t, store.Delete(ctx, KeyAssessmentResults))
	_, ok, err = store.Get(ctx, KeyAssessmentResults)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "never-written"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestGormStoreOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoreEntry{}))

	exerciseStore(t, NewGormStore(db))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	store, err := NewRedisStore(context.Background(), addr, "", 0, "ai-mentorship-test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestOpenSelectsDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "memory"
	store, closeFn, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, closeFn())
	exerciseStore(t, store)

	cfg.Store.Driver = "sqlite"
	cfg.Store.SQLitePath = "file::memory:?cache=shared"
	store, closeFn, err = Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	exerciseStore(t, store)
	assert.NoError(t, closeFn())

	cfg.Store.Driver = "etcd"
	_, _, err = Open(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
