package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/ai-mentorship/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore expects the store_entries table to be migrated already.
func NewGormStore(db *gorm.DB) LocalStore {
	return &gormStore{db: db}
}

// Get implements LocalStore.
func (g *gormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.StoreEntry
	if err := g.db.WithContext(ctx).Where(map[string]any{"key": key}).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to read store entry: %w", err)
	}

	return entry.Value, true, nil
}

// Set implements LocalStore.
func (g *gormStore) Set(ctx context.Context, key, value string) error {
	entry := models.StoreEntry{Key: key, Value: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write store entry: %w", err)
	}

	return nil
}

// Delete implements LocalStore.
func (g *gormStore) Delete(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where(map[string]any{"key": key}).Delete(&models.StoreEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete store entry: %w", err)
	}

	return nil
}
