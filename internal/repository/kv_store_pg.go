package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mario443-has/tienda-lumiere-glamour/internal/model"
)

type pgKVStore struct {
	db *gorm.DB
}

func NewPGKVStore(db *gorm.DB) KVStore {
	return &pgKVStore{db: db}
}

func (s *pgKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := model.KVEntry{Key: key, Value: value}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		entry.ExpiresAt = &expires
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (s *pgKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		// Lazy expiry, mirrors the in-memory store.
		_ = s.db.WithContext(ctx).Delete(&model.KVEntry{}, "key = ?", key).Error
		return nil, nil
	}
	return entry.Value, nil
}

func (s *pgKVStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&model.KVEntry{}, "key = ?", key).Error
}

func (s *pgKVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&model.KVEntry{}).
		Where("key LIKE ?", prefix+"%").
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Pluck("key", &keys).Error
	return keys, err
}
