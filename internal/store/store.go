package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mealview/internal/model"
)

// DefaultRecentLimit and MaxRecentLimit bound RecentFetches.
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// Store defines the interface for diagnostic fetch records.
type Store interface {
	RecordFetch(ctx context.Context, rec *model.FetchRecord) error
	RecentFetches(ctx context.Context, limit int) ([]model.FetchRecord, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// RecordFetch inserts one finished fetch cycle.
func (s *gormStore) RecordFetch(ctx context.Context, rec *model.FetchRecord) error {
	if rec == nil {
		return fmt.Errorf("nil fetch record")
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to record fetch cycle %d for session %s: %w", rec.Cycle, rec.SessionID, err)
	}
	return nil
}

// RecentFetches returns the newest records first. A non-positive limit uses
// DefaultRecentLimit; limits above MaxRecentLimit are clamped.
func (s *gormStore) RecentFetches(ctx context.Context, limit int) ([]model.FetchRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	var records []model.FetchRecord
	if err := s.db.WithContext(ctx).
		Order("finished_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list fetch records: %w", err)
	}
	return records, nil
}
