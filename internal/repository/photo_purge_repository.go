package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// PhotoPurgeRepository defines the interface for the photo purge queue
type PhotoPurgeRepository interface {
	Enqueue(ctx context.Context, entries []*domain.PhotoPurge) error
	FindBatch(ctx context.Context, limit int) ([]*domain.PhotoPurge, error)
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// photoPurgeRepositoryImpl is the GORM implementation of PhotoPurgeRepository
type photoPurgeRepositoryImpl struct {
	db *gorm.DB
}

// NewPhotoPurgeRepository creates a new instance of PhotoPurgeRepository
func NewPhotoPurgeRepository(db *gorm.DB) PhotoPurgeRepository {
	return &photoPurgeRepositoryImpl{db: db}
}

func (r *photoPurgeRepositoryImpl) Enqueue(ctx context.Context, entries []*domain.PhotoPurge) error {
	if len(entries) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(entries).Error; err != nil {
		return err
	}
	return nil
}

// FindBatch returns the oldest queued entries up to limit
func (r *photoPurgeRepositoryImpl) FindBatch(ctx context.Context, limit int) ([]*domain.PhotoPurge, error) {
	var entries []*domain.PhotoPurge
	if err := r.db.WithContext(ctx).
		Order("queued_at ASC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *photoPurgeRepositoryImpl) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.PhotoPurge{}).Error; err != nil {
		return err
	}
	return nil
}
