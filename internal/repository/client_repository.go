package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	FindByIDWithProjects(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	FindAll(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// clientRepositoryImpl is the GORM implementation of ClientRepository
type clientRepositoryImpl struct {
	db *gorm.DB
}

// NewClientRepository creates a new instance of ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepositoryImpl{db: db}
}

func (r *clientRepositoryImpl) Create(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return err
	}
	return nil
}

func (r *clientRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByIDWithProjects loads a client together with all of their projects
func (r *clientRepositoryImpl) FindByIDWithProjects(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	if err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Client, error) {
	var clients []*domain.Client
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepositoryImpl) Update(ctx context.Context, client *domain.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		return err
	}
	return nil
}

func (r *clientRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Client{}, id).Error; err != nil {
		return err
	}
	return nil
}
