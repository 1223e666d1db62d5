package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByIDWithTree(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindAll(ctx context.Context) ([]*domain.Project, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*domain.Project, error)
	FindByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*domain.Project, error)
}

// projectRepositoryImpl is the GORM implementation of ProjectRepository
type projectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

func (r *projectRepositoryImpl) Create(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return err
	}
	return nil
}

func (r *projectRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByIDWithTree loads a project with its full activity and phase tree
func (r *projectRepositoryImpl) FindByIDWithTree(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Activities.Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Activities.Phases.Expert").
		First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Activities.Phases").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepositoryImpl) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepositoryImpl) FindByStatus(ctx context.Context, status domain.ProjectStatus) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("status = ?", status).
		Order("updated_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepositoryImpl) Update(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return err
	}
	return nil
}

func (r *projectRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Project{}, id).Error; err != nil {
		return err
	}
	return nil
}

// RecordPayment adds an amount to the project's paid total and derives the
// payment status from the new balance, all inside one transaction
func (r *projectRepositoryImpl) RecordPayment(ctx context.Context, id uuid.UUID, amount float64) (*domain.Project, error) {
	var project domain.Project

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, id).Error; err != nil {
			return err
		}

		project.PaidAmount += amount
		project.PaymentStatus = domain.DerivePaymentStatus(project.PaidAmount, project.TotalAmount)

		return tx.Model(&project).Updates(map[string]interface{}{
			"paid_amount":    project.PaidAmount,
			"payment_status": project.PaymentStatus,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}
