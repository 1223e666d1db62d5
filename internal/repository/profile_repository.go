package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// ProfileRepository defines the interface for staff profile data access
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.StaffProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error)
	FindByEmail(ctx context.Context, email string) (*domain.StaffProfile, error)
	FindAll(ctx context.Context) ([]*domain.StaffProfile, error)
	FindByRole(ctx context.Context, role domain.StaffRole) ([]*domain.StaffProfile, error)
	Update(ctx context.Context, profile *domain.StaffProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// profileRepositoryImpl is the GORM implementation of ProfileRepository
type profileRepositoryImpl struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

func (r *profileRepositoryImpl) Create(ctx context.Context, profile *domain.StaffProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return err
	}
	return nil
}

func (r *profileRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.StaffProfile, error) {
	var profile domain.StaffProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.StaffProfile, error) {
	var profile domain.StaffProfile
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepositoryImpl) FindAll(ctx context.Context) ([]*domain.StaffProfile, error) {
	var profiles []*domain.StaffProfile
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepositoryImpl) FindByRole(ctx context.Context, role domain.StaffRole) ([]*domain.StaffProfile, error) {
	var profiles []*domain.StaffProfile
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepositoryImpl) Update(ctx context.Context, profile *domain.StaffProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return err
	}
	return nil
}

func (r *profileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.StaffProfile{}, id).Error; err != nil {
		return err
	}
	return nil
}
