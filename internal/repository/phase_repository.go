package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// PhaseRepository defines the interface for phase data access
type PhaseRepository interface {
	CreateWithCeilingCheck(ctx context.Context, phase *domain.Phase) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error)
	FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]*domain.Phase, error)
	FindByExpertID(ctx context.Context, expertID uuid.UUID) ([]*domain.Phase, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error)
	FindByProgress(ctx context.Context, progress domain.PhaseProgress) ([]*domain.Phase, error)
	Update(ctx context.Context, phase *domain.Phase) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error
}

// phaseRepositoryImpl is the GORM implementation of PhaseRepository
type phaseRepositoryImpl struct {
	db *gorm.DB
}

// NewPhaseRepository creates a new instance of PhaseRepository
func NewPhaseRepository(db *gorm.DB) PhaseRepository {
	return &phaseRepositoryImpl{db: db}
}

// CreateWithCeilingCheck inserts a phase inside a transaction. Under a
// fixed-total project the client amounts of an activity's phases may not
// exceed the activity budget; ErrBudgetExceeded is returned and nothing
// changes when the new phase would cross that line.
func (r *phaseRepositoryImpl) CreateWithCeilingCheck(ctx context.Context, phase *domain.Phase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var activity domain.Activity
		if err := tx.Preload("Project").First(&activity, phase.ActivityID).Error; err != nil {
			return err
		}

		if phase.Deadline.After(activity.Deadline) {
			return ErrDeadlineExceedsParent
		}
		// Settlement state follows the parent activity
		phase.PaymentStatus = activity.PaymentStatus

		if activity.Project != nil && activity.Project.FundingType == domain.FundingStandard {
			var allocated float64
			if err := tx.Model(&domain.Phase{}).
				Where("activity_id = ?", phase.ActivityID).
				Select("COALESCE(SUM(client_amount), 0)").
				Scan(&allocated).Error; err != nil {
				return err
			}
			if allocated+phase.ClientAmount > activity.Budget {
				return ErrBudgetExceeded
			}
		}

		return tx.Create(phase).Error
	})
}

func (r *phaseRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Phase, error) {
	var phase domain.Phase
	if err := r.db.WithContext(ctx).
		Preload("Activity").
		Preload("Activity.Project").
		Preload("Activity.Project.Client").
		Preload("Expert").
		First(&phase, id).Error; err != nil {
		return nil, err
	}
	return &phase, nil
}

func (r *phaseRepositoryImpl) FindByActivityID(ctx context.Context, activityID uuid.UUID) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	if err := r.db.WithContext(ctx).
		Preload("Expert").
		Where("activity_id = ?", activityID).
		Order("created_at ASC").
		Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

// FindByExpertID returns the phases assigned to one expert, newest first
func (r *phaseRepositoryImpl) FindByExpertID(ctx context.Context, expertID uuid.UUID) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	if err := r.db.WithContext(ctx).
		Preload("Activity").
		Preload("Activity.Project").
		Preload("Activity.Project.Client").
		Where("expert_id = ?", expertID).
		Order("created_at DESC").
		Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *phaseRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	if err := r.db.WithContext(ctx).
		Where("activity_id IN (?)",
			r.db.Model(&domain.Activity{}).Select("id").Where("project_id = ?", projectID)).
		Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *phaseRepositoryImpl) FindByProgress(ctx context.Context, progress domain.PhaseProgress) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	if err := r.db.WithContext(ctx).
		Preload("Expert").
		Where("progress = ?", progress).
		Find(&phases).Error; err != nil {
		return nil, err
	}
	return phases, nil
}

func (r *phaseRepositoryImpl) Update(ctx context.Context, phase *domain.Phase) error {
	if err := r.db.WithContext(ctx).Save(phase).Error; err != nil {
		return err
	}
	return nil
}

func (r *phaseRepositoryImpl) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Phase{}).
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

func (r *phaseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Phase{}, id).Error; err != nil {
		return err
	}
	return nil
}

func (r *phaseRepositoryImpl) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("activity_id IN (?)",
			r.db.Model(&domain.Activity{}).Select("id").Where("project_id = ?", projectID)).
		Delete(&domain.Phase{}).Error; err != nil {
		return err
	}
	return nil
}
