package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	CreateWithBudgetCheck(ctx context.Context, activity *domain.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	FindByIDWithPhases(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Activity, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// CreateWithBudgetCheck inserts an activity inside a transaction.
// For fixed-total projects the new budget must fit under the contracted
// remainder, otherwise ErrBudgetExceeded is returned and nothing changes.
// For recommandation projects an unpaid activity grows the contracted
// total by its budget.
func (r *activityRepositoryImpl) CreateWithBudgetCheck(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project domain.Project
		if err := tx.First(&project, activity.ProjectID).Error; err != nil {
			return err
		}

		if activity.Deadline.After(project.Deadline) {
			return ErrDeadlineExceedsParent
		}

		if project.FundingType == domain.FundingStandard {
			var allocated float64
			if err := tx.Model(&domain.Activity{}).
				Where("project_id = ?", activity.ProjectID).
				Select("COALESCE(SUM(budget), 0)").
				Scan(&allocated).Error; err != nil {
				return err
			}
			if allocated+activity.Budget > project.TotalAmount {
				return ErrBudgetExceeded
			}
		}

		if err := tx.Create(activity).Error; err != nil {
			return err
		}

		if project.FundingType == domain.FundingRecommandation && activity.PaymentStatus != domain.PaymentPaid {
			if err := tx.Model(&domain.Project{}).
				Where("id = ?", activity.ProjectID).
				Update("total_amount", gorm.Expr("total_amount + ?", activity.Budget)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *activityRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepositoryImpl) FindByIDWithPhases(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Phases", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Phases.Expert").
		First(&activity, id).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Activity{}, id).Error; err != nil {
		return err
	}
	return nil
}

func (r *activityRepositoryImpl) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&domain.Activity{}).Error; err != nil {
		return err
	}
	return nil
}
