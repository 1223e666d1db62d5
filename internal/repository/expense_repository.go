package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// ExpenseRepository defines the interface for project expense data access.
// Expenses are append-only: there is no update or single delete.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Expense, error)
	FindAll(ctx context.Context) ([]*domain.Expense, error)
	SumByProjectID(ctx context.Context, projectID uuid.UUID) (float64, error)
	SumAll(ctx context.Context) (float64, error)
	DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error
}

// expenseRepositoryImpl is the GORM implementation of ExpenseRepository
type expenseRepositoryImpl struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new instance of ExpenseRepository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

func (r *expenseRepositoryImpl) Create(ctx context.Context, expense *domain.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return err
	}
	return nil
}

func (r *expenseRepositoryImpl) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("spent_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Order("spent_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepositoryImpl) SumByProjectID(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&domain.Expense{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *expenseRepositoryImpl) SumAll(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&domain.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *expenseRepositoryImpl) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&domain.Expense{}).Error; err != nil {
		return err
	}
	return nil
}
