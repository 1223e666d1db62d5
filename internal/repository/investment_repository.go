package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
)

// InvestmentRepository defines the interface for investment data access.
// Totals only ever grow, so the only mutation is an atomic increment.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *domain.Investment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	FindAll(ctx context.Context) ([]*domain.Investment, error)
	IncrementAmount(ctx context.Context, id uuid.UUID, delta float64) error
	SumAll(ctx context.Context) (float64, error)
}

// investmentRepositoryImpl is the GORM implementation of InvestmentRepository
type investmentRepositoryImpl struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new instance of InvestmentRepository
func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepositoryImpl{db: db}
}

func (r *investmentRepositoryImpl) Create(ctx context.Context, investment *domain.Investment) error {
	if err := r.db.WithContext(ctx).Create(investment).Error; err != nil {
		return err
	}
	return nil
}

func (r *investmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	var investment domain.Investment
	if err := r.db.WithContext(ctx).First(&investment, id).Error; err != nil {
		return nil, err
	}
	return &investment, nil
}

func (r *investmentRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Investment, error) {
	var investments []*domain.Investment
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, err
	}
	return investments, nil
}

// IncrementAmount atomically adds delta to an investment's total
func (r *investmentRepositoryImpl) IncrementAmount(ctx context.Context, id uuid.UUID, delta float64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Investment{}).
		Where("id = ?", id).
		Update("total_amount", gorm.Expr("total_amount + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *investmentRepositoryImpl) SumAll(ctx context.Context) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&domain.Investment{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
