package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/repository"
	"atelier-backoffice-api/internal/response"
)

// FinanceService defines the interface for expense and investment logic
type FinanceService interface {
	RecordExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error)
	ListExpenses(ctx context.Context) ([]dto.ExpenseResponse, error)
	ListExpensesByProject(ctx context.Context, projectID uuid.UUID) ([]dto.ExpenseResponse, error)
	CreateInvestment(ctx context.Context, req *dto.CreateInvestmentRequest) (*dto.InvestmentResponse, error)
	TopUpInvestment(ctx context.Context, id uuid.UUID, req *dto.TopUpInvestmentRequest) (*dto.InvestmentResponse, error)
	ListInvestments(ctx context.Context) ([]dto.InvestmentResponse, error)
	Summary(ctx context.Context) (*dto.FinanceSummaryResponse, error)
}

// financeServiceImpl is the implementation of FinanceService
type financeServiceImpl struct {
	expenseRepo    repository.ExpenseRepository
	investmentRepo repository.InvestmentRepository
	projectRepo    repository.ProjectRepository
	logger         *zap.Logger
}

// NewFinanceService creates a new instance of FinanceService
func NewFinanceService(
	expenseRepo repository.ExpenseRepository,
	investmentRepo repository.InvestmentRepository,
	projectRepo repository.ProjectRepository,
	logger *zap.Logger,
) FinanceService {
	return &financeServiceImpl{
		expenseRepo:    expenseRepo,
		investmentRepo: investmentRepo,
		projectRepo:    projectRepo,
		logger:         logger,
	}
}

// RecordExpense appends a cost record to a project. Expenses cannot be
// edited or removed afterwards.
func (s *financeServiceImpl) RecordExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Project not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify project", err.Error())
	}

	spentAt := time.Now()
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense := &domain.Expense{
		ProjectID: req.ProjectID,
		Amount:    req.Amount,
		Motive:    req.Motive,
		SpentAt:   spentAt,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record expense", err.Error())
	}

	s.logger.Info("Expense recorded",
		zap.String("project_id", req.ProjectID.String()),
		zap.Float64("amount", req.Amount),
	)

	expense.Project = project
	resp := dto.ToExpenseResponse(expense)
	return &resp, nil
}

func (s *financeServiceImpl) ListExpenses(ctx context.Context) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list expenses", err.Error())
	}
	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, dto.ToExpenseResponse(e))
	}
	return responses, nil
}

func (s *financeServiceImpl) ListExpensesByProject(ctx context.Context, projectID uuid.UUID) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list expenses", err.Error())
	}
	responses := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, dto.ToExpenseResponse(e))
	}
	return responses, nil
}

func (s *financeServiceImpl) CreateInvestment(ctx context.Context, req *dto.CreateInvestmentRequest) (*dto.InvestmentResponse, error) {
	investment := &domain.Investment{
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
	}

	if err := s.investmentRepo.Create(ctx, investment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create investment", err.Error())
	}

	s.logger.Info("Investment created",
		zap.String("investment_id", investment.ID.String()),
		zap.Float64("total_amount", req.TotalAmount),
	)

	resp := dto.ToInvestmentResponse(investment)
	return &resp, nil
}

// TopUpInvestment adds to an investment's total. The increment is atomic
// and the total only ever grows.
func (s *financeServiceImpl) TopUpInvestment(ctx context.Context, id uuid.UUID, req *dto.TopUpInvestmentRequest) (*dto.InvestmentResponse, error) {
	if err := s.investmentRepo.IncrementAmount(ctx, id, req.Amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Investment not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to top up investment", err.Error())
	}

	investment, err := s.investmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch investment", err.Error())
	}

	resp := dto.ToInvestmentResponse(investment)
	return &resp, nil
}

func (s *financeServiceImpl) ListInvestments(ctx context.Context) ([]dto.InvestmentResponse, error) {
	investments, err := s.investmentRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list investments", err.Error())
	}
	responses := make([]dto.InvestmentResponse, 0, len(investments))
	for _, i := range investments {
		responses = append(responses, dto.ToInvestmentResponse(i))
	}
	return responses, nil
}

// Summary aggregates the firm's money position across projects,
// expenses and investments
func (s *financeServiceImpl) Summary(ctx context.Context) (*dto.FinanceSummaryResponse, error) {
	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate projects", err.Error())
	}

	summary := &dto.FinanceSummaryResponse{}
	for _, p := range projects {
		summary.TotalContracted += p.TotalAmount
		summary.TotalPaid += p.PaidAmount
	}
	summary.TotalOutstanding = summary.TotalContracted - summary.TotalPaid

	if summary.TotalExpenses, err = s.expenseRepo.SumAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate expenses", err.Error())
	}
	if summary.TotalInvestments, err = s.investmentRepo.SumAll(ctx); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to aggregate investments", err.Error())
	}

	summary.NetPosition = summary.TotalPaid - summary.TotalExpenses
	return summary, nil
}
