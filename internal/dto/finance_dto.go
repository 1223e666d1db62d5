package dto

import (
	"time"

	"github.com/google/uuid"

	"atelier-backoffice-api/internal/domain"
)

// CreateExpenseRequest represents the request to record a project expense.
// Expenses are append-only once written.
type CreateExpenseRequest struct {
	ProjectID uuid.UUID  `json:"projectId" binding:"required"`
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Motive    string     `json:"motive" binding:"required,max=2000"`
	SpentAt   *time.Time `json:"spentAt"`
}

// ExpenseResponse represents a recorded expense
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	ProjectName string    `json:"projectName,omitempty"`
	Amount      float64   `json:"amount"`
	Motive      string    `json:"motive"`
	SpentAt     time.Time `json:"spentAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToExpenseResponse converts a domain expense to its response form
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		Amount:    e.Amount,
		Motive:    e.Motive,
		SpentAt:   e.SpentAt,
		CreatedAt: e.CreatedAt,
	}
	if e.Project != nil {
		resp.ProjectName = e.Project.Name
	}
	return resp
}

// CreateInvestmentRequest represents the request to open an investment
// envelope
type CreateInvestmentRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	TotalAmount float64 `json:"totalAmount" binding:"gte=0"`
}

// TopUpInvestmentRequest adds to an investment's total. Totals only grow.
type TopUpInvestmentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// InvestmentResponse represents an investment envelope
type InvestmentResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToInvestmentResponse converts a domain investment to its response form
func ToInvestmentResponse(i *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:          i.ID,
		Name:        i.Name,
		TotalAmount: i.TotalAmount,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// FinanceSummaryResponse aggregates the firm's money position
type FinanceSummaryResponse struct {
	TotalContracted  float64 `json:"totalContracted"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalOutstanding float64 `json:"totalOutstanding"`
	TotalExpenses    float64 `json:"totalExpenses"`
	TotalInvestments float64 `json:"totalInvestments"`
	NetPosition      float64 `json:"netPosition"`
}
