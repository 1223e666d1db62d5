package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/response"
	"atelier-backoffice-api/internal/service"
)

// FinanceHandler handles expense, investment and summary endpoints
type FinanceHandler struct {
	financeService service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// RecordExpense appends a cost record to a project
func (h *FinanceHandler) RecordExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	expense, err := h.financeService.RecordExpense(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, expense)
}

// ListExpenses returns all recorded expenses
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.financeService.ListExpenses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, expenses)
}

// ListProjectExpenses returns one project's expenses
func (h *FinanceHandler) ListProjectExpenses(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid project ID")
		return
	}

	expenses, err := h.financeService.ListExpensesByProject(c.Request.Context(), projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, expenses)
}

// CreateInvestment opens an investment envelope
func (h *FinanceHandler) CreateInvestment(c *gin.Context) {
	var req dto.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	investment, err := h.financeService.CreateInvestment(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, investment)
}

// TopUpInvestment adds to an investment's total
func (h *FinanceHandler) TopUpInvestment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("investmentId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid investment ID")
		return
	}

	var req dto.TopUpInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	investment, err := h.financeService.TopUpInvestment(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, investment)
}

// ListInvestments returns all investment envelopes
func (h *FinanceHandler) ListInvestments(c *gin.Context) {
	investments, err := h.financeService.ListInvestments(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, investments)
}

// Summary returns the firm's aggregated money position
func (h *FinanceHandler) Summary(c *gin.Context) {
	summary, err := h.financeService.Summary(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, summary)
}
