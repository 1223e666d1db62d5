package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier-backoffice-api/internal/middleware"
	"atelier-backoffice-api/internal/response"
	"atelier-backoffice-api/internal/service"
)

// DashboardHandler handles role dashboard endpoints
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Direction returns the firm-wide overview
func (h *DashboardHandler) Direction(c *gin.Context) {
	board, err := h.dashboardService.DirectionDashboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}

// Expert returns the authenticated expert's workload overview
func (h *DashboardHandler) Expert(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return
	}

	board, err := h.dashboardService.ExpertDashboard(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, board)
}
