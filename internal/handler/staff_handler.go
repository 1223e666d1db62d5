package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/response"
	"atelier-backoffice-api/internal/service"
)

// StaffHandler handles staff management endpoints
type StaffHandler struct {
	staffService service.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// Enroll registers a staff member
func (h *StaffHandler) Enroll(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	staff, err := h.staffService.Enroll(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, staff)
}

// Get returns one staff member
func (h *StaffHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid staff ID")
		return
	}

	staff, err := h.staffService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, staff)
}

// List returns all staff members
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staffService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, staff)
}

// ListExperts returns the staff members assignable to phases
func (h *StaffHandler) ListExperts(c *gin.Context) {
	experts, err := h.staffService.ListExperts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, experts)
}

// Update modifies a staff member
func (h *StaffHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid staff ID")
		return
	}

	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, staff)
}

// Remove deletes a staff member and revokes their access
func (h *StaffHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("staffId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid staff ID")
		return
	}

	if err := h.staffService.Remove(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "Staff member removed"})
}
