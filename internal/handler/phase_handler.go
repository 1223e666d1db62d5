package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/dto"
	"atelier-backoffice-api/internal/middleware"
	"atelier-backoffice-api/internal/response"
	"atelier-backoffice-api/internal/service"
)

// maxProofPhotoSize caps proof photo uploads at 10 MiB
const maxProofPhotoSize = 10 << 20

// PhaseHandler handles phase endpoints
type PhaseHandler struct {
	phaseService service.PhaseService
}

// NewPhaseHandler creates a new PhaseHandler
func NewPhaseHandler(phaseService service.PhaseService) *PhaseHandler {
	return &PhaseHandler{phaseService: phaseService}
}

// Create adds a phase under an activity
func (h *PhaseHandler) Create(c *gin.Context) {
	var req dto.CreatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	phase, err := h.phaseService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, phase)
}

// Get returns one phase
func (h *PhaseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid phase ID")
		return
	}

	phase, err := h.phaseService.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}

// ListByActivity returns an activity's phases
func (h *PhaseHandler) ListByActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid activity ID")
		return
	}

	phases, err := h.phaseService.ListByActivity(c.Request.Context(), activityID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phases)
}

// MyPhases returns the phases assigned to the authenticated expert
func (h *PhaseHandler) MyPhases(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return
	}

	phases, err := h.phaseService.ListByExpert(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phases)
}

// SetProgress moves a phase through its state machine. A finished phase
// sent back to en_cours counts as rework.
func (h *PhaseHandler) SetProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid phase ID")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return
	}
	role, ok := middleware.Role(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Role not found in context")
		return
	}

	var req dto.SetPhaseProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	phase, err := h.phaseService.SetProgress(c.Request.Context(), id, userID, role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}

// Relaunch sends a finished phase back for rework. It is the office's
// refuse-and-relaunch action; the state machine treats it as the
// termine -> en_cours transition.
func (h *PhaseHandler) Relaunch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid phase ID")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return
	}
	role, ok := middleware.Role(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Role not found in context")
		return
	}

	req := dto.SetPhaseProgressRequest{Progress: string(domain.PhaseInProgress)}
	phase, err := h.phaseService.SetProgress(c.Request.Context(), id, userID, role, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}

// AssignExpert assigns or reassigns the expert on a phase
func (h *PhaseHandler) AssignExpert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid phase ID")
		return
	}

	var req dto.AssignExpertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	phase, err := h.phaseService.AssignExpert(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}

// AttachProof uploads a proof photo for a phase (multipart form, field "photo")
func (h *PhaseHandler) AttachProof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid phase ID")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Photo file is required")
		return
	}
	if fileHeader.Size > maxProofPhotoSize {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Photo exceeds the maximum size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read photo file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	phase, err := h.phaseService.AttachProof(c.Request.Context(), id, userID, fileHeader.Filename, contentType, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, phase)
}

// DownloadProof returns a time-limited link to a phase's latest proof photo
func (h *PhaseHandler) DownloadProof(c *gin.Context) {
	id, err := uuid.Parse(c.Param("phaseId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid phase ID")
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return
	}
	role, ok := middleware.Role(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Role not found in context")
		return
	}

	link, err := h.phaseService.ProofDownloadURL(c.Request.Context(), id, userID, role)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, link)
}
