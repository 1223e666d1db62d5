package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateActivityRequest represents the request to add an activity to a
// project. Under a fixed-total project the budget must fit the remaining
// contracted headroom.
type CreateActivityRequest struct {
	ProjectID     uuid.UUID `json:"projectId" binding:"required"`
	Name          string    `json:"name" binding:"required,min=2,max=255"`
	Budget        float64   `json:"budget" binding:"gte=0"`
	PaymentStatus string    `json:"paymentStatus" binding:"omitempty,oneof=prepaye partiel paye"`
	Deadline      time.Time `json:"deadline" binding:"required"`
}

// ActivityResponse represents an activity with its derived progress
type ActivityResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProjectID     uuid.UUID       `json:"projectId"`
	Name          string          `json:"name"`
	Budget        float64         `json:"budget"`
	PaymentStatus string          `json:"paymentStatus"`
	Deadline      time.Time       `json:"deadline"`
	Progress      float64         `json:"progress"`
	Phases        []PhaseResponse `json:"phases,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
