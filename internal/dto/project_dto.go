package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateProjectRequest represents the request to open a project.
// For recommandation funding the contracted total starts at zero and
// grows with unpaid activities, so totalAmount is ignored.
type CreateProjectRequest struct {
	ClientID    uuid.UUID `json:"clientId" binding:"required"`
	Name        string    `json:"name" binding:"required,min=2,max=255"`
	FundingType string    `json:"fundingType" binding:"required,oneof=standard recommandation"`
	TotalAmount float64   `json:"totalAmount" binding:"gte=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Location    string    `json:"location" binding:"max=255"`
}

// RecordPaymentRequest represents a client payment against a project
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SetUrgencyRequest flags or unflags a project as urgent
type SetUrgencyRequest struct {
	Urgent           bool `json:"urgent"`
	InternalPriority *int `json:"internalPriority" binding:"omitempty,gte=0"`
}

// SetStatusRequest moves a project through its lifecycle
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=en_attente en_cours termine"`
}

// ProjectResponse represents a project with its derived fields
type ProjectResponse struct {
	ID               uuid.UUID          `json:"id"`
	ClientID         uuid.UUID          `json:"clientId"`
	ClientName       string             `json:"clientName,omitempty"`
	Name             string             `json:"name"`
	FundingType      string             `json:"fundingType"`
	TotalAmount      float64            `json:"totalAmount"`
	PaidAmount       float64            `json:"paidAmount"`
	RemainingAmount  float64            `json:"remainingAmount"`
	PaymentStatus    string             `json:"paymentStatus"`
	Status           string             `json:"status"`
	DisplayStatus    string             `json:"displayStatus"`
	Urgent           bool               `json:"urgent"`
	InternalPriority int                `json:"internalPriority"`
	Deadline         time.Time          `json:"deadline"`
	Late             bool               `json:"late"`
	Location         string             `json:"location"`
	Progress         float64            `json:"progress"`
	Activities       []ActivityResponse `json:"activities,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}
