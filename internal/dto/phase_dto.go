package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePhaseRequest represents the request to add a phase under an
// activity. Under a fixed-total project the client amounts of an
// activity's phases may not exceed the activity budget.
type CreatePhaseRequest struct {
	ActivityID   uuid.UUID  `json:"activityId" binding:"required"`
	Name         string     `json:"name" binding:"required,min=2,max=255"`
	Description  string     `json:"description" binding:"max=2000"`
	ExpertID     *uuid.UUID `json:"expertId"`
	ClientAmount float64    `json:"clientAmount" binding:"gte=0"`
	ExpertFee    float64    `json:"expertFee" binding:"gte=0"`
	Deadline     time.Time  `json:"deadline" binding:"required"`
}

// SetPhaseProgressRequest moves a phase through its state machine
type SetPhaseProgressRequest struct {
	Progress string `json:"progress" binding:"required,oneof=en_attente en_cours termine"`
}

// AssignExpertRequest assigns or reassigns the expert on a phase.
// The fee and deadline can be adjusted in the same call; the client
// amount is fixed at creation.
type AssignExpertRequest struct {
	ExpertID  uuid.UUID  `json:"expertId" binding:"required"`
	ExpertFee *float64   `json:"expertFee" binding:"omitempty,gte=0"`
	Deadline  *time.Time `json:"deadline"`
}

// ProofDownloadResponse carries a time-limited link to a phase's most
// recent proof photo
type ProofDownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PhaseResponse represents a phase with its derived lateness fields
type PhaseResponse struct {
	ID            uuid.UUID  `json:"id"`
	ActivityID    uuid.UUID  `json:"activityId"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	ExpertID      *uuid.UUID `json:"expertId"`
	ExpertName    string     `json:"expertName,omitempty"`
	ClientAmount  float64    `json:"clientAmount"`
	ExpertFee     float64    `json:"expertFee"`
	Progress      string     `json:"progress"`
	PaymentStatus string     `json:"paymentStatus"`
	Deadline      time.Time  `json:"deadline"`
	Late          bool       `json:"late"`
	DaysLate      int        `json:"daysLate"`
	ScheduleLabel string     `json:"scheduleLabel"`
	Penalty       float64    `json:"penalty"`
	NetFee        float64    `json:"netFee"`
	ReworkCount   int        `json:"reworkCount"`
	PhotoURLs     []string   `json:"photoUrls"`
	ProofURL      string     `json:"proofUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
