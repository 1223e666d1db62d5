package domain

import (
	"time"

	"github.com/google/uuid"
)

// FundingType selects how a project's contracted total behaves
type FundingType string

const (
	// FundingStandard fixes the contracted total at creation; activity
	// budgets are validated against the remaining headroom.
	FundingStandard FundingType = "standard"
	// FundingRecommandation starts the contracted total at zero and grows
	// it as unpaid activities are added (cumulative client debt).
	FundingRecommandation FundingType = "recommandation"
)

// PaymentStatus tracks how much of the contracted amount has been settled
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "prepaye"
	PaymentPartial PaymentStatus = "partiel"
	PaymentPaid    PaymentStatus = "paye"
)

// ProjectStatus represents a project's lifecycle state
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "en_attente"
	ProjectInProgress ProjectStatus = "en_cours"
	ProjectDone       ProjectStatus = "termine"
)

// Project represents a contracted engagement with a client
type Project struct {
	BaseModel
	ClientID         uuid.UUID     `gorm:"type:uuid;not null;index:idx_projets_client_id" json:"client_id"`
	Name             string        `gorm:"type:varchar(255);not null" json:"name"`
	FundingType      FundingType   `gorm:"type:varchar(20);not null;default:'standard'" json:"funding_type"`
	TotalAmount      float64       `gorm:"not null;default:0" json:"total_amount"`
	PaidAmount       float64       `gorm:"not null;default:0" json:"paid_amount"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(20);not null;default:'prepaye'" json:"payment_status"`
	Status           ProjectStatus `gorm:"type:varchar(20);not null;default:'en_attente';index:idx_projets_status" json:"status"`
	Urgent           bool          `gorm:"not null;default:false" json:"urgent"`
	InternalPriority int           `gorm:"not null;default:0" json:"internal_priority"`
	Deadline         time.Time     `gorm:"type:timestamp;not null;index:idx_projets_deadline" json:"deadline"`
	Location         string        `gorm:"type:varchar(255)" json:"location"`
	Client           *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Activities       []Activity    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
	Expenses         []Expense     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projets"
}

// DerivePaymentStatus computes the settlement state from the paid and
// contracted totals. A zero contracted total with no payment stays unpaid.
func DerivePaymentStatus(paid, total float64) PaymentStatus {
	switch {
	case paid <= 0:
		return PaymentUnpaid
	case paid < total:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}
