package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense is an append-only cost record charged against a project.
// Expenses are never edited after creation.
type Expense struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_depenses_projet_id" json:"project_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Motive    string    `gorm:"type:text;not null" json:"motive"`
	SpentAt   time.Time `gorm:"type:timestamp;not null" json:"spent_at"`
	Project   *Project  `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// TableName specifies the table name for Expense
func (Expense) TableName() string {
	return "depenses_projets"
}
