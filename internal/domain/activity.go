package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity represents a budgeted sub-division of a project's scope.
// Activities are never edited after creation; they disappear only when
// the owning project is deleted.
type Activity struct {
	BaseModel
	ProjectID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_activites_projet_id" json:"project_id"`
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Budget        float64       `gorm:"not null;default:0" json:"budget"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'prepaye'" json:"payment_status"`
	Deadline      time.Time     `gorm:"type:timestamp;not null" json:"deadline"`
	Project       *Project      `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Phases        []Phase       `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"phases,omitempty"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activites"
}
