package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PhaseProgress represents a phase's advancement state.
// Transitions: en_attente -> en_cours -> termine, with the reverse
// termine -> en_cours used when work is sent back for rework.
type PhaseProgress string

const (
	PhasePending    PhaseProgress = "en_attente"
	PhaseInProgress PhaseProgress = "en_cours"
	PhaseDone       PhaseProgress = "termine"
)

// Phase is the smallest assignable, billable unit of work under an activity
type Phase struct {
	BaseModel
	ActivityID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_phases_activite_id" json:"activity_id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	ExpertID      *uuid.UUID     `gorm:"type:uuid;index:idx_phases_expert_id" json:"expert_id"`
	ClientAmount  float64        `gorm:"not null;default:0" json:"client_amount"`
	ExpertFee     float64        `gorm:"not null;default:0" json:"expert_fee"`
	Progress      PhaseProgress  `gorm:"type:varchar(20);not null;default:'en_attente';index:idx_phases_progress" json:"progress"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(20);not null;default:'prepaye'" json:"payment_status"`
	Deadline      time.Time      `gorm:"type:timestamp;not null;index:idx_phases_deadline" json:"deadline"`
	ReworkCount   int            `gorm:"not null;default:0" json:"rework_count"`
	PhotoKeys     datatypes.JSON `gorm:"type:jsonb" json:"photo_keys"`
	ProofURL      string         `gorm:"type:text" json:"proof_url"`
	Activity      *Activity      `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"activity,omitempty"`
	Expert        *StaffProfile  `gorm:"foreignKey:ExpertID" json:"expert,omitempty"`
}

// TableName specifies the table name for Phase
func (Phase) TableName() string {
	return "phases"
}

// PhotoKeyList decodes the stored photo reference array. A missing or
// malformed column yields an empty list.
func (p *Phase) PhotoKeyList() []string {
	if len(p.PhotoKeys) == 0 {
		return []string{}
	}
	var keys []string
	if err := json.Unmarshal(p.PhotoKeys, &keys); err != nil {
		return []string{}
	}
	return keys
}

// SetPhotoKeys encodes the photo reference array back into the JSON column
func (p *Phase) SetPhotoKeys(keys []string) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	p.PhotoKeys = datatypes.JSON(raw)
	return nil
}
