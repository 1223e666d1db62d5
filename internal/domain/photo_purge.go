package domain

import (
	"time"

	"github.com/google/uuid"
)

// PhotoPurge queues a stored proof object for deletion. Rows are written
// when a phase is relaunched or removed and its photo references are
// dropped; the sweep job drains the queue against object storage.
type PhotoPurge struct {
	BaseModel
	PhaseID  uuid.UUID `gorm:"type:uuid;not null;index:idx_photo_purge_phase_id" json:"phase_id"`
	FileKey  string    `gorm:"type:text;not null" json:"file_key"`
	QueuedAt time.Time `gorm:"type:timestamp;not null" json:"queued_at"`
}

// TableName specifies the table name for PhotoPurge
func (PhotoPurge) TableName() string {
	return "photos_a_purger"
}
