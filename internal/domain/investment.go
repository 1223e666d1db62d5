package domain

// Investment is a named cumulative envelope. The total only ever grows:
// it is set at creation and later increased by positive top-ups.
type Investment struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	TotalAmount float64 `gorm:"not null;default:0" json:"total_amount"`
}

// TableName specifies the table name for Investment
func (Investment) TableName() string {
	return "investissements"
}
