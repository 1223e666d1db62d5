package domain

// PaymentMode represents a client's preferred settlement channel
type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "cash"
	PaymentModeCheque   PaymentMode = "cheque"
	PaymentModeVirement PaymentMode = "virement"
	PaymentModeMobile   PaymentMode = "mobile"
)

// Client represents a customer of the firm. Clients are referenced by
// projects but never owned by them; deletion is refused while a project
// still points at the record.
type Client struct {
	BaseModel
	Name          string      `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string      `gorm:"type:varchar(50);not null" json:"phone"`
	Email         string      `gorm:"type:varchar(255)" json:"email"`
	PreferredMode PaymentMode `gorm:"type:varchar(20);not null;default:'cash'" json:"preferred_mode"`
	Projects      []Project   `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}
