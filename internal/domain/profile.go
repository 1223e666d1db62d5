package domain

// StaffRole is the closed set of roles a staff member can hold
type StaffRole string

const (
	RoleDirection  StaffRole = "direction"
	RoleAssistance StaffRole = "assistance"
	RoleExpert     StaffRole = "expert"
)

// ValidRole reports whether r is one of the three known roles
func ValidRole(r StaffRole) bool {
	switch r {
	case RoleDirection, RoleAssistance, RoleExpert:
		return true
	}
	return false
}

// StaffProfile represents a staff member. The ID doubles as the auth
// identity; deleting the profile revokes access.
type StaffProfile struct {
	BaseModel
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	Role         StaffRole `gorm:"type:varchar(20);not null;index:idx_profils_role" json:"role"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_profils_email" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName specifies the table name for StaffProfile
func (StaffProfile) TableName() string {
	return "profils"
}
