package dto

import (
	"time"

	"github.com/google/uuid"

	"atelier-backoffice-api/internal/domain"
)

// CreateStaffRequest represents the request to enroll a staff member
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Title    string `json:"title" binding:"max=255"`
	Role     string `json:"role" binding:"required,oneof=direction assistance expert"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateStaffRequest represents the request to update a staff member.
// All fields are optional; the role and email are immutable.
type UpdateStaffRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Title    *string `json:"title" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// StaffResponse represents a staff member
type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToStaffResponse converts a domain profile to its response form
func ToStaffResponse(p *domain.StaffProfile) StaffResponse {
	return StaffResponse{
		ID:        p.ID,
		Name:      p.Name,
		Title:     p.Title,
		Role:      string(p.Role),
		Email:     p.Email,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}
