package dto

import "time"

// LoginRequest represents the credentials submitted at login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token and the authenticated profile
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Profile   StaffResponse `json:"profile"`
}
