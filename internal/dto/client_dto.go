package dto

import (
	"time"

	"github.com/google/uuid"

	"atelier-backoffice-api/internal/domain"
)

// CreateClientRequest represents the request to register a client
type CreateClientRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	Phone         string `json:"phone" binding:"required,max=50"`
	Email         string `json:"email" binding:"omitempty,email"`
	PreferredMode string `json:"preferredMode" binding:"omitempty,oneof=cash cheque virement mobile"`
}

// UpdateClientRequest represents the request to update a client.
// All fields are optional.
type UpdateClientRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Email         *string `json:"email" binding:"omitempty,email"`
	PreferredMode *string `json:"preferredMode" binding:"omitempty,oneof=cash cheque virement mobile"`
}

// ClientResponse represents a client
type ClientResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	PreferredMode string    `json:"preferredMode"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToClientResponse converts a domain client to its response form
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		PreferredMode: string(c.PreferredMode),
		CreatedAt:     c.CreatedAt,
	}
}

// ClientStatementResponse is a client's account overview: every project
// with its balance, plus the aggregated totals. CollectionRate is the
// share of the contracted amounts already paid, in percent;
// OperationalDebt is the cash received on projects the firm has not
// finished yet.
type ClientStatementResponse struct {
	Client           ClientResponse    `json:"client"`
	Projects         []ProjectResponse `json:"projects"`
	TotalContracted  float64           `json:"totalContracted"`
	TotalPaid        float64           `json:"totalPaid"`
	TotalOutstanding float64           `json:"totalOutstanding"`
	CollectionRate   float64           `json:"collectionRate"`
	OperationalDebt  float64           `json:"operationalDebt"`
}
