package dto

import (
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// CreateClientRequest defines the data needed to create a new client.
type CreateClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Currency       string `json:"currency" binding:"required,currency"`
	HolidayCountry string `json:"holidayCountry" binding:"required,len=2,alpha"`
}

// UpdateClientRequest defines the data allowed for updating a client.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateClientRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1"`
	Currency       *string `json:"currency" binding:"omitempty,currency"`
	HolidayCountry *string `json:"holidayCountry" binding:"omitempty,len=2,alpha"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID       string    `json:"clientID"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	HolidayCountry string    `json:"holidayCountry"`
	CreatedAt      time.Time `json:"createdAt"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}

// ToClientResponse converts a domain.Client to ClientResponse DTO
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:       c.ClientID,
		Name:           c.Name,
		Currency:       c.Currency,
		HolidayCountry: c.HolidayCountry,
		CreatedAt:      c.CreatedAt,
		LastUpdatedAt:  c.LastUpdatedAt,
	}
}

// ToListClientResponse converts a slice of domain.Client to a slice of ClientResponse DTOs
func ToListClientResponse(clients []domain.Client) []ClientResponse {
	res := make([]ClientResponse, len(clients))
	for i := range clients {
		res[i] = ToClientResponse(&clients[i])
	}
	return res
}
