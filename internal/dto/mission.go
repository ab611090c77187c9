package dto

import (
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateMissionRequest defines the data needed to create a new mission.
type CreateMissionRequest struct {
	Name      string           `json:"name" binding:"required"`
	ClientID  string           `json:"clientID" binding:"required"`
	CompanyID string           `json:"companyID"` // Optional, defaults to the user's default company
	DailyRate *decimal.Decimal `json:"dailyRate"`
	StartDate time.Time        `json:"startDate" binding:"required"`
	EndDate   *time.Time       `json:"endDate"`
	IsActive  *bool            `json:"isActive"` // Optional, defaults to true
}

// UpdateMissionRequest defines the data allowed for updating a mission.
type UpdateMissionRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1"`
	DailyRate      *decimal.Decimal `json:"dailyRate"`
	ClearDailyRate bool             `json:"clearDailyRate"`
	IsActive       *bool            `json:"isActive"`
	StartDate      *time.Time       `json:"startDate"`
	EndDate        *time.Time       `json:"endDate"`
}

// ListMissionsParams defines query parameters for listing missions.
type ListMissionsParams struct {
	ClientID   string `form:"clientID"`
	CompanyID  string `form:"companyID"`
	ActiveOnly bool   `form:"active"`
}

// MissionResponse defines the data returned for a mission.
type MissionResponse struct {
	MissionID     string           `json:"missionID"`
	Name          string           `json:"name"`
	ClientID      string           `json:"clientID"`
	CompanyID     string           `json:"companyID"`
	DailyRate     *decimal.Decimal `json:"dailyRate"`
	IsActive      bool             `json:"isActive"`
	StartDate     time.Time        `json:"startDate"`
	EndDate       *time.Time       `json:"endDate"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToMissionResponse converts a domain.Mission to MissionResponse DTO
func ToMissionResponse(m *domain.Mission) MissionResponse {
	return MissionResponse{
		MissionID:     m.MissionID,
		Name:          m.Name,
		ClientID:      m.ClientID,
		CompanyID:     m.CompanyID,
		DailyRate:     m.DailyRate,
		IsActive:      m.IsActive,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// ToListMissionResponse converts a slice of domain.Mission to a slice of MissionResponse DTOs
func ToListMissionResponse(missions []domain.Mission) []MissionResponse {
	res := make([]MissionResponse, len(missions))
	for i := range missions {
		res[i] = ToMissionResponse(&missions[i])
	}
	return res
}
