package repositories

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// MissionFilter narrows a mission listing. Empty fields are ignored.
type MissionFilter struct {
	ClientID   string
	CompanyID  string
	ActiveOnly bool
}

// MissionReader defines read operations for mission data
type MissionReader interface {
	FindMissionByID(ctx context.Context, userID, missionID string) (*domain.Mission, error)
	ListMissions(ctx context.Context, userID string, filter MissionFilter) ([]domain.Mission, error)
}

// MissionWriter defines write operations for mission data
type MissionWriter interface {
	SaveMission(ctx context.Context, mission domain.Mission) error
	UpdateMission(ctx context.Context, mission domain.Mission) error
	DeleteMission(ctx context.Context, userID, missionID string) error
}

// MissionRepositoryFacade combines all mission-related repository interfaces
type MissionRepositoryFacade interface {
	MissionReader
	MissionWriter
}
