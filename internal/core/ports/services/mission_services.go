package services

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/SscSPs/activity_tracker/internal/dto"
)

// MissionReaderSvc defines read operations for missions
type MissionReaderSvc interface {
	GetMissionByID(ctx context.Context, userID, missionID string) (*domain.Mission, error)
	ListMissions(ctx context.Context, userID string, params dto.ListMissionsParams) ([]domain.Mission, error)
}

// MissionWriterSvc defines write operations for missions
type MissionWriterSvc interface {
	CreateMission(ctx context.Context, req dto.CreateMissionRequest, userID string) (*domain.Mission, error)
	UpdateMission(ctx context.Context, missionID string, req dto.UpdateMissionRequest, userID string) (*domain.Mission, error)

	// DeleteMission removes a mission that no report references.
	DeleteMission(ctx context.Context, missionID, userID string) error
}

// MissionSvcFacade combines all mission-related service interfaces
type MissionSvcFacade interface {
	MissionReaderSvc
	MissionWriterSvc
}
