package memory

import (
	"context"
	"net/http"
	"sort"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
)

func cloneMission(m domain.Mission) domain.Mission {
	if m.DailyRate != nil {
		rate := *m.DailyRate
		m.DailyRate = &rate
	}
	if m.EndDate != nil {
		end := *m.EndDate
		m.EndDate = &end
	}
	return m
}

func (s *Store) FindMissionByID(_ context.Context, userID, missionID string) (*domain.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.missions[missionID]
	if !ok || m.UserID != userID {
		return nil, apperrors.NewNotFoundError("mission " + missionID + " not found")
	}
	m = cloneMission(m)
	return &m, nil
}

func (s *Store) ListMissions(_ context.Context, userID string, filter portsrepo.MissionFilter) ([]domain.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Mission{}
	for _, m := range s.missions {
		if m.UserID != userID {
			continue
		}
		if filter.ClientID != "" && m.ClientID != filter.ClientID {
			continue
		}
		if filter.CompanyID != "" && m.CompanyID != filter.CompanyID {
			continue
		}
		if filter.ActiveOnly && !m.IsActive {
			continue
		}
		out = append(out, cloneMission(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) SaveMission(_ context.Context, mission domain.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.missions[mission.MissionID]; ok {
		return apperrors.NewAppError(http.StatusConflict, "mission "+mission.MissionID+" already exists", apperrors.ErrDuplicate)
	}
	if _, ok := s.clients[mission.ClientID]; !ok {
		return apperrors.NewValidationError("mission references an unknown client or company")
	}
	if _, ok := s.companies[mission.CompanyID]; !ok {
		return apperrors.NewValidationError("mission references an unknown client or company")
	}
	s.missions[mission.MissionID] = cloneMission(mission)
	return nil
}

func (s *Store) UpdateMission(_ context.Context, mission domain.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.missions[mission.MissionID]
	if !ok || existing.UserID != mission.UserID {
		return apperrors.NewNotFoundError("mission " + mission.MissionID + " not found")
	}
	// client, company and audit creation fields are immutable
	mission.ClientID = existing.ClientID
	mission.CompanyID = existing.CompanyID
	mission.CreatedAt = existing.CreatedAt
	mission.CreatedBy = existing.CreatedBy
	s.missions[mission.MissionID] = cloneMission(mission)
	return nil
}

func (s *Store) DeleteMission(_ context.Context, userID, missionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.missions[missionID]
	if !ok || m.UserID != userID {
		return apperrors.NewNotFoundError("mission " + missionID + " not found")
	}
	for _, r := range s.reports {
		if r.MissionID == missionID {
			return apperrors.NewValidationError("mission " + missionID + " still has activity reports")
		}
	}
	delete(s.missions, missionID)
	return nil
}
