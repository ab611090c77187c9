package memory

import (
	"context"
	"net/http"
	"sort"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

func (s *Store) FindClientByID(_ context.Context, userID, clientID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok || c.UserID != userID {
		return nil, apperrors.NewNotFoundError("client " + clientID + " not found")
	}
	return &c, nil
}

func (s *Store) ListClients(_ context.Context, userID string) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Client{}
	for _, c := range s.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ClientID < out[j].ClientID
	})
	return out, nil
}

func (s *Store) SaveClient(_ context.Context, client domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[client.ClientID]; ok {
		return apperrors.NewAppError(http.StatusConflict, "client "+client.ClientID+" already exists", apperrors.ErrDuplicate)
	}
	s.clients[client.ClientID] = client
	return nil
}

func (s *Store) UpdateClient(_ context.Context, client domain.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.clients[client.ClientID]
	if !ok || existing.UserID != client.UserID {
		return apperrors.NewNotFoundError("client " + client.ClientID + " not found")
	}
	client.AuditFields.CreatedAt = existing.CreatedAt
	client.AuditFields.CreatedBy = existing.CreatedBy
	s.clients[client.ClientID] = client
	return nil
}

func (s *Store) DeleteClient(_ context.Context, userID, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[clientID]
	if !ok || c.UserID != userID {
		return apperrors.NewNotFoundError("client " + clientID + " not found")
	}
	for _, m := range s.missions {
		if m.ClientID == clientID {
			return apperrors.NewValidationError("client " + clientID + " still has missions")
		}
	}
	delete(s.clients, clientID)
	return nil
}
