package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/dto"
	"github.com/google/uuid"
)

type clientService struct {
	BaseService
	clientRepo  portsrepo.ClientRepositoryFacade
	missionRepo portsrepo.MissionReader
}

// NewClientService creates a new client service.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, missionRepo portsrepo.MissionReader) portssvc.ClientSvcFacade {
	return &clientService{
		BaseService: newBaseService(),
		clientRepo:  clientRepo,
		missionRepo: missionRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}
	currency := strings.ToUpper(req.Currency)
	if !isCurrencyCode(currency) {
		return nil, fmt.Errorf("%w: %q is not an ISO 4217 code", apperrors.ErrValidation, req.Currency)
	}

	client := domain.Client{
		ClientID:       uuid.NewString(),
		Name:           name,
		Currency:       currency,
		HolidayCountry: strings.ToUpper(req.HolidayCountry),
		UserID:         userID,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client", slog.String("name", name))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClients(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// UpdateClient applies the provided fields. Existing reports keep their holiday snapshot.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error) {
	client, err := s.GetClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: client name cannot be empty", apperrors.ErrValidation)
		}
		client.Name = name
	}
	if req.Currency != nil {
		currency := strings.ToUpper(*req.Currency)
		if !isCurrencyCode(currency) {
			return nil, fmt.Errorf("%w: %q is not an ISO 4217 code", apperrors.ErrValidation, *req.Currency)
		}
		client.Currency = currency
	}
	if req.HolidayCountry != nil {
		client.HolidayCountry = strings.ToUpper(*req.HolidayCountry)
	}
	client.Touch(userID, s.now())

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, clientID, userID string) error {
	if _, err := s.GetClientByID(ctx, userID, clientID); err != nil {
		return err
	}
	missions, err := s.missionRepo.ListMissions(ctx, userID, portsrepo.MissionFilter{ClientID: clientID})
	if err != nil {
		return fmt.Errorf("failed to check client missions: %w", err)
	}
	if len(missions) > 0 {
		return fmt.Errorf("%w: client %s still has %d mission(s)", apperrors.ErrValidation, clientID, len(missions))
	}
	if err := s.clientRepo.DeleteClient(ctx, userID, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}
