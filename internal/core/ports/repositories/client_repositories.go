package repositories

import (
	"context"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a client owned by userID.
	FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients owned by userID ordered by name.
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
