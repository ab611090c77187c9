// Package memory keeps every repository in process memory. It backs the server when no
// database URL is configured and gives the service tests real repository semantics.
package memory

import (
	"sync"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
)

// Store implements every repository port over maps guarded by one mutex.
// Report mutations additionally hold a per-report lock for the whole read-modify-write.
type Store struct {
	mu        sync.RWMutex
	clients   map[string]domain.Client
	companies map[string]domain.Company
	missions  map[string]domain.Mission
	reports   map[string]domain.ActivityReport
	rates     map[string]domain.ExchangeRate

	lockMu      sync.Mutex
	reportLocks map[string]*sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		clients:     make(map[string]domain.Client),
		companies:   make(map[string]domain.Company),
		missions:    make(map[string]domain.Mission),
		reports:     make(map[string]domain.ActivityReport),
		rates:       make(map[string]domain.ExchangeRate),
		reportLocks: make(map[string]*sync.Mutex),
	}
}

// NewRepositoryProvider wires a fresh store into every repository slot.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewStore().Provider()
}

// Provider exposes s through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:       s,
		CompanyRepo:      s,
		MissionRepo:      s,
		ReportRepo:       s,
		ExchangeRateRepo: s,
		ReportingRepo:    s,
	}
}

var (
	_ portsrepo.ClientRepositoryFacade         = (*Store)(nil)
	_ portsrepo.CompanyRepositoryFacade        = (*Store)(nil)
	_ portsrepo.MissionRepositoryFacade        = (*Store)(nil)
	_ portsrepo.ActivityReportRepositoryFacade = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade   = (*Store)(nil)
	_ portsrepo.ReportingRepository            = (*Store)(nil)
)

func (s *Store) reportLock(reportID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.reportLocks[reportID]
	if !ok {
		l = &sync.Mutex{}
		s.reportLocks[reportID] = l
	}
	return l
}

// dropReportLock forgets the lock of a deleted report. Callers still holding it
// find the report gone once they acquire it.
func (s *Store) dropReportLock(reportID string) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	delete(s.reportLocks, reportID)
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
