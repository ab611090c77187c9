package memory

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/activity_tracker/internal/core/ports/repositories"
)

func cloneEntries(entries []domain.ReportEntry) []domain.ReportEntry {
	if entries == nil {
		return nil
	}
	out := make([]domain.ReportEntry, len(entries))
	for i, e := range entries {
		e.Note = cloneString(e.Note)
		e.HolidayName = cloneString(e.HolidayName)
		out[i] = e
	}
	return out
}

func cloneReport(r domain.ActivityReport) domain.ActivityReport {
	r.Note = cloneString(r.Note)
	if r.DailyRate != nil {
		rate := *r.DailyRate
		r.DailyRate = &rate
	}
	r.Entries = cloneEntries(r.Entries)
	return r
}

func (s *Store) findOwnedReport(userID, reportID string) (domain.ActivityReport, error) {
	r, ok := s.reports[reportID]
	if !ok || r.UserID != userID {
		return domain.ActivityReport{}, apperrors.NewNotFoundError("activity report " + reportID + " not found")
	}
	return cloneReport(r), nil
}

func (s *Store) FindReportByID(_ context.Context, userID, reportID string) (*domain.ActivityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, err := s.findOwnedReport(userID, reportID)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) FindReportsByUser(_ context.Context, userID string, filter domain.ReportFilter) ([]domain.ActivityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.ActivityReport{}
	for _, r := range s.reports {
		if r.UserID != userID {
			continue
		}
		if filter.Year != 0 && r.Year != filter.Year {
			continue
		}
		if filter.Month != 0 && r.Month != filter.Month {
			continue
		}
		if filter.MissionID != "" && r.MissionID != filter.MissionID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		c := cloneReport(r)
		c.Entries = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].MissionID < out[j].MissionID
	})
	return out, nil
}

func (s *Store) FindEntriesByReport(ctx context.Context, userID, reportID string) ([]domain.ReportEntry, error) {
	r, err := s.FindReportByID(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	return r.Entries, nil
}

func (s *Store) CountReportsByMission(_ context.Context, userID, missionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.reports {
		if r.UserID == userID && r.MissionID == missionID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateReportWithEntries(_ context.Context, report domain.ActivityReport, entries []domain.ReportEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.missions[report.MissionID]; !ok {
		return apperrors.NewValidationError("mission " + report.MissionID + " does not exist")
	}
	for _, r := range s.reports {
		if r.ReportID == report.ReportID || (r.MissionID == report.MissionID && r.Month == report.Month && r.Year == report.Year) {
			return apperrors.NewAppError(http.StatusConflict,
				fmt.Sprintf("a report already exists for mission %s in %04d-%02d", report.MissionID, report.Year, report.Month),
				apperrors.ErrDuplicate)
		}
	}
	stored := cloneReport(report)
	stored.Entries = cloneEntries(entries)
	s.reports[report.ReportID] = stored
	return nil
}

// MutateReport runs fn on a private copy while holding the report's lock and
// publishes the copy only when fn succeeds.
func (s *Store) MutateReport(_ context.Context, userID, reportID string, fn portsrepo.ReportMutation) (*domain.ActivityReport, error) {
	l := s.reportLock(reportID)
	l.Lock()
	defer l.Unlock()

	s.mu.RLock()
	working, err := s.findOwnedReport(userID, reportID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if err := fn(&working); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, ok := s.reports[reportID]; !ok {
		s.mu.Unlock()
		return nil, apperrors.NewNotFoundError("activity report " + reportID + " not found")
	}
	s.reports[reportID] = cloneReport(working)
	s.mu.Unlock()
	return &working, nil
}

func (s *Store) DeleteReport(_ context.Context, userID, reportID string, guard portsrepo.ReportMutation) (*domain.ActivityReport, error) {
	l := s.reportLock(reportID)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	report, err := s.findOwnedReport(userID, reportID)
	if err != nil {
		return nil, err
	}
	if guard != nil {
		if err := guard(&report); err != nil {
			return nil, err
		}
	}
	delete(s.reports, reportID)
	s.dropReportLock(reportID)
	return &report, nil
}
