package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
)

// FindCompletedReportRows joins the user's completed reports of year to their mission,
// client and company. Reports whose joins no longer resolve are skipped.
func (s *Store) FindCompletedReportRows(_ context.Context, userID string, year int) ([]domain.ReportingRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := []domain.ReportingRow{}
	for _, r := range s.reports {
		if r.UserID != userID || r.Year != year || r.Status != domain.ReportStatusCompleted {
			continue
		}
		m, ok := s.missions[r.MissionID]
		if !ok {
			continue
		}
		c, ok := s.clients[m.ClientID]
		if !ok {
			continue
		}
		co, ok := s.companies[m.CompanyID]
		if !ok {
			continue
		}
		row := domain.ReportingRow{
			ReportID:       r.ReportID,
			Month:          r.Month,
			Year:           r.Year,
			TotalDays:      r.TotalDays,
			MissionID:      m.MissionID,
			ClientID:       c.ClientID,
			ClientName:     c.Name,
			ClientCurrency: c.Currency,
			CompanyID:      co.CompanyID,
			CompanyName:    co.Name,
		}
		if r.DailyRate != nil {
			rate := *r.DailyRate
			row.ReportDailyRate = &rate
		}
		if m.DailyRate != nil {
			rate := *m.DailyRate
			row.MissionDailyRate = &rate
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		if rows[i].ClientName != rows[j].ClientName {
			return rows[i].ClientName < rows[j].ClientName
		}
		return rows[i].ReportID < rows[j].ReportID
	})
	return rows, nil
}
