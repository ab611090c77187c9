package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
)

// stubOracle treats Saturday and Sunday as weekend and serves holidays from a fixed table.
type stubOracle struct {
	holidays map[string]string // "2006-01-02" -> name
	working  int
}

func (o stubOracle) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (o stubOracle) HolidayName(date time.Time, _ string) (string, bool) {
	name, ok := o.holidays[date.Format(time.DateOnly)]
	return name, ok
}

func (o stubOracle) WorkingDaysInMonth(int, time.Month, string) int { return 0 }

func (o stubOracle) WorkingDaysInYear(int, string) int { return o.working }

var _ portssvc.HolidayOracle = stubOracle{}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ReportEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.ReportEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []domain.ReportEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ReportEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type textRenderer struct {
	rendered []portssvc.ExportDocument
}

func (r *textRenderer) Render(_ context.Context, doc portssvc.ExportDocument, w io.Writer) error {
	r.rendered = append(r.rendered, doc)
	_, err := io.WriteString(w, doc.Report.ReportID+":"+doc.Report.TotalDays.String())
	return err
}

func (r *textRenderer) FileExtension() string { return "txt" }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
