package events

import (
	"context"
	"errors"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
	"github.com/SscSPs/activity_tracker/internal/utils"
)

// NoopPublisher discards every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.ReportEvent) error { return nil }

// PosthogPublisher records report lifecycle events as product analytics.
type PosthogPublisher struct {
	client *utils.PosthogClientWrapper
}

// NewPosthogPublisher wraps client; an uninitialised client drops events.
func NewPosthogPublisher(client *utils.PosthogClientWrapper) *PosthogPublisher {
	return &PosthogPublisher{client: client}
}

func (p *PosthogPublisher) Publish(_ context.Context, event domain.ReportEvent) error {
	return p.client.Enqueue(event.UserID, string(event.Type), map[string]any{
		"report_id":  event.ReportID,
		"status":     string(event.Status),
		"month":      event.Month,
		"year":       event.Year,
		"total_days": event.TotalDays.String(),
	})
}

// MultiPublisher fans an event out to every publisher and joins their errors.
type MultiPublisher []portssvc.EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, event domain.ReportEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ portssvc.EventPublisher = NoopPublisher{}
	_ portssvc.EventPublisher = (*PosthogPublisher)(nil)
	_ portssvc.EventPublisher = MultiPublisher(nil)
)
