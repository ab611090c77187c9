package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp091.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.exchange = exchange
	f.key = key
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type recordingPublisher struct {
	events []domain.ReportEvent
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e domain.ReportEvent) error {
	r.events = append(r.events, e)
	return r.err
}

func sampleEvent() domain.ReportEvent {
	return domain.ReportEvent{
		Type:      domain.ReportEventStatusChanged,
		ReportID:  "rep-1",
		UserID:    "user-1",
		Status:    domain.ReportStatusCompleted,
		Month:     3,
		Year:      2026,
		TotalDays: decimal.NewFromFloat(18.5),
		At:        time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC),
	}
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisherWithChannel(ch, "tracker.events", "report.lifecycle")

	require.NoError(t, p.Publish(context.Background(), sampleEvent()))

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "tracker.events", ch.exchange)
	assert.Equal(t, "report.lifecycle", ch.key)
	msg := ch.msgs[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, string(domain.ReportEventStatusChanged), msg.Type)

	var decoded domain.ReportEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "rep-1", decoded.ReportID)
	assert.True(t, decoded.TotalDays.Equal(decimal.NewFromFloat(18.5)))

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newAMQPPublisherWithChannel(ch, "x", "k")

	err := p.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestMultiPublisher_FansOutAndJoinsErrors(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("boom")}
	m := MultiPublisher{ok, failing, NoopPublisher{}}

	err := m.Publish(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)
}

func TestPosthogPublisher_UninitialisedClientIsNoop(t *testing.T) {
	p := NewPosthogPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), sampleEvent()))
}
