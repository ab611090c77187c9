package domain_test

import (
	"testing"

	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEntryValue(t *testing.T) {
	for _, v := range []string{"0", "0.5", "1", "1.0", "0.50"} {
		assert.True(t, domain.IsValidEntryValue(decimal.RequireFromString(v)), v)
	}
	for _, v := range []string{"-1", "0.25", "0.7", "1.5", "2"} {
		assert.False(t, domain.IsValidEntryValue(decimal.RequireFromString(v)), v)
	}
}

func TestReportStatus(t *testing.T) {
	assert.True(t, domain.ReportStatusDraft.IsValid())
	assert.True(t, domain.ReportStatusCompleted.IsValid())
	assert.False(t, domain.ReportStatus("draft").IsValid())

	r := domain.ActivityReport{Status: domain.ReportStatusCompleted, Month: 2, Year: 2028}
	assert.True(t, r.IsCompleted())
	assert.False(t, r.IsDraft())
	assert.Equal(t, "2028-02-01", r.PeriodStart().Format("2006-01-02"))
}

func TestSumEntries(t *testing.T) {
	entries := []domain.ReportEntry{
		{Value: domain.EntryValueFull},
		{Value: domain.EntryValueHalf},
		{Value: domain.EntryValueNone},
		{Value: domain.EntryValueFull},
	}
	assert.True(t, domain.SumEntries(entries).Equal(decimal.RequireFromString("2.5")))
	assert.True(t, domain.SumEntries(nil).IsZero())
}

func TestEffectiveDailyRate(t *testing.T) {
	snap := decimal.NewFromInt(500)
	current := decimal.NewFromInt(650)

	row := domain.ReportingRow{ReportDailyRate: &snap, MissionDailyRate: &current}
	assert.True(t, row.EffectiveDailyRate().Equal(snap))

	row.ReportDailyRate = nil
	assert.True(t, row.EffectiveDailyRate().Equal(current))

	row.MissionDailyRate = nil
	assert.Nil(t, row.EffectiveDailyRate())
}

func TestRateSnapshot_Rate(t *testing.T) {
	s := domain.RateSnapshot{Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9"), "BAD": decimal.Zero}}

	usd, ok := s.Rate("USD")
	assert.True(t, ok)
	assert.True(t, usd.Equal(decimal.NewFromInt(1)))

	_, ok = s.Rate("EUR")
	assert.True(t, ok)
	_, ok = s.Rate("BAD")
	assert.False(t, ok)
	_, ok = s.Rate("JPY")
	assert.False(t, ok)
}
