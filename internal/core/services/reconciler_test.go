package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/apperrors"
	"github.com/SscSPs/activity_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func newTestReconciler() *Reconciler {
	r := NewReconciler(stubOracle{holidays: map[string]string{"2026-06-03": "Test Day"}})
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("e%02d", n)
	}
	return r
}

func reportWithEntries(t *testing.T, r *Reconciler, year, month int) *domain.ActivityReport {
	t.Helper()
	entries, err := r.CreateEntriesForPeriod("r1", year, month, "FR")
	require.NoError(t, err)
	return &domain.ActivityReport{ReportID: "r1", Year: year, Month: month, Status: domain.ReportStatusDraft, Entries: entries}
}

func TestCreateEntriesForPeriod_DayCounts(t *testing.T) {
	cases := []struct {
		year, month, days int
	}{
		{2026, 2, 28},
		{2028, 2, 29},
		{2100, 2, 28},
		{2000, 2, 29},
		{2026, 4, 30},
		{2026, 12, 31},
	}
	r := newTestReconciler()
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d-%02d", tc.year, tc.month), func(t *testing.T) {
			entries, err := r.CreateEntriesForPeriod("r1", tc.year, tc.month, "FR")
			require.NoError(t, err)
			require.Len(t, entries, tc.days)

			for i, e := range entries {
				assert.Equal(t, i+1, e.Date.Day())
				assert.Equal(t, time.Month(tc.month), e.Date.Month())
				assert.True(t, e.Value.IsZero())
				assert.Nil(t, e.Note)
				assert.Equal(t, "r1", e.ReportID)
			}
		})
	}
}

func TestCreateEntriesForPeriod_FlagsWeekendsAndHolidays(t *testing.T) {
	r := newTestReconciler()
	entries, err := r.CreateEntriesForPeriod("r1", 2026, 6, "FR")
	require.NoError(t, err)

	// 2026-06-01 is a Monday.
	assert.False(t, entries[0].IsWeekend)
	assert.True(t, entries[5].IsWeekend)
	assert.True(t, entries[6].IsWeekend)
	assert.True(t, entries[2].IsHoliday)
	require.NotNil(t, entries[2].HolidayName)
	assert.Equal(t, "Test Day", *entries[2].HolidayName)
	assert.False(t, entries[3].IsHoliday)
	assert.Nil(t, entries[3].HolidayName)
}

func TestCreateEntriesForPeriod_RejectsBadPeriod(t *testing.T) {
	r := newTestReconciler()
	_, err := r.CreateEntriesForPeriod("r1", 2026, 13, "FR")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = r.CreateEntriesForPeriod("r1", 1999, 1, "FR")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApplyEntryUpdates_TotalIsSumOfEntries(t *testing.T) {
	r := newTestReconciler()
	report := &domain.ActivityReport{ReportID: "r1", Entries: []domain.ReportEntry{
		{EntryID: "a"}, {EntryID: "b"}, {EntryID: "c"}, {EntryID: "d"}, {EntryID: "e"}, {EntryID: "f"},
	}}

	err := r.ApplyEntryUpdates(report, []domain.EntryUpdate{
		{EntryID: "a", Value: decPtr("1")},
		{EntryID: "b", Value: decPtr("0.5")},
		{EntryID: "c", Value: decPtr("0")},
		{EntryID: "d", Value: decPtr("1")},
	})
	require.NoError(t, err)
	assert.True(t, report.TotalDays.Equal(dec("2.5")), "got %s", report.TotalDays)
	assert.True(t, report.TotalDays.Equal(domain.SumEntries(report.Entries)))
}

func TestApplyEntryUpdates_PartialUpdates(t *testing.T) {
	r := newTestReconciler()
	report := &domain.ActivityReport{ReportID: "r1", Entries: []domain.ReportEntry{
		{EntryID: "a", Value: dec("1"), Note: strPtr("kick-off")},
		{EntryID: "b", Value: dec("0.5"), Note: strPtr("remote")},
	}}

	err := r.ApplyEntryUpdates(report, []domain.EntryUpdate{
		{EntryID: "a", Note: strPtr("workshop"), NoteSet: true},
		{EntryID: "b", NoteSet: true},
	})
	require.NoError(t, err)

	assert.True(t, report.Entries[0].Value.Equal(dec("1")))
	assert.Equal(t, "workshop", *report.Entries[0].Note)
	assert.True(t, report.Entries[1].Value.Equal(dec("0.5")))
	assert.Nil(t, report.Entries[1].Note)
	assert.True(t, report.TotalDays.Equal(dec("1.5")))
}

func TestApplyEntryUpdates_RejectsWholeBatch(t *testing.T) {
	cases := []struct {
		name    string
		updates []domain.EntryUpdate
		msg     string
	}{
		{"foreign entry", []domain.EntryUpdate{{EntryID: "a", Value: decPtr("1")}, {EntryID: "zz", Value: decPtr("1")}}, "zz"},
		{"invalid value", []domain.EntryUpdate{{EntryID: "a", Value: decPtr("1")}, {EntryID: "b", Value: decPtr("0.75")}}, "0.75"},
		{"negative value", []domain.EntryUpdate{{EntryID: "a", Value: decPtr("-1")}}, "-1"},
		{"duplicate id", []domain.EntryUpdate{{EntryID: "a", Value: decPtr("1")}, {EntryID: "a", Value: decPtr("0")}}, "more than once"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestReconciler()
			report := &domain.ActivityReport{ReportID: "r1", Entries: []domain.ReportEntry{{EntryID: "a"}, {EntryID: "b"}}}

			err := r.ApplyEntryUpdates(report, tc.updates)
			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
			assert.True(t, report.Entries[0].Value.IsZero(), "no update may be applied from a rejected batch")
		})
	}
}

func TestApplyEntryUpdates_Idempotent(t *testing.T) {
	r := newTestReconciler()
	report := reportWithEntries(t, r, 2026, 6)
	updates := []domain.EntryUpdate{
		{EntryID: report.Entries[0].EntryID, Value: decPtr("1")},
		{EntryID: report.Entries[1].EntryID, Value: decPtr("0.5"), Note: strPtr("half"), NoteSet: true},
	}

	require.NoError(t, r.ApplyEntryUpdates(report, updates))
	once := report.TotalDays
	require.NoError(t, r.ApplyEntryUpdates(report, updates))

	assert.True(t, once.Equal(report.TotalDays))
	assert.True(t, report.TotalDays.Equal(dec("1.5")))
}

func TestAutoFill_SkipsWeekendsAndHolidays(t *testing.T) {
	r := newTestReconciler()
	report := reportWithEntries(t, r, 2026, 6)
	r.AutoFill(report)

	workdays := 0
	for _, e := range report.Entries {
		if e.IsWeekend || e.IsHoliday {
			assert.True(t, e.Value.IsZero(), "entry %s", e.Date.Format(time.DateOnly))
			continue
		}
		workdays++
		assert.True(t, e.Value.Equal(domain.EntryValueFull))
	}
	// 30 days, 8 weekend days, one holiday.
	assert.Equal(t, 21, workdays)
	assert.True(t, report.TotalDays.Equal(decimal.NewFromInt(21)))

	r.AutoFill(report)
	assert.True(t, report.TotalDays.Equal(decimal.NewFromInt(21)))
}

func TestAutoFill_KeepsManualWeekendWork(t *testing.T) {
	r := newTestReconciler()
	report := reportWithEntries(t, r, 2026, 6)
	saturday := report.Entries[5].EntryID
	require.NoError(t, r.ApplyEntryUpdates(report, []domain.EntryUpdate{{EntryID: saturday, Value: decPtr("0.5")}}))

	r.AutoFill(report)

	assert.True(t, report.Entries[5].Value.Equal(dec("0.5")))
	assert.True(t, report.TotalDays.Equal(dec("21.5")))
}

func TestClear_ZeroesEverything(t *testing.T) {
	r := newTestReconciler()
	report := reportWithEntries(t, r, 2026, 6)
	r.AutoFill(report)
	report.Entries[0].Note = strPtr("note")

	r.Clear(report)
	r.Clear(report)

	assert.True(t, report.TotalDays.IsZero())
	for _, e := range report.Entries {
		assert.True(t, e.Value.IsZero())
		assert.Nil(t, e.Note)
	}
}
