package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allowed entry values: nothing, half a day, a full day.
var (
	EntryValueNone = decimal.Zero
	EntryValueHalf = decimal.NewFromFloat(0.5)
	EntryValueFull = decimal.NewFromInt(1)
)

// IsValidEntryValue reports whether v is exactly 0, 0.5 or 1.
func IsValidEntryValue(v decimal.Decimal) bool {
	return v.Equal(EntryValueNone) || v.Equal(EntryValueHalf) || v.Equal(EntryValueFull)
}

// ReportEntry is a single calendar day of a report. IsWeekend, IsHoliday and
// HolidayName are captured when the report is created and never recomputed.
type ReportEntry struct {
	EntryID     string          `json:"entryID"`
	ReportID    string          `json:"reportID"`
	Date        time.Time       `json:"date"`
	Value       decimal.Decimal `json:"value"`
	Note        *string         `json:"note,omitempty"`
	IsWeekend   bool            `json:"isWeekend"`
	IsHoliday   bool            `json:"isHoliday"`
	HolidayName *string         `json:"holidayName,omitempty"`
}

// IsWorkday reports whether the entry is neither a weekend nor a holiday.
func (e *ReportEntry) IsWorkday() bool {
	return !e.IsWeekend && !e.IsHoliday
}

// EntryUpdate is a partial update of one entry. Omitted fields are untouched;
// NoteSet with a nil Note clears the note.
type EntryUpdate struct {
	EntryID string
	Value   *decimal.Decimal
	Note    *string
	NoteSet bool
}

// SumEntries returns the exact sum of entry values.
func SumEntries(entries []ReportEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Value)
	}
	return total
}
