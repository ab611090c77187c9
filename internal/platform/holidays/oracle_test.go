package holidays_test

import (
	"testing"
	"time"

	"github.com/SscSPs/activity_tracker/internal/platform/holidays"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOracle_IsWeekend(t *testing.T) {
	o := holidays.NewOracle()

	assert.True(t, o.IsWeekend(date(2026, time.February, 7)), "saturday")
	assert.True(t, o.IsWeekend(date(2026, time.February, 8)), "sunday")
	assert.False(t, o.IsWeekend(date(2026, time.February, 9)), "monday")
}

func TestOracle_HolidayName(t *testing.T) {
	o := holidays.NewOracle()

	tests := []struct {
		name    string
		date    time.Time
		country string
		want    bool
	}{
		{"FR new year", date(2026, time.January, 1), "FR", true},
		{"FR bastille day", date(2026, time.July, 14), "FR", true},
		{"FR christmas lower-case code", date(2026, time.December, 25), "fr", true},
		{"FR ordinary day", date(2026, time.February, 10), "FR", false},
		{"US independence day", date(2026, time.July, 4), "US", true},
		{"US bastille day is not a holiday", date(2026, time.July, 14), "US", false},
		{"unknown country", date(2026, time.January, 1), "ZZ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := o.HolidayName(tt.date, tt.country)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.NotEmpty(t, name)
			} else {
				assert.Empty(t, name)
			}
		})
	}
}

func TestOracle_WorkingDays(t *testing.T) {
	o := holidays.NewOracle()

	// February 2026 has 20 weekdays and no French public holiday.
	assert.Equal(t, 20, o.WorkingDaysInMonth(2026, time.February, "FR"))

	// Unknown countries only exclude weekends: 2026 has 261 weekdays.
	assert.Equal(t, 261, o.WorkingDaysInYear(2026, "ZZ"))

	fr := o.WorkingDaysInYear(2026, "FR")
	assert.Less(t, fr, 261)
	assert.Greater(t, fr, 240)
}
