// Package holidays answers weekend and public-holiday questions per country,
// backed by the rickar/cal calendars.
package holidays

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"

	portssvc "github.com/SscSPs/activity_tracker/internal/core/ports/services"
)

var countryHolidays = map[string][]*cal.Holiday{
	"BE": be.Holidays,
	"DE": de.Holidays,
	"ES": es.Holidays,
	"FR": fr.Holidays,
	"GB": gb.Holidays,
	"IT": it.Holidays,
	"NL": nl.Holidays,
	"US": us.Holidays,
}

// Oracle is immutable after construction and safe for concurrent use.
type Oracle struct {
	calendars map[string]*cal.BusinessCalendar
}

var _ portssvc.HolidayOracle = (*Oracle)(nil)

// NewOracle builds a calendar for every supported country.
func NewOracle() *Oracle {
	calendars := make(map[string]*cal.BusinessCalendar, len(countryHolidays))
	for code, hs := range countryHolidays {
		c := cal.NewBusinessCalendar()
		c.AddHoliday(hs...)
		calendars[code] = c
	}
	return &Oracle{calendars: calendars}
}

// SupportedCountries lists the country codes with a holiday calendar.
func (o *Oracle) SupportedCountries() []string {
	codes := make([]string, 0, len(o.calendars))
	for code := range o.calendars {
		codes = append(codes, code)
	}
	return codes
}

// IsWeekend reports whether date is a Saturday or Sunday.
func (o *Oracle) IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// HolidayName returns the name of the public holiday falling on date in countryCode.
// Unknown countries have no holidays.
func (o *Oracle) HolidayName(date time.Time, countryCode string) (string, bool) {
	c, ok := o.calendars[strings.ToUpper(countryCode)]
	if !ok {
		return "", false
	}
	actual, observed, h := c.IsHoliday(date)
	if !(actual || observed) || h == nil {
		return "", false
	}
	return h.Name, true
}

// WorkingDaysInMonth counts the days of the month that are neither weekend nor holiday.
func (o *Oracle) WorkingDaysInMonth(year int, month time.Month, countryCode string) int {
	count := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if o.IsWeekend(d) {
			continue
		}
		if _, holiday := o.HolidayName(d, countryCode); holiday {
			continue
		}
		count++
	}
	return count
}

// WorkingDaysInYear sums WorkingDaysInMonth over the twelve months of year.
func (o *Oracle) WorkingDaysInYear(year int, countryCode string) int {
	total := 0
	for m := time.January; m <= time.December; m++ {
		total += o.WorkingDaysInMonth(year, m, countryCode)
	}
	return total
}
