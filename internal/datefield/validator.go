package datefield

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-dateentry/internal/config"
)

// Names of the checks, reported in the rejection log line.
const (
	checkDayRange   = "day_range"
	checkMonthRange = "month_range"
	checkYearRange  = "year_range"
	checkMonthDays  = "month_length"
	checkDateBounds = "date_bounds"
)

// ValidateDate decides whether the three groups, right after a digit was
// written into changed, can still become a date accepted by f.
//
// Each group is reduced to the range of integers it can still reach. A check
// that needs a group that is not complete yet is skipped: a day of 29 is
// accepted in February until the year is known.
//
// A rejection is logged at debug level through the default logger. The
// Controller runs the same checks and logs through its own logger instead.
func ValidateDate(changed Field, day, month, year *FieldValue, f *Format) bool {
	check := failedCheck(day, month, year, f)
	if check == "" {
		return true
	}
	slog.Debug(config.MsgDigitRejected,
		config.LogKeyComponent, config.CompValidator,
		config.LogKeyField, changed.String(),
		config.LogKeyCheck, check,
	)
	return false
}

// failedCheck returns the name of the first failing check, "" if none.
func failedCheck(day, month, year *FieldValue, f *Format) string {
	dayLo, dayHi := day.Bounds()
	monthLo, monthHi := month.Bounds()
	yearLo, yearHi := year.Bounds()

	if !overlaps(dayLo, dayHi, 1, 31) {
		return checkDayRange
	}
	if !overlaps(monthLo, monthHi, 1, 12) {
		return checkMonthRange
	}
	if !overlaps(yearLo, yearHi, f.min.Year, f.max.Year) {
		return checkYearRange
	}

	m, monthKnown := month.IntValue()
	y, yearKnown := year.IntValue()
	if monthKnown {
		// Day 0 is already excluded by the range check, so only the lowest
		// reachable day matters here.
		if max(dayLo, 1) > monthLength(time.Month(m), y, yearKnown) {
			return checkMonthDays
		}
	}

	d, dayKnown := day.IntValue()
	if dayKnown && monthKnown && yearKnown {
		date := NewDate(y, time.Month(m), d)
		if !date.IsValid() || !f.Contains(date) {
			return checkDateBounds
		}
	}
	return ""
}

// monthLength is the longest the month can be given what is known of the
// year. An unknown year leaves February at 29 days.
func monthLength(m time.Month, year int, yearKnown bool) int {
	if !yearKnown {
		return DaysIn(m, config.DefaultLeapYear)
	}
	return DaysIn(m, year)
}

func overlaps(lo, hi, min, max int) bool {
	return lo <= max && hi >= min
}
