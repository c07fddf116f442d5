package utils

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/logger"
)

var (
	rosterLocOnce sync.Once
	rosterLoc     *time.Location
)

// RosterLocation returns the fixed zone all rotation math runs in. The zone is
// loaded once; if the IANA database is unavailable the zone falls back to a
// fixed UTC-7 offset so day arithmetic stays stable rather than silently
// switching to the device zone.
func RosterLocation() *time.Location {
	rosterLocOnce.Do(func() {
		loc, err := time.LoadLocation(constants.RosterTimezone)
		if err != nil {
			logger.Warn("failed to load roster timezone, using fixed offset", "timezone", constants.RosterTimezone, "error", err)
			loc = time.FixedZone("MST", -7*60*60)
		}
		rosterLoc = loc
	})
	return rosterLoc
}

// NowInRosterZone returns the current time in the roster timezone. Commands
// call this exactly once per run and thread the result into the calculation
// packages, which never read the clock themselves.
func NowInRosterZone() time.Time {
	return time.Now().In(RosterLocation())
}

// Today returns today's date string (YYYY-MM-DD) in the roster timezone.
func Today() string {
	return FormatDate(NowInRosterZone())
}

// ParseDate parses a date string (YYYY-MM-DD) as midnight in the roster timezone.
func ParseDate(dateStr string) (time.Time, error) {
	return ParseDateInLocation(dateStr, RosterLocation())
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatDate formats a time as a date string (YYYY-MM-DD) in the roster timezone.
func FormatDate(t time.Time) string {
	return t.In(RosterLocation()).Format(constants.DateFormat)
}

// Normalize returns midnight of t's calendar date in the roster timezone.
func Normalize(t time.Time) time.Time {
	in := t.In(RosterLocation())
	return time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, RosterLocation())
}

// AddDays returns midnight of the date n calendar days after t in the roster
// timezone. Arithmetic goes through time.Date so DST transitions cannot shift
// the result by an hour.
func AddDays(t time.Time, n int) time.Time {
	in := t.In(RosterLocation())
	return time.Date(in.Year(), in.Month(), in.Day()+n, 0, 0, 0, 0, RosterLocation())
}

// DaysBetween returns the number of calendar days from one date to another in
// the roster timezone (positive when to is after from). Rounding absorbs the
// odd-length days at DST transitions.
func DaysBetween(from, to time.Time) int {
	diff := Normalize(to).Sub(Normalize(from))
	return int(math.Round(diff.Hours() / 24))
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the roster timezone.
func CombineDateAndTime(dateStr, timeStr string) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		RosterLocation(),
	), nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}
