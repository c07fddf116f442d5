package models

import (
	"fmt"
	"time"

	"github.com/watchfour/shiftlog/internal/constants"
)

const minutesPerDay = 24 * 60

// ShiftEntry is one logged block of worked time on a day.
type ShiftEntry struct {
	ID        string              `json:"id"`
	Day       string              `json:"day"` // YYYY-MM-DD format
	Code      constants.EntryCode `json:"code"`
	Start     string              `json:"start"` // HH:MM format
	End       string              `json:"end"`   // HH:MM format
	BreakMin  int                 `json:"break_min"`
	Comment   string              `json:"comment,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt *time.Time          `json:"deleted_at,omitempty"`
}

func (e *ShiftEntry) Validate() error {
	if e.Day == "" {
		return fmt.Errorf("entry day cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, e.Day); err != nil {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
	}
	if !constants.ValidEntryCode(e.Code) {
		return fmt.Errorf("unknown entry code %q", e.Code)
	}
	if _, err := time.Parse(constants.TimeFormat, e.Start); err != nil {
		return fmt.Errorf("invalid start time (expected HH:MM): %w", err)
	}
	if _, err := time.Parse(constants.TimeFormat, e.End); err != nil {
		return fmt.Errorf("invalid end time (expected HH:MM): %w", err)
	}
	if e.BreakMin < 0 {
		return fmt.Errorf("break minutes cannot be negative")
	}
	if e.BreakMin >= e.spanMinutes() {
		return fmt.Errorf("break of %d min exceeds the %d min worked span", e.BreakMin, e.spanMinutes())
	}
	return nil
}

// spanMinutes is the raw start-to-end span. An end at or before the start
// wraps past midnight.
func (e *ShiftEntry) spanMinutes() int {
	start, err := time.Parse(constants.TimeFormat, e.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.TimeFormat, e.End)
	if err != nil {
		return 0
	}
	span := (end.Hour()*60 + end.Minute()) - (start.Hour()*60 + start.Minute())
	if span <= 0 {
		span += minutesPerDay
	}
	return span
}

// Minutes is the worked time net of the break, never negative.
func (e *ShiftEntry) Minutes() int {
	m := e.spanMinutes() - e.BreakMin
	if m < 0 {
		return 0
	}
	return m
}

// Hours is Minutes as decimal hours.
func (e *ShiftEntry) Hours() float64 {
	return float64(e.Minutes()) / 60
}
