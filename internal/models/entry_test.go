package models

import (
	"testing"

	"github.com/watchfour/shiftlog/internal/constants"
)

func validEntry() ShiftEntry {
	return ShiftEntry{
		ID:    "e1",
		Day:   "2026-03-10",
		Code:  constants.EntryCodeShift,
		Start: "06:00",
		End:   "18:00",
	}
}

func TestEntryMinutes(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		breakMin int
		want     int
	}{
		{"day shift", "06:00", "18:00", 0, 720},
		{"day shift with break", "06:00", "18:00", 30, 690},
		{"night shift wraps midnight", "18:00", "06:00", 0, 720},
		{"night shift with break", "18:00", "06:00", 45, 675},
		{"one minute", "10:00", "10:01", 0, 1},
		{"equal times count as a full day", "06:00", "06:00", 0, 1440},
		{"break exceeding span floors at zero", "10:00", "10:30", 90, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			e.Start = tt.start
			e.End = tt.end
			e.BreakMin = tt.breakMin
			if got := e.Minutes(); got != tt.want {
				t.Errorf("Minutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEntryHours(t *testing.T) {
	e := validEntry()
	e.BreakMin = 30
	if got := e.Hours(); got != 11.5 {
		t.Errorf("Hours() = %v, want 11.5", got)
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ShiftEntry)
		wantErr bool
	}{
		{"valid", func(e *ShiftEntry) {}, false},
		{"empty day", func(e *ShiftEntry) { e.Day = "" }, true},
		{"bad day format", func(e *ShiftEntry) { e.Day = "03/10/2026" }, true},
		{"unknown code", func(e *ShiftEntry) { e.Code = "vacation" }, true},
		{"bad start", func(e *ShiftEntry) { e.Start = "6am" }, true},
		{"bad end", func(e *ShiftEntry) { e.End = "25:00" }, true},
		{"negative break", func(e *ShiftEntry) { e.BreakMin = -1 }, true},
		{"break consumes span", func(e *ShiftEntry) { e.End = "07:00"; e.BreakMin = 60 }, true},
		{"overnight valid", func(e *ShiftEntry) { e.Start = "18:00"; e.End = "06:00" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			err := e.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNoteValidate(t *testing.T) {
	n := Note{ID: "n1", Day: "2026-03-10", Body: "relief came late"}
	if err := n.Validate(); err != nil {
		t.Errorf("valid note rejected: %v", err)
	}

	n.Body = "   "
	if err := n.Validate(); err == nil {
		t.Error("blank body accepted")
	}

	n.Body = "ok"
	n.Day = "not-a-date"
	if err := n.Validate(); err == nil {
		t.Error("malformed day accepted")
	}
}
