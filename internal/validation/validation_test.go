package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
)

func entry(id, day, start, end string) models.ShiftEntry {
	return models.ShiftEntry{
		ID:        id,
		Day:       day,
		Code:      constants.EntryCodeShift,
		Start:     start,
		End:       end,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func hasConflict(r Result, ct constants.ConflictType) bool {
	for _, c := range r.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateEntryClean(t *testing.T) {
	v := New()
	r := v.ValidateEntry(entry("e1", "2026-03-10", "06:00", "18:00"))
	if r.HasConflicts() {
		t.Errorf("expected no conflicts, got %+v", r.Conflicts)
	}
}

func TestValidateEntryProblems(t *testing.T) {
	v := New()

	tests := []struct {
		name  string
		entry models.ShiftEntry
		want  constants.ConflictType
	}{
		{"missing id", entry("", "2026-03-10", "06:00", "18:00"), constants.ConflictMissingEntryID},
		{"invalid day", entry("e1", "10/03/2026", "06:00", "18:00"), constants.ConflictInvalidDate},
		{"invalid time", entry("e1", "2026-03-10", "6am", "18:00"), constants.ConflictInvalidTime},
		{"zero length", entry("e1", "2026-03-10", "06:00", "06:00"), constants.ConflictZeroLengthEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := v.ValidateEntry(tt.entry)
			if !hasConflict(r, tt.want) {
				t.Errorf("expected %s conflict, got %+v", tt.want, r.Conflicts)
			}
		})
	}
}

func TestValidateEntryUnknownCode(t *testing.T) {
	v := New()
	e := entry("e1", "2026-03-10", "06:00", "18:00")
	e.Code = "holiday"
	if r := v.ValidateEntry(e); !hasConflict(r, constants.ConflictUnknownCode) {
		t.Errorf("expected unknown code conflict, got %+v", r.Conflicts)
	}
}

func TestValidateEntryBreakExceedsSpan(t *testing.T) {
	v := New()
	e := entry("e1", "2026-03-10", "06:00", "08:00")
	e.BreakMin = 180
	if r := v.ValidateEntry(e); !hasConflict(r, constants.ConflictBreakExceedsSpan) {
		t.Errorf("expected break conflict, got %+v", r.Conflicts)
	}
}

func TestValidateEntriesOverlap(t *testing.T) {
	v := New()

	r := v.ValidateEntries([]models.ShiftEntry{
		entry("e1", "2026-03-10", "06:00", "18:00"),
		entry("e2", "2026-03-10", "17:00", "21:00"),
	})
	if !hasConflict(r, constants.ConflictOverlappingEntries) {
		t.Fatalf("expected overlap conflict, got %+v", r.Conflicts)
	}
	for _, c := range r.Conflicts {
		if c.Type == constants.ConflictOverlappingEntries {
			if len(c.EntryIDs) != 2 || c.Day != "2026-03-10" {
				t.Errorf("overlap conflict missing detail: %+v", c)
			}
		}
	}
}

func TestValidateEntriesNoFalseOverlap(t *testing.T) {
	v := New()

	// Adjacent entries and entries on different days do not overlap
	r := v.ValidateEntries([]models.ShiftEntry{
		entry("e1", "2026-03-10", "06:00", "12:00"),
		entry("e2", "2026-03-10", "12:00", "18:00"),
		entry("e3", "2026-03-11", "06:00", "18:00"),
	})
	if hasConflict(r, constants.ConflictOverlappingEntries) {
		t.Errorf("unexpected overlap conflict: %+v", r.Conflicts)
	}
}

func TestValidateEntriesOvernightOverlap(t *testing.T) {
	v := New()

	// 18:00-06:00 wraps past midnight and collides with a 22:00-23:00 block
	r := v.ValidateEntries([]models.ShiftEntry{
		entry("e1", "2026-03-10", "18:00", "06:00"),
		entry("e2", "2026-03-10", "22:00", "23:00"),
	})
	if !hasConflict(r, constants.ConflictOverlappingEntries) {
		t.Errorf("expected overnight overlap conflict, got %+v", r.Conflicts)
	}
}

func TestValidateEntriesSkipsDeleted(t *testing.T) {
	v := New()

	deleted := entry("e2", "2026-03-10", "17:00", "21:00")
	now := time.Now()
	deleted.DeletedAt = &now

	r := v.ValidateEntries([]models.ShiftEntry{
		entry("e1", "2026-03-10", "06:00", "18:00"),
		deleted,
	})
	if r.HasConflicts() {
		t.Errorf("deleted entries should not conflict, got %+v", r.Conflicts)
	}
}

func TestFormatReport(t *testing.T) {
	r := Result{}
	if got := r.FormatReport(); got != "No conflicts detected." {
		t.Errorf("unexpected clean report: %q", got)
	}

	r.Conflicts = append(r.Conflicts, Conflict{
		Type:        constants.ConflictZeroLengthEntry,
		Description: "entry e1 on 2026-03-10 starts and ends at 06:00",
	})
	if got := r.FormatReport(); !strings.Contains(got, "starts and ends") {
		t.Errorf("report missing description: %q", got)
	}
}
