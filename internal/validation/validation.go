// Package validation checks logged timesheet entries for conflicts: bad
// formats, impossible spans, and overlapping worked time on the same day.
package validation

import (
	"fmt"
	"sort"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/utils"
)

// Conflict is one detected problem with an entry or a pair of entries.
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Day         string   // YYYY-MM-DD, when applicable
	EntryIDs    []string // IDs of the entries involved
}

// Result collects every conflict found in one validation pass.
type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts.
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Validator validates timesheet entries.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateEntry checks a single entry in isolation.
func (v *Validator) ValidateEntry(entry models.ShiftEntry) Result {
	result := Result{Conflicts: []Conflict{}}

	if entry.ID == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictMissingEntryID,
			Description: fmt.Sprintf("entry on %s has no ID", entry.Day),
			Day:         entry.Day,
		})
	}

	if !utils.ValidateDateFormat(entry.Day) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidDate,
			Description: fmt.Sprintf("entry %s has invalid day %q (expected YYYY-MM-DD)", entry.ID, entry.Day),
			EntryIDs:    []string{entry.ID},
		})
		return result
	}

	if !utils.ValidateTimeFormat(entry.Start) || !utils.ValidateTimeFormat(entry.End) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictInvalidTime,
			Description: fmt.Sprintf("entry %s on %s has invalid times %q-%q (expected HH:MM)", entry.ID, entry.Day, entry.Start, entry.End),
			Day:         entry.Day,
			EntryIDs:    []string{entry.ID},
		})
		return result
	}

	if !constants.ValidEntryCode(entry.Code) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictUnknownCode,
			Description: fmt.Sprintf("entry %s on %s has unknown code %q", entry.ID, entry.Day, entry.Code),
			Day:         entry.Day,
			EntryIDs:    []string{entry.ID},
		})
	}

	start, end := entryMinutes(entry)
	if start == end {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictZeroLengthEntry,
			Description: fmt.Sprintf("entry %s on %s starts and ends at %s", entry.ID, entry.Day, entry.Start),
			Day:         entry.Day,
			EntryIDs:    []string{entry.ID},
		})
	}

	if entry.Minutes() == 0 && start != end {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        constants.ConflictBreakExceedsSpan,
			Description: fmt.Sprintf("entry %s on %s has a %d min break swallowing the whole span", entry.ID, entry.Day, entry.BreakMin),
			Day:         entry.Day,
			EntryIDs:    []string{entry.ID},
		})
	}

	return result
}

// ValidateEntries checks a set of entries individually and for pairwise
// overlaps within each day. Deleted entries are skipped.
func (v *Validator) ValidateEntries(entries []models.ShiftEntry) Result {
	result := Result{Conflicts: []Conflict{}}

	byDay := make(map[string][]models.ShiftEntry)
	for _, e := range entries {
		if e.DeletedAt != nil {
			continue
		}
		result.Conflicts = append(result.Conflicts, v.ValidateEntry(e).Conflicts...)
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		result.Conflicts = append(result.Conflicts, overlapsForDay(day, byDay[day])...)
	}

	return result
}

// overlapsForDay flags every pair of same-day entries whose worked spans
// intersect. Spans ending at or before their start wrap past midnight.
func overlapsForDay(day string, entries []models.ShiftEntry) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if !utils.ValidateTimeFormat(a.Start) || !utils.ValidateTimeFormat(a.End) ||
				!utils.ValidateTimeFormat(b.Start) || !utils.ValidateTimeFormat(b.End) {
				continue
			}
			if spansOverlap(a, b) {
				conflicts = append(conflicts, Conflict{
					Type: constants.ConflictOverlappingEntries,
					Description: fmt.Sprintf("entries on %s overlap: %s-%s and %s-%s",
						day, a.Start, a.End, b.Start, b.End),
					Day:      day,
					EntryIDs: []string{a.ID, b.ID},
				})
			}
		}
	}
	return conflicts
}

// entryMinutes returns the start and end of an entry in minutes from the
// day's midnight, with overnight ends pushed past 1440.
func entryMinutes(e models.ShiftEntry) (int, int) {
	start, err := utils.ParseTimeToMinutes(e.Start)
	if err != nil {
		return 0, 0
	}
	end, err := utils.ParseTimeToMinutes(e.End)
	if err != nil {
		return 0, 0
	}
	if end < start {
		end += 24 * 60
	}
	return start, end
}

func spansOverlap(a, b models.ShiftEntry) bool {
	aStart, aEnd := entryMinutes(a)
	bStart, bEnd := entryMinutes(b)
	return aStart < bEnd && bStart < aEnd
}
