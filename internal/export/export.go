// Package export assembles logged notes and timesheet entries into a report
// and writes it as CSV, TXT, or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/utils"
)

// Format selects the output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatXLSX Format = "xlsx"
)

// ParseFormat converts a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatTXT, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("invalid export format %q: must be one of csv, txt, xlsx", s)
	}
}

// Report holds everything in the export window, with per-day rotation
// overlays derived at build time.
type Report struct {
	From    string
	To      string
	Entries []models.ShiftEntry
	Notes   []models.Note
}

// BuildReport loads the window's entries and notes from the store.
func BuildReport(store storage.Provider, from, to string) (*Report, error) {
	if !utils.ValidateDateFormat(from) || !utils.ValidateDateFormat(to) {
		return nil, fmt.Errorf("invalid export range %q..%q (expected YYYY-MM-DD)", from, to)
	}
	if from > to {
		return nil, fmt.Errorf("export range start %s is after end %s", from, to)
	}

	entries, err := store.GetEntriesInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	notes, err := store.GetNotesInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	return &Report{From: from, To: to, Entries: entries, Notes: notes}, nil
}

// TotalHours sums the worked hours of every entry in the report.
func (r *Report) TotalHours() float64 {
	var total float64
	for i := range r.Entries {
		total += r.Entries[i].Hours()
	}
	return total
}

// platoonFor derives the rostered platoon for a day string, blank when the
// day does not parse.
func platoonFor(day string) string {
	p, err := rotation.OnDay(day)
	if err != nil {
		return ""
	}
	return string(p)
}

// csvHeader is the timesheet column layout shared by CSV and XLSX.
var csvHeader = []string{"Day", "Platoon", "Code", "Start", "End", "BreakMin", "Hours", "Comment"}

func entryRecord(e *models.ShiftEntry) []string {
	return []string{
		e.Day,
		platoonFor(e.Day),
		string(e.Code),
		e.Start,
		e.End,
		strconv.Itoa(e.BreakMin),
		strconv.FormatFloat(e.Hours(), 'f', 2, 64),
		e.Comment,
	}
}

// WriteCSV writes the timesheet entries as CSV.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range r.Entries {
		if err := cw.Write(entryRecord(&r.Entries[i])); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTXT writes a human-readable day journal: a header per day, then that
// day's entries and notes.
func (r *Report) WriteTXT(w io.Writer) error {
	days := r.days()

	fmt.Fprintf(w, "shiftlog export %s to %s\n", r.From, r.To)
	fmt.Fprintf(w, "total hours: %.2f\n", r.TotalHours())

	for _, day := range days {
		fmt.Fprintf(w, "\n%s\n", r.dayHeader(day))

		for i := range r.Entries {
			e := &r.Entries[i]
			if e.Day != day {
				continue
			}
			line := fmt.Sprintf("  %s-%s %s %.2fh", e.Start, e.End, e.Code, e.Hours())
			if e.BreakMin > 0 {
				line += fmt.Sprintf(" (break %dm)", e.BreakMin)
			}
			if e.Comment != "" {
				line += " - " + e.Comment
			}
			fmt.Fprintln(w, line)
		}

		for i := range r.Notes {
			if r.Notes[i].Day == day {
				fmt.Fprintf(w, "  note: %s\n", r.Notes[i].Body)
			}
		}
	}
	return nil
}

// dayHeader renders "2026-03-10 Tue platoon A [pay day]".
func (r *Report) dayHeader(day string) string {
	header := day
	if t, err := utils.ParseDate(day); err == nil {
		header += " " + t.Weekday().String()[:3]
		header += " platoon " + string(rotation.On(t))
		if rotation.IsPayDay(t) {
			header += " [pay day]"
		}
	}
	return header
}

// days lists every day that has an entry or a note, ascending.
func (r *Report) days() []string {
	seen := make(map[string]bool)
	for i := range r.Entries {
		seen[r.Entries[i].Day] = true
	}
	for i := range r.Notes {
		seen[r.Notes[i].Day] = true
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}
