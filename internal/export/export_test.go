package export

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/storage/sqlite"
)

func seededStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s := sqlite.NewStore(filepath.Join(t.TempDir(), "shiftlog.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	now := time.Now()
	entries := []models.ShiftEntry{
		{ID: uuid.New().String(), Day: "2024-01-05", Code: constants.EntryCodeShift, Start: "06:00", End: "18:00", BreakMin: 30, Comment: "day one", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Day: "2024-01-11", Code: constants.EntryCodeOvertime, Start: "18:00", End: "22:00", CreatedAt: now, UpdatedAt: now},
	}
	for _, e := range entries {
		if err := s.AddEntry(e); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}
	note := models.Note{ID: uuid.New().String(), Day: "2024-01-05", Body: "relief came late", CreatedAt: now, UpdatedAt: now}
	if err := s.AddNote(note); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	return s
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", FormatCSV, false},
		{"TXT", FormatTXT, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildReportRejectsBadRange(t *testing.T) {
	s := seededStore(t)
	if _, err := BuildReport(s, "2024-01-31", "2024-01-01"); err == nil {
		t.Error("expected inverted range to be rejected")
	}
	if _, err := BuildReport(s, "bad", "2024-01-31"); err == nil {
		t.Error("expected malformed date to be rejected")
	}
}

func TestWriteCSV(t *testing.T) {
	s := seededStore(t)
	r, err := BuildReport(s, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	var buf strings.Builder
	if err := r.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "Day,Platoon,Code,Start,End,BreakMin,Hours,Comment" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	// 2024-01-05 is the rotation epoch, platoon A, 11.5 worked hours
	if !strings.Contains(lines[1], "2024-01-05,A,shift,06:00,18:00,30,11.50,day one") {
		t.Errorf("unexpected first record: %q", lines[1])
	}
}

func TestWriteTXT(t *testing.T) {
	s := seededStore(t)
	r, err := BuildReport(s, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	var buf strings.Builder
	if err := r.WriteTXT(&buf); err != nil {
		t.Fatalf("WriteTXT failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "2024-01-05 Fri platoon A") {
		t.Errorf("missing day header: %s", out)
	}
	// 2024-01-11 is the pay epoch
	if !strings.Contains(out, "2024-01-11 Thu platoon C [pay day]") {
		t.Errorf("missing pay day marker: %s", out)
	}
	if !strings.Contains(out, "note: relief came late") {
		t.Errorf("missing note line: %s", out)
	}
	if !strings.Contains(out, "total hours: 15.50") {
		t.Errorf("missing total hours: %s", out)
	}
}

func TestWriteXLSX(t *testing.T) {
	s := seededStore(t)
	r, err := BuildReport(s, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := r.WriteXLSX(path); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	day, err := f.GetCellValue("Timesheet", "A2")
	if err != nil || day != "2024-01-05" {
		t.Errorf("Timesheet A2 = %q (%v), want 2024-01-05", day, err)
	}
	platoon, err := f.GetCellValue("Timesheet", "B2")
	if err != nil || platoon != "A" {
		t.Errorf("Timesheet B2 = %q (%v), want A", platoon, err)
	}
	body, err := f.GetCellValue("Notes", "C2")
	if err != nil || body != "relief came late" {
		t.Errorf("Notes C2 = %q (%v), want note body", body, err)
	}
}
