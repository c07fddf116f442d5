package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "shiftlog.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testNote(day, body string) models.Note {
	now := time.Now()
	return models.Note{
		ID:        uuid.New().String(),
		Day:       day,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testEntry(day, start, end string) models.ShiftEntry {
	now := time.Now()
	return models.ShiftEntry{
		ID:        uuid.New().String(),
		Day:       day,
		Code:      constants.EntryCodeShift,
		Start:     start,
		End:       end,
		BreakMin:  30,
		Comment:   "day shift",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestLoadUninitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := s.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestInitSeedsDefaultSettings(t *testing.T) {
	s := setupStore(t)

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.Platoon != constants.DefaultPlatoon {
		t.Errorf("expected default platoon %q, got %q", constants.DefaultPlatoon, settings.Platoon)
	}
	if settings.LeaveGroup != constants.DefaultLeaveGroup {
		t.Errorf("expected default leave group %q, got %q", constants.DefaultLeaveGroup, settings.LeaveGroup)
	}
	if !settings.ShowPayDays || !settings.ShowLeave {
		t.Error("expected pay day and leave overlays enabled by default")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := setupStore(t)

	want := models.Settings{
		Platoon:              "C",
		LeaveGroup:           "C5",
		ShowPayDays:          false,
		ShowLeave:            true,
		NotificationsEnabled: true,
		ShiftStart:           "07:00",
		ShiftEnd:             "19:00",
		RoundToMin:           30,
	}
	if err := s.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("settings round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestNoteCRUD(t *testing.T) {
	s := setupStore(t)

	note := testNote("2026-03-10", "swapped with B crew")
	if err := s.AddNote(note); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	got, err := s.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if got.Body != note.Body || got.Day != note.Day {
		t.Errorf("got %q on %s, want %q on %s", got.Body, got.Day, note.Body, note.Day)
	}

	got.Body = "swap cancelled"
	if err := s.UpdateNote(got); err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	updated, err := s.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote after update failed: %v", err)
	}
	if updated.Body != "swap cancelled" {
		t.Errorf("expected updated body, got %q", updated.Body)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Error("expected updated_at to advance past created_at")
	}
}

func TestNoteQueriesByDayAndRange(t *testing.T) {
	s := setupStore(t)

	for _, n := range []models.Note{
		testNote("2026-03-10", "first"),
		testNote("2026-03-10", "second"),
		testNote("2026-03-12", "third"),
		testNote("2026-04-01", "next month"),
	} {
		if err := s.AddNote(n); err != nil {
			t.Fatalf("AddNote failed: %v", err)
		}
	}

	day, err := s.GetNotesForDay("2026-03-10")
	if err != nil {
		t.Fatalf("GetNotesForDay failed: %v", err)
	}
	if len(day) != 2 {
		t.Errorf("expected 2 notes for day, got %d", len(day))
	}

	ranged, err := s.GetNotesInRange("2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("GetNotesInRange failed: %v", err)
	}
	if len(ranged) != 3 {
		t.Errorf("expected 3 notes in March, got %d", len(ranged))
	}
}

func TestNoteSoftDeleteAndRestore(t *testing.T) {
	s := setupStore(t)

	note := testNote("2026-03-10", "to be deleted")
	if err := s.AddNote(note); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, err := s.GetNote(note.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	all, err := s.GetAllNotes(true)
	if err != nil {
		t.Fatalf("GetAllNotes failed: %v", err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Fatalf("expected one note with deleted_at set, got %+v", all)
	}

	if err := s.RestoreNote(note.ID); err != nil {
		t.Fatalf("RestoreNote failed: %v", err)
	}
	restored, err := s.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote after restore failed: %v", err)
	}
	if restored.DeletedAt != nil {
		t.Error("expected deleted_at cleared after restore")
	}

	// Restoring a live note is an error
	if err := s.RestoreNote(note.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound restoring a live note, got %v", err)
	}
}

func TestEntryCRUD(t *testing.T) {
	s := setupStore(t)

	entry := testEntry("2026-03-10", "06:00", "18:00")
	if err := s.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	got, err := s.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Code != constants.EntryCodeShift || got.Start != "06:00" || got.End != "18:00" || got.BreakMin != 30 {
		t.Errorf("entry round trip mismatch: %+v", got)
	}
	if got.Minutes() != 11*60+30 {
		t.Errorf("expected 690 worked minutes, got %d", got.Minutes())
	}

	got.Code = constants.EntryCodeOvertime
	got.End = "20:00"
	if err := s.UpdateEntry(got); err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	updated, err := s.GetEntry(entry.ID)
	if err != nil {
		t.Fatalf("GetEntry after update failed: %v", err)
	}
	if updated.Code != constants.EntryCodeOvertime || updated.End != "20:00" {
		t.Errorf("expected updated entry, got %+v", updated)
	}
}

func TestEntryValidationRejected(t *testing.T) {
	s := setupStore(t)

	bad := testEntry("2026-03-10", "06:00", "18:00")
	bad.Code = "vacation"
	if err := s.AddEntry(bad); err == nil {
		t.Error("expected unknown code to be rejected")
	}

	bad = testEntry("not-a-date", "06:00", "18:00")
	if err := s.AddEntry(bad); err == nil {
		t.Error("expected bad day to be rejected")
	}
}

func TestEntrySoftDeleteAndRestore(t *testing.T) {
	s := setupStore(t)

	entry := testEntry("2026-03-10", "06:00", "18:00")
	if err := s.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := s.DeleteEntry(entry.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	live, err := s.GetEntriesForDay("2026-03-10")
	if err != nil {
		t.Fatalf("GetEntriesForDay failed: %v", err)
	}
	if len(live) != 0 {
		t.Errorf("expected no live entries, got %d", len(live))
	}

	if err := s.RestoreEntry(entry.ID); err != nil {
		t.Fatalf("RestoreEntry failed: %v", err)
	}
	live, err = s.GetEntriesForDay("2026-03-10")
	if err != nil {
		t.Fatalf("GetEntriesForDay after restore failed: %v", err)
	}
	if len(live) != 1 {
		t.Errorf("expected one live entry after restore, got %d", len(live))
	}
}

func TestGetEntriesInRangeOrdered(t *testing.T) {
	s := setupStore(t)

	for _, e := range []models.ShiftEntry{
		testEntry("2026-03-11", "18:00", "06:00"),
		testEntry("2026-03-10", "06:00", "18:00"),
		testEntry("2026-03-10", "19:00", "21:00"),
	} {
		if err := s.AddEntry(e); err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
	}

	entries, err := s.GetEntriesInRange("2026-03-10", "2026-03-11")
	if err != nil {
		t.Fatalf("GetEntriesInRange failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Day > cur.Day || (prev.Day == cur.Day && prev.Start > cur.Start) {
			t.Errorf("entries out of order: %s %s before %s %s", prev.Day, prev.Start, cur.Day, cur.Start)
		}
	}
}

func TestReopenValidatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shiftlog.db")
	s := NewStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetSettings(); err != nil {
		t.Errorf("GetSettings after reopen failed: %v", err)
	}
}
