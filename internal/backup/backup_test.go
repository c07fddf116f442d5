package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/watchfour/shiftlog/internal/constants"
)

// makeDB creates a real SQLite file with a marker row so restores can be
// told apart.
func makeDB(t *testing.T, path, marker string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS marker (value TEXT)"); err != nil {
		t.Fatalf("failed to create marker table: %v", err)
	}
	if _, err := db.Exec("DELETE FROM marker"); err != nil {
		t.Fatalf("failed to clear marker: %v", err)
	}
	if _, err := db.Exec("INSERT INTO marker (value) VALUES (?)", marker); err != nil {
		t.Fatalf("failed to insert marker: %v", err)
	}
}

func readMarker(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	var value string
	if err := db.QueryRow("SELECT value FROM marker").Scan(&value); err != nil {
		t.Fatalf("failed to read marker: %v", err)
	}
	return value
}

func TestCreateAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shiftlog.db")
	makeDB(t, dbPath, "original")

	m := NewManager(dbPath)
	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), constants.BackupFilePrefix) {
		t.Errorf("backup name %q missing prefix", filepath.Base(path))
	}
	if readMarker(t, path) != "original" {
		t.Error("backup content does not match source")
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Error("expected non-zero backup size")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.Create(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestUniqueNamesWithinMinute(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shiftlog.db")
	makeDB(t, dbPath, "v1")

	m := NewManager(dbPath)
	first, err := m.Create()
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct backup paths, both were %s", first)
	}
}

func TestRotationKeepsNewest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shiftlog.db")
	makeDB(t, dbPath, "v1")
	m := NewManager(dbPath)

	// Plant more backups than the limit with synthetic timestamps
	if err := os.MkdirAll(m.GetBackupDir(), 0700); err != nil {
		t.Fatalf("failed to create backup dir: %v", err)
	}
	for i := 0; i < constants.MaxBackups+3; i++ {
		name := constants.BackupFilePrefix + "202601" + twoDigits(i+1) + "-0800" + constants.BackupFileSuffix
		if err := os.WriteFile(filepath.Join(m.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to plant backup: %v", err)
		}
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) > constants.MaxBackups {
		t.Errorf("rotation kept %d backups, limit is %d", len(backups), constants.MaxBackups)
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestRestore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shiftlog.db")
	makeDB(t, dbPath, "original")

	m := NewManager(dbPath)
	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	makeDB(t, dbPath, "modified")
	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if got := readMarker(t, dbPath); got != "original" {
		t.Errorf("expected restored marker %q, got %q", "original", got)
	}

	// Restore snapshots the modified database first
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a pre-restore safety backup, found %d backups", len(backups))
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "shiftlog.db")
	makeDB(t, dbPath, "original")

	garbage := filepath.Join(dir, "garbage.db")
	// Write an invalid header so SQLite refuses it
	if err := os.WriteFile(garbage, []byte("not a database at all"), 0600); err != nil {
		t.Fatalf("failed to write garbage: %v", err)
	}

	m := NewManager(dbPath)
	if err := m.Restore(garbage); err == nil {
		t.Error("expected restore of garbage file to fail")
	}
	if got := readMarker(t, dbPath); got != "original" {
		t.Errorf("database was clobbered by failed restore: %q", got)
	}
}
