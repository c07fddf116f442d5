package migration

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func setupTestMigrations(t *testing.T, migrations map[string]string) string {
	tempDir := t.TempDir()

	for filename, content := range migrations {
		path := filepath.Join(tempDir, filename)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test migration %s: %v", filename, err)
		}
	}

	return tempDir
}

func TestCurrentFreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	})), DriverSQLite)

	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestFiles(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql":    "CREATE TABLE test1 (id INTEGER);",
		"002_update.sql":  "ALTER TABLE test1 ADD COLUMN name TEXT;",
		"003_another.sql": "CREATE TABLE test2 (id INTEGER);",
	})), DriverSQLite)

	migrations, err := runner.Files()
	if err != nil {
		t.Fatalf("Files failed: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(migrations))
	}

	want := []struct {
		version int
		name    string
	}{
		{version: 1, name: "init"},
		{version: 2, name: "update"},
		{version: 3, name: "another"},
	}
	for i, w := range want {
		if migrations[i].Version != w.version || migrations[i].Name != w.name {
			t.Errorf("migration %d: got version %d name %q, want version %d name %q",
				i, migrations[i].Version, migrations[i].Name, w.version, w.name)
		}
	}
}

func TestApplyFromScratch(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql":  "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
		"002_posts.sql": "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER, content TEXT);",
	})), DriverSQLite)

	count, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}

	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	for _, table := range []string{"users", "posts"} {
		var n int
		err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&n)
		if err != nil || n != 1 {
			t.Errorf("%s table was not created", table)
		}
	}

	history, err := runner.History()
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	if history[0].Version != 1 || history[0].Name != "init" || history[0].AppliedAt == "" {
		t.Errorf("unexpected first history row: %+v", history[0])
	}
}

func TestApplyIncremental(t *testing.T) {
	db := setupTestDB(t)
	migrationsPath := setupTestMigrations(t, map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
	})
	runner := NewRunner(db, os.DirFS(migrationsPath), DriverSQLite)

	count, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply (1st) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}

	newMigration := "CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER);"
	if err := os.WriteFile(filepath.Join(migrationsPath, "002_posts.sql"), []byte(newMigration), 0644); err != nil {
		t.Fatalf("failed to write new migration: %v", err)
	}

	count, err = runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 more migration applied, got %d", count)
	}

	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
}

func TestApplyNoOp(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	})), DriverSQLite)

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply (1st) failed: %v", err)
	}

	count, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("Apply (2nd) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations applied on second run, got %d", count)
	}
}

func TestApplyRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql": `
			CREATE TABLE users (id INTEGER PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	})), DriverSQLite)

	if _, err := runner.Apply(nil); err == nil {
		t.Fatal("Apply should have failed with invalid SQL")
	}

	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='users'").Scan(&count)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Error("table should not exist after failed migration")
	}
}

func TestValidateNewerDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	})), DriverSQLite)

	// Pretend a newer binary already migrated this database.
	if _, err := runner.Current(); err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_migrations (version, name, applied_at) VALUES (10, 'future', '2024-01-05T00:00:00Z')"); err != nil {
		t.Fatalf("failed to insert future version: %v", err)
	}

	if err := runner.Validate(); err == nil {
		t.Fatal("Validate should have failed with newer database version")
	}
	if _, err := runner.Apply(nil); err == nil {
		t.Fatal("Apply should have failed with newer database version")
	}
}

func TestLatest(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql":   "CREATE TABLE users (id INTEGER);",
		"003_posts.sql":  "CREATE TABLE posts (id INTEGER);",
		"002_update.sql": "ALTER TABLE users ADD COLUMN name TEXT;",
	})), DriverSQLite)

	latest, err := runner.Latest()
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest != 3 {
		t.Errorf("expected latest version 3, got %d", latest)
	}
}

func TestFilenameValidation(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001init.sql": "CREATE TABLE users (id INTEGER);",
	})), DriverSQLite)

	if _, err := runner.Files(); err == nil {
		t.Error("Files should have failed with invalid filename format")
	}
}

func TestVersionValidation(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"000_init.sql": "CREATE TABLE users (id INTEGER);",
	})), DriverSQLite)

	_, err := runner.Files()
	if err == nil {
		t.Error("Files should have failed with version 0")
	}
	if err != nil && !strings.Contains(err.Error(), "version must be at least 1") {
		t.Errorf("expected version validation error, got: %v", err)
	}
}

func TestDuplicateVersionDetection(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, os.DirFS(setupTestMigrations(t, map[string]string{
		"001_init.sql":  "CREATE TABLE users (id INTEGER);",
		"001_other.sql": "CREATE TABLE posts (id INTEGER);",
	})), DriverSQLite)

	_, err := runner.Files()
	if err == nil {
		t.Error("Files should have failed with duplicate version")
	}
	if err != nil && !strings.Contains(err.Error(), "duplicate migration version") {
		t.Errorf("expected duplicate version error, got: %v", err)
	}
}

func TestPlaceholders(t *testing.T) {
	sqliteRunner := &Runner{driver: DriverSQLite}
	if got := sqliteRunner.placeholders(3); got != "?, ?, ?" {
		t.Errorf("sqlite placeholders = %q", got)
	}
	pgRunner := &Runner{driver: DriverPostgres}
	if got := pgRunner.placeholders(3); got != "$1, $2, $3" {
		t.Errorf("postgres placeholders = %q", got)
	}
}
