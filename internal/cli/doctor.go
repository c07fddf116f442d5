package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/watchfour/shiftlog/internal/backup"
	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/migration"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/storage/postgres"
	"github.com/watchfour/shiftlog/internal/storage/sqlite"
	"github.com/watchfour/shiftlog/internal/utils"
	"github.com/watchfour/shiftlog/internal/validation"
	"github.com/watchfour/shiftlog/migrations"
)

type DoctorCmd struct{}

type doctorCheck struct {
	name    string
	needsDB bool
	warn    bool
	run     func(ctx *Context) error
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []doctorCheck{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Backups present", warn: true, run: checkBackupsPresent},
		{name: "Data validation", needsDB: true, run: checkDataValidation},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Rotation self-check", run: checkRotation},
	}

	hasError := false
	dbReachable := false
	for i, check := range checks {
		if check.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", check.name)
			continue
		}
		err := check.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", check.name)
			if i == 0 {
				dbReachable = true
			}
		case check.warn:
			fmt.Printf("⚠ %s: WARNING\n", check.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", check.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		return errors.New("some checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *Context) error {
	_, err := ctx.Store.GetSettings()
	return err
}

func checkMigrationsComplete(ctx *Context) error {
	db, dir, driver, err := migrationTarget(ctx)
	if err != nil {
		return err
	}
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}
	runner := migration.NewRunner(db, subFS, driver)
	if err := runner.Validate(); err != nil {
		return err
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return fmt.Errorf("%d pending migration(s), run 'shiftlog migrate'", len(pending))
	}
	return nil
}

func migrationTarget(ctx *Context) (*sql.DB, string, migration.Driver, error) {
	switch st := ctx.Store.(type) {
	case *sqlite.Store:
		return st.GetDB(), "sqlite", migration.DriverSQLite, nil
	case *postgres.Store:
		return st.GetDB(), "postgres", migration.DriverPostgres, nil
	default:
		return nil, "", "", errors.New("unknown storage type")
	}
}

func checkBackupsPresent(ctx *Context) error {
	st, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return errors.New("file backups do not apply to PostgreSQL; use pg_dump")
	}
	backups, err := backup.NewManager(st.GetConfigPath()).List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found; one is created automatically when the TUI starts, or run 'shiftlog backup create'")
	}
	return nil
}

func checkDataValidation(ctx *Context) error {
	entries, err := ctx.Store.GetAllEntries(false)
	if err != nil {
		return err
	}
	notes, err := ctx.Store.GetAllNotes(false)
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry ID: %s", e.ID)
		}
		seen[e.ID] = true
	}
	for _, n := range notes {
		if seen[n.ID] {
			return fmt.Errorf("note ID collides with an entry ID: %s", n.ID)
		}
		if err := n.Validate(); err != nil {
			return fmt.Errorf("note %s: %w", n.ID, err)
		}
	}

	result := validation.New().ValidateEntries(entries)
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found, run 'shiftlog log list' to inspect:\n%s",
			len(result.Conflicts), result.FormatReport())
	}

	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("settings unreadable: %w", err)
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	loc, err := time.LoadLocation(constants.RosterTimezone)
	if err != nil {
		return fmt.Errorf("roster timezone %s failed to load: %w", constants.RosterTimezone, err)
	}
	now := time.Now().In(loc)
	if now.Year() < 2024 {
		return fmt.Errorf("system clock reads %s, which predates the roster epoch", now.Format(time.RFC3339))
	}
	return nil
}

// checkRotation recomputes known roster facts from the epoch.
func checkRotation(ctx *Context) error {
	epoch := time.Date(2024, time.January, 5, 0, 0, 0, 0, utils.RosterLocation())
	if got := rotation.On(epoch); got != rotation.PlatoonA {
		return fmt.Errorf("platoon on the rotation epoch computed as %s, want A", got)
	}
	if got := rotation.On(utils.AddDays(epoch, 8)); got != rotation.PlatoonA {
		return fmt.Errorf("rotation does not repeat on an 8-day cycle (got %s)", got)
	}
	payEpoch := time.Date(2024, time.January, 11, 0, 0, 0, 0, utils.RosterLocation())
	if !rotation.IsPayDay(payEpoch) {
		return errors.New("pay epoch not recognized as a pay day")
	}
	if rotation.IsPayDay(utils.AddDays(payEpoch, 7)) {
		return errors.New("pay cycle shorter than 14 days")
	}
	return nil
}
