package cli

import (
	"fmt"
	"io/fs"

	"github.com/watchfour/shiftlog/internal/migration"
	"github.com/watchfour/shiftlog/internal/storage/sqlite"
	"github.com/watchfour/shiftlog/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS, migration.DriverSQLite)
	count, err := runner.Apply(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
