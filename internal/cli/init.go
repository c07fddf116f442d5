package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/storage/postgres"
	"github.com/watchfour/shiftlog/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized shiftlog storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// reset deletes the existing SQLite database file. Postgres stores cannot be
// force-reset from here.
func (c *InitCmd) reset(ctx *Context) error {
	st, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return errors.New("--force is only supported for SQLite storage")
	}
	dbPath := st.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		absSource, err := filepath.Abs(storage.ExpandPath(c.Source))
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}
	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) migrateData(ctx *Context, source string) error {
	var sourceStore storage.Provider
	if storage.IsPostgres(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables, .pgpass, or the OS keyring instead")
			}
			return err
		}
		sourceStore = postgres.New(source)
	} else {
		sourceStore = sqlite.NewStore(source)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating notes...")
	notes, err := sourceStore.GetAllNotes(true)
	if err != nil {
		return fmt.Errorf("failed to get notes from source: %w", err)
	}
	for _, note := range notes {
		if err := ctx.Store.AddNote(note); err != nil {
			return fmt.Errorf("failed to add note %s: %w", note.ID, err)
		}
	}
	fmt.Printf("    Migrated %d notes\n", len(notes))

	fmt.Println("  Migrating timesheet entries...")
	entries, err := sourceStore.GetAllEntries(true)
	if err != nil {
		return fmt.Errorf("failed to get entries from source: %w", err)
	}
	for _, entry := range entries {
		if err := ctx.Store.AddEntry(entry); err != nil {
			return fmt.Errorf("failed to add entry %s: %w", entry.ID, err)
		}
	}
	fmt.Printf("    Migrated %d entries\n", len(entries))

	return nil
}
