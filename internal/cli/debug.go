package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/watchfour/shiftlog/internal/migration"
	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/utils"
	"github.com/watchfour/shiftlog/migrations"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	Schema       *DebugSchemaCmd       `cmd:"" help:"Show applied schema migrations."`
	Counts       *DebugCountsCmd       `cmd:"" help:"Show row counts per table."`
	DumpNote     *DebugDumpNoteCmd     `cmd:"" help:"Dump a note as JSON."`
	DumpEntry    *DebugDumpEntryCmd    `cmd:"" help:"Dump a timesheet entry as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugSchemaCmd struct{}

func (cmd *DebugSchemaCmd) Run(ctx *Context) error {
	db, dir, driver, err := migrationTarget(ctx)
	if err != nil {
		return err
	}
	subFS, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return err
	}
	runner := migration.NewRunner(db, subFS, driver)

	current, err := runner.Current()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	history, err := runner.History()
	if err != nil {
		return fmt.Errorf("failed to read migration history: %w", err)
	}

	fmt.Printf("Schema version: %d\n\n", current)
	for _, h := range history {
		fmt.Printf("  %03d %-30s applied %s\n", h.Version, h.Name, h.AppliedAt)
	}
	return nil
}

type DebugCountsCmd struct{}

func (cmd *DebugCountsCmd) Run(ctx *Context) error {
	notes, err := ctx.Store.GetAllNotes(true)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllEntries(true)
	if err != nil {
		return err
	}

	deletedNotes := 0
	for _, n := range notes {
		if n.DeletedAt != nil {
			deletedNotes++
		}
	}
	deletedEntries := 0
	for _, e := range entries {
		if e.DeletedAt != nil {
			deletedEntries++
		}
	}

	return printJSON(map[string]int{
		"notes":           len(notes),
		"notes_deleted":   deletedNotes,
		"entries":         len(entries),
		"entries_deleted": deletedEntries,
	})
}

type DebugDumpNoteCmd struct {
	ID string `arg:"" help:"ID of the note to dump."`
}

func (cmd *DebugDumpNoteCmd) Run(ctx *Context) error {
	note, err := ctx.Store.GetNote(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no note found with ID: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get note: %w", err)
	}
	return printJSON(note)
}

type DebugDumpEntryCmd struct {
	ID string `arg:"" help:"ID of the entry to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *Context) error {
	entry, err := ctx.Store.GetEntry(cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no entry found with ID: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get entry: %w", err)
	}
	return printJSON(entry)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	out := struct {
		Day      string `json:"roster_day"`
		Settings any    `json:"settings"`
	}{
		Day:      utils.Today(),
		Settings: settings,
	}
	return printJSON(out)
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
