package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/utils"
	"github.com/watchfour/shiftlog/internal/validation"
)

type LogAddCmd struct {
	Day      string `help:"Day worked (YYYY-MM-DD); defaults to today." default:"today"`
	Code     string `help:"Entry code (shift, overtime, callout, training, other)." default:"shift"`
	Start    string `help:"Start time (HH:MM); defaults to the configured shift start."`
	End      string `help:"End time (HH:MM); defaults to the configured shift end."`
	BreakMin int    `help:"Unpaid break in minutes." name:"break"`
	Comment  string `help:"Free-text comment."`
	Force    bool   `help:"Save even when the entry overlaps an existing one."`
}

func (c *LogAddCmd) Run(ctx *Context) error {
	day, err := ResolveDay(c.Day)
	if err != nil {
		return err
	}
	dayStr := utils.FormatDate(day)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	start := c.Start
	if start == "" {
		start = settings.ShiftStart
	}
	end := c.End
	if end == "" {
		end = settings.ShiftEnd
	}

	now := time.Now()
	entry := models.ShiftEntry{
		ID:        uuid.New().String(),
		Day:       dayStr,
		Code:      constants.EntryCode(c.Code),
		Start:     start,
		End:       end,
		BreakMin:  c.BreakMin,
		Comment:   c.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	// Overlap check against the day's existing entries.
	existing, err := ctx.Store.GetEntriesForDay(dayStr)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	result := validation.New().ValidateEntries(append(existing, entry))
	if result.HasConflicts() {
		fmt.Print(result.FormatReport())
		if !c.Force {
			return errors.New("entry conflicts with existing entries (use --force to save anyway)")
		}
		fmt.Println("Saving anyway (--force).")
	}

	if err := ctx.Store.AddEntry(entry); err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}
	fmt.Printf("✓ Logged %s %s-%s on %s (%sh worked)\n",
		entry.Code, entry.Start, entry.End, entry.Day, FormatHours(entry.Minutes()))
	return nil
}

type LogListCmd struct {
	Day     string `help:"Show entries for one day (YYYY-MM-DD or 'today')."`
	From    string `help:"Range start (YYYY-MM-DD)."`
	To      string `help:"Range end (YYYY-MM-DD)."`
	Deleted bool   `help:"Include soft-deleted entries."`
}

func (c *LogListCmd) Run(ctx *Context) error {
	entries, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No timesheet entries found.")
		return nil
	}

	totalMin := 0
	lastDay := ""
	for _, e := range entries {
		if e.Day != lastDay {
			fmt.Printf("%s:\n", e.Day)
			lastDay = e.Day
		}
		flag := ""
		if e.DeletedAt != nil {
			flag = " [deleted]"
		}
		fmt.Printf("  %s  %s-%s %-9s %sh%s", e.ID, e.Start, e.End, e.Code, FormatHours(e.Minutes()), flag)
		if e.Comment != "" {
			fmt.Printf("  %s", e.Comment)
		}
		fmt.Println()
		if e.DeletedAt == nil {
			totalMin += e.Minutes()
		}
	}
	fmt.Printf("\nTotal: %s hours over %d entries\n", FormatHours(totalMin), len(entries))
	return nil
}

func (c *LogListCmd) fetch(ctx *Context) ([]models.ShiftEntry, error) {
	switch {
	case c.Day != "":
		day, err := ResolveDay(c.Day)
		if err != nil {
			return nil, err
		}
		return ctx.Store.GetEntriesForDay(utils.FormatDate(day))
	case c.From != "" || c.To != "":
		if c.From == "" || c.To == "" {
			return nil, errors.New("--from and --to must be given together")
		}
		if !utils.ValidateDateFormat(c.From) || !utils.ValidateDateFormat(c.To) {
			return nil, fmt.Errorf("invalid range %q..%q (expected YYYY-MM-DD)", c.From, c.To)
		}
		return ctx.Store.GetEntriesInRange(c.From, c.To)
	default:
		return ctx.Store.GetAllEntries(c.Deleted)
	}
}

type LogDeleteCmd struct {
	ID string `arg:"" help:"ID of the entry to delete."`
}

func (c *LogDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteEntry(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("entry not found: %s", c.ID)
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Println("✓ Entry deleted (restore with 'shiftlog log restore')")
	return nil
}

type LogRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted entry to restore."`
}

func (c *LogRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.RestoreEntry(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no deleted entry with ID: %s", c.ID)
		}
		return fmt.Errorf("failed to restore entry: %w", err)
	}
	fmt.Println("✓ Entry restored")
	return nil
}
