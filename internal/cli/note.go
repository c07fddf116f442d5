package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/watchfour/shiftlog/internal/models"
	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/utils"
)

type NoteAddCmd struct {
	Body string `arg:"" help:"Note text."`
	Day  string `help:"Day the note belongs to (YYYY-MM-DD); defaults to today." default:"today"`
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	day, err := ResolveDay(c.Day)
	if err != nil {
		return err
	}

	now := time.Now()
	note := models.Note{
		ID:        uuid.New().String(),
		Day:       utils.FormatDate(day),
		Body:      c.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ctx.Store.AddNote(note); err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	fmt.Printf("✓ Note added for %s (%s)\n", note.Day, note.ID)
	return nil
}

type NoteListCmd struct {
	Day     string `help:"Show notes for one day (YYYY-MM-DD or 'today')."`
	From    string `help:"Range start (YYYY-MM-DD)."`
	To      string `help:"Range end (YYYY-MM-DD)."`
	Deleted bool   `help:"Include soft-deleted notes."`
}

func (c *NoteListCmd) Run(ctx *Context) error {
	notes, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	lastDay := ""
	for _, n := range notes {
		if n.Day != lastDay {
			fmt.Printf("%s:\n", n.Day)
			lastDay = n.Day
		}
		flag := ""
		if n.DeletedAt != nil {
			flag = " [deleted]"
		}
		fmt.Printf("  %s  %s%s\n", n.ID, n.Body, flag)
	}
	return nil
}

func (c *NoteListCmd) fetch(ctx *Context) ([]models.Note, error) {
	switch {
	case c.Day != "":
		day, err := ResolveDay(c.Day)
		if err != nil {
			return nil, err
		}
		return ctx.Store.GetNotesForDay(utils.FormatDate(day))
	case c.From != "" || c.To != "":
		if c.From == "" || c.To == "" {
			return nil, errors.New("--from and --to must be given together")
		}
		if !utils.ValidateDateFormat(c.From) || !utils.ValidateDateFormat(c.To) {
			return nil, fmt.Errorf("invalid range %q..%q (expected YYYY-MM-DD)", c.From, c.To)
		}
		return ctx.Store.GetNotesInRange(c.From, c.To)
	default:
		return ctx.Store.GetAllNotes(c.Deleted)
	}
}

type NoteEditCmd struct {
	ID   string `arg:"" help:"ID of the note to edit."`
	Body string `arg:"" help:"Replacement text."`
}

func (c *NoteEditCmd) Run(ctx *Context) error {
	note, err := ctx.Store.GetNote(c.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("note not found: %s", c.ID)
		}
		return err
	}

	note.Body = strings.TrimSpace(c.Body)
	note.UpdatedAt = time.Now()
	if err := ctx.Store.UpdateNote(note); err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	fmt.Println("✓ Note updated")
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"ID of the note to delete."`
}

func (c *NoteDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteNote(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("note not found: %s", c.ID)
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}
	fmt.Println("✓ Note deleted (restore with 'shiftlog note restore')")
	return nil
}

type NoteRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted note to restore."`
}

func (c *NoteRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.RestoreNote(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no deleted note with ID: %s", c.ID)
		}
		return fmt.Errorf("failed to restore note: %w", err)
	}
	fmt.Println("✓ Note restored")
	return nil
}
