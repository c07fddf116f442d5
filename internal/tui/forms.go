package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/watchfour/shiftlog/internal/constants"
	"github.com/watchfour/shiftlog/internal/utils"
)

type NoteFormModel struct {
	Day  string
	Body string
}

type EntryFormModel struct {
	Day      string
	Code     constants.EntryCode
	Start    string
	End      string
	BreakMin string
	Comment  string
}

func NewNoteForm(fm *NoteFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Day (YYYY-MM-DD)").
				Value(&fm.Day).
				Validate(func(s string) error {
					if !utils.ValidateDateFormat(s) {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewText().
				Title("Note").
				Value(&fm.Body).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("note cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Day (YYYY-MM-DD)").
				Value(&fm.Day).
				Validate(func(s string) error {
					if !utils.ValidateDateFormat(s) {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[constants.EntryCode]().
				Title("Code").
				Options(
					huh.NewOption("Shift", constants.EntryCodeShift),
					huh.NewOption("Overtime", constants.EntryCodeOvertime),
					huh.NewOption("Callout", constants.EntryCodeCallout),
					huh.NewOption("Training", constants.EntryCodeTraining),
					huh.NewOption("Other", constants.EntryCodeOther),
				).
				Value(&fm.Code),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(validateClock),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&fm.End).
				Validate(validateClock),
			huh.NewInput().
				Title("Break (min)").
				Value(&fm.BreakMin).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i < 0 {
						return fmt.Errorf("break cannot be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Comment").
				Value(&fm.Comment),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateClock(s string) error {
	if !utils.ValidateTimeFormat(s) {
		return fmt.Errorf("expected HH:MM")
	}
	return nil
}
