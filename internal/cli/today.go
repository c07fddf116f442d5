package cli

import (
	"fmt"

	"github.com/watchfour/shiftlog/internal/calendar"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type TodayCmd struct {
	Day string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *TodayCmd) Run(ctx *Context) error {
	day, err := ResolveDay(c.Day)
	if err != nil {
		return err
	}
	dayStr := utils.FormatDate(day)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	mine, err := rotation.Parse(settings.Platoon)
	if err != nil {
		return err
	}

	cell := calendar.DayOf(day, settings.ShowLeave)

	fmt.Printf("%s (%s)\n\n", dayStr, day.Format("Monday"))
	fmt.Printf("  On duty:   platoon %s\n", cell.Platoon)
	if settings.ShowPayDays && cell.PayDay {
		fmt.Println("  Pay day:   yes")
	}
	if len(cell.OnLeave) > 0 {
		fmt.Printf("  On leave:  %v\n", cell.OnLeave)
	}

	if info := ctx.Alerts.ForDate(day, mine); info != nil {
		fmt.Printf("\n  ⚠ %s\n", info.Message)
	}

	fmt.Printf("\n  Your platoon (%s) next shifts:\n", mine)
	for _, shift := range rotation.NextShifts(mine, day, 4) {
		marker := ""
		if utils.FormatDate(shift) == dayStr {
			marker = "  <- today"
		}
		fmt.Printf("    %s %s%s\n", utils.FormatDate(shift), shift.Format("Mon"), marker)
	}

	notes, err := ctx.Store.GetNotesForDay(dayStr)
	if err != nil {
		return fmt.Errorf("failed to get notes: %w", err)
	}
	entries, err := ctx.Store.GetEntriesForDay(dayStr)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	fmt.Printf("\n  Notes: %d  Timesheet entries: %d\n", len(notes), len(entries))
	for _, e := range entries {
		fmt.Printf("    %s-%s %s %sh\n", e.Start, e.End, e.Code, FormatHours(e.Minutes()))
	}

	return nil
}
