package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/watchfour/shiftlog/internal/calendar"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type CalendarCmd struct {
	Month   string `help:"Month to show (YYYY-MM)." placeholder:"YYYY-MM"`
	Year    int    `help:"Show all twelve months of a year."`
	NoLeave bool   `help:"Hide the leave overlay."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	if c.Month != "" && c.Year != 0 {
		return fmt.Errorf("--month and --year are mutually exclusive")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	mine, err := rotation.Parse(settings.Platoon)
	if err != nil {
		return err
	}

	now := utils.NowInRosterZone()
	withLeave := settings.ShowLeave && !c.NoLeave

	var months []calendar.Month
	switch {
	case c.Year != 0:
		months = calendar.YearOf(c.Year, now)
	case c.Month != "":
		t, err := time.ParseInLocation("2006-01", c.Month, utils.RosterLocation())
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM): %w", c.Month, err)
		}
		months = []calendar.Month{calendar.MonthOf(t.Year(), t.Month(), now, withLeave)}
	default:
		months = []calendar.Month{calendar.MonthOf(now.Year(), now.Month(), now, withLeave)}
	}

	today := utils.Normalize(now)
	for i, m := range months {
		if i > 0 {
			fmt.Println()
		}
		printMonth(m, mine, settings.ShowPayDays, today)
	}
	fmt.Println()
	fmt.Printf("legend: %s = your platoon, $ = pay day, + = leave, [] = today\n", strings.ToUpper(string(mine)))
	return nil
}

// printMonth renders a Monday-first text grid. The rostered platoon shows as
// an uppercase letter for the configured platoon and lowercase for the rest.
func printMonth(m calendar.Month, mine rotation.Platoon, showPayDays bool, today time.Time) {
	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	fmt.Printf("%*s\n", (42+len(title))/2, title)
	fmt.Println("   Mon   Tue   Wed   Thu   Fri   Sat   Sun")

	for _, week := range m.Weeks {
		var row strings.Builder
		for i := 0; i < 7; i++ {
			if i >= len(week) || week[i].Date.IsZero() {
				row.WriteString("      ")
				continue
			}
			row.WriteString(formatCell(week[i], mine, showPayDays, today))
		}
		fmt.Println(strings.TrimRight(row.String(), " "))
	}
}

func formatCell(d calendar.Day, mine rotation.Platoon, showPayDays bool, today time.Time) string {
	letter := strings.ToLower(string(d.Platoon))
	if d.Platoon == mine {
		letter = string(d.Platoon)
	}

	marker := " "
	if showPayDays && d.PayDay {
		marker = "$"
	}
	if len(d.OnLeave) > 0 {
		marker = "+"
	}

	cell := fmt.Sprintf("%2d%s%s", d.Date.Day(), letter, marker)
	if d.Date.Equal(today) {
		return fmt.Sprintf("[%s] ", cell)
	}
	return fmt.Sprintf(" %s  ", cell)
}
