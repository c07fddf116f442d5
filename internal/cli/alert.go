package cli

import (
	"fmt"

	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type AlertCmd struct {
	Day     string `help:"Date to evaluate (YYYY-MM-DD); defaults to today." default:"today"`
	Platoon string `help:"Platoon letter (A-D); defaults to the configured one."`
}

func (c *AlertCmd) Run(ctx *Context) error {
	day, err := ResolveDay(c.Day)
	if err != nil {
		return err
	}

	var platoon rotation.Platoon
	if c.Platoon != "" {
		platoon, err = rotation.Parse(c.Platoon)
	} else {
		platoon, err = ctx.ConfiguredPlatoon()
	}
	if err != nil {
		return err
	}

	info := ctx.Alerts.ForDate(day, platoon)
	if info == nil {
		fmt.Printf("No alert for platoon %s on %s.\n", platoon, utils.FormatDate(day))
		return nil
	}

	fmt.Printf("⚠ %s\n", info.Message)
	fmt.Printf("  type:  %s\n", info.Type)
	fmt.Printf("  group: %s\n", info.LeaveGroup)
	fmt.Printf("  date:  %s\n", utils.FormatDate(info.RelevantDate))
	return nil
}
