package cli

import (
	"fmt"

	"github.com/watchfour/shiftlog/internal/leave"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type LeaveCmd struct {
	Platoon string `arg:"" optional:"" help:"Platoon letter (A-D); defaults to the configured one."`
}

func (c *LeaveCmd) Run(ctx *Context) error {
	var letter rotation.Platoon
	var err error
	if c.Platoon != "" {
		letter, err = rotation.Parse(c.Platoon)
	} else {
		letter, err = ctx.ConfiguredPlatoon()
	}
	if err != nil {
		return err
	}

	now := utils.NowInRosterZone()
	schedule := leave.Schedule(letter, now)

	fmt.Printf("Projected leave for platoon %s (from %s):\n\n", letter, utils.FormatDate(now))
	fmt.Printf("%-6s %-6s %-12s %-12s %-12s %s\n", "Group", "Set", "Notice from", "Leave date", "Return date", "")
	for _, id := range leave.GroupIDs(letter) {
		for _, p := range schedule[id] {
			status := ""
			if p.Ongoing(now) {
				status = "<- ongoing"
			}
			fmt.Printf("%-6s %-6s %-12s %-12s %-12s %s\n",
				p.LeaveGroup, p.SetType,
				utils.FormatDate(p.StartsOn),
				utils.FormatDate(p.LeaveDate),
				utils.FormatDate(p.ReturnDate),
				status)
		}
		fmt.Println()
	}

	if next := leave.NearestUpcoming(letter, now); next != nil {
		fmt.Printf("Next leave for platoon %s: %s departs %s\n",
			letter, next.LeaveGroup, utils.FormatDate(next.LeaveDate))
	}
	return nil
}
