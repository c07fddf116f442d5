package cli

import (
	"fmt"

	"github.com/watchfour/shiftlog/internal/leave"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Platoon              *string `help:"Rostered platoon letter (A-D)."`
	LeaveGroup           *string `help:"Annual leave subgroup, e.g. A3."`
	ShowPayDays          *bool   `help:"Mark pay days on the calendar."`
	ShowLeave            *bool   `help:"Overlay leave periods on the calendar."`
	NotificationsEnabled *bool   `help:"Enable or disable desktop notifications."`
	ShiftStart           *string `help:"Default shift start time (HH:MM)."`
	ShiftEnd             *string `help:"Default shift end time (HH:MM)."`
	RoundToMin           *int    `help:"Rounding granularity for logged time in minutes."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Platoon:               %s\n", settings.Platoon)
		fmt.Printf("  Leave Group:           %s\n", settings.LeaveGroup)
		fmt.Printf("  Show Pay Days:         %v\n", settings.ShowPayDays)
		fmt.Printf("  Show Leave:            %v\n", settings.ShowLeave)
		fmt.Println("\nTimesheet Settings:")
		fmt.Printf("  Shift Start:           %s\n", settings.ShiftStart)
		fmt.Printf("  Shift End:             %s\n", settings.ShiftEnd)
		fmt.Printf("  Round To:              %d min\n", settings.RoundToMin)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.Platoon != nil {
		p, err := rotation.Parse(*c.Platoon)
		if err != nil {
			return err
		}
		settings.Platoon = string(p)
		updated = true
	}
	if c.LeaveGroup != nil {
		letter, n, err := leave.ParseGroupID(*c.LeaveGroup)
		if err != nil {
			return err
		}
		settings.LeaveGroup = fmt.Sprintf("%s%d", letter, n)
		updated = true
	}
	if c.ShowPayDays != nil {
		settings.ShowPayDays = *c.ShowPayDays
		updated = true
	}
	if c.ShowLeave != nil {
		settings.ShowLeave = *c.ShowLeave
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.ShiftStart != nil {
		if !utils.ValidateTimeFormat(*c.ShiftStart) {
			return fmt.Errorf("invalid shift start %q (expected HH:MM)", *c.ShiftStart)
		}
		settings.ShiftStart = *c.ShiftStart
		updated = true
	}
	if c.ShiftEnd != nil {
		if !utils.ValidateTimeFormat(*c.ShiftEnd) {
			return fmt.Errorf("invalid shift end %q (expected HH:MM)", *c.ShiftEnd)
		}
		settings.ShiftEnd = *c.ShiftEnd
		updated = true
	}
	if c.RoundToMin != nil {
		if *c.RoundToMin < 0 {
			return fmt.Errorf("round-to-min cannot be negative")
		}
		settings.RoundToMin = *c.RoundToMin
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
