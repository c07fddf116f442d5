package cli

import (
	"fmt"

	"github.com/watchfour/shiftlog/internal/notifier"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/utils"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	platoon, err := rotation.Parse(settings.Platoon)
	if err != nil {
		return err
	}

	info := ctx.Alerts.ForDate(utils.NowInRosterZone(), platoon)
	if info == nil {
		if c.DryRun {
			fmt.Println("No alert fires today.")
		}
		return nil
	}

	if c.DryRun {
		fmt.Println("[DryRun] " + info.Message)
		return nil
	}

	if err := notifier.New().Notify(info.Message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
