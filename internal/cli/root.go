package cli

import (
	"fmt"
	"time"

	"github.com/watchfour/shiftlog/internal/alert"
	"github.com/watchfour/shiftlog/internal/backup"
	"github.com/watchfour/shiftlog/internal/logger"
	"github.com/watchfour/shiftlog/internal/rotation"
	"github.com/watchfour/shiftlog/internal/storage"
	"github.com/watchfour/shiftlog/internal/storage/sqlite"
	"github.com/watchfour/shiftlog/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Alerts *alert.Calculator
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors. Backups are file-level and only apply to SQLite stores.
func (c *Context) PerformAutomaticBackup() {
	st, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	mgr := backup.NewManager(st.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ConfiguredPlatoon resolves the user's rostered platoon from settings.
func (c *Context) ConfiguredPlatoon() (rotation.Platoon, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return rotation.Parse(settings.Platoon)
}

// ResolveDay parses a date argument, treating "today" and the empty string as
// the current roster-zone date.
func ResolveDay(arg string) (time.Time, error) {
	if arg == "" || arg == "today" {
		return utils.Normalize(utils.NowInRosterZone()), nil
	}
	t, err := utils.ParseDate(arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return t, nil
}

// FormatHours renders worked minutes as decimal hours, e.g. 690 -> "11.50".
func FormatHours(minutes int) string {
	return fmt.Sprintf("%.2f", float64(minutes)/60.0)
}
