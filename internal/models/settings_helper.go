package models

import (
	"fmt"

	"github.com/watchfour/shiftlog/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingPlatoon:
			settings.Platoon = value
		case constants.SettingLeaveGroup:
			settings.LeaveGroup = value
		case constants.SettingShowPayDays:
			settings.ShowPayDays = value == "true"
		case constants.SettingShowLeave:
			settings.ShowLeave = value == "true"
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingShiftStart:
			settings.ShiftStart = value
		case constants.SettingShiftEnd:
			settings.ShiftEnd = value
		case constants.SettingRoundToMin:
			if _, err := fmt.Sscanf(value, "%d", &settings.RoundToMin); err != nil {
				return Settings{}, fmt.Errorf("parsing round_to_min: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingPlatoon:              settings.Platoon,
		constants.SettingLeaveGroup:           settings.LeaveGroup,
		constants.SettingShowPayDays:          fmt.Sprintf("%v", settings.ShowPayDays),
		constants.SettingShowLeave:            fmt.Sprintf("%v", settings.ShowLeave),
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingShiftStart:           settings.ShiftStart,
		constants.SettingShiftEnd:             settings.ShiftEnd,
		constants.SettingRoundToMin:           fmt.Sprintf("%d", settings.RoundToMin),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Platoon == "" {
		settings.Platoon = constants.DefaultPlatoon
	}
	if settings.LeaveGroup == "" {
		settings.LeaveGroup = constants.DefaultLeaveGroup
	}
	if settings.ShiftStart == "" {
		settings.ShiftStart = constants.DefaultShiftStart
	}
	if settings.ShiftEnd == "" {
		settings.ShiftEnd = constants.DefaultShiftEnd
	}
	if settings.RoundToMin == 0 {
		settings.RoundToMin = constants.DefaultRoundToMin
	}
}
