package constants

const (
	// General Settings
	SettingPlatoon              = "platoon"
	SettingLeaveGroup           = "leave_group"
	SettingShowPayDays          = "show_pay_days"
	SettingShowLeave            = "show_leave"
	SettingNotificationsEnabled = "notifications_enabled"

	// Timesheet Settings
	SettingShiftStart = "shift_start"
	SettingShiftEnd   = "shift_end"
	SettingRoundToMin = "round_to_min"

	// Default Settings Values
	DefaultPlatoon              = "A"
	DefaultLeaveGroup           = "A1"
	DefaultShowPayDays          = true
	DefaultShowLeave            = true
	DefaultNotificationsEnabled = false
	DefaultShiftStart           = "06:00"
	DefaultShiftEnd             = "18:00"
	DefaultRoundToMin           = 15
)
