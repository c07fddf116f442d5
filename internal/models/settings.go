package models

// Settings represents application-wide settings
type Settings struct {
	Platoon              string `json:"platoon"`               // rostered platoon letter (A-D)
	LeaveGroup           string `json:"leave_group"`           // annual leave subgroup, e.g. "A3"
	ShowPayDays          bool   `json:"show_pay_days"`         // whether the calendar marks pay days
	ShowLeave            bool   `json:"show_leave"`            // whether the calendar overlays leave periods
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether desktop notifications are enabled
	ShiftStart           string `json:"shift_start"`           // default shift start, e.g. "06:00"
	ShiftEnd             string `json:"shift_end"`             // default shift end, e.g. "18:00"
	RoundToMin           int    `json:"round_to_min"`          // rounding granularity for logged time in minutes
}
